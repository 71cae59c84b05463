package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomdoesdev/rill/internal/compiler"
	"github.com/tomdoesdev/rill/internal/config"
	"github.com/tomdoesdev/rill/internal/errors"
	"github.com/tomdoesdev/rill/internal/logger"
	"github.com/tomdoesdev/rill/internal/style"
	"github.com/tomdoesdev/rill/internal/transform"
)

// ErrDiagnostics is returned when a file produced diagnostics. They have
// already been printed.
var ErrDiagnostics = stderrors.New("diagnostics reported")

var (
	cfgFile   string
	verbose   bool
	colorMode string

	cfg     *config.Config
	log     *logger.Logger
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "rill",
	Short: "Tokenizer and parser for the rill language",
	Long: `rill reads .rl source files, reports every lexical and syntax
problem it finds, and dumps tokens or the parsed tree as JSON or YAML.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command. The log file is closed on every exit
// path, including command errors.
func Execute() error {
	defer closeLogFile()
	return rootCmd.Execute()
}

// Reported reports whether err has already been shown to the user as
// diagnostics
func Reported(err error) bool {
	return stderrors.Is(err, ErrDiagnostics) || errors.IsFatal(err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $RILL_CONFIG, ./rill.toml, ~/.config/rill/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "colour diagnostics: auto, always or never")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("color") {
		if _, err := style.ParseMode(colorMode); err != nil {
			return err
		}
		cfg.Diagnostics.Color = colorMode
	}

	logCfg := &logger.Config{
		Level:  cfg.LogLevel(),
		Writer: cmd.ErrOrStderr(),
	}
	if verbose {
		logCfg.Level = slog.LevelDebug
	}
	if cfg.Log.File != "" {
		logFile, err = os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logCfg.File = logFile
	}
	log = logger.New("rill", logCfg)
	log.Debug("configuration loaded", "format", cfg.Output.Format, "color", cfg.Diagnostics.Color)

	return nil
}

func closeLogFile() {
	if logFile == nil {
		return
	}
	_ = logFile.Close()
	logFile = nil
}

func readSource(cmd *cobra.Command, path string) (string, string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), path, nil
}

// newCompiler builds a compiler printing diagnostics for source to the
// command's error stream
func newCompiler(cmd *cobra.Command, source, filename string, format transform.OutputFormat) *compiler.Compiler {
	stderr := cmd.ErrOrStderr()
	reporter := errors.NewErrorReporter(source, filename).
		WithStyle(style.For(stderr, style.Mode(cfg.Diagnostics.Color)))

	return compiler.New(
		compiler.WithFormat(format),
		compiler.WithHandler(errors.NewWriterHandler(stderr, reporter)),
		compiler.WithMaxErrors(cfg.Diagnostics.MaxErrors),
		compiler.WithLogger(log.Named(cmd.Name())),
	)
}

// outputFormat returns the --format flag when given, else the configured one
func outputFormat(cmd *cobra.Command, flag string) (transform.OutputFormat, error) {
	if cmd.Flags().Changed("format") {
		return transform.ParseFormat(flag)
	}
	return transform.ParseFormat(cfg.Output.Format)
}

func compileFile(cmd *cobra.Command, path string, format transform.OutputFormat) (*compiler.Compiler, *compiler.Result, error) {
	source, filename, err := readSource(cmd, path)
	if err != nil {
		return nil, nil, err
	}

	c := newCompiler(cmd, source, filename, format)
	var result *compiler.Result
	if path == "-" {
		result, err = c.Compile(source)
	} else {
		result, err = c.CompileFile(source, filename)
	}
	if err != nil {
		return nil, nil, err
	}
	if result.Suppressed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d more diagnostics not shown\n", result.Suppressed)
	}
	return c, result, nil
}
