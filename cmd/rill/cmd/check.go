package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomdoesdev/rill/internal/transform"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Report diagnostics without dumping anything",
	Long: `Tokenize and parse each file and print its diagnostics.

Exits with status 1 when any file produced a diagnostic.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	failed := 0

	for _, path := range args {
		_, result, err := compileFile(cmd, path, transform.FormatJSON)
		if err != nil {
			return err
		}

		log.Info("checked", "file", result.Filename, "report", result.Report.String())
		if result.HasErrors() {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d diagnostics\n", result.Filename, len(result.Diagnostics))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files: %w", failed, len(args), ErrDiagnostics)
	}
	return nil
}
