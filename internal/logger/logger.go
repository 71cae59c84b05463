package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	slogmulti "github.com/samber/slog-multi"
)

// Logger provides structured logging for rill components
type Logger struct {
	*slog.Logger
	base      *slog.Logger // without the component attribute
	component string
}

// Config holds logger configuration
type Config struct {
	Level     slog.Level
	AddSource bool
	Writer    io.Writer // text output, stderr when nil
	File      io.Writer // optional JSON output
}

// DefaultConfig returns default logger configuration
func DefaultConfig() *Config {
	return &Config{
		Level:  slog.LevelWarn,
		Writer: os.Stderr,
	}
}

// New creates a new logger for a specific component
func New(component string, cfg *Config) *Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	handlers := []slog.Handler{slog.NewTextHandler(w, opts)}
	if cfg.File != nil {
		handlers = append(handlers, slog.NewJSONHandler(cfg.File, &slog.HandlerOptions{
			Level:     cfg.Level,
			AddSource: cfg.AddSource,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					t := a.Value.Time()
					a.Value = slog.StringValue(t.Format(time.RFC3339))
				}
				return a
			},
		}))
	}

	base := slog.New(slogmulti.Fanout(handlers...))

	return &Logger{
		Logger:    base.With(slog.String("component", component)),
		base:      base,
		component: component,
	}
}

// Nop returns a logger that drops everything
func Nop() *Logger {
	base := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &Logger{
		Logger:    base,
		base:      base,
		component: "nop",
	}
}

// WithField adds a field to the logger context
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{
		Logger:    l.Logger.With(slog.Any(key, value)),
		base:      l.base,
		component: l.component,
	}
}

// Named returns a logger for a sub-component sharing the same handlers.
// Fields added with WithField are not carried over.
func (l *Logger) Named(component string) *Logger {
	return &Logger{
		Logger:    l.base.With(slog.String("component", component)),
		base:      l.base,
		component: component,
	}
}

// Component returns the logger's component name
func (l *Logger) Component() string {
	return l.component
}
