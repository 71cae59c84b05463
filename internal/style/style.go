package style

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tomdoesdev/rill/internal/errors"
)

// Mode selects when diagnostics are coloured
type Mode string

const (
	Auto   Mode = "auto"
	Always Mode = "always"
	Never  Mode = "never"
)

// ParseMode validates a colour mode from flags or config
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case Auto, Always, Never:
		return m, nil
	default:
		return "", fmt.Errorf("invalid color mode %q, want auto, always or never", s)
	}
}

var (
	colorError = lipgloss.Color("1")
	colorPhase = lipgloss.Color("6")
	colorInfo  = lipgloss.Color("4")
)

// For returns the diagnostic style for output written to w. Auto mode
// colours only when w is a terminal that supports it.
func For(w io.Writer, mode Mode) errors.Style {
	if mode == Never {
		return errors.PlainStyle
	}

	r := lipgloss.NewRenderer(w)
	if mode == Always {
		r.SetColorProfile(termenv.ANSI256)
	}
	if r.ColorProfile() == termenv.Ascii {
		return errors.PlainStyle
	}

	return errors.Style{
		Error:     render(r.NewStyle().Foreground(colorError).Bold(true)),
		Phase:     render(r.NewStyle().Foreground(colorPhase)),
		Location:  render(r.NewStyle().Underline(true)),
		Caret:     render(r.NewStyle().Foreground(colorError)),
		Info:      render(r.NewStyle().Foreground(colorInfo)),
		Highlight: render(r.NewStyle().Reverse(true)),
	}
}

func render(s lipgloss.Style) func(string) string {
	return func(text string) string {
		return s.Render(text)
	}
}
