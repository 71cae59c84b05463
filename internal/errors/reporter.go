package errors

import (
	"fmt"
	"strings"
)

// Style decorates the pieces of a rendered diagnostic. Nil fields leave
// their text unchanged.
type Style struct {
	Error     func(string) string // "error" label
	Phase     func(string) string // "parser" label
	Location  func(string) string // file[line:col]
	Caret     func(string) string // ^~~~ underline
	Info      func(string) string // "info" label
	Highlight func(string) string // erroring grammar slot
}

// PlainStyle adds no escape codes and marks the erroring slot with backticks
var PlainStyle = Style{
	Highlight: func(s string) string { return "`" + s + "`" },
}

func apply(f func(string) string, s string) string {
	if f == nil {
		return s
	}
	return f(s)
}

// ErrorReporter renders diagnostics against the source they refer to
type ErrorReporter struct {
	filename string
	lines    []string
	style    Style
}

// NewErrorReporter creates a reporter using PlainStyle
func NewErrorReporter(source, filename string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
		style:    PlainStyle,
	}
}

// WithStyle returns a copy of the reporter using style
func (er *ErrorReporter) WithStyle(style Style) *ErrorReporter {
	cp := *er
	cp.style = style
	return &cp
}

// Report renders a diagnostic: one line for lexer diagnostics, a
// four-line block for parser diagnostics.
func (er *ErrorReporter) Report(d Diagnostic) string {
	if d.Phase == Lexer {
		return er.reportLexical(d)
	}
	return er.reportSyntax(d)
}

func (er *ErrorReporter) reportLexical(d Diagnostic) string {
	label := apply(er.style.Error, fmt.Sprintf("error[%s]", d.Code))
	return fmt.Sprintf("%s: %s %s %s", label, d.Message, d.Detail, apply(er.style.Location, d.Location()))
}

func (er *ErrorReporter) reportSyntax(d Diagnostic) string {
	lineNum := fmt.Sprintf("%d", d.Line)
	padding := strings.Repeat(" ", len(lineNum))

	sourceLine := ""
	if d.Line >= 1 && d.Line <= len(er.lines) {
		sourceLine = strings.TrimRight(er.lines[d.Line-1], "\r")
	}

	length := d.Length
	if length < 1 {
		length = 1
	}
	column := d.Column
	if column < 1 {
		column = 1
	}
	underline := "^" + strings.Repeat("~", length-1)

	var result strings.Builder

	result.WriteString(fmt.Sprintf("%s:%s --> %s\n",
		apply(er.style.Error, "error"),
		apply(er.style.Phase, d.Phase.String()),
		apply(er.style.Location, d.Location())))
	result.WriteString(fmt.Sprintf("%s | %s\n", lineNum, sourceLine))
	result.WriteString(fmt.Sprintf("%s | %s%s %s", padding,
		strings.Repeat(" ", column-1), apply(er.style.Caret, underline), d.Message))

	if d.Rule != nil {
		result.WriteString(fmt.Sprintf("\n%s | %s: %s", padding,
			apply(er.style.Info, "info"), d.Rule.Render(er.style.Highlight)))
	}

	return result.String()
}
