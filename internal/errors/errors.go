package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/tomdoesdev/rill/internal/grammar"
)

// ErrFatal marks a lexical error that stops the whole run
var ErrFatal = stderrors.New("fatal lexical error")

// Phase is the pipeline stage that produced a diagnostic
type Phase int

const (
	Lexer Phase = iota
	Parser
)

func (p Phase) String() string {
	switch p {
	case Lexer:
		return "lexer"
	case Parser:
		return "parser"
	default:
		return "unknown"
	}
}

// Code is one of the six lexical error kinds. Parser diagnostics use NoCode.
type Code int

const (
	NoCode Code = iota
	InvalidCharacter
	UnexpectedEOF
	Unterminated
	InvalidNumber
	UnclosedBrackets
	InvalidEscape
)

var codeMessages = [...]string{
	NoCode:           "",
	InvalidCharacter: "Invalid character found",
	UnexpectedEOF:    "Unexpected EOF",
	Unterminated:     "Unterminated string or comment",
	InvalidNumber:    "Invalid numerical format",
	UnclosedBrackets: "Unclosed brackets",
	InvalidEscape:    "Invalid escape sequence",
}

// Message returns the fixed text for a lexical error kind
func (c Code) Message() string {
	if c < 0 || int(c) >= len(codeMessages) {
		return ""
	}
	return codeMessages[c]
}

// String returns the diagnostic code as printed, e.g. L003
func (c Code) String() string {
	return fmt.Sprintf("L00%d", int(c))
}

// Diagnostic is a positioned problem found while reading source text
type Diagnostic struct {
	Phase    Phase
	Code     Code
	Message  string
	Detail   string
	Filename string
	Line     int
	Column   int
	Length   int
	Rule     *grammar.Ref
}

// Location formats the diagnostic's position as file[line:col]
func (d Diagnostic) Location() string {
	return fmt.Sprintf("%s[%d:%d]", d.Filename, d.Line, d.Column)
}

// Error returns a single line description. Lexer diagnostics use their
// canonical format; parser diagnostics use the location and message only.
func (d Diagnostic) Error() string {
	if d.Phase == Lexer {
		return fmt.Sprintf("error[%s]: %s %s %s", d.Code, d.Message, d.Detail, d.Location())
	}
	return fmt.Sprintf("error:parser --> %s %s", d.Location(), d.Message)
}

// Fatal reports whether the diagnostic stops the run
func (d Diagnostic) Fatal() bool {
	return d.Phase == Lexer && d.Code == Unterminated
}

// NewLexical builds a lexer diagnostic for the given kind
func NewLexical(code Code, detail, filename string, line, column int) Diagnostic {
	return Diagnostic{
		Phase:    Lexer,
		Code:     code,
		Message:  code.Message(),
		Detail:   detail,
		Filename: filename,
		Line:     line,
		Column:   column,
		Length:   1,
	}
}

// FatalError carries the diagnostic that stopped the run
type FatalError struct {
	Diagnostic Diagnostic
}

func (e *FatalError) Error() string {
	return e.Diagnostic.Error()
}

// Unwrap lets errors.Is(err, ErrFatal) match
func (e *FatalError) Unwrap() error {
	return ErrFatal
}

// IsFatal reports whether err stopped the run
func IsFatal(err error) bool {
	return stderrors.Is(err, ErrFatal)
}
