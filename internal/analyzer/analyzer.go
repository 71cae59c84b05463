package analyzer

import (
	"fmt"

	"github.com/tomdoesdev/rill/internal/ast"
	"github.com/tomdoesdev/rill/internal/errors"
	"github.com/tomdoesdev/rill/internal/token"
)

// Report summarises a parsed program
type Report struct {
	Statements   int
	Expressions  int
	Skipped      int // silent Void statements
	Placeholders int // Null expressions and Void statements that carry an error
	Diagnostics  []errors.Diagnostic
}

// Clean reports whether the tree holds no error placeholders
func (r Report) Clean() bool {
	return r.Placeholders == 0
}

func (r Report) String() string {
	return fmt.Sprintf("%d statements, %d expressions, %d skipped, %d placeholders",
		r.Statements, r.Expressions, r.Skipped, r.Placeholders)
}

// Analyzer walks a finished AST and re-derives the diagnostics embedded in
// its placeholders. It does no name resolution or type checking.
type Analyzer struct {
	filename string
}

// New creates an analyzer; filename is used for placeholders that carry no
// diagnostic of their own
func New(filename string) *Analyzer {
	return &Analyzer{filename: filename}
}

// Analyze collects placeholder diagnostics in source order
func (a *Analyzer) Analyze(program *ast.Program) Report {
	var r Report

	ast.Inspect(program, func(node ast.Node) bool {
		switch n := node.(type) {
		case *ast.Program:
			return true
		case *ast.Void:
			r.Statements++
			if n.Diagnostic == nil {
				r.Skipped++
				return false
			}
			r.Placeholders++
			r.Diagnostics = append(r.Diagnostics, *n.Diagnostic)
		case *ast.Null:
			r.Expressions++
			r.Placeholders++
			r.Diagnostics = append(r.Diagnostics, a.placeholderDiagnostic(n))
		case ast.Statement:
			r.Statements++
		case ast.Expression:
			r.Expressions++
		}
		return true
	})

	return r
}

// placeholderDiagnostic returns the Null's own diagnostic, or one anchored
// on its token when the Null was built without one
func (a *Analyzer) placeholderDiagnostic(n *ast.Null) errors.Diagnostic {
	if n.Diagnostic != nil {
		return *n.Diagnostic
	}
	ref := n.Rule.Slot(0)
	return errors.Diagnostic{
		Phase:    errors.Parser,
		Message:  fmt.Sprintf("invalid %s", n.Rule),
		Filename: a.filename,
		Line:     n.Token.Line,
		Column:   n.Token.Column,
		Length:   tokenLength(n.Token),
		Rule:     &ref,
	}
}

func tokenLength(tok token.Token) int {
	if tok.Length > 0 {
		return tok.Length
	}
	return len([]rune(tok.Text))
}
