package compiler

import (
	"fmt"
	"time"

	"github.com/tomdoesdev/rill/internal/analyzer"
	"github.com/tomdoesdev/rill/internal/ast"
	"github.com/tomdoesdev/rill/internal/errors"
	"github.com/tomdoesdev/rill/internal/lexer"
	"github.com/tomdoesdev/rill/internal/logger"
	"github.com/tomdoesdev/rill/internal/parser"
	"github.com/tomdoesdev/rill/internal/token"
	"github.com/tomdoesdev/rill/internal/transform"
)

// Compiler orchestrates the tokenize, parse and analyze phases
type Compiler struct {
	outputFormat transform.OutputFormat
	handler      errors.Handler
	maxErrors    int
	log          *logger.Logger
}

// Option configures a Compiler
type Option func(*Compiler)

// WithFormat sets the format used by Render
func WithFormat(format transform.OutputFormat) Option {
	return func(c *Compiler) { c.outputFormat = format }
}

// WithHandler forwards every diagnostic to h as it is found
func WithHandler(h errors.Handler) Option {
	return func(c *Compiler) { c.handler = h }
}

// WithMaxErrors caps how many diagnostics reach the handler. Result
// always holds all of them.
func WithMaxErrors(n int) Option {
	return func(c *Compiler) { c.maxErrors = n }
}

// WithLogger sets the logger used for phase timings
func WithLogger(l *logger.Logger) Option {
	return func(c *Compiler) { c.log = l }
}

// New creates a new compiler instance with JSON as default format
func New(opts ...Option) *Compiler {
	c := &Compiler{
		outputFormat: transform.FormatJSON,
		handler:      errors.Discard,
		log:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.handler == nil {
		c.handler = errors.Discard
	}
	if c.log == nil {
		c.log = logger.Nop()
	}
	return c
}

// NewWithFormat creates a new compiler instance with specified output format
func NewWithFormat(format transform.OutputFormat) *Compiler {
	return New(WithFormat(format))
}

// SetOutputFormat sets the output format for the compiler
func (c *Compiler) SetOutputFormat(format transform.OutputFormat) {
	c.outputFormat = format
}

// Result is everything one run produced
type Result struct {
	Filename    string
	Tokens      []token.Token
	Program     *ast.Program
	Diagnostics []errors.Diagnostic
	Report      analyzer.Report
	Suppressed  int // diagnostics held back from the handler by the error limit
}

// HasErrors reports whether any diagnostic was produced
func (r *Result) HasErrors() bool {
	return len(r.Diagnostics) > 0
}

// Compile runs the pipeline on source read from stdin
func (c *Compiler) Compile(source string) (*Result, error) {
	return c.CompileFile(source, "<stdin>")
}

// CompileFile runs the pipeline. Recoverable problems are collected in the
// Result; the error is non-nil only for a fatal lexical error.
func (c *Compiler) CompileFile(source, filename string) (*Result, error) {
	log := c.log.WithField("file", filename)

	var collected errors.Collector
	handler := c.handler
	var limiter *errors.Limiter
	if c.maxErrors > 0 {
		limiter = errors.Limit(handler, c.maxErrors)
		handler = limiter
	}
	h := errors.Multi(&collected, handler)

	// Phase 1: Lexical Analysis
	start := time.Now()
	tokens, err := lexer.Tokenize(source, filename, h)
	if err != nil {
		log.Debug("tokenize failed", "error", err)
		return nil, fmt.Errorf("tokenizing %s: %w", filename, err)
	}
	log.Debug("tokenized", "tokens", len(tokens), "elapsed", time.Since(start))

	// Phase 2: Parsing
	start = time.Now()
	program := parser.New(tokens, filename, h).ParseProgram()
	log.Debug("parsed", "statements", len(program.Statements), "elapsed", time.Since(start))

	// Phase 3: Placeholder analysis
	start = time.Now()
	report := analyzer.New(filename).Analyze(program)
	log.Debug("analyzed", "report", report.String(), "elapsed", time.Since(start))

	result := &Result{
		Filename:    filename,
		Tokens:      tokens,
		Program:     program,
		Diagnostics: collected.Diagnostics(),
		Report:      report,
	}
	if limiter != nil {
		result.Suppressed = limiter.Suppressed()
	}
	if result.HasErrors() {
		log.Info("diagnostics reported", "count", len(result.Diagnostics))
	}

	return result, nil
}

// Render dumps the result's AST in the compiler's output format
func (c *Compiler) Render(result *Result) (string, error) {
	t := transform.New()
	t.SetFormat(c.outputFormat)
	output, err := t.Transform(result.Program)
	if err != nil {
		return "", fmt.Errorf("generation error: %w", err)
	}
	return output, nil
}

// RenderTokens dumps the result's tokens in the compiler's output format
func (c *Compiler) RenderTokens(result *Result) (string, error) {
	output, err := transform.Tokens(result.Tokens, c.outputFormat)
	if err != nil {
		return "", fmt.Errorf("generation error: %w", err)
	}
	return output, nil
}

// CompileToFormat compiles source and renders it in the specified format
func (c *Compiler) CompileToFormat(source, filename string, format transform.OutputFormat) (string, error) {
	result, err := c.CompileFile(source, filename)
	if err != nil {
		return "", err
	}
	output, err := transform.NewWithFormat(format).Transform(result.Program)
	if err != nil {
		return "", fmt.Errorf("generation error: %w", err)
	}
	return output, nil
}
