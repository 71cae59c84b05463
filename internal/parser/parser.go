package parser

import (
	"fmt"

	"github.com/tomdoesdev/rill/internal/ast"
	"github.com/tomdoesdev/rill/internal/errors"
	"github.com/tomdoesdev/rill/internal/grammar"
	"github.com/tomdoesdev/rill/internal/token"
)

// Parser implements a recursive descent parser over a token slice.
// Mismatches are reported to the handler and replaced by placeholders, so
// parsing always runs to the end of the input.
type Parser struct {
	tokens   []token.Token
	index    int
	filename string
	handler  errors.Handler
}

// New creates a parser. A nil handler discards diagnostics.
func New(tokens []token.Token, filename string, h errors.Handler) *Parser {
	if h == nil {
		h = errors.Discard
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Class != token.EOF {
		eof := token.Token{Class: token.EOF, Line: 1, Column: 1}
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			eof.Line, eof.Column = last.Line, last.Column+last.Length
		}
		tokens = append(tokens[:len(tokens):len(tokens)], eof)
	}
	return &Parser{
		tokens:   tokens,
		filename: filename,
		handler:  h,
	}
}

// peek returns the token offset positions away from the cursor. Offsets
// outside the slice, in either direction, yield the final EOF token.
func (p *Parser) peek(offset int) token.Token {
	i := p.index + offset
	if i < 0 || i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) cur() token.Token {
	return p.peek(0)
}

// next advances the cursor; it never moves past EOF
func (p *Parser) next() {
	if p.index < len(p.tokens)-1 {
		p.index++
	}
}

// errorAt reports a diagnostic anchored on tok, quoting the grammar slot ref
func (p *Parser) errorAt(tok token.Token, msg string, ref grammar.Ref) *errors.Diagnostic {
	d := errors.Diagnostic{
		Phase:    errors.Parser,
		Message:  msg,
		Filename: p.filename,
		Line:     tok.Line,
		Column:   tok.Column,
		Length:   tok.Length,
		Rule:     &ref,
	}
	p.handler.Handle(d)
	return &d
}

// eat consumes the current token. A class mismatch is reported, but the
// token is still consumed and returned.
func (p *Parser) eat(class token.Class, ref grammar.Ref) token.Token {
	cur := p.cur()
	if cur.Class != class {
		p.errorAt(cur, fmt.Sprintf("expected %s, got %s", class, cur.Class), ref)
	}
	p.next()
	return cur
}

// ParseProgram parses statements until EOF
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{Statements: []ast.Statement{}}

	for p.cur().Class != token.EOF {
		program.Statements = append(program.Statements, p.parseStatement())
	}

	return program
}

// ParseExpression parses a single expression at the cursor
func (p *Parser) ParseExpression() ast.Expression {
	return p.parseExpression(grammar.Comparison.Slot(0))
}

// parseStatement dispatches on the current token. Every call consumes at
// least one token.
func (p *Parser) parseStatement() ast.Statement {
	cur := p.cur()
	if cur.Class != token.KEYWORD {
		p.next()
		return &ast.Void{Token: cur}
	}

	switch cur.Text {
	case "set":
		return p.parseSetAssign()
	case "var":
		return p.parseVarAssign()
	case "if":
		return p.parseIfStatement()
	default:
		return p.parseUnsupported()
	}
}

// parseSetAssign parses `set name = expr;`
func (p *Parser) parseSetAssign() *ast.SetAssign {
	stmt := &ast.SetAssign{Token: p.cur()}
	p.next()

	stmt.Name = p.eat(token.IDENT, grammar.Set.Slot(1))
	p.eat(token.ASSIGN, grammar.Set.Slot(2))
	stmt.Value = p.parseExpression(grammar.Set.Slot(3))
	p.eat(token.SEMICOLON, grammar.Set.Slot(4))

	return stmt
}

// parseVarAssign parses `var name = expr;`
func (p *Parser) parseVarAssign() *ast.VarAssign {
	stmt := &ast.VarAssign{Token: p.cur()}
	p.next()

	stmt.Name = p.eat(token.IDENT, grammar.Var.Slot(1))
	p.eat(token.ASSIGN, grammar.Var.Slot(2))
	stmt.Value = p.parseExpression(grammar.Var.Slot(3))
	p.eat(token.SEMICOLON, grammar.Var.Slot(4))

	return stmt
}

// parseIfStatement parses `if expr [ statements ]`
func (p *Parser) parseIfStatement() *ast.IfStatement {
	stmt := &ast.IfStatement{Token: p.cur()}
	p.next()

	stmt.Condition = p.parseExpression(grammar.If.Slot(1))
	stmt.Body = p.parseBlock(grammar.If.Slot(2))

	return stmt
}

// parseBlock parses `[ statement* ]`. Reaching EOF first is reported and
// the statements read so far are kept.
func (p *Parser) parseBlock(open grammar.Ref) []ast.Statement {
	p.eat(token.LBRACKET, open)

	statements := []ast.Statement{}
	for p.cur().Class != token.RBRACKET {
		if p.cur().Class == token.EOF {
			p.errorAt(p.cur(), "unexpected end of input, wanted ']' to close code block", grammar.Block.Slot(2))
			return statements
		}
		statements = append(statements, p.parseStatement())
	}
	p.next()

	return statements
}

var unsupported = map[string]grammar.Rule{
	"fun":   grammar.FunDef,
	"use":   grammar.Use,
	"yeild": grammar.Yield,
}

// parseUnsupported reports a keyword the parser does not handle yet and
// skips past the construct it starts
func (p *Parser) parseUnsupported() *ast.Void {
	kw := p.cur()
	rule, ok := unsupported[kw.Text]
	if !ok {
		rule = grammar.Block
	}
	d := p.errorAt(kw, fmt.Sprintf("unsupported construct '%s'", kw.Text), rule.Slot(0))
	p.next()
	p.skipConstruct()

	return &ast.Void{Token: kw, Diagnostic: d}
}

// skipConstruct advances past the next top-level ';' or past the first
// complete bracketed block and an optional ';' after it. A ']' closing an
// enclosing block is left alone.
func (p *Parser) skipConstruct() {
	depth := 0
	for {
		switch p.cur().Class {
		case token.EOF:
			return
		case token.LBRACKET:
			depth++
		case token.RBRACKET:
			if depth == 0 {
				return
			}
			depth--
			if depth == 0 {
				p.next()
				if p.cur().Class == token.SEMICOLON {
					p.next()
				}
				return
			}
		case token.SEMICOLON:
			if depth == 0 {
				p.next()
				return
			}
		}
		p.next()
	}
}
