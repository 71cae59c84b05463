package parser

import (
	"fmt"

	"github.com/tomdoesdev/rill/internal/ast"
	"github.com/tomdoesdev/rill/internal/errors"
	"github.com/tomdoesdev/rill/internal/grammar"
	"github.com/tomdoesdev/rill/internal/token"
)

// parseExpression parses one operand and, if a comparator follows, wraps
// it in a BooleanExpr. parent is the grammar slot quoted when no
// expression is found.
func (p *Parser) parseExpression(parent grammar.Ref) ast.Expression {
	value := p.parseOperand(parent)

	if p.cur().Class == token.COMPARATOR {
		return p.parseBooleanExpr(value)
	}

	return value
}

// parseBooleanExpr parses `lhs <comparator> rhs`. The right side is a
// single operand, so comparisons never chain.
func (p *Parser) parseBooleanExpr(lhs ast.Expression) ast.Expression {
	operator := p.eat(token.COMPARATOR, grammar.Comparison.Slot(1))
	rhs := p.parseOperand(grammar.Comparison.Slot(2))

	return &ast.BooleanExpr{Lhs: lhs, Operator: operator, Rhs: rhs}
}

// parseOperand parses a literal, array or function call
func (p *Parser) parseOperand(parent grammar.Ref) ast.Expression {
	cur := p.cur()

	switch cur.Class {
	case token.LBRACKET:
		return p.parseArray()
	case token.STRING, token.NUMBER, token.BOOLEAN:
		p.next()
		return &ast.Literal{Token: cur}
	case token.IDENT:
		if p.peek(1).Class == token.LPAREN {
			return p.parseFunCall()
		}
		d := p.errorAt(cur, "expected '(' after identifier", grammar.FunCall.Slot(1))
		p.next()
		return &ast.Null{Token: cur, Rule: grammar.FunCall, Diagnostic: d}
	default:
		d := p.errorAt(cur, fmt.Sprintf("expected expression, found %s", cur.Class), parent)
		return &ast.Null{Token: cur, Rule: parent.Rule, Diagnostic: d}
	}
}

// parseArray parses `[ expr, expr, ... ]`
func (p *Parser) parseArray() ast.Expression {
	open := p.cur()
	p.next()

	elements, d := p.parseList(token.RBRACKET, grammar.Array, "']' to finish array")
	if d != nil {
		return &ast.Null{Token: open, Rule: grammar.Array, Diagnostic: d}
	}

	return &ast.Array{Token: open, Elements: elements}
}

// parseFunCall parses `name(expr, expr, ...)`
func (p *Parser) parseFunCall() ast.Expression {
	name := p.eat(token.IDENT, grammar.FunCall.Slot(0))
	p.eat(token.LPAREN, grammar.FunCall.Slot(1))

	args, d := p.parseList(token.RPAREN, grammar.Arguments, "')' to finish argument list")
	if d != nil {
		return &ast.Null{Token: name, Rule: grammar.FunCall, Diagnostic: d}
	}

	return &ast.FunCall{Name: name, Args: args}
}

// parseList parses comma separated expressions up to and including end.
// A comma is required between elements; stray and trailing commas are
// accepted. rule must have the opening, element and closing symbols in
// slots 0, 1 and 2.
func (p *Parser) parseList(end token.Class, rule grammar.Rule, closing string) ([]ast.Expression, *errors.Diagnostic) {
	list := []ast.Expression{}
	comma := true

	for {
		cur := p.cur()

		switch {
		case cur.Class == token.EOF:
			return nil, p.errorAt(cur, fmt.Sprintf("expected %s but found end of input", closing), rule.Slot(2))
		case cur.Class == end:
			p.next()
			return list, nil
		case cur.Class == token.COMMA:
			comma = true
			p.next()
		case comma:
			comma = false
			list = append(list, p.parseExpression(rule.Slot(1)))
		default:
			return nil, p.errorAt(cur, fmt.Sprintf("expected ',' before another expression but found %s", cur.Class), rule.Slot(1))
		}
	}
}
