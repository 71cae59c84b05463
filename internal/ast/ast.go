package ast

import (
	"strings"

	"github.com/tomdoesdev/rill/internal/errors"
	"github.com/tomdoesdev/rill/internal/grammar"
	"github.com/tomdoesdev/rill/internal/token"
)

// Node represents any node in the AST
type Node interface {
	TokenLiteral() string // text of the node's anchor token
	Pos() (line, column int)
	String() string
}

// Statement represents a statement node
type Statement interface {
	Node
	statementNode()
}

// Expression represents an expression node
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of every AST
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() (int, int) {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return 1, 1
}

func (p *Program) String() string {
	return joinStatements(p.Statements, "\n")
}

func joinStatements(stmts []Statement, sep string) string {
	parts := make([]string, 0, len(stmts))
	for _, s := range stmts {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, sep)
}

func joinExpressions(exprs []Expression) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}

// SetAssign represents `set name = value;`
type SetAssign struct {
	Token token.Token // the 'set' keyword
	Name  token.Token
	Value Expression
}

func (s *SetAssign) statementNode()       {}
func (s *SetAssign) TokenLiteral() string { return s.Token.Text }
func (s *SetAssign) Pos() (int, int)      { return s.Token.Line, s.Token.Column }
func (s *SetAssign) String() string       { return "set " + s.Name.Text + " = " + s.Value.String() + ";" }

// VarAssign represents `var name = value;`
type VarAssign struct {
	Token token.Token // the 'var' keyword
	Name  token.Token
	Value Expression
}

func (v *VarAssign) statementNode()       {}
func (v *VarAssign) TokenLiteral() string { return v.Token.Text }
func (v *VarAssign) Pos() (int, int)      { return v.Token.Line, v.Token.Column }
func (v *VarAssign) String() string       { return "var " + v.Name.Text + " = " + v.Value.String() + ";" }

// IfStatement represents `if condition [ body ]`
type IfStatement struct {
	Token     token.Token // the 'if' keyword
	Condition Expression
	Body      []Statement
}

func (i *IfStatement) statementNode()       {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Text }
func (i *IfStatement) Pos() (int, int)      { return i.Token.Line, i.Token.Column }
func (i *IfStatement) String() string {
	return "if " + i.Condition.String() + " [ " + joinStatements(i.Body, " ") + " ]"
}

// FunCallStatement is a call used for its effect
type FunCallStatement struct {
	Name token.Token
	Args []Expression
}

func (f *FunCallStatement) statementNode()       {}
func (f *FunCallStatement) TokenLiteral() string { return f.Name.Text }
func (f *FunCallStatement) Pos() (int, int)      { return f.Name.Line, f.Name.Column }
func (f *FunCallStatement) String() string {
	return f.Name.Text + "(" + joinExpressions(f.Args) + ");"
}

// FunDef represents `fun name(params) -> type [ body ]`
type FunDef struct {
	Token      token.Token // the 'fun' keyword
	Name       token.Token
	Params     []*Argument
	ReturnType *Type
	Body       []Statement
}

func (f *FunDef) statementNode()       {}
func (f *FunDef) TokenLiteral() string { return f.Token.Text }
func (f *FunDef) Pos() (int, int)      { return f.Token.Line, f.Token.Column }
func (f *FunDef) String() string {
	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, p.String())
	}
	out := "fun " + f.Name.Text + "(" + strings.Join(params, ", ") + ")"
	if f.ReturnType != nil {
		out += " -> " + f.ReturnType.String()
	}
	return out + " [ " + joinStatements(f.Body, " ") + " ]"
}

// Void stands in for a statement position that produced nothing. A nil
// Diagnostic means the position was skipped silently.
type Void struct {
	Token      token.Token
	Diagnostic *errors.Diagnostic
}

func (v *Void) statementNode()       {}
func (v *Void) TokenLiteral() string { return v.Token.Text }
func (v *Void) Pos() (int, int)      { return v.Token.Line, v.Token.Column }
func (v *Void) String() string       { return "<void>" }

// Literal is a string, number or boolean
type Literal struct {
	Token token.Token
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.Token.Text }
func (l *Literal) Pos() (int, int)      { return l.Token.Line, l.Token.Column }
func (l *Literal) String() string {
	if l.Token.Class == token.STRING {
		return `"` + l.Token.Text + `"`
	}
	return l.Token.Text
}

// Array is a bracketed, comma separated list
type Array struct {
	Token    token.Token // the '[' token
	Elements []Expression
}

func (a *Array) expressionNode()      {}
func (a *Array) TokenLiteral() string { return a.Token.Text }
func (a *Array) Pos() (int, int)      { return a.Token.Line, a.Token.Column }
func (a *Array) String() string       { return "[" + joinExpressions(a.Elements) + "]" }

// BooleanExpr is a single comparison; operands are never comparisons
// themselves
type BooleanExpr struct {
	Lhs      Expression
	Operator token.Token
	Rhs      Expression
}

func (b *BooleanExpr) expressionNode()      {}
func (b *BooleanExpr) TokenLiteral() string { return b.Operator.Text }
func (b *BooleanExpr) Pos() (int, int)      { return b.Lhs.Pos() }
func (b *BooleanExpr) String() string {
	return b.Lhs.String() + " " + b.Operator.Text + " " + b.Rhs.String()
}

// FunCall is `name(args)` in expression position
type FunCall struct {
	Name token.Token
	Args []Expression
}

func (f *FunCall) expressionNode()      {}
func (f *FunCall) TokenLiteral() string { return f.Name.Text }
func (f *FunCall) Pos() (int, int)      { return f.Name.Line, f.Name.Column }
func (f *FunCall) String() string       { return f.Name.Text + "(" + joinExpressions(f.Args) + ")" }

// Type names a type; ArrayDepth counts the enclosing brackets, so [[int]]
// has depth 2
type Type struct {
	Token      token.Token
	ArrayDepth int
}

func (t *Type) expressionNode()      {}
func (t *Type) TokenLiteral() string { return t.Token.Text }
func (t *Type) Pos() (int, int)      { return t.Token.Line, t.Token.Column }
func (t *Type) String() string {
	return strings.Repeat("[", t.ArrayDepth) + t.Token.Text + strings.Repeat("]", t.ArrayDepth)
}

// Argument is a typed parameter `name: type`
type Argument struct {
	Name token.Token
	Type Expression
}

func (a *Argument) expressionNode()      {}
func (a *Argument) TokenLiteral() string { return a.Name.Text }
func (a *Argument) Pos() (int, int)      { return a.Name.Line, a.Name.Column }
func (a *Argument) String() string       { return a.Name.Text + ": " + a.Type.String() }

// Null replaces an expression that could not be parsed. Token is the first
// token of the failed construct, Rule is the construct the parser was
// reading. The Diagnostic holds the exact error position.
type Null struct {
	Token      token.Token
	Rule       grammar.Rule
	Diagnostic *errors.Diagnostic
}

func (n *Null) expressionNode()      {}
func (n *Null) TokenLiteral() string { return n.Token.Text }
func (n *Null) Pos() (int, int)      { return n.Token.Line, n.Token.Column }
func (n *Null) String() string       { return "<null>" }
