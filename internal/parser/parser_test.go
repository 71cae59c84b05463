package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tomdoesdev/rill/internal/ast"
	"github.com/tomdoesdev/rill/internal/errors"
	"github.com/tomdoesdev/rill/internal/grammar"
	"github.com/tomdoesdev/rill/internal/lexer"
	"github.com/tomdoesdev/rill/internal/token"
)

func newParser(t *testing.T, source string) (*Parser, *errors.Collector) {
	t.Helper()
	tokens, err := lexer.Tokenize(source, "main.rl", nil)
	if err != nil {
		t.Fatalf("Tokenize(%q) error = %v", source, err)
	}
	c := &errors.Collector{}
	return New(tokens, "main.rl", c), c
}

func parseProgram(t *testing.T, source string) (*ast.Program, []errors.Diagnostic) {
	t.Helper()
	p, c := newParser(t, source)
	return p.ParseProgram(), c.Diagnostics()
}

func parseExpression(t *testing.T, source string) (ast.Expression, []errors.Diagnostic) {
	t.Helper()
	p, c := newParser(t, source)
	return p.ParseExpression(), c.Diagnostics()
}

func checkNoDiagnostics(t *testing.T, diags []errors.Diagnostic) {
	t.Helper()
	if len(diags) == 0 {
		return
	}
	t.Errorf("parser reported %d diagnostics:", len(diags))
	for i, d := range diags {
		t.Errorf("   diagnostic %d: %s", i+1, d.Error())
	}
	t.FailNow()
}

func messages(diags []errors.Diagnostic) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.Message)
	}
	return out
}

func TestSetAssign(t *testing.T) {
	program, diags := parseProgram(t, "set x = 5;")
	checkNoDiagnostics(t, diags)

	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ast.SetAssign)
	if !ok {
		t.Fatalf("statement is not *ast.SetAssign. got=%T", program.Statements[0])
	}
	if stmt.Name.Text != "x" {
		t.Errorf("name = %q, want x", stmt.Name.Text)
	}
	lit, ok := stmt.Value.(*ast.Literal)
	if !ok {
		t.Fatalf("value is not *ast.Literal. got=%T", stmt.Value)
	}
	if lit.Token.Class != token.NUMBER || lit.Token.Text != "5" {
		t.Errorf("value = %s, want number 5", lit.Token)
	}
}

func TestVarAssign(t *testing.T) {
	program, diags := parseProgram(t, `var greeting = "hi";`)
	checkNoDiagnostics(t, diags)

	stmt, ok := program.Statements[0].(*ast.VarAssign)
	if !ok {
		t.Fatalf("statement is not *ast.VarAssign. got=%T", program.Statements[0])
	}
	if got := stmt.String(); got != `var greeting = "hi";` {
		t.Errorf("String() = %q", got)
	}
}

func TestIfStatementWithIdentifiers(t *testing.T) {
	program, diags := parseProgram(t, "if a == b [ set c = 1; ]")

	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("statement is not *ast.IfStatement. got=%T", program.Statements[0])
	}

	cond, ok := stmt.Condition.(*ast.BooleanExpr)
	if !ok {
		t.Fatalf("condition is not *ast.BooleanExpr. got=%T", stmt.Condition)
	}
	if cond.Lhs.TokenLiteral() != "a" || cond.Operator.Text != "==" || cond.Rhs.TokenLiteral() != "b" {
		t.Errorf("condition = %s", cond)
	}
	// bare identifiers are placeholders that keep their token
	if _, ok := cond.Lhs.(*ast.Null); !ok {
		t.Errorf("lhs is %T, want *ast.Null", cond.Lhs)
	}

	if len(stmt.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(stmt.Body))
	}
	set, ok := stmt.Body[0].(*ast.SetAssign)
	if !ok || set.Name.Text != "c" || set.Value.TokenLiteral() != "1" {
		t.Errorf("body[0] = %v", stmt.Body[0])
	}

	want := []string{"expected '(' after identifier", "expected '(' after identifier"}
	if diff := cmp.Diff(want, messages(diags)); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestIfStatementClean(t *testing.T) {
	source := `if len(items()) >= limit() [
  set c = 1;
  var d = [true, "x"];
  if done() != false [ set e = 2; ]
]`
	program, diags := parseProgram(t, source)
	checkNoDiagnostics(t, diags)

	stmt, ok := program.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("statement is not *ast.IfStatement. got=%T", program.Statements[0])
	}
	if len(stmt.Body) != 3 {
		t.Fatalf("expected 3 body statements, got %d", len(stmt.Body))
	}
	if _, ok := stmt.Body[2].(*ast.IfStatement); !ok {
		t.Errorf("body[2] is %T, want nested *ast.IfStatement", stmt.Body[2])
	}

	want := `if len(items()) >= limit() [ set c = 1; var d = [true, "x"]; if done() != false [ set e = 2; ] ]`
	if got := program.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"text"`, `"text"`},
		{"42", "42"},
		{"3.25", "3.25"},
		{"true", "true"},
		{"[]", "[]"},
		{"[1, 2, 3]", "[1, 2, 3]"},
		{"[1, [2, 3], f()]", "[1, [2, 3], f()]"},
		{"[1,]", "[1]"},
		{"[,1]", "[1]"},
		{"f()", "f()"},
		{`print("a", 1, [true])`, `print("a", 1, [true])`},
		{"f() < 3", "f() < 3"},
		{"[1 == 2]", "[1 == 2]"},
		{`g(1) != "x"`, `g(1) != "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, diags := parseExpression(t, tt.input)
			checkNoDiagnostics(t, diags)
			if got := expr.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArrayOfLiterals(t *testing.T) {
	expr, diags := parseExpression(t, "[1, 2, 3]")
	checkNoDiagnostics(t, diags)

	arr, ok := expr.(*ast.Array)
	if !ok {
		t.Fatalf("expression is not *ast.Array. got=%T", expr)
	}
	var got []string
	for _, e := range arr.Elements {
		lit, ok := e.(*ast.Literal)
		if !ok {
			t.Fatalf("element is not *ast.Literal. got=%T", e)
		}
		got = append(got, lit.Token.Text)
	}
	if diff := cmp.Diff([]string{"1", "2", "3"}, got); diff != "" {
		t.Errorf("elements mismatch (-want +got):\n%s", diff)
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantRule grammar.Rule
		wantMsg  string
		wantPos  [2]int
	}{
		{"missing comma", "[1 2]", grammar.Array, "expected ',' before another expression but found number", [2]int{1, 4}},
		{"unclosed array", "[1, 2", grammar.Array, "expected ']' to finish array but found end of input", [2]int{1, 6}},
		{"missing argument comma", `f(1 "a")`, grammar.FunCall, "expected ',' before another expression but found string", [2]int{1, 5}},
		{"unclosed call", "f(1,", grammar.FunCall, "expected ')' to finish argument list but found end of input", [2]int{1, 5}},
		{"bare identifier", "x", grammar.FunCall, "expected '(' after identifier", [2]int{1, 1}},
		{"no expression", ";", grammar.Comparison, "expected expression, found semicolon", [2]int{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, diags := parseExpression(t, tt.input)

			null, ok := expr.(*ast.Null)
			if !ok {
				t.Fatalf("expression is not *ast.Null. got=%T (%s)", expr, expr)
			}
			if null.Rule != tt.wantRule {
				t.Errorf("rule = %s, want %s", null.Rule, tt.wantRule)
			}
			if len(diags) != 1 {
				t.Fatalf("expected 1 diagnostic, got %v", messages(diags))
			}
			if diags[0].Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", diags[0].Message, tt.wantMsg)
			}
			if got := [2]int{diags[0].Line, diags[0].Column}; got != tt.wantPos {
				t.Errorf("position = %v, want %v", got, tt.wantPos)
			}
			if null.Diagnostic == nil || null.Diagnostic.Message != tt.wantMsg {
				t.Errorf("placeholder does not carry its diagnostic: %+v", null.Diagnostic)
			}
		})
	}
}

func TestComparisonDoesNotChain(t *testing.T) {
	p, c := newParser(t, "1 == 2 == 3")
	expr := p.ParseExpression()

	b, ok := expr.(*ast.BooleanExpr)
	if !ok {
		t.Fatalf("expression is not *ast.BooleanExpr. got=%T", expr)
	}
	if _, nested := b.Rhs.(*ast.BooleanExpr); nested {
		t.Errorf("rhs should be a single operand, got %s", b.Rhs)
	}
	if b.String() != "1 == 2" {
		t.Errorf("String() = %q", b.String())
	}
	if cur := p.cur(); !cur.Is(token.COMPARATOR, "==") || cur.Column != 8 {
		t.Errorf("cursor should stop at the second comparator, got %s", cur)
	}
	if c.Len() != 0 {
		t.Errorf("unexpected diagnostics %v", messages(c.Diagnostics()))
	}
}

func TestVoidStatements(t *testing.T) {
	program, diags := parseProgram(t, "foo bar; set x = 1;")
	checkNoDiagnostics(t, diags)

	var kinds []string
	for _, s := range program.Statements {
		switch v := s.(type) {
		case *ast.Void:
			if v.Diagnostic != nil {
				t.Errorf("silent void carries a diagnostic")
			}
			kinds = append(kinds, "void:"+v.Token.Text)
		case *ast.SetAssign:
			kinds = append(kinds, "set")
		default:
			kinds = append(kinds, "other")
		}
	}
	want := []string{"void:foo", "void:bar", "void:;", "set"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("statements mismatch (-want +got):\n%s", diff)
	}
}

func TestUnsupportedConstructs(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantRule  grammar.Rule
		wantAfter string // String() of the statement following the skipped construct
	}{
		{"use", "use math; set x = 1;", grammar.Use, "set x = 1;"},
		{"yeild", "yeild [1, 2]; var y = 2;", grammar.Yield, "var y = 2;"},
		{"fun", "fun add(a: int, b: int) -> int [ set r = 1; ] var y = 2;", grammar.FunDef, "var y = 2;"},
		{"fun with nested block", "fun f() -> int [ if true [ set r = 1; ] ] set z = 3;", grammar.FunDef, "set z = 3;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, diags := parseProgram(t, tt.input)

			if len(program.Statements) != 2 {
				t.Fatalf("expected 2 statements, got %d: %s", len(program.Statements), program)
			}
			void, ok := program.Statements[0].(*ast.Void)
			if !ok || void.Diagnostic == nil {
				t.Fatalf("statement 0 should be a void with diagnostic, got %#v", program.Statements[0])
			}
			if len(diags) != 1 {
				t.Fatalf("expected 1 diagnostic, got %v", messages(diags))
			}
			want := "unsupported construct '" + tt.name[:strings.Index(tt.name+" ", " ")] + "'"
			if diags[0].Message != want {
				t.Errorf("message = %q, want %q", diags[0].Message, want)
			}
			if diags[0].Rule == nil || diags[0].Rule.Rule != tt.wantRule || diags[0].Rule.Slot != 0 {
				t.Errorf("rule = %+v, want %s slot 0", diags[0].Rule, tt.wantRule)
			}
			if got := program.Statements[1].String(); got != tt.wantAfter {
				t.Errorf("following statement = %q, want %q", got, tt.wantAfter)
			}
		})
	}
}

func TestUnsupportedInsideBlock(t *testing.T) {
	program, diags := parseProgram(t, "if true [ use m ] set x = 1;")

	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", messages(diags))
	}
	if len(program.Statements) != 2 {
		t.Fatalf("expected if + set, got %s", program)
	}
	stmt := program.Statements[0].(*ast.IfStatement)
	if len(stmt.Body) != 1 {
		t.Errorf("expected the use construct to stay inside the block, got %d statements", len(stmt.Body))
	}
}

func TestEatConsumesMismatch(t *testing.T) {
	program, diags := parseProgram(t, "set 5 = 1;")

	want := []string{"expected identifier, got number"}
	if diff := cmp.Diff(want, messages(diags)); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
	stmt := program.Statements[0].(*ast.SetAssign)
	if stmt.Name.Text != "5" {
		t.Errorf("eat should return the unexpected token, got %s", stmt.Name)
	}
	if len(program.Statements) != 1 {
		t.Errorf("expected parsing to resynchronise, got %s", program)
	}
}

func TestBlockEOFKeepsStatements(t *testing.T) {
	program, diags := parseProgram(t, "if true [ set x = 1; var y = 2;")

	want := []string{"unexpected end of input, wanted ']' to close code block"}
	if diff := cmp.Diff(want, messages(diags)); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
	stmt := program.Statements[0].(*ast.IfStatement)
	if len(stmt.Body) != 2 {
		t.Errorf("expected 2 statements kept, got %d", len(stmt.Body))
	}
	if diags[0].Rule.Rule != grammar.Block {
		t.Errorf("rule = %s, want block", diags[0].Rule.Rule)
	}
}

func TestRenderedDiagnostics(t *testing.T) {
	source := "set x 5;"
	tokens, err := lexer.Tokenize(source, "main.rl", nil)
	if err != nil {
		t.Fatal(err)
	}
	var out strings.Builder
	h := errors.NewWriterHandler(&out, errors.NewErrorReporter(source, "main.rl"))
	New(tokens, "main.rl", h).ParseProgram()

	want := strings.Join([]string{
		"error:parser --> main.rl[1:7]",
		"1 | set x 5;",
		"  |       ^ expected assign, got number",
		"  | info: set {name} `=` {expr} ;",
		"error:parser --> main.rl[1:8]",
		"1 | set x 5;",
		"  |        ^ expected expression, found semicolon",
		"  | info: set {name} = `{expr}` ;",
		"",
	}, "\n")
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("rendered output mismatch (-want +got):\n%s", diff)
	}
}

func TestPeekClampsToEOF(t *testing.T) {
	p, _ := newParser(t, "set x")

	if got := p.peek(-3); got.Class != token.EOF {
		t.Errorf("peek(-3) = %s, want eof", got)
	}
	if got := p.peek(100); got.Class != token.EOF {
		t.Errorf("peek(100) = %s, want eof", got)
	}
	if got := p.peek(1); got.Text != "x" {
		t.Errorf("peek(1) = %s, want x", got)
	}

	for i := 0; i < 10; i++ {
		p.next()
	}
	if got := p.cur(); got.Class != token.EOF {
		t.Errorf("cursor moved past eof: %s", got)
	}
}

func TestNewAppendsMissingEOF(t *testing.T) {
	tokens := []token.Token{{Class: token.KEYWORD, Text: "set", Line: 1, Column: 1, Length: 3}}
	p := New(tokens, "f", nil)

	if len(tokens) != 1 {
		t.Errorf("caller's slice was modified")
	}
	eof := p.peek(1)
	if eof.Class != token.EOF || eof.Column != 4 {
		t.Errorf("synthetic eof = %s", eof)
	}

	empty := New(nil, "f", nil).ParseProgram()
	if len(empty.Statements) != 0 {
		t.Errorf("expected empty program, got %s", empty)
	}
}

func TestParseIsTotal(t *testing.T) {
	inputs := []string{
		"",
		"]]]]",
		"[[[[",
		"set",
		"set x",
		"set x =",
		"if",
		"if [",
		"if ] ] [",
		"var = = = ;",
		"set x = [1 2 3 4];",
		"set x = f(g(h(;",
		"if 1 == 2 == 3 [ ]",
		"fun",
		"fun [ [ [",
		"use use use",
		"yeild ]",
		"set x = ((((;",
		", , , ; ; ;",
		"if true [ if true [ if true [",
	}

	for _, input := range inputs {
		program, _ := parseProgram(t, input)
		if program == nil {
			t.Errorf("ParseProgram(%q) returned nil", input)
		}
	}
}
