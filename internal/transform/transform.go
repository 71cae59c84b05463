package transform

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tomdoesdev/rill/internal/ast"
	"github.com/tomdoesdev/rill/internal/token"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat validates a format name from flags or config
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %q", s)
	}
}

// Transform dumps an AST as externally tagged maps, one key per node kind
type Transform struct {
	format OutputFormat
}

// New creates a new transform instance with JSON as default format
func New() *Transform {
	return &Transform{format: FormatJSON}
}

// NewWithFormat creates a new transform instance with specified format
func NewWithFormat(format OutputFormat) *Transform {
	return &Transform{format: format}
}

// SetFormat sets the output format
func (t *Transform) SetFormat(format OutputFormat) {
	t.format = format
}

// Transform converts the AST to the specified format and returns it as a string
func (t *Transform) Transform(program *ast.Program) (string, error) {
	statements, err := t.statements(program.Statements)
	if err != nil {
		return "", err
	}
	return t.marshal(statements)
}

// Tokens dumps a token slice
func (t *Transform) Tokens(tokens []token.Token) (string, error) {
	out := make([]interface{}, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tokenValue(tok))
	}
	return t.marshal(out)
}

// Tokens dumps a token slice in the given format
func Tokens(tokens []token.Token, format OutputFormat) (string, error) {
	return NewWithFormat(format).Tokens(tokens)
}

func (t *Transform) marshal(v interface{}) (string, error) {
	switch t.format {
	case FormatJSON:
		return toJSON(v)
	case FormatYAML:
		return toYAML(v)
	default:
		return "", fmt.Errorf("unsupported output format: %s", t.format)
	}
}

func toJSON(v interface{}) (string, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshaling to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

func toYAML(v interface{}) (string, error) {
	yamlBytes, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("error marshaling to YAML: %w", err)
	}
	return string(yamlBytes), nil
}

func tagged(kind string, fields map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{kind: fields}
}

func tokenValue(tok token.Token) map[string]interface{} {
	return map[string]interface{}{
		"class": tok.Class.String(),
		"value": tok.Text,
		"index": []int{tok.Line, tok.Column},
	}
}

func (t *Transform) statements(stmts []ast.Statement) ([]interface{}, error) {
	out := make([]interface{}, 0, len(stmts))
	for _, stmt := range stmts {
		v, err := t.statement(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (t *Transform) statement(stmt ast.Statement) (interface{}, error) {
	switch s := stmt.(type) {
	case *ast.SetAssign:
		value, err := t.expression(s.Value)
		if err != nil {
			return nil, err
		}
		return tagged("SetAssign", map[string]interface{}{"name": tokenValue(s.Name), "value": value}), nil
	case *ast.VarAssign:
		value, err := t.expression(s.Value)
		if err != nil {
			return nil, err
		}
		return tagged("VarAssign", map[string]interface{}{"name": tokenValue(s.Name), "value": value}), nil
	case *ast.IfStatement:
		cond, err := t.expression(s.Condition)
		if err != nil {
			return nil, err
		}
		body, err := t.statements(s.Body)
		if err != nil {
			return nil, err
		}
		return tagged("IfStatement", map[string]interface{}{"condition": cond, "body": body}), nil
	case *ast.FunCallStatement:
		args, err := t.expressions(s.Args)
		if err != nil {
			return nil, err
		}
		return tagged("FunCallStatement", map[string]interface{}{"name": tokenValue(s.Name), "args": args}), nil
	case *ast.FunDef:
		return t.funDef(s)
	case *ast.Void:
		if s.Diagnostic == nil {
			return "Void", nil
		}
		return tagged("Void", map[string]interface{}{"token": tokenValue(s.Token), "error": s.Diagnostic.Message}), nil
	default:
		return nil, fmt.Errorf("unknown statement type: %T", stmt)
	}
}

func (t *Transform) funDef(s *ast.FunDef) (interface{}, error) {
	params := make([]interface{}, 0, len(s.Params))
	for _, p := range s.Params {
		v, err := t.expression(p)
		if err != nil {
			return nil, err
		}
		params = append(params, v)
	}
	var ret interface{}
	if s.ReturnType != nil {
		v, err := t.expression(s.ReturnType)
		if err != nil {
			return nil, err
		}
		ret = v
	}
	body, err := t.statements(s.Body)
	if err != nil {
		return nil, err
	}
	return tagged("FunDef", map[string]interface{}{
		"name":        tokenValue(s.Name),
		"params":      params,
		"return_type": ret,
		"body":        body,
	}), nil
}

func (t *Transform) expressions(exprs []ast.Expression) ([]interface{}, error) {
	out := make([]interface{}, 0, len(exprs))
	for _, e := range exprs {
		v, err := t.expression(e)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (t *Transform) expression(expr ast.Expression) (interface{}, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return tagged("Literal", tokenValue(e.Token)), nil
	case *ast.Array:
		elements, err := t.expressions(e.Elements)
		if err != nil {
			return nil, err
		}
		return tagged("Array", map[string]interface{}{"elements": elements}), nil
	case *ast.BooleanExpr:
		lhs, err := t.expression(e.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := t.expression(e.Rhs)
		if err != nil {
			return nil, err
		}
		return tagged("BooleanExpr", map[string]interface{}{
			"lhs":      lhs,
			"operator": tokenValue(e.Operator),
			"rhs":      rhs,
		}), nil
	case *ast.FunCall:
		args, err := t.expressions(e.Args)
		if err != nil {
			return nil, err
		}
		return tagged("FunCall", map[string]interface{}{"name": tokenValue(e.Name), "args": args}), nil
	case *ast.Type:
		return tagged("Type", map[string]interface{}{"name": tokenValue(e.Token), "array_depth": e.ArrayDepth}), nil
	case *ast.Argument:
		typ, err := t.expression(e.Type)
		if err != nil {
			return nil, err
		}
		return tagged("Argument", map[string]interface{}{"name": tokenValue(e.Name), "type": typ}), nil
	case *ast.Null:
		fields := map[string]interface{}{"rule": e.Rule.String(), "token": tokenValue(e.Token)}
		if e.Diagnostic != nil {
			fields["error"] = e.Diagnostic.Message
		}
		return tagged("Null", fields), nil
	default:
		return nil, fmt.Errorf("cannot transform expression type: %T", expr)
	}
}
