// Package grammar holds the display-only syntax templates quoted in parser
// diagnostics. The parser never consults the table to decide what to do
// next; it only points at a rule and slot when something goes wrong.
package grammar

import "strings"

// Rule identifies one syntax template
type Rule int

const (
	FunDef Rule = iota
	If
	Set
	Var
	Use
	UseValue
	UseAlias
	Yield
	Block

	// Expressions
	String
	Number
	Identifier
	Array
	Comparison
	Arguments
	FunCall
)

var table = [...][]string{
	FunDef:   {"fun", "{name}", "(", "{args}", ")", "->", "{return-type}", "[", "...", "]"},
	If:       {"if", "{boolean-expr}", "[", "...", "]"},
	Set:      {"set", "{name}", "=", "{expr}", ";"},
	Var:      {"var", "{name}", "=", "{expr}", ";"},
	Use:      {"use", "{package}", ";"},
	UseValue: {"use", "{package}", ":", "{value}", ";"},
	UseAlias: {"use", "{package}", "as", "{alias}", ";"},
	Yield:    {"yeild", "{expr}", ";"},
	Block:    {"[", "{statements}", "]"},

	String:     {"{string}"},
	Number:     {"{number}"},
	Identifier: {"{identifier}"},
	Array:      {"[", "{expression}", "]"},
	Comparison: {"{expression}", "{comparator}", "{expression}"},
	Arguments:  {"(", "{arguments}", ")"},
	FunCall:    {"{name}", "(", "{arguments}", ")"},
}

var names = [...]string{
	FunDef:     "fun-def",
	If:         "if",
	Set:        "set",
	Var:        "var",
	Use:        "use",
	UseValue:   "use-value",
	UseAlias:   "use-alias",
	Yield:      "yeild",
	Block:      "block",
	String:     "string",
	Number:     "number",
	Identifier: "identifier",
	Array:      "array",
	Comparison: "comparison",
	Arguments:  "arguments",
	FunCall:    "fun-call",
}

// Valid reports whether r names a row of the table
func (r Rule) Valid() bool {
	return r >= 0 && int(r) < len(table)
}

// String returns the rule's name
func (r Rule) String() string {
	if !r.Valid() {
		return "unknown"
	}
	return names[r]
}

// Symbols returns a copy of the rule's display tokens
func (r Rule) Symbols() []string {
	if !r.Valid() {
		return nil
	}
	return append([]string(nil), table[r]...)
}

// Slot returns a reference to one display token of the rule
func (r Rule) Slot(slot int) Ref {
	return Ref{Rule: r, Slot: slot}
}

// Ref points at a single slot of a rule
type Ref struct {
	Rule Rule
	Slot int
}

// Symbol returns the display token the reference points at, or "" when the
// slot is out of range
func (ref Ref) Symbol() string {
	if !ref.Rule.Valid() || ref.Slot < 0 || ref.Slot >= len(table[ref.Rule]) {
		return ""
	}
	return table[ref.Rule][ref.Slot]
}

// Render joins the rule's symbols with spaces, passing the referenced slot
// through highlight. A nil highlight leaves the slot untouched.
func (ref Ref) Render(highlight func(string) string) string {
	symbols := ref.Rule.Symbols()
	if highlight != nil && ref.Slot >= 0 && ref.Slot < len(symbols) {
		symbols[ref.Slot] = highlight(symbols[ref.Slot])
	}
	return strings.Join(symbols, " ")
}
