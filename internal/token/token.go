package token

import "fmt"

// Class represents the lexical category of a token
type Class int

const (
	// Special tokens
	EOF Class = iota

	// Words and literals
	IDENT   // names like "total"
	KEYWORD // fun, set, var, if, use, yeild
	STRING  // "hello"
	NUMBER  // 12, 3.5
	BOOLEAN // true, false

	// Delimiters
	LBRACKET // [
	RBRACKET // ]
	LBRACE   // {
	RBRACE   // }
	LPAREN   // (
	RPAREN   // )

	// Punctuation
	DOT       // .
	COMMA     // ,
	SEMICOLON // ;
	COLON     // :

	// Operators
	OPERATOR   // + - * /
	COMPARATOR // < > <= >= == !=
	ASSIGN     // =
	ARROW      // ->
	LOGIC      // & |
	BANG       // !
)

var classNames = [...]string{
	EOF:        "eof",
	IDENT:      "identifier",
	KEYWORD:    "keyword",
	STRING:     "string",
	NUMBER:     "number",
	BOOLEAN:    "boolean",
	LBRACKET:   "left-bracket",
	RBRACKET:   "right-bracket",
	LBRACE:     "left-brace",
	RBRACE:     "right-brace",
	LPAREN:     "left-paren",
	RPAREN:     "right-paren",
	DOT:        "dot",
	COMMA:      "comma",
	SEMICOLON:  "semicolon",
	COLON:      "colon",
	OPERATOR:   "operator",
	COMPARATOR: "comparator",
	ASSIGN:     "assign",
	ARROW:      "arrow",
	LOGIC:      "logic",
	BANG:       "bang",
}

// String returns the display name used in diagnostics
func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "unknown"
	}
	return classNames[c]
}

// Token is a single lexeme with the coordinate of its first character
type Token struct {
	Class  Class
	Text   string
	Line   int
	Column int
	Length int // source characters spanned, including quotes and escapes
}

// Is reports whether the token has the given class and text
func (t Token) Is(class Class, text string) bool {
	return t.Class == class && t.Text == text
}

// String returns a compact representation for debugging
func (t Token) String() string {
	return fmt.Sprintf("%s %q [%d:%d]", t.Class, t.Text, t.Line, t.Column)
}

var keywords = map[string]Class{
	"fun":   KEYWORD,
	"set":   KEYWORD,
	"var":   KEYWORD,
	"if":    KEYWORD,
	"use":   KEYWORD,
	"yeild": KEYWORD,
	"true":  BOOLEAN,
	"false": BOOLEAN,
}

// LookupIdent classifies a word as a keyword, boolean or identifier
func LookupIdent(ident string) Class {
	if class, ok := keywords[ident]; ok {
		return class
	}
	return IDENT
}
