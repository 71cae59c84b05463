package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/tomdoesdev/rill/internal/errors"
	"github.com/tomdoesdev/rill/internal/token"
)

// Lexer turns source text into tokens, reporting lexical problems as it goes
type Lexer struct {
	input    []rune
	filename string
	position int // index of the current character
	line     int // line of the current character
	column   int // column of the current character

	handler errors.Handler
	tokens  []token.Token
}

// New creates a lexer. A nil handler discards diagnostics.
func New(input, filename string, h errors.Handler) *Lexer {
	if h == nil {
		h = errors.Discard
	}
	return &Lexer{
		input:    []rune(input),
		filename: filename,
		line:     1,
		column:   1,
		handler:  h,
	}
}

// Tokenize is a shorthand for New(input, filename, h).Tokenize()
func Tokenize(input, filename string, h errors.Handler) ([]token.Token, error) {
	return New(input, filename, h).Tokenize()
}

// Tokenize scans the whole input. The result always ends with an EOF token.
// The only error is an unterminated string, which wraps errors.ErrFatal and
// returns no tokens.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	for !l.atEnd() {
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}
	l.push(token.EOF, "", l.line, l.column, 0)
	return l.tokens, nil
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

// ch returns the current character, or 0 at end of input
func (l *Lexer) ch() rune {
	if l.atEnd() {
		return 0
	}
	return l.input[l.position]
}

// peekChar returns the character after the current one without advancing
func (l *Lexer) peekChar() rune {
	if l.position+1 >= len(l.input) {
		return 0
	}
	return l.input[l.position+1]
}

// readChar advances past the current character, tracking line and column
func (l *Lexer) readChar() {
	if l.atEnd() {
		return
	}
	if l.input[l.position] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.position++
}

func (l *Lexer) push(class token.Class, text string, line, column, length int) {
	l.tokens = append(l.tokens, token.Token{
		Class:  class,
		Text:   text,
		Line:   line,
		Column: column,
		Length: length,
	})
}

// single emits the current character as a token of class and advances
func (l *Lexer) single(class token.Class) {
	l.push(class, string(l.ch()), l.line, l.column, 1)
	l.readChar()
}

// pair emits a two character token when the next character is second,
// otherwise a one character token of class
func (l *Lexer) pair(class token.Class, second rune, pairClass token.Class) {
	line, column := l.line, l.column
	first := l.ch()
	l.readChar()
	if l.ch() == second {
		l.readChar()
		l.push(pairClass, string([]rune{first, second}), line, column, 2)
		return
	}
	l.push(class, string(first), line, column, 1)
}

func (l *Lexer) report(code errors.Code, detail string) {
	l.handler.Handle(errors.NewLexical(code, detail, l.filename, l.line, l.column))
}

// scanToken consumes one lexeme or one skipped character
func (l *Lexer) scanToken() error {
	ch := l.ch()

	switch {
	case isLetter(ch):
		l.readIdentifier()
		return nil
	case isDigit(ch):
		l.readNumber()
		return nil
	}

	switch ch {
	case '"':
		return l.readString()
	case '[':
		l.single(token.LBRACKET)
	case ']':
		l.single(token.RBRACKET)
	case '{':
		l.single(token.LBRACE)
	case '}':
		l.single(token.RBRACE)
	case '(':
		l.single(token.LPAREN)
	case ')':
		l.single(token.RPAREN)
	case '.':
		l.single(token.DOT)
	case ',':
		l.single(token.COMMA)
	case ':':
		l.single(token.COLON)
	case ';':
		l.single(token.SEMICOLON)
	case '+', '*', '/':
		l.single(token.OPERATOR)
	case '-':
		l.pair(token.OPERATOR, '>', token.ARROW)
	case '<', '>':
		l.pair(token.COMPARATOR, '=', token.COMPARATOR)
	case '&', '|':
		l.single(token.LOGIC)
	case '!':
		l.pair(token.BANG, '=', token.COMPARATOR)
	case '=':
		l.pair(token.ASSIGN, '=', token.COMPARATOR)
	case ' ', '\n':
		l.readChar()
	default:
		l.report(errors.InvalidCharacter, fmt.Sprintf("%q", ch))
		l.readChar()
	}
	return nil
}

// readIdentifier reads a word and classifies it as keyword, boolean or identifier
func (l *Lexer) readIdentifier() {
	line, column, start := l.line, l.column, l.position
	for isLetter(l.ch()) || isDigit(l.ch()) {
		l.readChar()
	}
	text := string(l.input[start:l.position])
	l.push(token.LookupIdent(text), text, line, column, l.position-start)
}

// readNumber reads digits with at most one decimal point. Extra points are
// reported and left out of the token text.
func (l *Lexer) readNumber() {
	line, column, start := l.line, l.column, l.position
	var value strings.Builder
	dots := 0

	for isDigit(l.ch()) || l.ch() == '.' {
		if l.ch() == '.' {
			dots++
			if dots > 1 {
				l.report(errors.InvalidNumber, "too many '.' found")
				l.readChar()
				continue
			}
		}
		value.WriteRune(l.ch())
		l.readChar()
	}

	l.push(token.NUMBER, value.String(), line, column, l.position-start)
}

// readString reads a double-quoted string, resolving escapes
func (l *Lexer) readString() error {
	line, column, start := l.line, l.column, l.position
	var value strings.Builder

	l.readChar() // opening quote
	for {
		if l.atEnd() {
			d := errors.NewLexical(errors.Unterminated, "", l.filename, l.line, l.column)
			l.handler.Handle(d)
			return &errors.FatalError{Diagnostic: d}
		}

		ch := l.ch()
		if ch == '"' {
			l.readChar()
			break
		}

		if ch == '\\' {
			l.readChar()
			if l.atEnd() {
				continue
			}
			switch esc := l.ch(); esc {
			case 'n':
				value.WriteRune('\n')
			case 't':
				value.WriteRune('\t')
			case '\\':
				value.WriteRune('\\')
			case '"':
				value.WriteRune('"')
			default:
				l.report(errors.InvalidEscape, fmt.Sprintf("'\\%c' is not valid", esc))
			}
			l.readChar()
			continue
		}

		value.WriteRune(ch)
		l.readChar()
	}

	l.push(token.STRING, value.String(), line, column, l.position-start)
	return nil
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return unicode.IsDigit(ch)
}
