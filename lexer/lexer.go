// Package lexer turns a source byte stream into a stream of tokens.
/*
File   : vellum/lexer/lexer.go
*/
package lexer

import (
	"strings"

	"github.com/gopherlang/vellum/errs"
	"github.com/gopherlang/vellum/token"
)

// Lexer scans a pre-loaded source string one byte at a time, tracking
// line and column for every emitted token.
type Lexer struct {
	Src       string
	Current   byte
	Position  int
	SrcLength int
	Line      int
	Column    int
}

// New creates a lexer positioned at the first byte of src.
func New(src string) *Lexer {
	l := &Lexer{Src: src, SrcLength: len(src), Line: 1, Column: 0}
	l.Advance()
	return l
}

// NewFromReader is the byte-stream constructor required by spec.md §6;
// callers typically pass the full contents of a file or stdin.
func NewFromReader(src []byte) *Lexer {
	return New(string(src))
}

const eofByte byte = 0

// Peek returns the next byte without consuming it, or eofByte at end of input.
func (l *Lexer) Peek() byte {
	if l.Position >= l.SrcLength {
		return eofByte
	}
	return l.Src[l.Position]
}

// Advance consumes the current byte and loads the next one, advancing
// the column. It does not track lines; callers bump the line and reset
// the column around newlines.
func (l *Lexer) Advance() {
	if l.Position >= l.SrcLength {
		l.Current = eofByte
		l.Position++
		return
	}
	l.Current = l.Src[l.Position]
	l.Position++
	l.Column++
}

func isAlpha(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

// skipWhitespaceAndComments skips runs of whitespace and '#' line
// comments, collapsing consecutive comment lines, per spec.md §4.1.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for isSpace(l.Current) {
			if l.Current == '\n' {
				l.Line++
				l.Column = 0
			}
			l.Advance()
		}
		if l.Current == '#' {
			for l.Current != '\n' && l.Current != eofByte {
				l.Advance()
			}
			continue
		}
		break
	}
}

// NextToken returns the next token in the stream, terminating with an
// EOS sentinel once the input is exhausted.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespaceAndComments()

	line, col := l.Line, l.Column
	if l.Current == eofByte {
		return token.New(token.EOS, "", line, col), nil
	}

	switch {
	case isAlpha(l.Current):
		return l.readIdentifier(line, col), nil
	case isDigit(l.Current):
		return l.readNumber(line, col)
	case l.Current == '"':
		return l.readString(line, col)
	case l.Current == '\'':
		return l.readChar(line, col)
	case l.Current == '~' && isIdentStart(l.Peek()):
		return l.readSigil(token.POINTER_TYPE, line, col), nil
	case l.Current == '&' && isIdentStart(l.Peek()):
		return l.readSigil(token.POINTER_VAL, line, col), nil
	default:
		return l.readOperator(line, col)
	}
}

func isIdentStart(ch byte) bool {
	return isAlpha(ch)
}

func (l *Lexer) readIdentifier(line, col int) token.Token {
	var sb strings.Builder
	for isIdentChar(l.Current) {
		sb.WriteByte(l.Current)
		l.Advance()
	}
	lexeme := sb.String()
	return token.New(token.LookupIdent(lexeme), lexeme, line, col)
}

func (l *Lexer) readSigil(kind token.Kind, line, col int) token.Token {
	var sb strings.Builder
	sb.WriteByte(l.Current) // '~' or '&'
	l.Advance()
	for isIdentChar(l.Current) {
		sb.WriteByte(l.Current)
		l.Advance()
	}
	return token.New(kind, sb.String(), line, col)
}

// readNumber consumes [0-9.]*; more than one '.' is accepted here and
// left for the parser/interpreter value-parsing stage to reject, per
// spec.md §4.1 and §8's "overflow is a runtime error" boundary rule.
func (l *Lexer) readNumber(line, col int) (token.Token, error) {
	var sb strings.Builder
	dots := 0
	for isDigit(l.Current) || l.Current == '.' {
		if l.Current == '.' {
			dots++
		}
		sb.WriteByte(l.Current)
		l.Advance()
	}
	if dots > 0 {
		return token.New(token.DOUBLE_VAL, sb.String(), line, col), nil
	}
	return token.New(token.INT_VAL, sb.String(), line, col), nil
}

func (l *Lexer) readString(line, col int) (token.Token, error) {
	l.Advance() // consume opening quote
	var sb strings.Builder
	for l.Current != '"' {
		if l.Current == '\n' || l.Current == eofByte {
			return token.Token{}, errs.Lex(l.Line, l.Column, "unterminated string literal")
		}
		sb.WriteByte(l.Current)
		l.Advance()
	}
	l.Advance() // consume closing quote
	return token.New(token.STRING_VAL, sb.String(), line, col), nil
}

func (l *Lexer) readChar(line, col int) (token.Token, error) {
	l.Advance() // consume opening quote
	if l.Current == eofByte || l.Current == '\'' {
		return token.Token{}, errs.Lex(line, col, "malformed character literal")
	}
	ch := l.Current
	l.Advance()
	if l.Current != '\'' {
		return token.Token{}, errs.Lex(line, col, "malformed character literal: expected closing quote")
	}
	l.Advance() // consume closing quote
	return token.New(token.CHAR_VAL, string(ch), line, col), nil
}

func (l *Lexer) readOperator(line, col int) (token.Token, error) {
	ch := l.Current
	peek := l.Peek()

	two := func(kind token.Kind, lexeme string) (token.Token, error) {
		l.Advance()
		l.Advance()
		return token.New(kind, lexeme, line, col), nil
	}
	one := func(kind token.Kind, lexeme string) (token.Token, error) {
		l.Advance()
		return token.New(kind, lexeme, line, col), nil
	}

	switch ch {
	case '=':
		if peek == '=' {
			return two(token.EQUAL, "==")
		}
		return one(token.ASSIGN, "=")
	case '>':
		if peek == '=' {
			return two(token.GREATER_EQUAL, ">=")
		}
		return one(token.GREATER, ">")
	case '<':
		if peek == '=' {
			return two(token.LESS_EQUAL, "<=")
		}
		return one(token.LESS, "<")
	case '!':
		if peek == '=' {
			return two(token.NOT_EQUAL, "!=")
		}
		return token.Token{}, errs.Lex(line, col, "illegal character '!'")
	case '+':
		return one(token.PLUS, "+")
	case '-':
		return one(token.MINUS, "-")
	case '*':
		return one(token.MULTIPLY, "*")
	case '/':
		return one(token.DIVIDE, "/")
	case '%':
		return one(token.MODULO, "%")
	case '(':
		return one(token.LPAREN, "(")
	case ')':
		return one(token.RPAREN, ")")
	case '.':
		return one(token.DOT, ".")
	case ',':
		return one(token.COMMA, ",")
	case ':':
		return one(token.COLON, ":")
	default:
		return token.Token{}, errs.Lex(line, col, "illegal character %q", ch)
	}
}

// Tokens drains the lexer into a slice, ending with the EOS token.
// Primarily useful for lex-only CLI mode and tests.
func (l *Lexer) Tokens() ([]token.Token, error) {
	var out []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return out, err
		}
		out = append(out, tok)
		if tok.Kind == token.EOS {
			return out, nil
		}
	}
}
