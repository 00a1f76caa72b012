/*
File   : vellum/lexer/lexer_test.go
*/
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gopherlang/vellum/token"
)

func kinds(t *testing.T, src string) []token.Kind {
	toks, err := New(src).Tokens()
	assert.NoError(t, err)
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexer_Keywords(t *testing.T) {
	assert.Equal(t,
		[]token.Kind{token.FUN, token.INT_TYPE, token.ID, token.LPAREN, token.RPAREN, token.RETURN, token.INT_VAL, token.END, token.EOS},
		kinds(t, "fun int main() return 0 end"),
	)
}

func TestLexer_TwoCharOperatorsGreedy(t *testing.T) {
	assert.Equal(t,
		[]token.Kind{token.LESS_EQUAL, token.GREATER_EQUAL, token.EQUAL, token.NOT_EQUAL, token.EOS},
		kinds(t, "<= >= == !="),
	)
}

func TestLexer_PointerSigils(t *testing.T) {
	toks, err := New("~x &y").Tokens()
	assert.NoError(t, err)
	assert.Equal(t, token.POINTER_TYPE, toks[0].Kind)
	assert.Equal(t, "~x", toks[0].Lexeme)
	assert.Equal(t, token.POINTER_VAL, toks[1].Kind)
	assert.Equal(t, "&y", toks[1].Lexeme)
}

func TestLexer_NumberDoubleVsInt(t *testing.T) {
	toks, err := New("12 3.14 5.0.1").Tokens()
	assert.NoError(t, err)
	assert.Equal(t, token.INT_VAL, toks[0].Kind)
	assert.Equal(t, token.DOUBLE_VAL, toks[1].Kind)
	assert.Equal(t, token.DOUBLE_VAL, toks[2].Kind)
	assert.Equal(t, "5.0.1", toks[2].Lexeme)
}

func TestLexer_StringAndChar(t *testing.T) {
	toks, err := New(`"hi" 'a'`).Tokens()
	assert.NoError(t, err)
	assert.Equal(t, token.STRING_VAL, toks[0].Kind)
	assert.Equal(t, "hi", toks[0].Lexeme)
	assert.Equal(t, token.CHAR_VAL, toks[1].Kind)
	assert.Equal(t, "a", toks[1].Lexeme)
}

func TestLexer_UnterminatedStringIsLexError(t *testing.T) {
	_, err := New("\"abc\ndef\"").Tokens()
	assert.Error(t, err)
}

func TestLexer_MalformedCharIsLexError(t *testing.T) {
	_, err := New("'ab'").Tokens()
	assert.Error(t, err)
}

func TestLexer_LineCommentCollapsesConsecutiveLines(t *testing.T) {
	src := "# first\n# second\nvar"
	toks, err := New(src).Tokens()
	assert.NoError(t, err)
	assert.Equal(t, token.VAR, toks[0].Kind)
	assert.Equal(t, 3, toks[0].Line)
}

func TestLexer_IllegalCharacter(t *testing.T) {
	_, err := New("@").Tokens()
	assert.Error(t, err)
}

func TestLexer_LineAndColumnTracking(t *testing.T) {
	toks, err := New("var\nfun").Tokens()
	assert.NoError(t, err)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 1, toks[0].Column)
	assert.Equal(t, 2, toks[1].Line)
}

func TestLexer_BoolLiterals(t *testing.T) {
	toks, err := New("true false").Tokens()
	assert.NoError(t, err)
	assert.Equal(t, token.BOOL_VAL, toks[0].Kind)
	assert.Equal(t, token.BOOL_VAL, toks[1].Kind)
}
