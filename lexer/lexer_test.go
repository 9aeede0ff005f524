// ==============================================================================================
// FILE: lexer/lexer_test.go
// ==============================================================================================
// PURPOSE: Table-driven coverage of token classification, keyword vs
//          identifier disambiguation, escape handling, and the
//          two-character operator lookahead ('//', '==', '<=', etc).
// ==============================================================================================

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eloq/diag"
	"eloq/token"
)

func kinds(t []token.Token) []token.Kind {
	out := make([]token.Kind, len(t))
	for i, tok := range t {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeOperatorsAndDelimiters(t *testing.T) {
	tokens, err := Tokenize("test", "+ - * / // % ^ ( ) { } [ ] , : ?")
	require.Nil(t, err)
	want := []token.Kind{
		token.PLUS, token.MINUS, token.MULTIPLY, token.DIVIDE, token.FLOORDIVIDE,
		token.MODULO, token.POWER, token.LPAREN, token.RPAREN, token.LBRACE,
		token.RBRACE, token.LSQUARE, token.RSQUARE, token.COMMA, token.COLON,
		token.INDEX, token.EOF,
	}
	assert.Equal(t, want, kinds(tokens))
}

func TestTokenizeComparisonOperators(t *testing.T) {
	tokens, err := Tokenize("test", "= == != < <= > >=")
	require.Nil(t, err)
	want := []token.Kind{
		token.EQUAL, token.EE, token.NE, token.LT, token.LTE, token.GT, token.GTE, token.EOF,
	}
	assert.Equal(t, want, kinds(tokens))
}

func TestTokenizeBangWithoutEqualsIsExpectedCharacter(t *testing.T) {
	_, err := Tokenize("test", "!")
	require.NotNil(t, err)
	assert.Equal(t, diag.ExpectedChar, err.Kind)
}

func TestTokenizeKeywordsVsIdentifiers(t *testing.T) {
	tokens, err := Tokenize("test", "take whether counter")
	require.Nil(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, token.KEYWORD, tokens[0].Kind)
	assert.Equal(t, token.KEYWORD, tokens[1].Kind)
	assert.Equal(t, token.IDENTIFIER, tokens[2].Kind)
	assert.True(t, tokens[0].IsKeyword("take"))
	assert.True(t, tokens[1].IsKeyword("whether"))
}

func TestTokenizeNumberLiterals(t *testing.T) {
	tokens, err := Tokenize("test", "42 3.14 0.5")
	require.Nil(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, token.INT, tokens[0].Kind)
	assert.EqualValues(t, 42, tokens[0].Literal.Int)
	assert.Equal(t, token.FLOAT, tokens[1].Kind)
	assert.InDelta(t, 3.14, tokens[1].Literal.Flt, 1e-9)
}

// A second '.' in a number run terminates the number rather than erroring
// (spec.md §9 quirk preservation): "1.2.3" lexes as FLOAT(1.2), then the
// lone second '.' falls through to the illegal-character branch.
func TestTokenizeNumberStopsAtSecondDot(t *testing.T) {
	_, err := Tokenize("test", "1.2.3")
	require.NotNil(t, err)
}

func TestTokenizeStringEscapes(t *testing.T) {
	tokens, err := Tokenize("test", `"line1\nline2\tend"`)
	require.Nil(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "line1\nline2\tend", tokens[0].Literal.Str)
}

func TestTokenizeUnterminatedStringReachesEOFWithoutError(t *testing.T) {
	tokens, err := Tokenize("test", `"unterminated`)
	require.Nil(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "unterminated", tokens[0].Literal.Str)
	assert.Equal(t, token.EOF, tokens[1].Kind)
}

func TestTokenizeNewlineAndSemicolonBothProduceNewline(t *testing.T) {
	tokens, err := Tokenize("test", "take x = 1\ntake y = 2; take z = 3")
	require.Nil(t, err)
	count := 0
	for _, tok := range tokens {
		if tok.Kind == token.NEWLINE {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestTokenizeIllegalCharacter(t *testing.T) {
	_, err := Tokenize("test", "@")
	require.NotNil(t, err)
}
