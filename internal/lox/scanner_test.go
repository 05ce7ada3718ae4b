package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, source string) ([]*Token, *SimpleReporter) {
	t.Helper()
	reporter := NewSimpleReporter(&discard{})
	sc := NewScanner(source, reporter)
	return sc.ScanTokens(), reporter
}

type discard struct{}

func (*discard) Write(p []byte) (int, error) { return len(p), nil }

func TestScannerSingleCharTokens(t *testing.T) {
	tokens, reporter := scanAll(t, "(){},.-+;*?:")
	require.False(t, reporter.HadError())

	want := []TokenType{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE,
		COMMA, DOT, MINUS, PLUS, SEMICOLON, STAR,
		QUESTION_MARK, COLON, EOF,
	}
	require.Len(t, tokens, len(want))
	for i, typ := range want {
		assert.Equal(t, typ, tokens[i].Type)
	}
}

func TestScannerTwoCharOperators(t *testing.T) {
	tokens, reporter := scanAll(t, "!= == <= >= < > = !")
	require.False(t, reporter.HadError())

	want := []TokenType{BANG_EQUAL, EQUAL_EQUAL, LESS_EQUAL, GREATER_EQUAL, LESS, GREATER, EQUAL, BANG, EOF}
	require.Len(t, tokens, len(want))
	for i, typ := range want {
		assert.Equal(t, typ, tokens[i].Type)
	}
}

func TestScannerNumberLiteral(t *testing.T) {
	tokens, reporter := scanAll(t, "123.45")
	require.False(t, reporter.HadError())
	require.Len(t, tokens, 2)
	assert.Equal(t, NUMBER, tokens[0].Type)
	assert.Equal(t, 123.45, tokens[0].Literal)
}

func TestScannerStringLiteral(t *testing.T) {
	tokens, reporter := scanAll(t, `"hello world"`)
	require.False(t, reporter.HadError())
	require.Len(t, tokens, 2)
	assert.Equal(t, STRING, tokens[0].Type)
	assert.Equal(t, "hello world", tokens[0].Literal)
}

func TestScannerUnterminatedString(t *testing.T) {
	_, reporter := scanAll(t, `"hello`)
	assert.True(t, reporter.HadError())
}

func TestScannerKeywordsAndIdentifiers(t *testing.T) {
	tokens, reporter := scanAll(t, "var x class break foo")
	require.False(t, reporter.HadError())

	want := []TokenType{VAR, IDENTIFIER, CLASS, BREAK, IDENTIFIER, EOF}
	require.Len(t, tokens, len(want))
	for i, typ := range want {
		assert.Equal(t, typ, tokens[i].Type)
	}
	assert.Equal(t, "x", tokens[1].Lexeme)
	assert.Equal(t, "foo", tokens[4].Lexeme)
}

func TestScannerLineComment(t *testing.T) {
	tokens, reporter := scanAll(t, "var x = 1; // trailing comment\nvar y = 2;")
	require.False(t, reporter.HadError())
	assert.Equal(t, 1, tokens[0].Line)
	// the second `var` is after the comment, on line 2
	var secondVarLine int
	for i, tok := range tokens {
		if tok.Type == VAR && i > 0 {
			secondVarLine = tok.Line
		}
	}
	assert.Equal(t, 2, secondVarLine)
}

func TestScannerBlockCommentNesting(t *testing.T) {
	_, reporter := scanAll(t, "/* outer /* inner */ still outer */")
	assert.False(t, reporter.HadError())
}

func TestScannerUnclosedBlockComment(t *testing.T) {
	_, reporter := scanAll(t, "/* never closed")
	assert.True(t, reporter.HadError())
}

func TestScannerUnexpectedCharacter(t *testing.T) {
	_, reporter := scanAll(t, "@")
	assert.True(t, reporter.HadError())
}
