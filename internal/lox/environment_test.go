package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := newEnvironment(nil)
	env.define("x", 1.0)

	value, err := env.get(&Token{Lexeme: "x"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, value)
}

func TestEnvironmentGetUndefinedIsError(t *testing.T) {
	env := newEnvironment(nil)
	_, err := env.get(&Token{Lexeme: "missing"})
	require.Error(t, err)
}

func TestEnvironmentWalksEnclosingChain(t *testing.T) {
	outer := newEnvironment(nil)
	outer.define("x", "outer value")
	inner := newEnvironment(outer)

	value, err := inner.get(&Token{Lexeme: "x"})
	require.NoError(t, err)
	assert.Equal(t, "outer value", value)
}

func TestEnvironmentAssignUpdatesNearestDefiningFrame(t *testing.T) {
	outer := newEnvironment(nil)
	outer.define("x", 1.0)
	inner := newEnvironment(outer)

	require.NoError(t, inner.assign(&Token{Lexeme: "x"}, 2.0))

	value, err := outer.get(&Token{Lexeme: "x"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, value)
}

func TestEnvironmentAssignUndefinedIsError(t *testing.T) {
	env := newEnvironment(nil)
	err := env.assign(&Token{Lexeme: "missing"}, 1.0)
	assert.Error(t, err)
}

func TestEnvironmentGetAtAndAssignAt(t *testing.T) {
	grandparent := newEnvironment(nil)
	grandparent.define("x", 1.0)
	parent := newEnvironment(grandparent)
	child := newEnvironment(parent)

	assert.Equal(t, 1.0, child.getAt(2, "x"))

	child.assignAt(2, "x", 5.0)
	assert.Equal(t, 5.0, grandparent.values["x"])
}
