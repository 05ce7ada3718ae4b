package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveSource(t *testing.T, source string) *SimpleReporter {
	t.Helper()
	reporter := NewSimpleReporter(&discard{})
	tokens := NewScanner(source, reporter).ScanTokens()
	stmts := NewParser(tokens, reporter).Parse()
	require.False(t, reporter.HadError(), "parse should succeed before resolving")

	interp := NewInterpreter(&discard{}, reporter, false)
	NewResolver(interp, reporter).ResolveStmts(stmts)
	return reporter
}

func TestResolverRejectsSelfReferenceInInitializer(t *testing.T) {
	reporter := resolveSource(t, "var a = 1; { var a = a; }")
	assert.True(t, reporter.HadError())
}

func TestResolverRejectsRedeclarationInSameScope(t *testing.T) {
	reporter := resolveSource(t, "{ var a = 1; var a = 2; }")
	assert.True(t, reporter.HadError())
}

func TestResolverAllowsShadowingInNestedScope(t *testing.T) {
	reporter := resolveSource(t, "var a = 1; { var a = 2; }")
	assert.False(t, reporter.HadError())
}

func TestResolverRejectsBreakOutsideLoop(t *testing.T) {
	reporter := resolveSource(t, "break;")
	assert.True(t, reporter.HadError())
}

func TestResolverAllowsBreakInsideNestedBlockInLoop(t *testing.T) {
	reporter := resolveSource(t, "while (true) { { break; } }")
	assert.False(t, reporter.HadError())
}

func TestResolverRejectsBreakAfterLoopEnds(t *testing.T) {
	reporter := resolveSource(t, "while (true) { break; } break;")
	assert.True(t, reporter.HadError())
}

func TestResolverRejectsReturnOutsideFunction(t *testing.T) {
	reporter := resolveSource(t, "return 1;")
	assert.True(t, reporter.HadError())
}

func TestResolverRejectsReturnValueFromInitializer(t *testing.T) {
	reporter := resolveSource(t, "class A { init() { return 1; } }")
	assert.True(t, reporter.HadError())
}

func TestResolverAllowsBareReturnFromInitializer(t *testing.T) {
	reporter := resolveSource(t, "class A { init() { return; } }")
	assert.False(t, reporter.HadError())
}

func TestResolverRejectsThisOutsideClass(t *testing.T) {
	reporter := resolveSource(t, "fun f() { return this; }")
	assert.True(t, reporter.HadError())
}

func TestResolverRejectsSuperOutsideClass(t *testing.T) {
	reporter := resolveSource(t, "fun f() { return super.foo(); }")
	assert.True(t, reporter.HadError())
}

func TestResolverRejectsSuperWithNoSuperclass(t *testing.T) {
	reporter := resolveSource(t, "class A { foo() { return super.foo(); } }")
	assert.True(t, reporter.HadError())
}

func TestResolverAllowsSuperWithSuperclass(t *testing.T) {
	reporter := resolveSource(t, "class A { foo() { return 1; } } class B < A { foo() { return super.foo(); } }")
	assert.False(t, reporter.HadError())
}

func TestResolverRejectsClassInheritingFromItself(t *testing.T) {
	reporter := resolveSource(t, "class A < A {}")
	assert.True(t, reporter.HadError())
}
