package lox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run compiles and interprets a whole program, returning everything written
// to stdout. It mirrors what cmd/pylox's run() does, end to end.
func run(t *testing.T, source string) (string, *SimpleReporter) {
	t.Helper()
	var out bytes.Buffer
	reporter := NewSimpleReporter(&out)

	tokens := NewScanner(source, reporter).ScanTokens()
	stmts := NewParser(tokens, reporter).Parse()
	if reporter.HadError() {
		return out.String(), reporter
	}

	interp := NewInterpreter(&out, reporter, false)
	NewResolver(interp, reporter).ResolveStmts(stmts)
	if reporter.HadError() {
		return out.String(), reporter
	}

	interp.Interpret(stmts)
	return out.String(), reporter
}

func TestInterpretArithmeticAndGrouping(t *testing.T) {
	out, reporter := run(t, "print (1 + 2) * 3;")
	require.False(t, reporter.HadError())
	require.False(t, reporter.HadRuntimeError())
	assert.Equal(t, "9\n", out)
}

func TestInterpretClosuresCaptureByReference(t *testing.T) {
	out, reporter := run(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();
		counter();
		counter();
		print counter();
	`)
	require.False(t, reporter.HadError())
	require.False(t, reporter.HadRuntimeError())
	assert.Equal(t, "3\n", out)
}

func TestInterpretInheritanceAndSuper(t *testing.T) {
	out, reporter := run(t, `
		class A {
			greet() {
				print "A";
			}
		}
		class B < A {
			greet() {
				super.greet();
				print "B";
			}
		}
		B().greet();
	`)
	require.False(t, reporter.HadError())
	require.False(t, reporter.HadRuntimeError())
	assert.Equal(t, "A\nB\n", out)
}

func TestInterpretDivisionByZeroIsRuntimeError(t *testing.T) {
	_, reporter := run(t, "var x = 1; var y = 0; print x / y;")
	assert.True(t, reporter.HadRuntimeError())
}

func TestInterpretUninitializedVariableIsRuntimeError(t *testing.T) {
	_, reporter := run(t, "var x = nil; print x;")
	assert.True(t, reporter.HadRuntimeError())
}

func TestInterpretStringLengthComparison(t *testing.T) {
	out, reporter := run(t, `print "abc" < "abcd"; print "xy" <= "xy";`)
	require.False(t, reporter.HadError())
	require.False(t, reporter.HadRuntimeError())
	assert.Equal(t, "true\ntrue\n", out)
}

func TestInterpretTernaryExpression(t *testing.T) {
	out, reporter := run(t, `print 1 < 2 ? "yes" : "no";`)
	require.False(t, reporter.HadError())
	assert.Equal(t, "yes\n", out)
}

func TestInterpretBreakExitsNearestLoop(t *testing.T) {
	out, reporter := run(t, `
		var i = 0;
		while (true) {
			if (i == 3) break;
			print i;
			i = i + 1;
		}
	`)
	require.False(t, reporter.HadError())
	require.False(t, reporter.HadRuntimeError())
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestInterpretStringConcatenationWithNumbers(t *testing.T) {
	out, reporter := run(t, `print "count: " + 3;`)
	require.False(t, reporter.HadError())
	require.False(t, reporter.HadRuntimeError())
	assert.Equal(t, "count: 3\n", out)
}

func TestInterpretUndefinedVariableIsRuntimeError(t *testing.T) {
	_, reporter := run(t, "print undefined_var;")
	assert.True(t, reporter.HadRuntimeError())
}

func TestInterpretCallingNonCallableIsRuntimeError(t *testing.T) {
	_, reporter := run(t, `var x = 1; x();`)
	assert.True(t, reporter.HadRuntimeError())
}

func TestInterpretWrongArityIsRuntimeError(t *testing.T) {
	_, reporter := run(t, `fun f(a, b) { return a + b; } f(1);`)
	assert.True(t, reporter.HadRuntimeError())
}

func TestInterpretClassFieldsAndMethods(t *testing.T) {
	out, reporter := run(t, `
		class Box {
			init(value) {
				this.value = value;
			}
			get() {
				return this.value;
			}
		}
		var b = Box(7);
		print b.get();
	`)
	require.False(t, reporter.HadError())
	require.False(t, reporter.HadRuntimeError())
	assert.Equal(t, "7\n", out)
}
