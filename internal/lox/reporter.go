package lox

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter is the sink for both compile-time and runtime diagnostics. It
// tracks the two sticky error flags the driver inspects to pick an exit
// code. Reset clears only the compile-time flag, which the REPL resets
// between prompts; once set, the runtime-error flag stays set.
type Reporter interface {
	ReportLine(line int, message string)
	ReportToken(tok *Token, message string)
	ReportRuntime(err *runtimeError)
	Reset()
	HadError() bool
	HadRuntimeError() bool
}

// SimpleReporter writes diagnostics to an io.Writer in the two fixed
// formats this language defines: "[line N]: Error <where>: <message>" for
// compile-time errors, and "<message>\n [line N]" for runtime errors.
type SimpleReporter struct {
	writer        io.Writer
	hadErr        bool
	hadRuntimeErr bool
}

func NewSimpleReporter(writer io.Writer) *SimpleReporter {
	return &SimpleReporter{writer: writer}
}

// ReportLine records a compile-time error with no token to localize it to,
// e.g. an unexpected character from the scanner.
func (r *SimpleReporter) ReportLine(line int, message string) {
	r.report(line, "", message)
}

// ReportToken records a compile-time error localized to a specific token,
// as produced by the parser and resolver.
func (r *SimpleReporter) ReportToken(tok *Token, message string) {
	if tok.Type == EOF {
		r.report(tok.Line, " at end", message)
	} else {
		r.report(tok.Line, fmt.Sprintf(" at '%s'", tok.Lexeme), message)
	}
}

func (r *SimpleReporter) report(line int, where, message string) {
	fmt.Fprintf(r.writer, "[line %d]: Error %s: %s\n", line, where, message)
	r.hadErr = true
}

// ReportRuntime records a runtime error that unwound to the top-level
// interpret entry.
func (r *SimpleReporter) ReportRuntime(err *runtimeError) {
	red := color.New(color.FgRed)
	red.Fprintln(r.writer, err.message)
	fmt.Fprintf(r.writer, " [line %d]\n", err.token.Line)
	r.hadRuntimeErr = true
}

func (r *SimpleReporter) Reset() {
	r.hadErr = false
}

func (r *SimpleReporter) HadError() bool {
	return r.hadErr
}

func (r *SimpleReporter) HadRuntimeError() bool {
	return r.hadRuntimeErr
}
