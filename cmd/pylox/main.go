// Command pylox is a tree-walking interpreter for the Lox language.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/StrawHatDrag0n/pylox/internal/lox"
)

func main() {
	args := os.Args[1:]
	if len(args) > 1 {
		fmt.Println("Usage: pylox [script]")
		os.Exit(64)
	}

	logrus.SetLevel(logrus.WarnLevel)
	if os.Getenv("PYLOX_DEBUG") != "" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	reporter := lox.NewSimpleReporter(os.Stdout)
	if len(args) == 1 {
		runFile(args[0], reporter)
		return
	}
	runPrompt(reporter)
}

// runFile interprets an entire script, exiting with the process codes the
// language defines: 64 for bad usage (handled above), 65 for a static
// (scan/parse/resolve) error, 70 for an uncaught runtime error.
func runFile(path string, reporter *lox.SimpleReporter) {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(66)
	}

	interp := lox.NewInterpreter(os.Stdout, reporter, false)
	run(string(source), reporter, interp)

	if reporter.HadError() {
		os.Exit(65)
	}
	if reporter.HadRuntimeError() {
		os.Exit(70)
	}
}

// runPrompt reads and interprets one line at a time, sharing a single
// interpreter (and thus a single global environment) across the whole
// session. A static error on one line doesn't poison the next: the
// compile-error flag resets after every line, but runtime state survives.
func runPrompt(reporter *lox.SimpleReporter) {
	interp := lox.NewInterpreter(os.Stdout, reporter, true)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		run(scanner.Text(), reporter, interp)
		reporter.Reset()
	}
}

func run(source string, reporter lox.Reporter, interp *lox.Interpreter) {
	sc := lox.NewScanner(source, reporter)
	tokens := sc.ScanTokens()

	parser := lox.NewParser(tokens, reporter)
	statements := parser.Parse()
	if reporter.HadError() {
		return
	}

	resolver := lox.NewResolver(interp, reporter)
	resolver.ResolveStmts(statements)
	if reporter.HadError() {
		return
	}

	interp.Interpret(statements)
}
