package lox

import "time"

// clockFn is the sole standard-library builtin: a zero-arity function
// returning the current wall-clock time as seconds since the Unix epoch.
type clockFn struct{}

func (clockFn) arity() int { return 0 }

func (clockFn) call(_ *Interpreter, _ []interface{}) (interface{}, error) {
	return float64(time.Now().UnixNano()) / float64(time.Second), nil
}

func (clockFn) String() string { return "<native fn>" }
