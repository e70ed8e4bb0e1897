package app

import "fmt"

// FatalError aborts a run before or without producing case results.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

func fatal(op string, err error) error {
	return &FatalError{Op: op, Err: err}
}
