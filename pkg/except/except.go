package except

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid")
	// ErrCompile marks a failure reported by the LESS compiler itself (bad syntax, missing import).
	ErrCompile = errors.New("compile failed")
)
