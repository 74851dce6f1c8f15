package grading

import "errors"

// Sentinel kinds for grading errors.
var (
	ErrInvalidAverage = errors.New("cohort average must be positive")
)
