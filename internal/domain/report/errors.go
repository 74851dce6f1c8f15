package report

import "errors"

// Sentinel kinds for report errors.
var (
	ErrInvalidInput = errors.New("invalid input")
)
