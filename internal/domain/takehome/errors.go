package takehome

import "errors"

var (
	// ErrInvalidInput is returned for a non-positive salary, an unknown filing
	// status or a contribution outside [0, salary].
	ErrInvalidInput = errors.New("invalid take-home input")
	// ErrUnknownState is returned when the state has no configured rate.
	ErrUnknownState = errors.New("unknown state")
)
