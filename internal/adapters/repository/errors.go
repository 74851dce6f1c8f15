package repository

import "errors"

// Sentinel kinds for record store errors.
var (
	ErrInvalidQuery      = errors.New("invalid store query")
	ErrUnknownTable      = errors.New("unknown table")
	ErrStoreUnavailable  = errors.New("record store unavailable")
	ErrUnexpectedStatus  = errors.New("unexpected store response")
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
)
