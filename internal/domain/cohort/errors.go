package cohort

import "errors"

// Sentinel kinds for cohort errors.
var (
	ErrInsufficientData = errors.New("insufficient data")
)
