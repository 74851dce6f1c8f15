// Package seed generates synthetic salary submissions for demos, load tests
// and the file-backed store.
package seed

import (
	"errors"
	"time"
)

// Sentinel errors.
var ErrInvalidConfig = errors.New("invalid seed config")

// Config controls generation.
type Config struct {
	// Rows is the number of submissions to generate.
	Rows int
	// Seed makes output reproducible; equal seeds yield equal rows.
	Seed uint64
	// Workers bounds the chunks generated in parallel.
	Workers int
	// Messy mixes in the formatting noise real submissions carry: currency
	// strings, state codes, missing totals and unrated satisfaction.
	Messy bool
	// Now anchors submission timestamps, which fall in the preceding year.
	Now time.Time
}

func (c Config) validate() error {
	switch {
	case c.Rows < 0:
		return errors.Join(ErrInvalidConfig, errors.New("rows must not be negative"))
	case c.Workers <= 0:
		return errors.Join(ErrInvalidConfig, errors.New("workers must be positive"))
	}
	return nil
}
