package aggregate

import "time"

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithClock sets the clock used to bucket submission ages.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// WithRecentLimit caps the recent-submissions feed.
func WithRecentLimit(limit int) Option {
	return func(a *Aggregator) {
		if limit > 0 {
			a.recentLimit = limit
		}
	}
}
