package service

import (
	"time"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/adapters/repository"
	"github.com/platypussharry/physician-salary-dashboard-sub000/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the record store and the name used in logs and metrics.
func WithStore(store repository.Store, name string) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
			if name != "" {
				s.storeName = name
			}
		}
	}
}

// WithTable sets the submissions table.
func WithTable(table string) Option {
	return func(s *Service) {
		if table != "" {
			s.table = table
		}
	}
}

// WithPageSize sets the store's maximum rows per request.
func WithPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithFetchConcurrency bounds the pages fetched in parallel.
func WithFetchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithMinCohortSize sets the smallest reportable peer group.
func WithMinCohortSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minCohortSize = n
		}
	}
}

// WithRecentLimit caps the recent-submissions feed.
func WithRecentLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.recentLimit = n
		}
	}
}

// WithStateTaxRates overrides the take-home state rate table.
func WithStateTaxRates(rates map[string]float64) Option {
	return func(s *Service) {
		s.stateTaxRates = rates
	}
}

// WithClock sets the clock used for defaults and time-ago labels.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
