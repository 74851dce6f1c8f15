// Package config defines service configuration structures and loading hooks.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/adapters/repository"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/cohort"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverREST     = "rest"
	DriverPostgres = "postgres"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StoreDriver selects where submissions are read from.
	StoreDriver string `koanf:"store_driver"`
	// StoreURL is the PostgREST base URL for the rest driver.
	StoreURL string `koanf:"store_url"`
	// StoreAPIKey is sent with every rest request.
	StoreAPIKey string `koanf:"store_api_key"`
	// StoreTable names the submissions table.
	StoreTable string `koanf:"store_table"`
	// StorePageSize is the store's maximum rows per request.
	StorePageSize int `koanf:"store_page_size"`
	// StoreFetchConcurrency bounds the pages fetched in parallel.
	StoreFetchConcurrency int `koanf:"store_fetch_concurrency"`
	// StoreMaxRetryMS caps the time spent retrying a failed rest request.
	StoreMaxRetryMS int `koanf:"store_max_retry_ms"`

	// DatasetPath is the .xlsx or .json file read by the file driver.
	DatasetPath string `koanf:"dataset_path"`
	// DatabaseURL is the Postgres DSN for the postgres driver.
	DatabaseURL string `koanf:"database_url"`

	// MinCohortSize is the smallest peer group a comparison is reported for.
	MinCohortSize int `koanf:"min_cohort_size"`
	// RecentLimit caps the recent-submissions feed.
	RecentLimit int `koanf:"recent_limit"`

	// StateTaxRates overrides the take-home calculator's state rates (percent).
	StateTaxRates map[string]float64 `koanf:"state_tax_rates"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Addr:                  ":9080",
		StoreDriver:           DriverMemory,
		StoreTable:            repository.DefaultTable,
		StorePageSize:         repository.DefaultPageSize,
		StoreFetchConcurrency: 4,
		StoreMaxRetryMS:       10_000,
		MinCohortSize:         cohort.DefaultMinSize,
		RecentLimit:           10,
	}
}

// StoreMaxRetry returns StoreMaxRetryMS as a duration.
func (c *Config) StoreMaxRetry() time.Duration {
	return time.Duration(c.StoreMaxRetryMS) * time.Millisecond
}

// Validate checks the configuration for the selected driver.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.StorePageSize <= 0 || c.StoreFetchConcurrency <= 0 {
		return fmt.Errorf("%w: store page size and fetch concurrency must be positive", ErrInvalidConfig)
	}
	if c.MinCohortSize < 1 {
		return fmt.Errorf("%w: min_cohort_size must be at least 1", ErrInvalidConfig)
	}
	if c.RecentLimit < 0 {
		return fmt.Errorf("%w: recent_limit must not be negative", ErrInvalidConfig)
	}

	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case DriverMemory:
	case DriverFile:
		if c.DatasetPath == "" {
			return fmt.Errorf("%w: dataset_path is required for the file driver", ErrInvalidConfig)
		}
	case DriverREST:
		if c.StoreURL == "" {
			return fmt.Errorf("%w: store_url is required for the rest driver", ErrInvalidConfig)
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: database_url is required for the postgres driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store_driver %q", ErrInvalidConfig, c.StoreDriver)
	}
	return nil
}
