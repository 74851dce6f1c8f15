package service

import (
	"context"
	"fmt"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/adapters/repository"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/config"
	"github.com/platypussharry/physician-salary-dashboard-sub000/pkg/logger"
)

// OpenStore builds the record store selected by cfg.StoreDriver. Stores
// holding connections are released by Service.Stop.
func OpenStore(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.Store, error) {
	if log == nil {
		log = logger.GetOrNop()
	}
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return repository.NewMemoryStore(cfg.StoreTable, nil), nil

	case config.DriverFile:
		rows, err := repository.Load(cfg.DatasetPath)
		if err != nil {
			return nil, fmt.Errorf("open dataset %s: %w", cfg.DatasetPath, err)
		}
		log.Info(ctx, "dataset loaded", logger.String("path", cfg.DatasetPath), logger.Int("rows", len(rows)))
		return repository.NewMemoryStore(cfg.StoreTable, rows), nil

	case config.DriverREST:
		s, err := repository.NewRESTStore(cfg.StoreURL,
			repository.WithAPIKey(cfg.StoreAPIKey),
			repository.WithRetry(0, cfg.StoreMaxRetry()),
			repository.WithRESTLogger(log.Named("rest")),
		)
		if err != nil {
			return nil, fmt.Errorf("open rest store: %w", err)
		}
		return s, nil

	case config.DriverPostgres:
		s, err := repository.OpenPG(ctx, cfg.DatabaseURL, int32(cfg.StoreFetchConcurrency))
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: unknown store_driver %q", config.ErrInvalidConfig, cfg.StoreDriver)
}

// FromConfig returns the service options derived from cfg.
func FromConfig(cfg *config.Config) []Option {
	return []Option{
		WithTable(cfg.StoreTable),
		WithPageSize(cfg.StorePageSize),
		WithFetchConcurrency(cfg.StoreFetchConcurrency),
		WithMinCohortSize(cfg.MinCohortSize),
		WithRecentLimit(cfg.RecentLimit),
		WithStateTaxRates(cfg.StateTaxRates),
	}
}
