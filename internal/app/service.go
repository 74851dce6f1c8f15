// Package service provides the business service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/adapters/repository"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/aggregate"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/cohort"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/normalize"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/region"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/report"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/takehome"
	"github.com/platypussharry/physician-salary-dashboard-sub000/pkg/logger"
	"github.com/platypussharry/physician-salary-dashboard-sub000/pkg/metrics"
)

// Sentinel errors of the service layer.
var (
	ErrNotStarted = errors.New("service not started")
	ErrNoStore    = errors.New("no record store configured")
	ErrFetch      = errors.New("fetch submissions failed")
)

// Service implements the API dependencies for the salary dashboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	fetcher    *repository.Fetcher
	builder    *report.Builder
	calculator *takehome.Calculator

	// Configuration
	storeName     string
	table         string
	pageSize      int
	concurrency   int
	minCohortSize int
	recentLimit   int
	stateTaxRates map[string]float64
	now           func() time.Time

	// State
	started   bool
	startedAt time.Time

	dashboards   atomic.Int64
	comparisons  atomic.Int64
	insufficient atomic.Int64
	invalid      atomic.Int64
	takeHomes    atomic.Int64
	lastBatch    atomic.Int64

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		storeName:     "store",
		table:         repository.DefaultTable,
		pageSize:      repository.DefaultPageSize,
		concurrency:   4,
		minCohortSize: cohort.DefaultMinSize,
		recentLimit:   10,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start wires the components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.GetOrNop().Named("service")
	}
	if s.store == nil {
		return ErrNoStore
	}

	s.logger.Info(ctx, "starting salary service...")

	s.fetcher = repository.NewFetcher(s.store,
		repository.WithPageSize(s.pageSize),
		repository.WithConcurrency(s.concurrency),
		repository.WithStoreName(s.storeName),
		repository.WithFetcherLogger(s.logger.Named("fetcher")),
	)
	s.builder = report.New(
		report.WithNormalizer(normalize.New(normalize.WithClock(s.now))),
		report.WithAggregator(aggregate.New(
			aggregate.WithClock(s.now),
			aggregate.WithRecentLimit(s.recentLimit),
		)),
		report.WithMatcher(cohort.New(cohort.WithMinSize(s.minCohortSize))),
	)
	s.calculator = takehome.New(takehome.WithStateRates(s.stateTaxRates))

	s.started = true
	s.startedAt = s.now()
	s.logger.Info(ctx, "salary service started",
		logger.String("store", s.storeName),
		logger.String("table", s.table),
		logger.Int("pageSize", s.pageSize),
		logger.Int("concurrency", s.concurrency),
		logger.Int("minCohortSize", s.minCohortSize),
	)
	return nil
}

// Stop releases the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(context.Background(), "stopping salary service...")

	if closer, ok := s.store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			s.logger.Warn(context.Background(), "close store", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "salary service stopped")
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// Dashboard fetches the submissions that can match c and aggregates them.
func (s *Service) Dashboard(ctx context.Context, c model.FilterCriteria) (report.DashboardModel, error) {
	if err := s.ready(); err != nil {
		return report.DashboardModel{}, err
	}
	start := time.Now()

	records, err := s.fetch(ctx, dashboardFilters(c))
	if err != nil {
		return report.DashboardModel{}, err
	}
	d := s.builder.DashboardFromRecords(records, c)

	s.dashboards.Add(1)
	metrics.RecordDashboard(time.Since(start))
	s.logger.Debug(ctx, "dashboard built",
		logger.Any("filters", c),
		logger.Int("filtered", d.FilteredCount),
		logger.Int("valid", d.TotalSubmissions),
		logger.Duration("took", time.Since(start)),
	)
	return d, nil
}

// Compare runs the personalized comparison. Invalid input and insufficient
// cohorts are reported in the model; the error is reserved for store
// failures.
func (s *Service) Compare(ctx context.Context, in report.ComparisonInput) (report.ComparisonModel, error) {
	if err := s.ready(); err != nil {
		return report.ComparisonModel{}, err
	}

	var records []model.Submission
	if p, err := report.ProfileFrom(in); err == nil {
		records, err = s.fetch(ctx, []repository.Filter{repository.ILike(repository.ColSpecialty, p.Specialty)})
		if err != nil {
			return report.ComparisonModel{}, err
		}
	}

	m, err := s.builder.Analyze(in, records)
	switch {
	case err == nil:
		s.comparisons.Add(1)
		metrics.RecordComparison(m.Tier, m.Grade)
		s.logger.Debug(ctx, "comparison graded",
			logger.String("specialty", in.Specialty),
			logger.String("tier", m.Tier),
			logger.String("grade", m.Grade),
			logger.Int("cohortSize", m.CohortSize),
		)
	case errors.Is(err, cohort.ErrInsufficientData):
		s.insufficient.Add(1)
		metrics.RecordInsufficientCohort()
		s.logger.Info(ctx, "insufficient cohort", logger.String("specialty", in.Specialty))
	case errors.Is(err, report.ErrInvalidInput):
		s.invalid.Add(1)
		metrics.RecordInvalidInput("compare")
	default:
		s.logger.Warn(ctx, "comparison failed", logger.Error(err))
	}
	return m, nil
}

// TakeHome estimates net pay.
func (s *Service) TakeHome(ctx context.Context, in takehome.Input) (takehome.Result, error) {
	if err := s.ready(); err != nil {
		return takehome.Result{}, err
	}
	r, err := s.calculator.Calculate(in)
	if err != nil {
		s.invalid.Add(1)
		metrics.RecordInvalidInput("take_home")
		return takehome.Result{}, err
	}
	s.takeHomes.Add(1)
	status := string(in.Status)
	if status == "" {
		status = string(takehome.Single)
	}
	metrics.RecordTakeHome(status)
	s.logger.Debug(ctx, "take-home calculated", logger.String("status", status))
	return r, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"store":         s.storeName,
		"table":         s.table,
		"pageSize":      s.pageSize,
		"minCohortSize": s.minCohortSize,
		"dashboards":    s.dashboards.Load(),
		"comparisons":   s.comparisons.Load(),
		"insufficient":  s.insufficient.Load(),
		"invalidInputs": s.invalid.Load(),
		"takeHomes":     s.takeHomes.Load(),
		"lastBatchSize": s.lastBatch.Load(),
	}
	if s.started {
		stats["uptimeSeconds"] = int64(s.now().Sub(s.startedAt).Seconds())
	}
	return stats
}

// fetch pulls every row matching filters, newest first, and normalizes it.
func (s *Service) fetch(ctx context.Context, filters []repository.Filter) ([]model.Submission, error) {
	raws, err := s.fetcher.FetchAll(ctx, repository.Query{
		Table:      s.table,
		Filters:    filters,
		OrderBy:    repository.ColCreatedAt,
		Descending: true,
	})
	if err != nil {
		s.logger.Error(ctx, "fetch submissions", logger.String("store", s.storeName), logger.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	records := s.builder.Normalize(raws)

	s.lastBatch.Store(int64(len(records)))
	metrics.RecordNormalized(len(records))
	metrics.UpdateDatasetSize(len(records))
	return records, nil
}

// dashboardFilters translates criteria into store filters that select a
// superset of the matching rows; the core applies the exact criteria.
func dashboardFilters(c model.FilterCriteria) []repository.Filter {
	var out []repository.Filter
	if model.IsSet(c.Specialty) {
		out = append(out, repository.ILike(repository.ColSpecialty, strings.TrimSpace(c.Specialty)))
	}
	if model.IsSet(c.Region) {
		if f, ok := regionFilter(c.Region); ok {
			out = append(out, f)
		}
	}
	return out
}

// regionRoots are substrings shared by every spelling Canonical accepts.
var regionRoots = map[model.Region]string{
	model.RegionNortheast: "east",
	model.RegionMidwest:   "mid",
	model.RegionSouth:     "south",
	model.RegionWest:      "west",
}

// regionFilter matches rows whose state contains the name or code of one of
// r's states in any casing, or whose explicit location carries r's root word.
// v may name a region or a state. Substring matches over-select; the core
// applies the exact region afterwards.
func regionFilter(v string) (repository.Filter, bool) {
	r := region.Canonical(v)
	if r == model.RegionUnknown {
		var ok bool
		if r, ok = region.Resolve(v); !ok {
			return repository.Filter{}, false
		}
	}
	states := region.States(r)
	terms := make([]repository.Filter, 0, 2*len(states)+1)
	for _, st := range states {
		terms = append(terms, repository.ILike(repository.ColState, st))
		if code, ok := region.Code(st); ok {
			terms = append(terms, repository.ILike(repository.ColState, code))
		}
	}
	terms = append(terms, repository.ILike(repository.ColGeographicLocation, regionRoots[r]))
	return repository.Or(terms...), true
}
