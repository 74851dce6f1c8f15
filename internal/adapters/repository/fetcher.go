package repository

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
	"github.com/platypussharry/physician-salary-dashboard-sub000/pkg/logger"
	"github.com/platypussharry/physician-salary-dashboard-sub000/pkg/metrics"
)

const (
	// DefaultPageSize matches the hosted store's maximum rows per request.
	DefaultPageSize    = 1000
	defaultConcurrency = 4
)

// Fetcher pulls every row matching a query from a paginated Store.
type Fetcher struct {
	store       Store
	name        string
	pageSize    int
	concurrency int
	logger      logger.Logger
}

// NewFetcher creates a Fetcher over store.
func NewFetcher(store Store, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		store:       store,
		name:        "store",
		pageSize:    DefaultPageSize,
		concurrency: defaultConcurrency,
		logger:      logger.GetOrNop().Named("fetcher"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchAll counts the matching rows, fetches the pages concurrently and
// returns them in query order. Rows whose id was already seen on an earlier
// page are dropped; rows without an id are always kept.
func (f *Fetcher) FetchAll(ctx context.Context, q Query) ([]model.RawSubmission, error) {
	start := time.Now()
	q.Offset, q.Limit = 0, 0

	total, err := f.store.Count(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", q.Table, err)
	}
	if total == 0 {
		return []model.RawSubmission{}, nil
	}

	pages := (total + f.pageSize - 1) / f.pageSize
	results := make([][]model.RawSubmission, pages)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i := 0; i < pages; i++ {
		g.Go(func() error {
			offset := i * f.pageSize
			rows, err := f.page(gctx, q, offset, min(f.pageSize, total-offset))
			if err != nil {
				return fmt.Errorf("page %d of %s: %w", i+1, q.Table, err)
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		f.logger.Error(ctx, "fetch failed", logger.String("table", q.Table), logger.Error(err))
		return nil, err
	}

	fetched := 0
	for _, rows := range results {
		fetched += len(rows)
	}
	if fetched < total {
		f.logger.Warn(ctx, "store returned fewer rows than counted",
			logger.String("table", q.Table),
			logger.Int("expected", total),
			logger.Int("rows", fetched),
		)
	}

	out := dedupe(results, total)
	f.logger.Debug(ctx, "fetched table",
		logger.String("table", q.Table),
		logger.Int("expected", total),
		logger.Int("rows", len(out)),
		logger.Int("pages", pages),
		logger.Duration("took", time.Since(start)),
	)
	return out, nil
}

// page reads want rows starting at offset. A store that caps rows per request
// below the page size answers short; the rest of the range is requested until
// it is full or the store has nothing more.
func (f *Fetcher) page(ctx context.Context, q Query, offset, want int) ([]model.RawSubmission, error) {
	var rows []model.RawSubmission
	for len(rows) < want {
		pq := q
		pq.Offset = offset + len(rows)
		pq.Limit = want - len(rows)
		got, err := f.store.Query(ctx, pq)
		if err != nil {
			return nil, err
		}
		metrics.RecordPageFetched(f.name, len(got))
		if len(got) == 0 {
			break
		}
		rows = append(rows, got...)
	}
	return rows, nil
}

func dedupe(pages [][]model.RawSubmission, capacity int) []model.RawSubmission {
	seen := make(map[string]struct{}, capacity)
	out := make([]model.RawSubmission, 0, capacity)
	for _, rows := range pages {
		for _, r := range rows {
			id, ok := text(r.ID)
			if ok && id != "" {
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
			}
			out = append(out, r)
		}
	}
	return out
}
