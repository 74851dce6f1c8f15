package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
	"github.com/platypussharry/physician-salary-dashboard-sub000/pkg/metrics"
)

// Querier is the subset of pgxpool.Pool used by PGStore.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStore reads submissions directly from Postgres.
type PGStore struct {
	db   Querier
	pool *pgxpool.Pool
}

// OpenPG connects a pool to databaseURL.
func OpenPG(ctx context.Context, databaseURL string, maxConns int32) (*PGStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse database url: %v", ErrStoreUnavailable, err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &PGStore{db: pool, pool: pool}, nil
}

// NewPGStore wraps an existing connection or pool.
func NewPGStore(db Querier) *PGStore {
	return &PGStore{db: db}
}

// Close releases the pool opened by OpenPG.
func (s *PGStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// Count implements Store.
func (s *PGStore) Count(ctx context.Context, q Query) (int, error) {
	sql, args, err := CompileCount(q)
	if err != nil {
		return 0, err
	}
	start := time.Now()
	var n int
	err = s.db.QueryRow(ctx, sql, args...).Scan(&n)
	metrics.RecordStoreRequest("postgres", "count", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("%w: count: %v", ErrStoreUnavailable, err)
	}
	return n, nil
}

// Query implements Store. Every column is read as text so values reach the
// normalizer in the same loose shape the REST store delivers.
func (s *PGStore) Query(ctx context.Context, q Query) ([]model.RawSubmission, error) {
	sql, args, err := CompileSelect(q)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		metrics.RecordStoreRequest("postgres", "query", time.Since(start), err)
		return nil, fmt.Errorf("%w: query: %v", ErrStoreUnavailable, err)
	}
	out, err := pgx.CollectRows(rows, scanSubmission)
	metrics.RecordStoreRequest("postgres", "query", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("%w: scan: %v", ErrStoreUnavailable, err)
	}
	return out, nil
}

func scanSubmission(row pgx.CollectableRow) (model.RawSubmission, error) {
	vals := make([]*string, len(Columns))
	dest := make([]any, len(Columns))
	for i := range vals {
		dest[i] = &vals[i]
	}
	if err := row.Scan(dest...); err != nil {
		return model.RawSubmission{}, err
	}
	var r model.RawSubmission
	for i, c := range Columns {
		if vals[i] != nil {
			setField(&r, c, *vals[i])
		}
	}
	return r, nil
}

// CompileSelect renders q as a parameterised SELECT.
func CompileSelect(q Query) (string, []any, error) {
	if err := q.Validate(); err != nil {
		return "", nil, err
	}
	cols := make([]string, len(Columns))
	for i, c := range Columns {
		cols[i] = c + "::text"
	}

	var b strings.Builder
	b.WriteString("SELECT " + strings.Join(cols, ", ") + " FROM " + q.Table)
	args := whereClause(&b, q.Filters)
	if q.OrderBy != "" {
		b.WriteString(" ORDER BY " + q.OrderBy)
		if q.Descending {
			b.WriteString(" DESC NULLS LAST")
		} else {
			b.WriteString(" ASC NULLS LAST")
		}
	}
	if q.Offset > 0 {
		args = append(args, q.Offset)
		b.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	}
	if q.Limit > 0 {
		args = append(args, q.Limit)
		b.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}
	return b.String(), args, nil
}

// CompileCount renders q's table and filters as a parameterised COUNT.
func CompileCount(q Query) (string, []any, error) {
	if err := q.Validate(); err != nil {
		return "", nil, err
	}
	var b strings.Builder
	b.WriteString("SELECT count(*) FROM " + q.Table)
	args := whereClause(&b, q.Filters)
	return b.String(), args, nil
}

func whereClause(b *strings.Builder, filters []Filter) []any {
	if len(filters) == 0 {
		return nil
	}
	var args []any
	conds := make([]string, 0, len(filters))
	for _, f := range filters {
		conds = append(conds, condition(f, &args))
	}
	b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	return args
}

func condition(f Filter, args *[]any) string {
	placeholder := func(v any) string {
		*args = append(*args, v)
		return "$" + strconv.Itoa(len(*args))
	}
	switch f.Op {
	case OpEq:
		return f.Column + "::text = " + placeholder(f.Value)
	case OpILike:
		return f.Column + " ILIKE " + placeholder("%"+escapeLike(f.Value)+"%")
	case OpIn:
		return f.Column + "::text = ANY(" + placeholder(f.Values) + ")"
	case OpOr:
		parts := make([]string, len(f.Any))
		for i, a := range f.Any {
			parts[i] = condition(a, args)
		}
		return "(" + strings.Join(parts, " OR ") + ")"
	}
	return "FALSE"
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
