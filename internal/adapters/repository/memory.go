package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
	"github.com/platypussharry/physician-salary-dashboard-sub000/pkg/metrics"
)

// MemoryStore evaluates queries over in-memory tables. It backs file-loaded
// datasets and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string][]model.RawSubmission
}

// NewMemoryStore creates a store holding rows under table.
func NewMemoryStore(table string, rows []model.RawSubmission) *MemoryStore {
	s := &MemoryStore{tables: make(map[string][]model.RawSubmission)}
	s.Put(table, rows)
	return s
}

// Put replaces the rows of table.
func (s *MemoryStore) Put(table string, rows []model.RawSubmission) {
	cp := make([]model.RawSubmission, len(rows))
	copy(cp, rows)
	s.mu.Lock()
	s.tables[table] = cp
	s.mu.Unlock()
}

// Count implements Store.
func (s *MemoryStore) Count(ctx context.Context, q Query) (int, error) {
	start := time.Now()
	rows, err := s.match(ctx, q)
	metrics.RecordStoreRequest("memory", "count", time.Since(start), err)
	return len(rows), err
}

// Query implements Store.
func (s *MemoryStore) Query(ctx context.Context, q Query) ([]model.RawSubmission, error) {
	start := time.Now()
	rows, err := s.match(ctx, q)
	if err == nil {
		rows = page(sortRows(rows, q.OrderBy, q.Descending), q.Offset, q.Limit)
	}
	metrics.RecordStoreRequest("memory", "query", time.Since(start), err)
	return rows, err
}

func (s *MemoryStore) match(ctx context.Context, q Query) ([]model.RawSubmission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.tables[q.Table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, q.Table)
	}

	out := make([]model.RawSubmission, 0, len(rows))
	for _, r := range rows {
		if matchAll(r, q.Filters) {
			out = append(out, r)
		}
	}
	return out, nil
}

func matchAll(r model.RawSubmission, filters []Filter) bool {
	for _, f := range filters {
		if !matchOne(r, f) {
			return false
		}
	}
	return true
}

func matchOne(r model.RawSubmission, f Filter) bool {
	if f.Op == OpOr {
		for _, a := range f.Any {
			if matchOne(r, a) {
				return true
			}
		}
		return false
	}

	v, ok := text(field(r, f.Column))
	if !ok {
		return false
	}
	switch f.Op {
	case OpEq:
		return v == f.Value
	case OpILike:
		return strings.Contains(strings.ToLower(v), strings.ToLower(f.Value))
	case OpIn:
		for _, x := range f.Values {
			if v == x {
				return true
			}
		}
	}
	return false
}

// text renders a raw value the way the database would compare it; false for
// nulls.
func text(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	case time.Time:
		return t.Format(time.RFC3339Nano), true
	}
	return fmt.Sprint(v), true
}

// sortRows orders rows by column; nulls sort last in both directions.
func sortRows(rows []model.RawSubmission, column string, desc bool) []model.RawSubmission {
	if column == "" {
		return rows
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, aok := text(field(rows[i], column))
		b, bok := text(field(rows[j], column))
		if !aok || !bok {
			return aok && !bok
		}
		if desc {
			return less(b, a)
		}
		return less(a, b)
	})
	return rows
}

func less(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return fa < fb
	}
	return a < b
}

func page(rows []model.RawSubmission, offset, limit int) []model.RawSubmission {
	if offset >= len(rows) {
		return []model.RawSubmission{}
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
