// Package repository provides access to the remote submissions store and
// file-backed datasets.
package repository

import (
	"context"
	"fmt"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
)

// DefaultTable is the submissions table name.
const DefaultTable = "salary_submissions"

// Store provides read access to raw submissions.
type Store interface {
	// Count returns the number of rows matching q's table and filters;
	// ordering and paging are ignored.
	Count(ctx context.Context, q Query) (int, error)
	// Query returns one page of rows.
	Query(ctx context.Context, q Query) ([]model.RawSubmission, error)
}

// Op is a filter operator.
type Op int

// Filter operators.
const (
	OpEq Op = iota + 1
	OpILike
	OpIn
	OpOr
)

func (o Op) String() string {
	switch o {
	case OpEq:
		return "eq"
	case OpILike:
		return "ilike"
	case OpIn:
		return "in"
	case OpOr:
		return "or"
	}
	return "unknown"
}

// Filter is one predicate over a column, or an OR group of predicates.
type Filter struct {
	Column string
	Op     Op
	// Value is the operand of OpEq and the substring of OpILike.
	Value string
	// Values is the list of OpIn.
	Values []string
	// Any holds the alternatives of OpOr.
	Any []Filter
}

// Eq matches rows whose column equals v.
func Eq(column, v string) Filter { return Filter{Column: column, Op: OpEq, Value: v} }

// ILike matches rows whose column contains substr, ignoring case.
func ILike(column, substr string) Filter { return Filter{Column: column, Op: OpILike, Value: substr} }

// In matches rows whose column is one of values.
func In(column string, values ...string) Filter {
	return Filter{Column: column, Op: OpIn, Values: values}
}

// Or matches rows satisfying any of filters.
func Or(filters ...Filter) Filter { return Filter{Op: OpOr, Any: filters} }

// Query selects a page of rows. Filters are AND-combined.
type Query struct {
	Table      string
	Filters    []Filter
	OrderBy    string
	Descending bool
	Offset     int
	// Limit of zero means no limit.
	Limit int
}

// Validate checks columns against the whitelist and paging bounds.
func (q Query) Validate() error {
	if !identifier(q.Table) {
		return fmt.Errorf("%w: table %q", ErrInvalidQuery, q.Table)
	}
	if q.Offset < 0 || q.Limit < 0 {
		return fmt.Errorf("%w: negative offset or limit", ErrInvalidQuery)
	}
	if q.OrderBy != "" && !knownColumn(q.OrderBy) {
		return fmt.Errorf("%w: unknown order column %q", ErrInvalidQuery, q.OrderBy)
	}
	for _, f := range q.Filters {
		if err := f.validate(false); err != nil {
			return err
		}
	}
	return nil
}

func (f Filter) validate(nested bool) error {
	switch f.Op {
	case OpOr:
		if nested {
			return fmt.Errorf("%w: nested or groups", ErrInvalidQuery)
		}
		if len(f.Any) == 0 {
			return fmt.Errorf("%w: empty or group", ErrInvalidQuery)
		}
		for _, a := range f.Any {
			if err := a.validate(true); err != nil {
				return err
			}
		}
		return nil
	case OpEq, OpILike, OpIn:
		if !knownColumn(f.Column) {
			return fmt.Errorf("%w: unknown column %q", ErrInvalidQuery, f.Column)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown operator %d", ErrInvalidQuery, f.Op)
}

// identifier accepts plain SQL identifiers: a letter or underscore followed by
// letters, digits or underscores.
func identifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
