package report

import (
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/aggregate"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/cohort"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/normalize"
)

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithNormalizer sets the normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(b *Builder) {
		if n != nil {
			b.normalizer = n
		}
	}
}

// WithAggregator sets the aggregator.
func WithAggregator(a *aggregate.Aggregator) Option {
	return func(b *Builder) {
		if a != nil {
			b.aggregator = a
		}
	}
}

// WithMatcher sets the cohort matcher.
func WithMatcher(m *cohort.Matcher) Option {
	return func(b *Builder) {
		if m != nil {
			b.matcher = m
		}
	}
}
