// Package report assembles the display models consumed by the presentation
// layer: the salary dashboard and the personalized comparison.
package report

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/aggregate"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/cohort"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/grading"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/normalize"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/region"
)

// Career stage boundaries in years of experience.
const (
	midCareerYears  = 5
	lateCareerYears = 15
)

// Builder orchestrates normalization, aggregation, cohort matching and
// grading.
type Builder struct {
	normalizer *normalize.Normalizer
	aggregator *aggregate.Aggregator
	matcher    *cohort.Matcher
}

// New creates a Builder with default components.
func New(opts ...Option) *Builder {
	b := &Builder{
		normalizer: normalize.New(),
		aggregator: aggregate.New(),
		matcher:    cohort.New(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Normalize exposes the builder's normalizer for callers holding raw rows.
func (b *Builder) Normalize(raws []model.RawSubmission) []model.Submission {
	return b.normalizer.NormalizeAll(raws)
}

// Dashboard normalizes raws and aggregates them under c.
func (b *Builder) Dashboard(raws []model.RawSubmission, c model.FilterCriteria) DashboardModel {
	return b.DashboardFromRecords(b.Normalize(raws), c)
}

// DashboardFromRecords aggregates already normalized records.
func (b *Builder) DashboardFromRecords(records []model.Submission, c model.FilterCriteria) DashboardModel {
	return DashboardModel{
		Filters: c,
		Stats:   b.aggregator.Aggregate(records, c),
	}
}

// Compare normalizes raws and runs the personalized comparison. Failures are
// reported in the model's Error field.
func (b *Builder) Compare(in ComparisonInput, raws []model.RawSubmission) ComparisonModel {
	m, _ := b.Analyze(in, b.Normalize(raws))
	return m
}

// Analyze runs the comparison over normalized records. On failure the
// returned model carries the user-facing message and err carries the kind
// (ErrInvalidInput, cohort.ErrInsufficientData).
func (b *Builder) Analyze(in ComparisonInput, records []model.Submission) (ComparisonModel, error) {
	p, err := ProfileFrom(in)
	if err != nil {
		return failure(err), err
	}

	c, err := b.matcher.Find(p, records)
	if err != nil {
		if errors.Is(err, cohort.ErrInsufficientData) {
			msg := fmt.Sprintf("Not enough data to compare your compensation yet. We need at least %d %s submissions.",
				b.matcher.MinSize(), p.Specialty)
			return ComparisonModel{Error: msg}, err
		}
		return failure(err), err
	}

	stage := StageFor(p.YearsOfExperience)
	average, basis := b.comparisonAverage(c, stage)

	g, err := grading.Grade(p.Compensation, average)
	if err != nil {
		return failure(err), err
	}

	return ComparisonModel{
		UserValue:     p.Compensation,
		CohortAverage: int64(math.Round(average)),
		AverageBasis:  basis,
		Percentile:    PercentileOf(p.Compensation, c.Compensations()),
		Grade:         g.Grade,
		SeverityBand:  g.Band,
		Feedback:      g.Feedback,
		CohortSize:    c.Size(),
		CareerStage:   stage,
		Tier:          c.Tier.String(),
		TierNote:      tierNote(c),
	}, nil
}

// comparisonAverage prefers the average of cohort members in the same career
// stage when there are enough of them.
func (b *Builder) comparisonAverage(c cohort.Cohort, stage CareerStage) (float64, string) {
	var totals []float64
	for _, s := range c.Records {
		if StageFor(s.YearsOfExperience) == stage {
			totals = append(totals, s.TotalCompensation)
		}
	}
	if len(totals) >= b.matcher.MinSize() {
		return aggregate.Mean(totals), BasisCareerStage
	}
	return c.Average(), BasisCohort
}

// ProfileFrom validates user input and converts it into a profile.
func ProfileFrom(in ComparisonInput) (model.Profile, error) {
	comp := normalize.ParseCurrency(in.Compensation)
	switch {
	case comp <= 0:
		return model.Profile{}, fmt.Errorf("%w: please enter a valid compensation amount greater than zero", ErrInvalidInput)
	case strings.TrimSpace(in.Specialty) == "":
		return model.Profile{}, fmt.Errorf("%w: please select a specialty", ErrInvalidInput)
	case in.YearsOfExperience < 0:
		return model.Profile{}, fmt.Errorf("%w: years of experience cannot be negative", ErrInvalidInput)
	}

	p := model.Profile{
		Compensation:      comp,
		Specialty:         strings.TrimSpace(in.Specialty),
		Subspecialty:      strings.TrimSpace(in.Subspecialty),
		YearsOfExperience: in.YearsOfExperience,
		State:             strings.TrimSpace(in.State),
		Region:            normalize.Region(in.Region, in.State),
		PracticeSetting:   normalize.PracticeSetting(in.PracticeSetting),
	}
	if full, ok := region.CanonicalState(p.State); ok {
		p.State = full
	}
	return p, nil
}

// StageFor buckets years of experience: under 5 is early, 5 to 14 mid, 15 and
// over late career.
func StageFor(years int) CareerStage {
	switch {
	case years < midCareerYears:
		return StageEarly
	case years < lateCareerYears:
		return StageMid
	default:
		return StageLate
	}
}

// PercentileOf places value against the nearest-rank distribution of
// compensations: the highest reported rank whose value it reaches, or
// BottomPercentile below the 10th.
func PercentileOf(value float64, compensations []float64) string {
	sorted := make([]float64, len(compensations))
	copy(sorted, compensations)
	sort.Float64s(sorted)

	for i := len(aggregate.Ranks) - 1; i >= 0; i-- {
		p := aggregate.Ranks[i]
		if len(sorted) > 0 && value >= aggregate.NearestRank(sorted, p) {
			return fmt.Sprintf("%dth", p)
		}
	}
	return BottomPercentile
}

func tierNote(c cohort.Cohort) string {
	if c.Note != "" {
		return c.Note
	}
	return c.Tier.Description()
}

func failure(err error) ComparisonModel {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 && errors.Is(err, ErrInvalidInput) {
		msg = msg[i+2:]
	}
	if msg != "" {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}
	return ComparisonModel{Error: msg}
}
