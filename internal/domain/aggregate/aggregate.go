// Package aggregate computes dashboard statistics over canonical submissions.
//
// Every metric degrades to zero when its denominator is empty; no metric is
// ever NaN.
package aggregate

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
)

const (
	defaultRecentLimit = 10
	hoursPerDay        = 24
	daysPerWeek        = 7
	daysPerMonth       = 30
)

// PracticeComparison summarises one practice setting.
type PracticeComparison struct {
	Setting             model.PracticeSetting `json:"setting"`
	AverageCompensation int64                 `json:"average_compensation"`
	Count               int                   `json:"count"`
}

// Recent is an entry of the recent-submissions feed.
type Recent struct {
	model.Submission
	TimeAgo string `json:"time_ago"`
}

// Stats is the result of an aggregation.
type Stats struct {
	// FilteredCount counts every record passing the filters.
	FilteredCount int `json:"filtered_count"`
	// TotalSubmissions counts filtered records with compensation > 0.
	TotalSubmissions int `json:"total_submissions"`

	AverageSalary      int64 `json:"average_salary"`
	AverageBase        int64 `json:"average_base"`
	AverageBonus       int64 `json:"average_bonus"`
	AverageOtherIncome int64 `json:"average_other_income"`

	BasePercentage        int `json:"base_percentage"`
	BonusPercentage       int `json:"bonus_percentage"`
	OtherIncomePercentage int `json:"other_income_percentage"`

	AverageHours float64 `json:"average_hours"`
	// SatisfactionPercentage is the share who would choose the specialty again.
	SatisfactionPercentage int `json:"satisfaction_percentage"`
	// AverageSatisfactionLevel is the mean 1..5 rating over rated records.
	AverageSatisfactionLevel float64 `json:"average_satisfaction_level"`

	Percentiles []Percentile         `json:"percentiles"`
	ByPractice  []PracticeComparison `json:"by_practice"`
	Recent      []Recent             `json:"recent"`
}

// Aggregator computes Stats.
type Aggregator struct {
	now         func() time.Time
	recentLimit int
}

// New creates an Aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		now:         time.Now,
		recentLimit: defaultRecentLimit,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate filters records by c and computes every dashboard metric.
func (a *Aggregator) Aggregate(records []model.Submission, c model.FilterCriteria) Stats {
	filtered := Filter(records, c)

	var valid []model.Submission
	var totals, bases, bonuses, others, hours, ratings []float64
	var withBase, withBonus, withOther, again int
	for _, s := range filtered {
		if s.BaseSalary > 0 {
			withBase++
		}
		if s.Bonus > 0 {
			withBonus++
		}
		if s.HoursPerWeek > 0 {
			hours = append(hours, s.HoursPerWeek)
		}
		if s.SatisfactionLevel > 0 {
			ratings = append(ratings, float64(s.SatisfactionLevel))
		}
		if s.WouldChooseAgain {
			again++
		}
		other := otherIncome(s)
		if other > 0 {
			withOther++
		}

		if !s.HasValidCompensation() {
			continue
		}
		valid = append(valid, s)
		totals = append(totals, s.TotalCompensation)
		if s.BaseSalary > 0 {
			bases = append(bases, s.BaseSalary)
		}
		if s.Bonus > 0 {
			bonuses = append(bonuses, s.Bonus)
		}
		if other > 0 {
			others = append(others, other)
		}
	}

	n := len(filtered)
	return Stats{
		FilteredCount:            n,
		TotalSubmissions:         len(valid),
		AverageSalary:            roundDollars(mean(totals)),
		AverageBase:              roundDollars(mean(bases)),
		AverageBonus:             roundDollars(mean(bonuses)),
		AverageOtherIncome:       roundDollars(mean(others)),
		BasePercentage:           percent(withBase, n),
		BonusPercentage:          percent(withBonus, n),
		OtherIncomePercentage:    percent(withOther, n),
		AverageHours:             round1(mean(hours)),
		SatisfactionPercentage:   percent(again, n),
		AverageSatisfactionLevel: round1(mean(ratings)),
		Percentiles:              Distribution(totals),
		ByPractice:               byPractice(valid),
		Recent:                   a.recent(filtered),
	}
}

// otherIncome is total minus base and bonus when all three are reported.
func otherIncome(s model.Submission) float64 {
	if s.TotalCompensation <= 0 || s.BaseSalary <= 0 || s.Bonus <= 0 {
		return 0
	}
	return math.Max(0, s.TotalCompensation-s.BaseSalary-s.Bonus)
}

func byPractice(valid []model.Submission) []PracticeComparison {
	out := make([]PracticeComparison, 0, len(model.ComparablePractices))
	for _, setting := range model.ComparablePractices {
		var totals []float64
		for _, s := range valid {
			if s.PracticeSetting == setting {
				totals = append(totals, s.TotalCompensation)
			}
		}
		out = append(out, PracticeComparison{
			Setting:             setting,
			AverageCompensation: roundDollars(mean(totals)),
			Count:               len(totals),
		})
	}
	return out
}

func (a *Aggregator) recent(filtered []model.Submission) []Recent {
	sorted := make([]model.Submission, len(filtered))
	copy(sorted, filtered)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SubmittedAt.After(sorted[j].SubmittedAt)
	})
	if len(sorted) > a.recentLimit {
		sorted = sorted[:a.recentLimit]
	}

	now := a.now()
	out := make([]Recent, len(sorted))
	for i, s := range sorted {
		out[i] = Recent{Submission: s, TimeAgo: TimeAgo(now, s.SubmittedAt)}
	}
	return out
}

// TimeAgo buckets the age of t relative to now.
func TimeAgo(now, t time.Time) string {
	days := int(now.Sub(t).Hours() / hoursPerDay)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < daysPerWeek:
		return fmt.Sprintf("%dd ago", days)
	case days < daysPerMonth:
		return fmt.Sprintf("%dw ago", days/daysPerWeek)
	default:
		return fmt.Sprintf("%dmo ago", days/daysPerMonth)
	}
}

// Mean returns the arithmetic mean of values, or 0 when there are none.
func Mean(values []float64) float64 {
	return mean(values)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

func percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(count) / float64(total)))
}

func roundDollars(v float64) int64 {
	return int64(math.Round(v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
