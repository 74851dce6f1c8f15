package report

import (
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/aggregate"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/grading"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
)

// DashboardModel is the display model of the salary dashboard: summary
// statistics, the five-point percentile series, the three-way practice
// comparison and the recent-submissions feed.
type DashboardModel struct {
	Filters model.FilterCriteria `json:"filters"`
	aggregate.Stats
}

// ComparisonInput is what the user entered in the "analyze my salary" form.
type ComparisonInput struct {
	// Compensation is the amount as typed, e.g. "$350,000".
	Compensation      string `json:"compensation"`
	Specialty         string `json:"specialty"`
	Subspecialty      string `json:"subspecialty,omitempty"`
	YearsOfExperience int    `json:"years_of_experience"`
	State             string `json:"state,omitempty"`
	Region            string `json:"region,omitempty"`
	PracticeSetting   string `json:"practice_setting,omitempty"`
}

// CareerStage buckets years of experience.
type CareerStage string

// Career stages.
const (
	StageEarly CareerStage = "Early Career"
	StageMid   CareerStage = "Mid Career"
	StageLate  CareerStage = "Late Career"
)

// Average bases report which average the grade was computed against.
const (
	BasisCareerStage = "career_stage"
	BasisCohort      = "cohort"
)

// BottomPercentile marks a value below the cohort's 10th percentile.
const BottomPercentile = "Bottom"

// ComparisonModel is either an error or a full comparison.
type ComparisonModel struct {
	Error string `json:"error,omitempty"`

	UserValue     float64      `json:"user_value,omitempty"`
	CohortAverage int64        `json:"cohort_average,omitempty"`
	AverageBasis  string       `json:"average_basis,omitempty"`
	Percentile    string       `json:"percentile,omitempty"`
	Grade         string       `json:"grade,omitempty"`
	SeverityBand  grading.Band `json:"severity_band,omitempty"`
	Feedback      string       `json:"feedback,omitempty"`
	CohortSize    int          `json:"cohort_size,omitempty"`
	CareerStage   CareerStage  `json:"career_stage,omitempty"`
	Tier          string       `json:"tier,omitempty"`
	TierNote      string       `json:"tier_note,omitempty"`
}

// Failed reports whether the model carries an error instead of a result.
func (m ComparisonModel) Failed() bool { return m.Error != "" }
