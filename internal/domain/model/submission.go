// Package model contains domain models passed between layers.
package model

import "time"

// RawSubmission is one row as delivered by the record store. Every field is
// optional and loosely typed: amounts may be numbers or formatted strings and
// categorical fields carry whatever the submitter typed.
type RawSubmission struct {
	ID                 any `json:"id,omitempty"`
	Specialty          any `json:"specialty,omitempty"`
	Subspecialty       any `json:"subspecialty,omitempty"`
	YearsOfExperience  any `json:"years_of_experience,omitempty"`
	City               any `json:"city,omitempty"`
	State              any `json:"state,omitempty"`
	GeographicLocation any `json:"geographic_location,omitempty"`
	PracticeSetting    any `json:"practice_setting,omitempty"`
	BaseSalary         any `json:"base_salary,omitempty"`
	BonusIncentives    any `json:"bonus_incentives,omitempty"`
	TotalCompensation  any `json:"total_compensation,omitempty"`
	HoursPerWeek       any `json:"hours_per_week,omitempty"`
	SatisfactionLevel  any `json:"satisfaction_level,omitempty"`
	WouldChooseAgain   any `json:"would_choose_again,omitempty"`
	CreatedAt          any `json:"created_at,omitempty"`
}

// PracticeSetting is the canonical practice setting of a submission.
type PracticeSetting string

// Canonical practice settings.
const (
	PracticeAcademic         PracticeSetting = "Academic"
	PracticeHospitalEmployed PracticeSetting = "Hospital Employed"
	PracticePrivate          PracticeSetting = "Private Practice"
	PracticeUnknown          PracticeSetting = "Unknown"
)

// ComparablePractices lists the settings reported in practice comparisons, in
// display order.
var ComparablePractices = []PracticeSetting{
	PracticeAcademic,
	PracticeHospitalEmployed,
	PracticePrivate,
}

// Region is a census-style US region.
type Region string

// Canonical regions.
const (
	RegionNortheast Region = "Northeast"
	RegionMidwest   Region = "Midwest"
	RegionSouth     Region = "South"
	RegionWest      Region = "West"
	RegionUnknown   Region = "Unknown"
)

// Submission is a normalized, fully typed salary submission. Values are never
// mutated after normalization.
type Submission struct {
	ID                string          `json:"id"`
	Specialty         string          `json:"specialty"`
	Subspecialty      string          `json:"subspecialty,omitempty"`
	YearsOfExperience int             `json:"years_of_experience"`
	City              string          `json:"city,omitempty"`
	State             string          `json:"state,omitempty"`
	Region            Region          `json:"region"`
	PracticeSetting   PracticeSetting `json:"practice_setting"`
	BaseSalary        float64         `json:"base_salary"`
	Bonus             float64         `json:"bonus"`
	TotalCompensation float64         `json:"total_compensation"`
	HoursPerWeek      float64         `json:"hours_per_week"`
	// SatisfactionLevel is 1..5, or 0 when the submitter did not rate.
	SatisfactionLevel int       `json:"satisfaction_level"`
	WouldChooseAgain  bool      `json:"would_choose_again"`
	SubmittedAt       time.Time `json:"submitted_at"`
}

// HasValidCompensation reports whether the record may contribute to
// compensation statistics.
func (s Submission) HasValidCompensation() bool {
	return s.TotalCompensation > 0
}
