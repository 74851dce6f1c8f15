// Package normalize turns raw store rows into canonical submissions.
//
// Normalization never fails: malformed amounts, unknown categories and missing
// fields resolve to defaults because crowd-sourced input cannot be trusted.
package normalize

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/region"
)

const (
	defaultHoursPerWeek = 40
	minSatisfaction     = 1
	maxSatisfaction     = 5
)

// Normalizer converts RawSubmissions into Submissions.
type Normalizer struct {
	now   func() time.Time
	newID func() string
}

// New creates a Normalizer. Ids are synthesized as random UUIDs by default.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// PracticeSetting classifies free text into a canonical practice setting.
// Keywords are checked in order academic, hospital/employed, private; the
// first match wins.
func PracticeSetting(text string) model.PracticeSetting {
	s := strings.ToLower(strings.TrimSpace(text))
	switch {
	case s == "":
		return model.PracticeUnknown
	case strings.Contains(s, "academic"):
		return model.PracticeAcademic
	case strings.Contains(s, "hospital"), strings.Contains(s, "employed"):
		return model.PracticeHospitalEmployed
	case strings.Contains(s, "private"):
		return model.PracticePrivate
	}
	return model.PracticeUnknown
}

// Region derives the region of a row: an explicit, recognised region wins,
// then the state lookup, then Unknown.
func Region(explicit, state string) model.Region {
	if r := region.Canonical(explicit); r != model.RegionUnknown {
		return r
	}
	if r, ok := region.Resolve(state); ok {
		return r
	}
	return model.RegionUnknown
}

// Normalize converts one raw row.
func (n *Normalizer) Normalize(raw model.RawSubmission) model.Submission {
	id := asString(raw.ID)
	if id == "" {
		id = n.newID()
	}

	state := asString(raw.State)
	if full, ok := region.CanonicalState(state); ok {
		state = full
	}

	base := ParseCurrency(raw.BaseSalary)
	bonus := ParseCurrency(raw.BonusIncentives)
	total := ParseCurrency(raw.TotalCompensation)
	if total <= 0 {
		total = base + bonus
	}

	hours := ParseCurrency(raw.HoursPerWeek)
	if hours <= 0 {
		hours = defaultHoursPerWeek
	}

	submitted, ok := asTime(raw.CreatedAt)
	if !ok {
		submitted = n.now()
	}

	return model.Submission{
		ID:                id,
		Specialty:         asString(raw.Specialty),
		Subspecialty:      asString(raw.Subspecialty),
		YearsOfExperience: int(math.Floor(ParseCurrency(raw.YearsOfExperience))),
		City:              asString(raw.City),
		State:             state,
		Region:            Region(asString(raw.GeographicLocation), state),
		PracticeSetting:   PracticeSetting(asString(raw.PracticeSetting)),
		BaseSalary:        base,
		Bonus:             bonus,
		TotalCompensation: total,
		HoursPerWeek:      hours,
		SatisfactionLevel: satisfaction(raw.SatisfactionLevel),
		WouldChooseAgain:  asBool(raw.WouldChooseAgain),
		SubmittedAt:       submitted,
	}
}

// NormalizeAll converts a batch, preserving order.
func (n *Normalizer) NormalizeAll(raws []model.RawSubmission) []model.Submission {
	out := make([]model.Submission, len(raws))
	for i, raw := range raws {
		out[i] = n.Normalize(raw)
	}
	return out
}

// satisfaction returns 0 for unrated rows and clamps ratings to 1..5.
func satisfaction(v any) int {
	f := ParseCurrency(v)
	if f <= 0 {
		return 0
	}
	level := int(math.Round(f))
	return max(minSatisfaction, min(maxSatisfaction, level))
}
