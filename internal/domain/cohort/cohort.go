// Package cohort finds the peer group a physician is compared against.
//
// The search relaxes its filters tier by tier until a cohort of at least the
// minimum size is found. It never synthesizes data: when every tier is too
// small it reports ErrInsufficientData.
package cohort

import (
	"fmt"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/aggregate"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/region"
)

// DefaultMinSize is the smallest cohort whose average is reported.
const DefaultMinSize = 3

// Tier identifies how far the search had to relax.
type Tier int

// Relaxation tiers, strictest first.
const (
	TierExact Tier = iota + 1
	TierWithoutSubspecialty
	TierSpecialtyOnly
	TierInsufficient
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierWithoutSubspecialty:
		return "specialty_region_practice"
	case TierSpecialtyOnly:
		return "specialty_only"
	case TierInsufficient:
		return "insufficient"
	}
	return "unknown"
}

// Description is a human-readable account of the tier.
func (t Tier) Description() string {
	switch t {
	case TierExact:
		return "Exact match on specialty, subspecialty, region and practice setting"
	case TierWithoutSubspecialty:
		return "Specialty match in your region and practice setting"
	case TierSpecialtyOnly:
		return "Specialty match nationwide"
	}
	return "Insufficient data"
}

// Cohort is a request-scoped peer group.
type Cohort struct {
	Records []model.Submission
	Tier    Tier
	// Note explains a relaxation to the end user; empty for exact matches.
	Note string
}

// Size returns the number of peers.
func (c Cohort) Size() int { return len(c.Records) }

// Average returns the mean total compensation of the cohort.
func (c Cohort) Average() float64 {
	totals := make([]float64, len(c.Records))
	for i, s := range c.Records {
		totals[i] = s.TotalCompensation
	}
	return aggregate.Mean(totals)
}

// Compensations returns the cohort's total compensation values.
func (c Cohort) Compensations() []float64 {
	out := make([]float64, len(c.Records))
	for i, s := range c.Records {
		out[i] = s.TotalCompensation
	}
	return out
}

// Matcher runs the tiered search.
type Matcher struct {
	minSize int
}

// New creates a Matcher.
func New(opts ...Option) *Matcher {
	m := &Matcher{minSize: DefaultMinSize}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MinSize returns the configured minimum cohort size.
func (m *Matcher) MinSize() int { return m.minSize }

type attempt struct {
	tier     Tier
	criteria model.FilterCriteria
	note     string
}

// Find returns the first tier with at least MinSize peers. Only records with
// a positive total compensation are considered, so a returned cohort always
// has a positive average.
func (m *Matcher) Find(p model.Profile, records []model.Submission) (Cohort, error) {
	valid := make([]model.Submission, 0, len(records))
	for _, s := range records {
		if s.HasValidCompensation() {
			valid = append(valid, s)
		}
	}

	var tried []model.FilterCriteria
	for _, a := range m.plan(p) {
		if contains(tried, a.criteria) {
			continue
		}
		tried = append(tried, a.criteria)

		peers := aggregate.Filter(valid, a.criteria)
		if len(peers) >= m.minSize {
			return Cohort{Records: peers, Tier: a.tier, Note: a.note}, nil
		}
	}
	return Cohort{Tier: TierInsufficient}, fmt.Errorf("%w: fewer than %d %s submissions at every tier",
		ErrInsufficientData, m.minSize, p.Specialty)
}

func (m *Matcher) plan(p model.Profile) []attempt {
	full := model.FilterCriteria{
		Specialty:       p.Specialty,
		Subspecialty:    p.Subspecialty,
		Region:          profileRegion(p),
		PracticeSetting: profilePractice(p),
	}

	plan := []attempt{{tier: TierExact, criteria: full}}
	if model.IsSet(p.Subspecialty) {
		broadened := full
		broadened.Subspecialty = ""
		plan = append(plan, attempt{
			tier:     TierWithoutSubspecialty,
			criteria: broadened,
			note: fmt.Sprintf("Too few %s submissions matched; showing all %s physicians in your region and practice setting.",
				p.Subspecialty, p.Specialty),
		})
	}
	plan = append(plan, attempt{
		tier:     TierSpecialtyOnly,
		criteria: model.FilterCriteria{Specialty: p.Specialty},
		note:     fmt.Sprintf("Limited data for your region and practice setting; comparing with all %s physicians nationwide.", p.Specialty),
	})
	return plan
}

func profileRegion(p model.Profile) string {
	if p.Region != "" && p.Region != model.RegionUnknown {
		return string(p.Region)
	}
	if r, ok := region.Resolve(p.State); ok {
		return string(r)
	}
	return ""
}

func profilePractice(p model.Profile) string {
	if p.PracticeSetting == model.PracticeUnknown {
		return ""
	}
	return string(p.PracticeSetting)
}

func contains(list []model.FilterCriteria, c model.FilterCriteria) bool {
	for _, x := range list {
		if x == c {
			return true
		}
	}
	return false
}
