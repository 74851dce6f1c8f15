package aggregate

import (
	"strings"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/normalize"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/region"
)

// Matches reports whether s satisfies every constraint set in c.
func Matches(s model.Submission, c model.FilterCriteria) bool {
	if model.IsSet(c.Specialty) && !sameText(s.Specialty, c.Specialty) {
		return false
	}
	if model.IsSet(c.Subspecialty) && !sameText(s.Subspecialty, c.Subspecialty) {
		return false
	}
	if model.IsSet(c.Region) && s.Region != wantRegion(c.Region) {
		return false
	}
	if model.IsSet(c.PracticeSetting) && s.PracticeSetting != normalize.PracticeSetting(c.PracticeSetting) {
		return false
	}
	return true
}

// Filter returns the records matching c, preserving order.
func Filter(records []model.Submission, c model.FilterCriteria) []model.Submission {
	out := make([]model.Submission, 0, len(records))
	for _, s := range records {
		if Matches(s, c) {
			out = append(out, s)
		}
	}
	return out
}

// wantRegion accepts a region name or a state and returns the region to match.
func wantRegion(v string) model.Region {
	if r := region.Canonical(v); r != model.RegionUnknown {
		return r
	}
	if r, ok := region.Resolve(v); ok {
		return r
	}
	return model.RegionUnknown
}

func sameText(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
