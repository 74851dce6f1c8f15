// Package region maps US states to census regions.
package region

import (
	"sort"
	"strings"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
)

type state struct {
	name   string
	code   string
	region model.Region
}

var states = []state{
	{"Connecticut", "CT", model.RegionNortheast},
	{"Maine", "ME", model.RegionNortheast},
	{"Massachusetts", "MA", model.RegionNortheast},
	{"New Hampshire", "NH", model.RegionNortheast},
	{"Rhode Island", "RI", model.RegionNortheast},
	{"Vermont", "VT", model.RegionNortheast},
	{"New Jersey", "NJ", model.RegionNortheast},
	{"New York", "NY", model.RegionNortheast},
	{"Pennsylvania", "PA", model.RegionNortheast},

	{"Illinois", "IL", model.RegionMidwest},
	{"Indiana", "IN", model.RegionMidwest},
	{"Michigan", "MI", model.RegionMidwest},
	{"Ohio", "OH", model.RegionMidwest},
	{"Wisconsin", "WI", model.RegionMidwest},
	{"Iowa", "IA", model.RegionMidwest},
	{"Kansas", "KS", model.RegionMidwest},
	{"Minnesota", "MN", model.RegionMidwest},
	{"Missouri", "MO", model.RegionMidwest},
	{"Nebraska", "NE", model.RegionMidwest},
	{"North Dakota", "ND", model.RegionMidwest},
	{"South Dakota", "SD", model.RegionMidwest},

	{"Delaware", "DE", model.RegionSouth},
	{"District of Columbia", "DC", model.RegionSouth},
	{"Florida", "FL", model.RegionSouth},
	{"Georgia", "GA", model.RegionSouth},
	{"Maryland", "MD", model.RegionSouth},
	{"North Carolina", "NC", model.RegionSouth},
	{"South Carolina", "SC", model.RegionSouth},
	{"Virginia", "VA", model.RegionSouth},
	{"West Virginia", "WV", model.RegionSouth},
	{"Alabama", "AL", model.RegionSouth},
	{"Kentucky", "KY", model.RegionSouth},
	{"Mississippi", "MS", model.RegionSouth},
	{"Tennessee", "TN", model.RegionSouth},
	{"Arkansas", "AR", model.RegionSouth},
	{"Louisiana", "LA", model.RegionSouth},
	{"Oklahoma", "OK", model.RegionSouth},
	{"Texas", "TX", model.RegionSouth},

	{"Arizona", "AZ", model.RegionWest},
	{"Colorado", "CO", model.RegionWest},
	{"Idaho", "ID", model.RegionWest},
	{"Montana", "MT", model.RegionWest},
	{"Nevada", "NV", model.RegionWest},
	{"New Mexico", "NM", model.RegionWest},
	{"Utah", "UT", model.RegionWest},
	{"Wyoming", "WY", model.RegionWest},
	{"Alaska", "AK", model.RegionWest},
	{"California", "CA", model.RegionWest},
	{"Hawaii", "HI", model.RegionWest},
	{"Oregon", "OR", model.RegionWest},
	{"Washington", "WA", model.RegionWest},
}

// byKey indexes states by lower-cased full name and USPS code.
var byKey = func() map[string]state {
	m := make(map[string]state, len(states)*2)
	for _, s := range states {
		m[strings.ToLower(s.name)] = s
		m[strings.ToLower(s.code)] = s
	}
	return m
}()

// Resolve returns the region for a state given by name or USPS code.
func Resolve(st string) (model.Region, bool) {
	s, ok := byKey[strings.ToLower(strings.TrimSpace(st))]
	if !ok {
		return model.RegionUnknown, false
	}
	return s.region, true
}

// Canonical maps free-text region names onto the canonical set. Anything that
// is not one of the four regions becomes Unknown.
func Canonical(text string) model.Region {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "northeast", "north east":
		return model.RegionNortheast
	case "midwest", "mid west":
		return model.RegionMidwest
	case "south":
		return model.RegionSouth
	case "west":
		return model.RegionWest
	}
	return model.RegionUnknown
}

// CanonicalState returns the full name of a state given by name or code.
func CanonicalState(st string) (string, bool) {
	s, ok := byKey[strings.ToLower(strings.TrimSpace(st))]
	if !ok {
		return "", false
	}
	return s.name, true
}

// States lists the full state names of r in alphabetical order.
func States(r model.Region) []string {
	var out []string
	for _, s := range states {
		if s.region == r {
			out = append(out, s.name)
		}
	}
	sort.Strings(out)
	return out
}

// Code returns the USPS code of a state given by name or code.
func Code(st string) (string, bool) {
	s, ok := byKey[strings.ToLower(strings.TrimSpace(st))]
	if !ok {
		return "", false
	}
	return s.code, true
}
