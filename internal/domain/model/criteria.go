package model

import "strings"

// FilterCriteria narrows a record set. Zero values mean "no constraint";
// values are compared case-insensitively. Build a fresh value per request.
type FilterCriteria struct {
	Specialty       string `json:"specialty,omitempty"`
	Subspecialty    string `json:"subspecialty,omitempty"`
	Region          string `json:"region,omitempty"`
	PracticeSetting string `json:"practice_setting,omitempty"`
}

// IsSet reports whether v constrains a filter. Blank and "all" do not.
func IsSet(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, "all")
}

// Profile describes the physician asking for a comparison.
type Profile struct {
	Compensation      float64
	Specialty         string
	Subspecialty      string
	YearsOfExperience int
	State             string
	Region            Region
	PracticeSetting   PracticeSetting
}
