package repository

import (
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
)

// Columns of the submissions table. Only these may appear in filters, sorts
// or generated SQL.
const (
	ColID                 = "id"
	ColSpecialty          = "specialty"
	ColSubspecialty       = "subspecialty"
	ColYearsOfExperience  = "years_of_experience"
	ColCity               = "city"
	ColState              = "state"
	ColGeographicLocation = "geographic_location"
	ColPracticeSetting    = "practice_setting"
	ColBaseSalary         = "base_salary"
	ColBonusIncentives    = "bonus_incentives"
	ColTotalCompensation  = "total_compensation"
	ColHoursPerWeek       = "hours_per_week"
	ColSatisfactionLevel  = "satisfaction_level"
	ColWouldChooseAgain   = "would_choose_again"
	ColCreatedAt          = "created_at"
)

// Columns lists every known column in table order.
var Columns = []string{
	ColID, ColSpecialty, ColSubspecialty, ColYearsOfExperience, ColCity, ColState,
	ColGeographicLocation, ColPracticeSetting, ColBaseSalary, ColBonusIncentives,
	ColTotalCompensation, ColHoursPerWeek, ColSatisfactionLevel, ColWouldChooseAgain,
	ColCreatedAt,
}

func knownColumn(c string) bool {
	for _, k := range Columns {
		if k == c {
			return true
		}
	}
	return false
}

// field returns the raw value stored under column.
func field(r model.RawSubmission, column string) any {
	switch column {
	case ColID:
		return r.ID
	case ColSpecialty:
		return r.Specialty
	case ColSubspecialty:
		return r.Subspecialty
	case ColYearsOfExperience:
		return r.YearsOfExperience
	case ColCity:
		return r.City
	case ColState:
		return r.State
	case ColGeographicLocation:
		return r.GeographicLocation
	case ColPracticeSetting:
		return r.PracticeSetting
	case ColBaseSalary:
		return r.BaseSalary
	case ColBonusIncentives:
		return r.BonusIncentives
	case ColTotalCompensation:
		return r.TotalCompensation
	case ColHoursPerWeek:
		return r.HoursPerWeek
	case ColSatisfactionLevel:
		return r.SatisfactionLevel
	case ColWouldChooseAgain:
		return r.WouldChooseAgain
	case ColCreatedAt:
		return r.CreatedAt
	}
	return nil
}

// setField stores v under column; unknown columns are ignored.
func setField(r *model.RawSubmission, column string, v any) {
	switch column {
	case ColID:
		r.ID = v
	case ColSpecialty:
		r.Specialty = v
	case ColSubspecialty:
		r.Subspecialty = v
	case ColYearsOfExperience:
		r.YearsOfExperience = v
	case ColCity:
		r.City = v
	case ColState:
		r.State = v
	case ColGeographicLocation:
		r.GeographicLocation = v
	case ColPracticeSetting:
		r.PracticeSetting = v
	case ColBaseSalary:
		r.BaseSalary = v
	case ColBonusIncentives:
		r.BonusIncentives = v
	case ColTotalCompensation:
		r.TotalCompensation = v
	case ColHoursPerWeek:
		r.HoursPerWeek = v
	case ColSatisfactionLevel:
		r.SatisfactionLevel = v
	case ColWouldChooseAgain:
		r.WouldChooseAgain = v
	case ColCreatedAt:
		r.CreatedAt = v
	}
}
