package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
)

// headerAliases maps normalized spreadsheet headers to columns.
var headerAliases = map[string]string{
	"id":                  ColID,
	"submission_id":       ColID,
	"specialty":           ColSpecialty,
	"subspecialty":        ColSubspecialty,
	"sub_specialty":       ColSubspecialty,
	"years_of_experience": ColYearsOfExperience,
	"years_experience":    ColYearsOfExperience,
	"experience":          ColYearsOfExperience,
	"years":               ColYearsOfExperience,
	"yoe":                 ColYearsOfExperience,
	"city":                ColCity,
	"state":               ColState,
	"geographic_location": ColGeographicLocation,
	"region":              ColGeographicLocation,
	"location":            ColGeographicLocation,
	"practice_setting":    ColPracticeSetting,
	"practice_type":       ColPracticeSetting,
	"practice":            ColPracticeSetting,
	"setting":             ColPracticeSetting,
	"base_salary":         ColBaseSalary,
	"base":                ColBaseSalary,
	"salary":              ColBaseSalary,
	"bonus_incentives":    ColBonusIncentives,
	"bonus":               ColBonusIncentives,
	"incentives":          ColBonusIncentives,
	"total_compensation":  ColTotalCompensation,
	"total_comp":          ColTotalCompensation,
	"total":               ColTotalCompensation,
	"compensation":        ColTotalCompensation,
	"hours_per_week":      ColHoursPerWeek,
	"hours":               ColHoursPerWeek,
	"weekly_hours":        ColHoursPerWeek,
	"satisfaction_level":  ColSatisfactionLevel,
	"satisfaction":        ColSatisfactionLevel,
	"would_choose_again":  ColWouldChooseAgain,
	"choose_again":        ColWouldChooseAgain,
	"created_at":          ColCreatedAt,
	"submitted_at":        ColCreatedAt,
	"timestamp":           ColCreatedAt,
	"date":                ColCreatedAt,
}

// Load reads a dataset file, choosing the reader by extension.
func Load(path string) ([]model.RawSubmission, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadWorkbook(path)
	case ".json":
		return LoadJSON(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// LoadJSON reads a JSON array of submissions.
func LoadJSON(path string) ([]model.RawSubmission, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var rows []model.RawSubmission
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrUnsupportedFormat, path, err)
	}
	return rows, nil
}

// LoadWorkbook reads the first sheet of an .xlsx file. The first row is the
// header; columns are matched by name, unrecognised columns are skipped and
// empty cells stay null.
func LoadWorkbook(path string) ([]model.RawSubmission, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s has no sheets", ErrUnsupportedFormat, path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return fromRows(rows), nil
}

func fromRows(rows [][]string) []model.RawSubmission {
	if len(rows) == 0 {
		return nil
	}
	columns := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		columns[i] = headerAliases[headerKey(h)]
	}

	out := make([]model.RawSubmission, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var r model.RawSubmission
		empty := true
		for i, cell := range row {
			if i >= len(columns) || columns[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			setField(&r, columns[i], cell)
			empty = false
		}
		if !empty {
			out = append(out, r)
		}
	}
	return out
}

// headerKey lowercases h and collapses runs of non-alphanumerics to "_".
func headerKey(h string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			sep = false
			continue
		}
		sep = true
	}
	return b.String()
}
