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

const (
	sheetName      = "Submissions"
	fileMode       = 0o644
	dirPermissions = 0o755
)

// Save writes rows to path in the format its extension names, so that Load
// reads them back.
func Save(path string, rows []model.RawSubmission) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return SaveWorkbook(path, rows)
	case ".json":
		return SaveJSON(path, rows)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// SaveJSON writes rows as an indented JSON array.
func SaveJSON(path string, rows []model.RawSubmission) error {
	if rows == nil {
		rows = []model.RawSubmission{}
	}
	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), fileMode); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

// SaveWorkbook writes rows to a single-sheet workbook headed by the column
// names. Null values become empty cells.
func SaveWorkbook(path string, rows []model.RawSubmission) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		values := make([]any, len(Columns))
		for j, c := range Columns {
			values[j] = field(r, c)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
