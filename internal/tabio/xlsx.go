// Package tabio reads and writes the workbook formats the application
// exchanges. It owns no domain logic: files in, key/value rows out, and
// row-sets or markup back to files.
package tabio

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/calebward/fueltally/internal/model"
)

// ParseWorkbook reads every sheet of an .xlsx file and concatenates the data
// rows as key/value maps keyed by each sheet's header row. Sheets without a
// header and fully empty rows are skipped.
func ParseWorkbook(path string) ([]model.ImportedRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	var all []model.ImportedRow
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		if len(rows) < 2 {
			continue
		}

		headers := rows[0]
		for _, cells := range rows[1:] {
			row := make(model.ImportedRow, len(headers))
			empty := true
			for j, header := range headers {
				if strings.TrimSpace(header) == "" {
					continue
				}
				var value string
				if j < len(cells) {
					value = cells[j]
				}
				if strings.TrimSpace(value) != "" {
					empty = false
				}
				row[header] = value
			}
			if !empty {
				all = append(all, row)
			}
		}
	}

	return all, nil
}

// WriteTable writes a single-sheet workbook with the given header row and
// data rows.
func WriteTable(headers []string, rows [][]any, sheet, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerCells := make([]any, len(headers))
	for i, h := range headers {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// WriteDocument writes a self-contained markup document to disk.
func WriteDocument(markup, path string) error {
	if err := os.WriteFile(path, []byte(markup), 0o600); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}
