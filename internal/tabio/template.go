package tabio

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Template workbook sheet names.
const (
	TemplateInstructionsSheet = "Instructions"
	TemplateDataSheet         = "EquipmentData"
)

var templateInstructions = [][]any{
	{"Instructions for Filling Out the Template"},
	{},
	{"1. Sheet 'EquipmentData'"},
	{"   - This is where you should input your equipment usage data."},
	{},
	{"2. Column 'Round Name' (Optional)"},
	{"   - If all rows in the file belong to the same round, you can put the name here."},
	{"   - The app will use the first non-empty name it finds in this column."},
	{},
	{"3. Column 'Grouping'"},
	{"   - Enter the equipment name. The AI is smart enough to handle variations like 'TELEHANDLERS [115-0023]' or just 'Telehandler'."},
	{},
	{"4. Columns 'Active hours' and 'Idling hours'"},
	{"   - Enter the duration of work."},
	{"   - Use formats like 'HH:MM:SS' (e.g., '4:12:29') or include days: 'X days HH:MM:SS' (e.g., '1 days 10:15:04')."},
	{},
	{"5. Multiple Sheets"},
	{"   - You can include multiple sheets with the same format. The AI will read and combine the data from all of them."},
}

var templateData = [][]any{
	{"Round Name", "Grouping", "Active hours", "Idling hours"},
	{"Site Alpha - Week 34", "TELEHANDLERS [115-0023]", "4:12:29", "8:25:10"},
	{"Site Alpha - Week 34", "SKID_STEER [119-0023]", "1 days 8:08:33", "3 days 2:31:32"},
	{"", "BACKHOE_LOADER [109-0007]", "3:22:16", "11:46:09"},
	{"", "COMPACTOR [127-0021]", "0:02:14", "3:32:12"},
	{"", "TOWER_LIGHTS", "0:00:00", "1:46:48"},
}

// WriteTemplate writes the two-sheet import template workbook: one sheet of
// instructions, one of example data.
func WriteTemplate(path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", TemplateInstructionsSheet); err != nil {
		return fmt.Errorf("failed to name instructions sheet: %w", err)
	}
	if _, err := f.NewSheet(TemplateDataSheet); err != nil {
		return fmt.Errorf("failed to create data sheet: %w", err)
	}

	if err := writeRows(f, TemplateInstructionsSheet, templateInstructions); err != nil {
		return err
	}
	if err := writeRows(f, TemplateDataSheet, templateData); err != nil {
		return err
	}

	if err := f.SetColWidth(TemplateInstructionsSheet, "A", "A", 80); err != nil {
		return fmt.Errorf("failed to size instructions column: %w", err)
	}
	for col, width := range map[string]float64{"A": 25, "B": 30, "C": 20, "D": 20} {
		if err := f.SetColWidth(TemplateDataSheet, col, col, width); err != nil {
			return fmt.Errorf("failed to size data column %s: %w", col, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i := range rows {
		if len(rows[i]) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
