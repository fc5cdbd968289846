package report

import (
	"fmt"

	"github.com/calebward/fueltally/internal/common"
	"github.com/calebward/fueltally/internal/model"
)

// TableHeaders is the column order of the tabular export.
var TableHeaders = []string{
	"Round ID",
	"Round Name",
	"Timestamp",
	"Period From",
	"Period To",
	"Equipment",
	"Category",
	"Quantity",
	"Active Hours (per unit)",
	"Idle Hours (per unit)",
	"Estimated Fuel (Liters)",
	"AI Justification",
}

// ToTabularRows flattens rounds into one row per (round, item) pair,
// followed by a summary row carrying the grand total in the fuel column.
// Callers must not invoke this with an empty round set.
func ToTabularRows(rounds []model.Round) ([][]any, error) {
	if len(rounds) == 0 {
		return nil, common.ErrNothingToExport
	}

	var rows [][]any
	for _, r := range rounds {
		justification := r.AIJustification
		if justification == "" {
			justification = "N/A"
		}
		for i := range r.Items {
			it := &r.Items[i]
			var fuelCell any = "N/A"
			if it.FuelPerUnit != nil {
				fuelCell = *it.FuelPerUnit * float64(it.Quantity)
			}
			rows = append(rows, []any{
				r.ID,
				r.Name,
				r.Timestamp.Format("2006-01-02 15:04:05"),
				r.Period.From.Format("2006-01-02"),
				r.Period.To.Format("2006-01-02"),
				it.Name,
				it.Category,
				it.Quantity,
				it.Hours,
				it.IdleHours,
				fuelCell,
				justification,
			})
		}
	}

	rows = append(rows, []any{
		"", "", "", "", "", "", "", "", "",
		"TOTAL FUEL",
		fmt.Sprintf("%.2f", GrandTotal(rounds)),
		"",
	})

	return rows, nil
}
