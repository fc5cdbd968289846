package report

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/calebward/fueltally/internal/common"
	"github.com/calebward/fueltally/internal/model"
)

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Fuel Consumption Report</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; background-color: #f4f4f9; color: #333; }
h1, h2 { color: #1a202c; }
table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #4A5568; color: white; }
tr:nth-child(even) { background-color: #f2f2f2; }
.round-header { background-color: #2D3748; color: white; padding: 10px; margin-top: 20px; border-radius: 5px; }
.round-header h2 { margin-top: 0; }
.round-header p { margin: 4px 0; }
.total-footer { font-weight: bold; font-size: 1.2em; text-align: right; padding: 15px; background-color: #e2e8f0; margin-top: 20px; }
.ai-justification { margin-top: 8px; padding: 8px; background-color: rgba(255, 255, 255, 0.1); border-left: 3px solid #4fd1c5; font-size: 0.9em; }
</style>
</head>
<body>
<h1>Fuel Consumption Report</h1>
<p>Generated on: {{.GeneratedAt}}</p>
{{range .Rounds}}
<div class="round-header">
<h2>Round: {{.Name}}</h2>
<p><strong>ID:</strong> {{.ID}}</p>
<p><strong>Timestamp:</strong> {{.Timestamp}}</p>
<p><strong>Period:</strong> {{.PeriodFrom}} to {{.PeriodTo}}</p>
<p><strong>Total Fuel for Round: {{.TotalFuel}} Liters</strong></p>
{{if .Justification}}<div class="ai-justification"><strong>AI Reasoning:</strong> <em>{{.Justification}}</em></div>{{end}}
</div>
<table>
<thead>
<tr><th>Equipment</th><th>Category</th><th>Quantity</th><th>Active Hours (per unit)</th><th>Idle Hours (per unit)</th><th>Estimated Fuel (Liters)</th></tr>
</thead>
<tbody>
{{range .Items}}
<tr><td>{{.Name}}</td><td>{{.Category}}</td><td>{{.Quantity}}</td><td>{{.Hours}}</td><td>{{.IdleHours}}</td><td>{{.Fuel}}</td></tr>
{{end}}
</tbody>
</table>
{{end}}
<div class="total-footer">
Grand Total Fuel Consumption: {{.GrandTotal}} Liters
</div>
</body>
</html>
`

var documentTmpl = template.Must(template.New("report").Parse(documentTemplate))

type docItem struct {
	Name      string
	Category  string
	Quantity  int
	Hours     float64
	IdleHours float64
	Fuel      string
}

type docRound struct {
	ID            string
	Name          string
	Timestamp     string
	PeriodFrom    string
	PeriodTo      string
	TotalFuel     string
	Justification string
	Items         []docItem
}

type docView struct {
	GeneratedAt string
	GrandTotal  string
	Rounds      []docRound
}

// ToDocument renders rounds into a self-contained HTML report with the same
// per-round, per-item breakdown as the tabular export plus a closing
// grand-total banner. Callers must not invoke this with an empty round set.
func ToDocument(rounds []model.Round) (string, error) {
	if len(rounds) == 0 {
		return "", common.ErrNothingToExport
	}

	view := docView{
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		GrandTotal:  fmt.Sprintf("%.2f", GrandTotal(rounds)),
	}
	for _, r := range rounds {
		dr := docRound{
			ID:            r.ID,
			Name:          r.Name,
			Timestamp:     r.Timestamp.Format("2006-01-02 15:04:05"),
			PeriodFrom:    r.Period.From.Format("2006-01-02"),
			PeriodTo:      r.Period.To.Format("2006-01-02"),
			TotalFuel:     fmt.Sprintf("%.2f", r.TotalFuel),
			Justification: r.AIJustification,
		}
		for i := range r.Items {
			it := &r.Items[i]
			fuel := "N/A"
			if it.FuelPerUnit != nil {
				fuel = fmt.Sprintf("%.2f", *it.FuelPerUnit*float64(it.Quantity))
			}
			dr.Items = append(dr.Items, docItem{
				Name:      it.Name,
				Category:  it.Category,
				Quantity:  it.Quantity,
				Hours:     it.Hours,
				IdleHours: it.IdleHours,
				Fuel:      fuel,
			})
		}
		view.Rounds = append(view.Rounds, dr)
	}

	var buf strings.Builder
	if err := documentTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render report document: %w", err)
	}
	return buf.String(), nil
}
