// Package report folds recorded rounds into summary views and serializes
// them for export.
package report

import (
	"sort"

	"github.com/calebward/fueltally/internal/model"
)

// CategoryTotal is the summed fuel for one equipment category.
type CategoryTotal struct {
	Category  string
	TotalFuel float64
}

// TimePoint is one round's total on the time axis.
type TimePoint struct {
	Label     string
	TotalFuel float64
}

// FuelByCategory sums fuel across all items of all rounds, grouped by
// category and sorted descending by total. Ties keep first-seen order.
func FuelByCategory(rounds []model.Round) []CategoryTotal {
	totals := make(map[string]float64)
	var order []string
	for _, r := range rounds {
		for i := range r.Items {
			it := &r.Items[i]
			if it.FuelPerUnit == nil {
				continue
			}
			if _, seen := totals[it.Category]; !seen {
				order = append(order, it.Category)
			}
			totals[it.Category] += *it.FuelPerUnit * float64(it.Quantity)
		}
	}

	out := make([]CategoryTotal, len(order))
	for i, cat := range order {
		out[i] = CategoryTotal{Category: cat, TotalFuel: totals[cat]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalFuel > out[j].TotalFuel
	})
	return out
}

// FuelOverTime returns one point per round in chronological order. Rounds
// are stored newest-first, so this is a reversal, not a sort.
func FuelOverTime(rounds []model.Round) []TimePoint {
	out := make([]TimePoint, len(rounds))
	for i, r := range rounds {
		out[len(rounds)-1-i] = TimePoint{
			Label:     r.Timestamp.Format("2006-01-02 15:04"),
			TotalFuel: r.TotalFuel,
		}
	}
	return out
}

// GrandTotal sums the fixed totals of all rounds.
func GrandTotal(rounds []model.Round) float64 {
	var total float64
	for _, r := range rounds {
		total += r.TotalFuel
	}
	return total
}
