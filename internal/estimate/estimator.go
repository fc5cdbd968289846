// Package estimate computes per-unit and aggregate fuel consumption from
// tier assignments. All functions are pure and total for finite non-negative
// inputs; selection updates clamp negatives before anything reaches here.
package estimate

import (
	"github.com/calebward/fueltally/internal/model"
	"github.com/calebward/fueltally/internal/rate"
)

// Result carries the derived fuel figures for one line item.
type Result struct {
	FuelPerUnit float64
	Rate        float64
	IdleRate    float64
}

// Estimate computes the per-unit fuel for one line item at the given tier:
// active hours at the tier rate plus idle hours at the universal idle rate.
func Estimate(item model.LineItem, tier rate.Tier) Result {
	r := rate.Lookup(tier)
	return Result{
		FuelPerUnit: item.Hours*r + item.IdleHours*rate.IdleRate,
		Rate:        r,
		IdleRate:    rate.IdleRate,
	}
}

// AggregateRoundTotal sums per-unit fuel times quantity across a snapshot.
// Round.TotalFuel at record time and every reporting path use this one
// formula; items without an estimate contribute nothing.
func AggregateRoundTotal(items []model.LineItem) float64 {
	var total float64
	for i := range items {
		if items[i].FuelPerUnit != nil {
			total += *items[i].FuelPerUnit * float64(items[i].Quantity)
		}
	}
	return total
}
