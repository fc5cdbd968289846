// Package rate defines the static fuel-rate model. Rates depend only on the
// consumption tier a classifier assigns, never on equipment identity.
package rate

import "strings"

// Tier is a coarse fuel-rate class assigned to an equipment name.
type Tier string

// Consumption tiers.
const (
	TierLow    Tier = "LOW"
	TierMedium Tier = "MEDIUM"
	TierHigh   Tier = "HIGH"
)

// Active-consumption rates in liters per hour. Deliberately conservative:
// all equipment is assumed modern and under light-to-moderate load.
var tierRates = map[Tier]float64{
	TierLow:    2.5,
	TierMedium: 8,
	TierHigh:   15,
}

// IdleRate is the universal idle consumption rate in liters per hour.
const IdleRate = 1.5

// Normalize upper-cases a tier for case-insensitive handling.
func Normalize(t Tier) Tier {
	return Tier(strings.ToUpper(strings.TrimSpace(string(t))))
}

// Valid reports whether t names a known tier, case-insensitively.
func Valid(t Tier) bool {
	_, ok := tierRates[Normalize(t)]
	return ok
}

// Lookup returns the active rate for a tier. Unknown or missing tiers fall
// back to the MEDIUM rate, so a lookup never fails.
func Lookup(t Tier) float64 {
	if r, ok := tierRates[Normalize(t)]; ok {
		return r
	}
	return tierRates[TierMedium]
}
