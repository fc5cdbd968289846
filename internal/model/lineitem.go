package model

import "github.com/google/uuid"

// LineItem is one equipment type in the current selection: quantity, active
// hours and idle hours per unit, plus the derived fuel figures once a
// classification pass has run.
type LineItem struct {
	ID          string
	Name        string
	Category    string
	Quantity    int
	Hours       float64
	IdleHours   float64
	FuelPerUnit *float64
	Rate        *float64
	IdleRate    *float64
}

// NewLineItem creates a selection entry for a catalog equipment type with
// the default usage of one unit for a standard shift.
func NewLineItem(eq Equipment) LineItem {
	return LineItem{
		ID:       uuid.NewString(),
		Name:     eq.Name,
		Category: eq.Category,
		Quantity: 1,
		Hours:    8,
	}
}

// Estimated reports whether a classification pass has populated the derived
// fuel figures.
func (li *LineItem) Estimated() bool {
	return li.FuelPerUnit != nil
}

// ClearEstimate drops the derived fuel figures. Any mutation of quantity,
// hours, or idle hours must call this: the figures are derived, never set
// independently.
func (li *LineItem) ClearEstimate() {
	li.FuelPerUnit = nil
	li.Rate = nil
	li.IdleRate = nil
}

// SetEstimate records the derived fuel figures from one classification pass.
// All three are set together; fuelPerUnit is never present without its rates.
func (li *LineItem) SetEstimate(fuelPerUnit, rate, idleRate float64) {
	li.FuelPerUnit = &fuelPerUnit
	li.Rate = &rate
	li.IdleRate = &idleRate
}

// Clone returns a deep, independent copy of the line item.
func (li LineItem) Clone() LineItem {
	out := li
	if li.FuelPerUnit != nil {
		v := *li.FuelPerUnit
		out.FuelPerUnit = &v
	}
	if li.Rate != nil {
		v := *li.Rate
		out.Rate = &v
	}
	if li.IdleRate != nil {
		v := *li.IdleRate
		out.IdleRate = &v
	}
	return out
}

// CloneItems deep-copies a slice of line items.
func CloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
