package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebward/fueltally/internal/model"
)

func fuel(v float64) *float64 { return &v }

func TestFuelByCategory(t *testing.T) {
	rounds := []model.Round{
		{Items: []model.LineItem{
			{Category: "Earthmoving", Quantity: 2, FuelPerUnit: fuel(50)},
			{Category: "Support", Quantity: 1, FuelPerUnit: fuel(10)},
		}},
		{Items: []model.LineItem{
			{Category: "Support", Quantity: 3, FuelPerUnit: fuel(5)},
			{Category: "Hauling", Quantity: 1, FuelPerUnit: fuel(25)},
			{Category: "Earthmoving", Quantity: 1}, // never estimated
		}},
	}

	got := FuelByCategory(rounds)
	require.Len(t, got, 3)

	assert.Equal(t, "Earthmoving", got[0].Category)
	assert.InDelta(t, 100.0, got[0].TotalFuel, 1e-9)
	assert.Equal(t, "Support", got[1].Category)
	assert.InDelta(t, 25.0, got[1].TotalFuel, 1e-9)
	assert.Equal(t, "Hauling", got[2].Category)
	assert.InDelta(t, 25.0, got[2].TotalFuel, 1e-9)
}

func TestFuelByCategoryTieOrder(t *testing.T) {
	rounds := []model.Round{
		{Items: []model.LineItem{
			{Category: "Support", Quantity: 1, FuelPerUnit: fuel(10)},
			{Category: "Hauling", Quantity: 1, FuelPerUnit: fuel(10)},
		}},
	}

	got := FuelByCategory(rounds)
	require.Len(t, got, 2)
	assert.Equal(t, "Support", got[0].Category)
	assert.Equal(t, "Hauling", got[1].Category)
}

func TestFuelOverTime(t *testing.T) {
	newest := time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)
	oldest := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	// Stored newest-first; the time axis runs oldest-first.
	rounds := []model.Round{
		{Timestamp: newest, TotalFuel: 200},
		{Timestamp: oldest, TotalFuel: 120},
	}

	got := FuelOverTime(rounds)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-03-01 09:30", got[0].Label)
	assert.InDelta(t, 120.0, got[0].TotalFuel, 1e-9)
	assert.Equal(t, "2024-03-08 12:00", got[1].Label)
	assert.InDelta(t, 200.0, got[1].TotalFuel, 1e-9)
}

func TestGrandTotal(t *testing.T) {
	rounds := []model.Round{{TotalFuel: 100.5}, {TotalFuel: 49.5}}
	assert.InDelta(t, 150.0, GrandTotal(rounds), 1e-9)
	assert.Zero(t, GrandTotal(nil))
}
