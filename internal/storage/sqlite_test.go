package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebward/fueltally/internal/common"
	"github.com/calebward/fueltally/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "fueltally.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func estimatedItem(name, category string, fuelPerUnit float64) model.LineItem {
	item := model.NewLineItem(model.Equipment{Name: name, Category: category})
	item.SetEstimate(fuelPerUnit, 8, 1.5)
	return item
}

func TestSelectionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	items := []model.LineItem{
		estimatedItem("Bulldozer", "Earthmoving", 153),
		model.NewLineItem(model.Equipment{Name: "Light Tower", Category: "Power & Light"}),
	}
	items[1].Quantity = 3
	items[1].IdleHours = 4.5

	require.NoError(t, store.SaveSelection(ctx, items))

	got, err := store.GetSelection(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, items[0].ID, got[0].ID)
	assert.Equal(t, "Bulldozer", got[0].Name)
	require.NotNil(t, got[0].FuelPerUnit)
	assert.InDelta(t, 153.0, *got[0].FuelPerUnit, 1e-9)
	require.NotNil(t, got[0].Rate)
	assert.InDelta(t, 8.0, *got[0].Rate, 1e-9)

	assert.Equal(t, "Light Tower", got[1].Name)
	assert.Equal(t, 3, got[1].Quantity)
	assert.InDelta(t, 4.5, got[1].IdleHours, 1e-9)
	assert.Nil(t, got[1].FuelPerUnit)
}

func TestSaveSelectionReplaces(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveSelection(ctx, []model.LineItem{
		model.NewLineItem(model.Equipment{Name: "Water Pump", Category: "Support"}),
	}))
	require.NoError(t, store.SaveSelection(ctx, []model.LineItem{
		model.NewLineItem(model.Equipment{Name: "Bulldozer", Category: "Earthmoving"}),
	}))

	got, err := store.GetSelection(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bulldozer", got[0].Name)
}

func TestClearSelection(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveSelection(ctx, []model.LineItem{
		model.NewLineItem(model.Equipment{Name: "Bulldozer", Category: "Earthmoving"}),
	}))
	require.NoError(t, store.ClearSelection(ctx))

	got, err := store.GetSelection(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func testRound(name string, recordedAt time.Time) model.Round {
	return model.Round{
		ID:   "R-" + uuid.NewString()[:8],
		Name: name,
		Period: model.Period{
			From: recordedAt.AddDate(0, 0, -7),
			To:   recordedAt,
		},
		Items:           []model.LineItem{estimatedItem("Bulldozer", "Earthmoving", 153)},
		TotalFuel:       153,
		Timestamp:       recordedAt,
		AIJustification: "heavy earthmoving",
	}
}

func TestRoundRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	older := testRound("Week 13", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	newer := testRound("Week 14", time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC))
	require.NoError(t, store.SaveRound(ctx, older))
	require.NoError(t, store.SaveRound(ctx, newer))

	rounds, err := store.GetRounds(ctx)
	require.NoError(t, err)
	require.Len(t, rounds, 2)

	// Newest first.
	assert.Equal(t, "Week 14", rounds[0].Name)
	assert.Equal(t, "Week 13", rounds[1].Name)

	got := rounds[0]
	assert.Equal(t, newer.ID, got.ID)
	assert.InDelta(t, 153.0, got.TotalFuel, 1e-9)
	assert.Equal(t, "heavy earthmoving", got.AIJustification)
	assert.True(t, got.Timestamp.Equal(newer.Timestamp))
	assert.True(t, got.Period.From.Equal(newer.Period.From))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Bulldozer", got.Items[0].Name)
	require.NotNil(t, got.Items[0].FuelPerUnit)
	assert.InDelta(t, 153.0, *got.Items[0].FuelPerUnit, 1e-9)
}

func TestDeleteRound(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	round := testRound("Week 14", time.Now().UTC())
	require.NoError(t, store.SaveRound(ctx, round))
	require.NoError(t, store.DeleteRound(ctx, round.ID))

	rounds, err := store.GetRounds(ctx)
	require.NoError(t, err)
	assert.Empty(t, rounds)

	assert.ErrorIs(t, store.DeleteRound(ctx, round.ID), common.ErrNotFound)
}

func TestActivityLog(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first := model.LogEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC),
		Level:     model.LogInfo,
		Message:   "Imported 12 rows",
	}
	second := model.LogEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Date(2024, 3, 8, 12, 5, 0, 0, time.UTC),
		Level:     model.LogSuccess,
		Message:   "Recorded round R-abc123",
	}
	require.NoError(t, store.AppendLog(ctx, first))
	require.NoError(t, store.AppendLog(ctx, second))

	entries, err := store.GetLog(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Imported 12 rows", entries[0].Message)
	assert.Equal(t, model.LogSuccess, entries[1].Level)

	require.NoError(t, store.ClearLog(ctx))
	entries, err = store.GetLog(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSessionState(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	got, err := store.GetState(ctx, StateRoundName)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.SetState(ctx, StateRoundName, "Week 14"))
	require.NoError(t, store.SetState(ctx, StateRoundName, "Week 15"))

	got, err = store.GetState(ctx, StateRoundName)
	require.NoError(t, err)
	assert.Equal(t, "Week 15", got)

	require.NoError(t, store.ClearState(ctx))
	got, err = store.GetState(ctx, StateRoundName)
	require.NoError(t, err)
	assert.Empty(t, got)
}
