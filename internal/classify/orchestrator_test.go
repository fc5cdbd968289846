package classify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebward/fueltally/internal/common"
	"github.com/calebward/fueltally/internal/llm"
	"github.com/calebward/fueltally/internal/model"
)

type mockClient struct {
	tierResp llm.TierResponse
	tierErr  error
	prompts  []string
}

func (m *mockClient) ClassifyTiers(_ context.Context, prompt string) (llm.TierResponse, error) {
	m.prompts = append(m.prompts, prompt)
	return m.tierResp, m.tierErr
}

func (m *mockClient) NormalizeRows(_ context.Context, _ string) (llm.NormalizeResponse, error) {
	return llm.NormalizeResponse{}, errors.New("not implemented")
}

func (m *mockClient) GenerateInsights(_ context.Context, _ string) (string, error) {
	return "", errors.New("not implemented")
}

func testPeriod() model.Period {
	return model.Period{
		From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
	}
}

func testItems() []model.LineItem {
	bulldozer := model.NewLineItem(model.Equipment{Name: "Bulldozer", Category: "Earthmoving"})
	bulldozer.Hours = 10
	bulldozer.IdleHours = 2
	lightTower := model.NewLineItem(model.Equipment{Name: "Light Tower", Category: "Power & Light"})
	lightTower.Hours = 4
	return []model.LineItem{bulldozer, lightTower}
}

func TestEstimate(t *testing.T) {
	t.Run("applies tiers and fuel figures", func(t *testing.T) {
		client := &mockClient{tierResp: llm.TierResponse{
			Results: []llm.TierResult{
				{Name: "Bulldozer", ConsumptionTier: "HIGH"},
				{Name: "Light Tower", ConsumptionTier: "LOW"},
			},
			Justification: "dozer works hard, tower idles",
		}}
		orch := NewOrchestrator(client, nil)

		result, err := orch.Estimate(context.Background(), testItems(), testPeriod())
		require.NoError(t, err)
		require.Len(t, result.Items, 2)

		// 10h * 15 + 2h * 1.5
		require.NotNil(t, result.Items[0].FuelPerUnit)
		assert.InDelta(t, 153.0, *result.Items[0].FuelPerUnit, 1e-9)
		assert.InDelta(t, 15.0, *result.Items[0].Rate, 1e-9)

		// 4h * 2.5
		require.NotNil(t, result.Items[1].FuelPerUnit)
		assert.InDelta(t, 10.0, *result.Items[1].FuelPerUnit, 1e-9)

		assert.Equal(t, "dozer works hard, tower idles", result.Justification)
		assert.NotEmpty(t, result.Prompt)
	})

	t.Run("does not mutate input items", func(t *testing.T) {
		client := &mockClient{tierResp: llm.TierResponse{
			Results:       []llm.TierResult{{Name: "Bulldozer", ConsumptionTier: "HIGH"}, {Name: "Light Tower", ConsumptionTier: "LOW"}},
			Justification: "ok",
		}}
		orch := NewOrchestrator(client, nil)

		items := testItems()
		_, err := orch.Estimate(context.Background(), items, testPeriod())
		require.NoError(t, err)
		assert.False(t, items[0].Estimated())
		assert.False(t, items[1].Estimated())
	})

	t.Run("deduplicates names in the prompt", func(t *testing.T) {
		client := &mockClient{tierResp: llm.TierResponse{
			Results:       []llm.TierResult{{Name: "Bulldozer", ConsumptionTier: "HIGH"}},
			Justification: "ok",
		}}
		orch := NewOrchestrator(client, nil)

		a := model.NewLineItem(model.Equipment{Name: "Bulldozer", Category: "Earthmoving"})
		b := model.NewLineItem(model.Equipment{Name: "Bulldozer", Category: "Earthmoving"})
		_, err := orch.Estimate(context.Background(), []model.LineItem{a, b}, testPeriod())
		require.NoError(t, err)

		require.Len(t, client.prompts, 1)
		assert.Equal(t, 1, strings.Count(client.prompts[0], "Bulldozer"))
	})

	t.Run("missing name defaults to medium", func(t *testing.T) {
		client := &mockClient{tierResp: llm.TierResponse{
			Results:       []llm.TierResult{{Name: "Bulldozer", ConsumptionTier: "HIGH"}},
			Justification: "only classified the dozer",
		}}
		orch := NewOrchestrator(client, nil)

		result, err := orch.Estimate(context.Background(), testItems(), testPeriod())
		require.NoError(t, err)

		// Light Tower was omitted: 4h * 8 at the MEDIUM rate.
		require.NotNil(t, result.Items[1].FuelPerUnit)
		assert.InDelta(t, 32.0, *result.Items[1].FuelPerUnit, 1e-9)
		assert.InDelta(t, 8.0, *result.Items[1].Rate, 1e-9)
	})

	t.Run("empty selection", func(t *testing.T) {
		orch := NewOrchestrator(&mockClient{}, nil)
		_, err := orch.Estimate(context.Background(), nil, testPeriod())
		assert.ErrorIs(t, err, common.ErrEmptySelection)
	})

	t.Run("transport failure wraps classification error", func(t *testing.T) {
		client := &mockClient{tierErr: errors.New("connection refused")}
		orch := NewOrchestrator(client, nil)

		_, err := orch.Estimate(context.Background(), testItems(), testPeriod())
		assert.ErrorIs(t, err, common.ErrClassificationFailed)
		assert.NotErrorIs(t, err, common.ErrInvalidClassifierResponse)
	})

	t.Run("schema violation passes through unchanged", func(t *testing.T) {
		client := &mockClient{tierErr: common.ErrInvalidClassifierResponse}
		orch := NewOrchestrator(client, nil)

		_, err := orch.Estimate(context.Background(), testItems(), testPeriod())
		assert.ErrorIs(t, err, common.ErrInvalidClassifierResponse)
		assert.NotErrorIs(t, err, common.ErrClassificationFailed)
	})
}
