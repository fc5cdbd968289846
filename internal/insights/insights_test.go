package insights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebward/fueltally/internal/llm"
	"github.com/calebward/fueltally/internal/model"
)

type mockClient struct {
	insights string
	err      error
	prompt   string
}

func (m *mockClient) GenerateInsights(_ context.Context, prompt string) (string, error) {
	m.prompt = prompt
	return m.insights, m.err
}

func (m *mockClient) ClassifyTiers(_ context.Context, _ string) (llm.TierResponse, error) {
	return llm.TierResponse{}, errors.New("not implemented")
}

func (m *mockClient) NormalizeRows(_ context.Context, _ string) (llm.NormalizeResponse, error) {
	return llm.NormalizeResponse{}, errors.New("not implemented")
}

func sampleRound() model.Round {
	fuel := 153.0
	return model.Round{
		ID:   "R-abc123",
		Name: "Week 14",
		Period: model.Period{
			From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
		},
		Items: []model.LineItem{{
			Name:        "Bulldozer",
			Category:    "Earthmoving",
			Quantity:    2,
			Hours:       10,
			IdleHours:   2,
			FuelPerUnit: &fuel,
		}},
		TotalFuel: 306,
		Timestamp: time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC),
	}
}

func TestAnalyze(t *testing.T) {
	t.Run("summarizes rounds into the prompt", func(t *testing.T) {
		client := &mockClient{insights: "Idle hours dominate."}
		analyzer := NewAnalyzer(client, nil)

		got, err := analyzer.Analyze(context.Background(), []model.Round{sampleRound()})
		require.NoError(t, err)
		assert.Equal(t, "Idle hours dominate.", got)

		assert.Contains(t, client.prompt, `"roundName": "Week 14"`)
		assert.Contains(t, client.prompt, `"name": "Bulldozer"`)
		// Per-item figures scale by quantity.
		assert.Contains(t, client.prompt, `"totalHours": 20`)
		assert.Contains(t, client.prompt, `"totalFuel": 306`)
	})

	t.Run("no rounds", func(t *testing.T) {
		analyzer := NewAnalyzer(&mockClient{}, nil)
		_, err := analyzer.Analyze(context.Background(), nil)
		assert.Error(t, err)
	})

	t.Run("model failure surfaces verbatim", func(t *testing.T) {
		client := &mockClient{err: errors.New("overloaded")}
		analyzer := NewAnalyzer(client, nil)
		_, err := analyzer.Analyze(context.Background(), []model.Round{sampleRound()})
		assert.EqualError(t, err, "overloaded")
	})
}
