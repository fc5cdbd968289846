package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebward/fueltally/internal/common"
)

func TestParseTierResponse(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		resp, err := parseTierResponse(`{
			"results": [
				{"name": "Bulldozer", "consumptionTier": "HIGH"},
				{"name": "Light Tower", "consumptionTier": "LOW"}
			],
			"justification": "Heavy earthmoving vs stationary lighting."
		}`)
		require.NoError(t, err)
		require.Len(t, resp.Results, 2)
		assert.Equal(t, "Bulldozer", resp.Results[0].Name)
		assert.Equal(t, "HIGH", resp.Results[0].ConsumptionTier)
		assert.Equal(t, "Heavy earthmoving vs stationary lighting.", resp.Justification)
	})

	t.Run("strips code fences", func(t *testing.T) {
		resp, err := parseTierResponse("```json\n{\"results\": [{\"name\": \"Water Pump\", \"consumptionTier\": \"LOW\"}], \"justification\": \"ok\"}\n```")
		require.NoError(t, err)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "Water Pump", resp.Results[0].Name)
	})

	t.Run("normalizes tier casing", func(t *testing.T) {
		resp, err := parseTierResponse(`{"results": [{"name": "Bulldozer", "consumptionTier": "high"}], "justification": "ok"}`)
		require.NoError(t, err)
		assert.Equal(t, "HIGH", resp.Results[0].ConsumptionTier)
	})

	tests := []struct {
		name    string
		content string
	}{
		{"not json", "the bulldozer burns a lot of fuel"},
		{"missing results", `{"justification": "ok"}`},
		{"missing justification", `{"results": []}`},
		{"result without name", `{"results": [{"consumptionTier": "LOW"}], "justification": "ok"}`},
		{"tier outside enum", `{"results": [{"name": "Bulldozer", "consumptionTier": "EXTREME"}], "justification": "ok"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseTierResponse(tt.content)
			assert.ErrorIs(t, err, common.ErrInvalidClassifierResponse)
		})
	}
}

func TestParseNormalizeResponse(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		resp, err := parseNormalizeResponse(`{
			"processedRows": [
				{"name": "Bulldozer", "category": "Earthmoving", "hours": 8, "idleHours": 2, "roundNameCandidate": "Week 14"},
				{"name": "Unknown Equipment", "category": "", "hours": 0, "idleHours": 0}
			]
		}`)
		require.NoError(t, err)
		require.Len(t, resp.ProcessedRows, 2)
		assert.Equal(t, "Bulldozer", resp.ProcessedRows[0].Name)
		assert.InDelta(t, 2.0, resp.ProcessedRows[0].IdleHours, 1e-9)
		require.NotNil(t, resp.ProcessedRows[0].RoundNameCandidate)
		assert.Equal(t, "Week 14", *resp.ProcessedRows[0].RoundNameCandidate)
		assert.Nil(t, resp.ProcessedRows[1].RoundNameCandidate)
	})

	t.Run("missing processedRows", func(t *testing.T) {
		_, err := parseNormalizeResponse(`{"rows": []}`)
		assert.ErrorIs(t, err, common.ErrInvalidNormalizerResponse)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := parseNormalizeResponse("no rows found")
		assert.ErrorIs(t, err, common.ErrInvalidNormalizerResponse)
	})
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON("  {\"a\":1}  "))
}
