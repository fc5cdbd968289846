package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/calebward/fueltally/internal/common"
	"github.com/calebward/fueltally/internal/model"
	"github.com/calebward/fueltally/internal/rate"
)

// extractJSON strips markdown code fences some models wrap around JSON
// despite instructions, and trims surrounding whitespace.
func extractJSON(content string) string {
	s := strings.TrimSpace(content)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	return s
}

// parseTierResponse validates classifier output against the tier schema.
// Anything that parses but violates the shape contract is rejected whole,
// never partially trusted.
func parseTierResponse(content string) (TierResponse, error) {
	var payload struct {
		Results       *[]TierResult `json:"results"`
		Justification *string       `json:"justification"`
	}
	if err := json.Unmarshal([]byte(extractJSON(content)), &payload); err != nil {
		return TierResponse{}, fmt.Errorf("%w: not valid JSON: %v", common.ErrInvalidClassifierResponse, err)
	}
	if payload.Results == nil {
		return TierResponse{}, fmt.Errorf("%w: missing results array", common.ErrInvalidClassifierResponse)
	}
	if payload.Justification == nil {
		return TierResponse{}, fmt.Errorf("%w: missing justification", common.ErrInvalidClassifierResponse)
	}

	results := make([]TierResult, len(*payload.Results))
	for i, r := range *payload.Results {
		if r.Name == "" {
			return TierResponse{}, fmt.Errorf("%w: result %d has no name", common.ErrInvalidClassifierResponse, i)
		}
		tier := rate.Normalize(rate.Tier(r.ConsumptionTier))
		if !rate.Valid(tier) {
			return TierResponse{}, fmt.Errorf("%w: result %d has tier %q outside LOW/MEDIUM/HIGH",
				common.ErrInvalidClassifierResponse, i, r.ConsumptionTier)
		}
		results[i] = TierResult{Name: r.Name, ConsumptionTier: string(tier)}
	}

	return TierResponse{Results: results, Justification: *payload.Justification}, nil
}

// parseNormalizeResponse validates normalizer output against the
// processedRows schema. The 1:1 row-count contract against the input batch
// is checked by the importer, which knows the batch size.
func parseNormalizeResponse(content string) (NormalizeResponse, error) {
	var payload struct {
		ProcessedRows *[]model.ProcessedRow `json:"processedRows"`
	}
	if err := json.Unmarshal([]byte(extractJSON(content)), &payload); err != nil {
		return NormalizeResponse{}, fmt.Errorf("%w: not valid JSON: %v", common.ErrInvalidNormalizerResponse, err)
	}
	if payload.ProcessedRows == nil {
		return NormalizeResponse{}, fmt.Errorf("%w: missing processedRows array", common.ErrInvalidNormalizerResponse)
	}
	return NormalizeResponse{ProcessedRows: *payload.ProcessedRows}, nil
}
