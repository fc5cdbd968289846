// Package llm provides clients for the external model providers and the
// schema validation applied to their untrusted output.
package llm

import (
	"context"

	"github.com/calebward/fueltally/internal/model"
)

// Client defines the interface for LLM providers.
type Client interface {
	// ClassifyTiers sends the tier-classification prompt and returns the
	// schema-validated result.
	ClassifyTiers(ctx context.Context, prompt string) (TierResponse, error)
	// NormalizeRows sends one batch of raw rows for normalization and
	// returns the schema-validated result. Row-count enforcement against
	// the batch is the caller's concern.
	NormalizeRows(ctx context.Context, prompt string) (NormalizeResponse, error)
	// GenerateInsights returns a free-text narrative for the given prompt.
	GenerateInsights(ctx context.Context, prompt string) (string, error)
}

// TierResult assigns a consumption tier to one equipment name.
type TierResult struct {
	Name            string `json:"name"`
	ConsumptionTier string `json:"consumptionTier"`
}

// TierResponse is the classifier's validated output.
type TierResponse struct {
	Results       []TierResult `json:"results"`
	Justification string       `json:"justification"`
	Sources       []Source     `json:"-"`
}

// Source is citation metadata a provider may attach to a response. It is
// passed through to the caller opaquely.
type Source struct {
	Title string
	URI   string
}

// NormalizeResponse is the normalizer's validated output for one batch.
type NormalizeResponse struct {
	ProcessedRows []model.ProcessedRow `json:"processedRows"`
}

// Config holds configuration for an LLM client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}
