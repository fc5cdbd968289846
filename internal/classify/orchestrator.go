// Package classify orchestrates tier classification of the current
// selection: one external call per estimate pass, validated output, and the
// estimator applied back onto every line item.
package classify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/calebward/fueltally/internal/common"
	"github.com/calebward/fueltally/internal/estimate"
	"github.com/calebward/fueltally/internal/llm"
	"github.com/calebward/fueltally/internal/model"
	"github.com/calebward/fueltally/internal/rate"
)

// Orchestrator runs the classification-and-estimation pass.
type Orchestrator struct {
	client llm.Client
	logger *slog.Logger
}

// NewOrchestrator creates an orchestrator around an LLM client.
func NewOrchestrator(client llm.Client, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{client: client, logger: logger}
}

// Result is one estimate pass's output, applied back by the caller in a
// single synchronous update.
type Result struct {
	Items         []model.LineItem
	Justification string
	Sources       []llm.Source
	Prompt        string
}

// Estimate classifies the distinct equipment names in the selection and
// applies the fuel estimator to every line item. The inputs are treated as
// an immutable snapshot; the returned items are independent copies.
//
// A name missing from an otherwise valid response gets the MEDIUM default
// rather than failing the pass. Transport failures surface as
// ErrClassificationFailed, schema violations as
// ErrInvalidClassifierResponse; neither falls back silently.
func (o *Orchestrator) Estimate(ctx context.Context, items []model.LineItem, period model.Period) (Result, error) {
	if len(items) == 0 {
		return Result{}, common.ErrEmptySelection
	}

	distinct := distinctByName(items)
	prompt := buildTierPrompt(distinct, period)

	o.logger.Debug("requesting tier classification",
		"items", len(items),
		"distinct_names", len(distinct))

	resp, err := o.client.ClassifyTiers(ctx, prompt)
	if err != nil {
		if errors.Is(err, common.ErrInvalidClassifierResponse) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: %w", common.ErrClassificationFailed, err)
	}

	tiers := make(map[string]rate.Tier, len(resp.Results))
	for _, r := range resp.Results {
		tiers[r.Name] = rate.Tier(r.ConsumptionTier)
	}

	updated := model.CloneItems(items)
	for i := range updated {
		tier, ok := tiers[updated[i].Name]
		if !ok {
			tier = rate.TierMedium
			o.logger.Warn("classifier omitted equipment name, defaulting tier",
				"name", updated[i].Name,
				"tier", tier)
		}
		res := estimate.Estimate(updated[i], tier)
		updated[i].SetEstimate(res.FuelPerUnit, res.Rate, res.IdleRate)
	}

	o.logger.Info("tier classification applied",
		"items", len(updated),
		"classified_names", len(tiers))

	return Result{
		Items:         updated,
		Justification: resp.Justification,
		Sources:       resp.Sources,
		Prompt:        prompt,
	}, nil
}

// distinctByName keeps the first line item per name, preserving order.
// Classifying the same name twice wastes a call and risks inconsistent
// tiers.
func distinctByName(items []model.LineItem) []model.LineItem {
	seen := make(map[string]bool, len(items))
	out := make([]model.LineItem, 0, len(items))
	for _, it := range items {
		if seen[it.Name] {
			continue
		}
		seen[it.Name] = true
		out = append(out, it)
	}
	return out
}
