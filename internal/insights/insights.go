// Package insights produces a best-effort narrative analysis of recorded
// rounds. Failures are surfaced verbatim and never retried.
package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/calebward/fueltally/internal/llm"
	"github.com/calebward/fueltally/internal/model"
)

// Analyzer wraps the LLM client for round analysis.
type Analyzer struct {
	client llm.Client
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer around an LLM client.
func NewAnalyzer(client llm.Client, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{client: client, logger: logger}
}

type itemSummary struct {
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	TotalHours     float64 `json:"totalHours"`
	TotalIdleHours float64 `json:"totalIdleHours"`
	TotalFuel      float64 `json:"totalFuel"`
}

type roundSummary struct {
	RoundName  string        `json:"roundName"`
	TotalFuel  float64       `json:"totalFuel"`
	PeriodFrom string        `json:"periodFrom"`
	PeriodTo   string        `json:"periodTo"`
	ItemCount  int           `json:"itemCount"`
	Items      []itemSummary `json:"itemsSummary"`
}

// Analyze summarizes the rounds and asks the model for actionable insights.
func (a *Analyzer) Analyze(ctx context.Context, rounds []model.Round) (string, error) {
	if len(rounds) == 0 {
		return "", fmt.Errorf("at least one recorded round is required")
	}

	summaries := summarize(rounds)
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to summarize rounds: %w", err)
	}

	a.logger.Debug("requesting insights", "rounds", len(rounds))

	return a.client.GenerateInsights(ctx, buildPrompt(string(data)))
}

// summarize condenses rounds so the prompt stays small regardless of how
// many items each round carries.
func summarize(rounds []model.Round) []roundSummary {
	out := make([]roundSummary, len(rounds))
	for i, r := range rounds {
		s := roundSummary{
			RoundName:  r.Name,
			TotalFuel:  r.TotalFuel,
			PeriodFrom: r.Period.From.Format("2006-01-02"),
			PeriodTo:   r.Period.To.Format("2006-01-02"),
			ItemCount:  len(r.Items),
		}
		for j := range r.Items {
			it := &r.Items[j]
			var fuel float64
			if it.FuelPerUnit != nil {
				fuel = *it.FuelPerUnit * float64(it.Quantity)
			}
			s.Items = append(s.Items, itemSummary{
				Name:           it.Name,
				Category:       it.Category,
				TotalHours:     it.Hours * float64(it.Quantity),
				TotalIdleHours: it.IdleHours * float64(it.Quantity),
				TotalFuel:      fuel,
			})
		}
		out[i] = s
	}
	return out
}

func buildPrompt(summaryJSON string) string {
	return fmt.Sprintf(`You are a senior logistics and operations analyst AI. Your task is to analyze the following fuel consumption data from a heavy equipment operation and provide actionable business insights.

**Data Summary (JSON format):**
%s

**Analysis Requirements:**
Based on the data provided, generate a concise report in markdown format. Address the following points:

1. **Top Consumers:** Identify the top 2-3 equipment categories or specific machines that are consuming the most fuel across all rounds.
2. **Key Trends & Patterns:** Is there a noticeable trend in fuel consumption over time (if multiple rounds exist)? Are there any surprising or anomalous data points (e.g., extremely high idle hours for a particular machine)?
3. **Actionable Recommendations:** Provide at least two specific, actionable recommendations for how the operation could potentially reduce fuel consumption. Examples could include optimizing equipment allocation, addressing high idle times, or suggesting training for operators.

Your tone should be professional, data-driven, and helpful. Focus on providing insights that a manager could use to make real-world decisions.`, summaryJSON)
}
