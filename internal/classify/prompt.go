package classify

import (
	"fmt"
	"strings"

	"github.com/calebward/fueltally/internal/model"
)

// buildTierPrompt creates the classification prompt for the distinct
// equipment names. The period is context only; the rate model is
// period-independent.
func buildTierPrompt(distinct []model.LineItem, period model.Period) string {
	var list strings.Builder
	for _, it := range distinct {
		fmt.Fprintf(&list, "- %s (Category: %s)\n", it.Name, it.Category)
	}

	return fmt.Sprintf(`You are an AI expert specializing in heavy machinery logistics and efficiency. Your task is to analyze a list of equipment and classify each item into a fuel consumption tier based on its typical engine size and power draw, even under light load. Your classification will be used to apply a very conservative fuel calculation.

**Primary Goal:** Classify equipment to enable the lowest plausible fuel estimates. All equipment should be considered modern, efficient, and operating under a light-to-moderate workload.

**Usage Period (context only):** %s to %s

**Classification Tiers:**
You MUST classify each piece of equipment into one of these three tiers:

1. **'LOW':** For equipment with small engines or low power draw. This includes light towers, small pumps, small air compressors, manlifts, scissor lifts, and vehicles primarily idling or moving without load.
2. **'MEDIUM':** For general-purpose, mid-range equipment. This includes backhoes, skid steers, telehandlers, motor graders, and medium-sized cranes or generators (e.g., 60-250 KVA).
3. **'HIGH':** ONLY for the largest, most powerful equipment which inherently consumes more fuel even at light load. This includes large hydraulic excavators, bulldozers, large mobile cranes (120+ tons), and very large generators (e.g., 500+ KVA). Be very selective with this tier.

**Equipment List to Process:**
%s
**Output Requirement:**
Return a single JSON object of the form {"results": [{"name": string, "consumptionTier": "LOW"|"MEDIUM"|"HIGH"}], "justification": string}. The 'name' in the results must exactly match the name from the input list. The 'justification' should be a brief explanation of your classification methodology.`,
		period.From.Format("2006-01-02"),
		period.To.Format("2006-01-02"),
		list.String())
}
