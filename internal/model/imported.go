package model

// ImportedRow is one raw spreadsheet row: column header to cell value, with
// no assumptions about the header vocabulary.
type ImportedRow map[string]any

// ProcessedRow is the normalizer's 1:1 transformation of an ImportedRow.
// Within a batch, output rows always match input rows in count and order;
// unmatchable rows come back as UnknownEquipment rather than being dropped.
type ProcessedRow struct {
	Name               string  `json:"name"`
	Category           string  `json:"category"`
	Hours              float64 `json:"hours"`
	IdleHours          float64 `json:"idleHours"`
	RoundNameCandidate *string `json:"roundNameCandidate"`
}
