package importer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/calebward/fueltally/internal/model"
)

// buildNormalizePrompt creates the per-batch normalization prompt: the
// catalog as ground truth plus the raw rows as pre-parsed JSON.
func buildNormalizePrompt(batch []model.ImportedRow) string {
	var list strings.Builder
	for _, eq := range model.Catalog() {
		fmt.Fprintf(&list, "- %s (Category: %s)\n", eq.Name, eq.Category)
	}

	rowsJSON, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		// ImportedRow values come from the spreadsheet parser as plain
		// strings, so marshaling cannot realistically fail; keep the
		// prompt well-formed regardless.
		rowsJSON = []byte("[]")
	}

	return fmt.Sprintf(`You are an AI data normalization and enhancement engine. Your task is to process a pre-parsed JSON array of spreadsheet rows, clean up the data in each row, and return it in a structured format.

---
**Golden Rule (Non-Negotiable):** The number of objects in your output processedRows array MUST EXACTLY match the number of objects in the input JSON array. You are performing a 1-to-1 transformation, not filtering or creating data. If a row cannot be fully processed, return it with default values (0 for hours, "Unknown Equipment" for name) but DO NOT omit it.
---

**Step 1: The Official Equipment List**
This is your ground truth for equipment names.

<OfficialEquipmentList>
%s</OfficialEquipmentList>

---

**Step 2: The Input Data (Pre-parsed Rows)**
You will receive a JSON array of objects. Each object is a row. The object keys are the column headers from the original file. Column names can vary.

<InputData>
%s
</InputData>

---

**Step 3: Per-Row Transformation Logic**
For EACH object in the <InputData> array, create a corresponding object for your output array by performing these actions:

1. **Extract Equipment Name:**
   - Look for a key that represents the equipment name (e.g., "Grouping", "Equipment", "Equipment Name", "Description"). The key name will vary.
   - Take the string value from that key (e.g., "TELEHANDLERS [115-0023]").
   - Perform a case-insensitive, fuzzy match against the <OfficialEquipmentList>.
   - Return the OFFICIAL name (e.g., "Telehandler") and its corresponding category.
   - If no plausible match is found, use "Unknown Equipment" for the name and "General" for the category.

2. **Parse Durations into Decimal Hours:**
   - **Active Hours:** Find the key for active hours (e.g., "Active hours", "Active Time", "Usage"). Parse its string value (e.g., "1 days 10:15:04" or "4:12:29") into a decimal number of hours. If the key/value is missing or invalid, use 0.
   - **Idle Hours:** Find the key for idle hours (e.g., "Idling hours", "Idle Time"). Parse its string value into a decimal number of hours. If missing or invalid, use 0.

3. **Extract Round Name Candidate:**
   - Look for a key for a round name (e.g., "Round Name", "Project Name").
   - If it exists and has a non-empty text value, include that value. Otherwise, use null.

---

**Step 4: Final Output Requirement (MANDATORY):**
Your entire response MUST be a single, valid JSON object with one key: processedRows.
- processedRows: An array of objects.
- Each object must have: name, category, hours, idleHours, and roundNameCandidate (string or null).
- **CRITICAL:** processedRows.length must equal InputData.length.

DO NOT wrap the JSON in markdown.`,
		list.String(),
		string(rowsJSON))
}
