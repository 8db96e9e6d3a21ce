// Package analyst holds the specialist analyzers and their registry. Each
// analyst is stateless: it renders one prompt from the deal context, asks the
// text-generation capability for the analysis, and wraps the result in its
// named fragment.
package analyst

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

// referencesInstruction ends every specialist prompt: sources go in a
// trailing References section instead of inline citations.
const referencesInstruction = `Do NOT include inline citations. Instead, list all sources in a separate "References" section at the end of your response.
The references should be formatted in italics and include the document name and page number.`

// detailsJSON renders the internal document summaries block for a prompt.
func detailsJSON(dc domain.DealContext) string {
	details, ok := dc["companyDetails"]
	if !ok {
		details = "No document summaries available."
	}
	data, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		return `"No document summaries available."`
	}
	return string(data)
}

// field renders a context attribute for prompt interpolation. Numeric values
// (funding figures, metrics) render as-is; absent keys render empty.
func field(dc domain.DealContext, key string) string {
	if v, ok := dc[key]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// founderList renders the Founders field as a comma-separated list.
func founderList(dc domain.DealContext) string {
	var names []string
	switch v := dc["Founders"].(type) {
	case []string:
		names = v
	case []any:
		for _, f := range v {
			names = append(names, fmt.Sprintf("%v", f))
		}
	}
	if len(names) == 0 {
		return "No founders listed"
	}
	return strings.Join(names, ", ")
}
