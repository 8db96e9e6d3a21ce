package analyst

import (
	"context"
	"fmt"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

// Benchmarking summarizes the startup's own view of its competition.
type Benchmarking struct {
	oracle domain.Oracle
}

func NewBenchmarking(oracle domain.Oracle) *Benchmarking {
	return &Benchmarking{oracle: oracle}
}

func (a *Benchmarking) Name() string { return "Benchmarking Agent" }
func (a *Benchmarking) Key() string  { return "benchmarking_analysis" }

func (a *Benchmarking) Analyze(ctx context.Context, dc domain.DealContext) (domain.Fragment, error) {
	prompt := fmt.Sprintf(`You are a market analyst specializing in competitive benchmarking.

**Instructions:**
1.  **You have been provided with summaries of key internal documents in the 'Internal Document Summaries' section below. Your analysis MUST be based solely on this information.**
2.  Identify any competitors mentioned in the provided documents.
3.  Analyze how the startup positions itself against these competitors based on the text.
4.  After your review, create a benchmarking report that summarizes the startup's own view of its competition.
5.  Make sure to include sources or references of the information formatted nicely with each data point picked from these documents. It should contain the document name and page number or numbers.

**Startup Information:**
- **Name:** %s
- **Industry/Sector:** %s
- **Description:** %s
- **Funding Goal:** %s
- **Raised:** %s

**Internal Document Summaries:**
`+"```json\n%s\n```"+`

**Report Structure:**
1.  **Key Competitors Mentioned:** List the main competitors identified in the internal documents.
2.  **Financial Benchmarking:** Based on the documents, compare the startup's funding situation to any mentioned competitors.
3.  **Product Benchmarking:** Summarize how the startup's product is described in relation to its competitors' products, according to the documents.
4.  **Team Benchmarking:** Does the documentation mention any competitive advantages related to the team?
5.  **Overall Competitive Assessment:** Summarize the startup's competitive position as it is presented in its own internal documents.

Begin your analysis. Use only the 'Internal Document Summaries' to write your report.`,
		field(dc, "company"), field(dc, "sector"), field(dc, "description"),
		field(dc, "fundingGoal"), field(dc, "raised"), detailsJSON(dc))

	return domain.Fragment{Key: a.Key(), Text: a.oracle.GenerateText(ctx, prompt)}, nil
}
