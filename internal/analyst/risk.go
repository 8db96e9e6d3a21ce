package analyst

import (
	"context"
	"fmt"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

// RiskAndCompliance reviews IP, competitive, financial, key-person, and
// regulatory risk from the internal document summaries only.
type RiskAndCompliance struct {
	oracle domain.Oracle
}

func NewRiskAndCompliance(oracle domain.Oracle) *RiskAndCompliance {
	return &RiskAndCompliance{oracle: oracle}
}

func (a *RiskAndCompliance) Name() string { return "Risk and Compliance Agent" }
func (a *RiskAndCompliance) Key() string  { return "risk_and_compliance_analysis" }

func (a *RiskAndCompliance) Analyze(ctx context.Context, dc domain.DealContext) (domain.Fragment, error) {
	sector := field(dc, "sector")
	location := field(dc, "location")

	prompt := fmt.Sprintf(`You are a specialist in risk and compliance for venture capital.

**Instructions:**
1.  **Your analysis MUST be based solely on the 'Internal Document Summaries' provided below.**
2.  Focus your analysis on the following areas as described in the documents: Intellectual Property (IP), competition, financial stability, key-person dependencies, and regulatory hurdles.
3.  Do not use any external tools or data.
4.  After your review, compile a detailed report for an investment committee with a moderate risk tolerance.

**Startup Information:**
- **Name:** %s
- **Industry/Sector:** %s
- **Description:** %s
- **Location:** %s

**Internal Document Summaries:**
`+"```json\n%s\n```"+`

**Report Structure:**
1.  **Intellectual Property (IP) Risks:** Are there any patent or trademark risks mentioned in the documents?
2.  **Competitive Risks:** Who are the main competitors identified in the documents?
3.  **Financial Risks:** Analyze burn rate, runway, and financial projections based only on the data in the summaries.
4.  **Key-Person Dependencies:** Is the startup overly reliant on key individuals, based on the provided info?
5.  **Regulatory & Compliance Risks:** What regulatory hurdles or compliance efforts are mentioned in the documents for the %s sector in %s?

Begin your analysis. Use only the 'Internal Document Summaries' to write your report.

%s`,
		field(dc, "company"), sector, field(dc, "description"), location,
		detailsJSON(dc), sector, location, referencesInstruction)

	return domain.Fragment{Key: a.Key(), Text: a.oracle.GenerateText(ctx, prompt)}, nil
}
