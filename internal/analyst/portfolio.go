package analyst

import (
	"context"
	"fmt"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

// PortfolioFit compares the startup against the firm's investment thesis.
type PortfolioFit struct {
	oracle domain.Oracle
}

func NewPortfolioFit(oracle domain.Oracle) *PortfolioFit {
	return &PortfolioFit{oracle: oracle}
}

func (a *PortfolioFit) Name() string { return "Portfolio Fit Agent" }
func (a *PortfolioFit) Key() string  { return "portfolio_fit_analysis" }

func (a *PortfolioFit) Analyze(ctx context.Context, dc domain.DealContext) (domain.Fragment, error) {
	prompt := fmt.Sprintf(`You are a portfolio analyst for a venture capital firm.

**Instructions:**
1.  **Your analysis MUST be based solely on the provided information: our firm's stated investment focus and the startup's internal document summaries.**
2.  Compare the startup's characteristics to our firm's investment thesis.
3.  Do not use any external tools or data.

**Our Portfolio Focus:**
- **Industries:** FinTech, HealthTech, and B2B SaaS.
- **Business Model:** Strong preference for B2B models.
- **Stage:** Early-stage (Seed, Series A).

**Startup Information:**
- **Name:** %s
- **Industry/Sector:** %s
- **Description:** %s
- **Stage:** %s

**Internal Document Summaries (from the Startup):**
`+"```json\n%s\n```"+`

**Report Structure:**
1.  **Industry Fit:** Does the startup's self-reported sector align with our target industries?
2.  **Business Model Fit:** Based on the documents, does the startup have a B2B model?
3.  **Synergy with Portfolio:** Based on the description, are there any obvious synergies or conflicts with a portfolio focused on FinTech, HealthTech, and B2B SaaS?
4.  **Risk Alignment:** Does the startup's risk profile, as suggested by its own documents, seem appropriate for an early-stage investor?
5.  **Exit Potential:** Do the internal documents suggest a particular exit strategy that aligns with our goals?

Begin your analysis. Use only the provided information to write your report.

%s`,
		field(dc, "company"), field(dc, "sector"), field(dc, "description"), field(dc, "stage"),
		detailsJSON(dc), referencesInstruction)

	return domain.Fragment{Key: a.Key(), Text: a.oracle.GenerateText(ctx, prompt)}, nil
}
