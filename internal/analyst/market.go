package analyst

import (
	"context"
	"fmt"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

// MarketResearch combines the startup's internal market view with external
// market data gathered through the model's web search capabilities.
type MarketResearch struct {
	oracle domain.Oracle
}

func NewMarketResearch(oracle domain.Oracle) *MarketResearch {
	return &MarketResearch{oracle: oracle}
}

func (a *MarketResearch) Name() string { return "Market Research Agent" }
func (a *MarketResearch) Key() string  { return "market_research_analysis" }

func (a *MarketResearch) Analyze(ctx context.Context, dc domain.DealContext) (domain.Fragment, error) {
	prompt := fmt.Sprintf(`You are a market research analyst with built-in web search capabilities. Your task is to conduct a thorough market analysis for a startup, combining insights from its internal documents with real-time external market data.

**Instructions:**
1.  **Internal Data Review:**
    - You have been provided with summaries of key internal documents. Review these to understand the startup's own view of the market, its niche, and target customers.

2.  **External Market Research:**
    - Use your web search capabilities to find the latest information on the startup's market: **%s**.
    - Research the current market size, growth rate, key trends, and overall industry outlook.
    - Identify the main competitors and analyze their strengths and weaknesses.
    - Investigate the target customer demographics and their behaviors.

3.  **Synthesize and Report:**
    - Combine your findings from both internal and external sources into a single, comprehensive report.
    - Compare the startup's internal perceptions with the external reality. Highlight any gaps or misalignments.
    - Provide a clear and data-driven assessment of the market opportunity.

**Startup Information:**
- **Name:** %s
- **Industry/Sector:** %s
- **Description:** %s

**Internal Document Summaries:**
`+"```json\n%s\n```"+`

**Report Structure:**
1.  **Executive Summary:** A high-level overview of the market and the startup's position within it.
2.  **Market Overview:** Analysis of the market size, growth projections (including TAM, SAM, SOM if possible), and key trends based on both internal and external data.
3.  **Competitive Landscape:** Identification and analysis of key competitors, their market share, and strategies.
4.  **Target Audience Analysis:** A detailed profile of the target customers, their needs, and behaviors.
5.  **Market Opportunity & Risks:** An assessment of the startup's opportunity, including potential risks and barriers to entry.
6.  **Strategic Recommendations:** Actionable advice on how the startup can best position itself to succeed in the current market.

Begin your analysis. Use your internal web search capabilities to gather external data and combine it with the provided internal summaries.

%s`,
		field(dc, "sector"), field(dc, "company"), field(dc, "sector"), field(dc, "description"),
		detailsJSON(dc), referencesInstruction)

	return domain.Fragment{Key: a.Key(), Text: a.oracle.GenerateText(ctx, prompt)}, nil
}
