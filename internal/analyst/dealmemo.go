package analyst

import (
	"context"
	"fmt"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

// DealMemo generates an investment-committee deal memo.
type DealMemo struct {
	oracle domain.Oracle
}

func NewDealMemo(oracle domain.Oracle) *DealMemo {
	return &DealMemo{oracle: oracle}
}

func (a *DealMemo) Name() string { return "Deal Memo Agent" }
func (a *DealMemo) Key() string  { return "deal_memo" }

func (a *DealMemo) Analyze(ctx context.Context, dc domain.DealContext) (domain.Fragment, error) {
	prompt := fmt.Sprintf(`You are a world-class investment analyst, and your task is to generate a detailed investment deal memo.

**Instructions:**
1.  You have access to a vector_search tool that can search through a knowledge base of internal documents, such as pitch decks, call transcripts, and market research reports.
2.  **Crucially, you have also been provided with summaries of key internal documents in the 'Internal Document Summaries' section below. You MUST use this information as a primary source for your analysis.**
3.  Use the vector_search tool to supplement the provided summaries and gather any additional information needed about the startup's market, team, product, financials, and competition.
4.  Once you have gathered all the necessary information, synthesize it into a comprehensive deal memo.
5.  The memo should be structured for an investment committee and cover the following sections in detail:
    -   Executive Summary
    -   Market Opportunity
    -   Founding Team Background
    -   Product/Service
    -   Competitive Landscape
    -   Financials
    -   Use of Funds
    -   Investment Thesis
    -   Risks

**Startup Information:**
- **Company Name:** %s
- **Industry/Sector:** %s
- **Description:** %s
- **Location:** %s
- **Stage:** %s
- **Funding Goal:** %s
- **Raised so far:** %s

**Internal Document Summaries:**
`+"```json\n%s\n```"+`

Now, begin your work. Remember to prioritize the 'Internal Document Summaries' and supplement with vector_search to gather information before writing the memo.

%s`,
		field(dc, "company"), field(dc, "sector"), field(dc, "description"), field(dc, "location"),
		field(dc, "stage"), field(dc, "fundingGoal"), field(dc, "raised"),
		detailsJSON(dc), referencesInstruction)

	return domain.Fragment{Key: a.Key(), Text: a.oracle.GenerateText(ctx, prompt)}, nil
}
