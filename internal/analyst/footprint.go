package analyst

import (
	"context"
	"fmt"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

// DigitalFootprint analyzes the startup's and its founders' online presence.
type DigitalFootprint struct {
	oracle domain.Oracle
}

func NewDigitalFootprint(oracle domain.Oracle) *DigitalFootprint {
	return &DigitalFootprint{oracle: oracle}
}

func (a *DigitalFootprint) Name() string { return "Digital Footprint Analysis Agent" }
func (a *DigitalFootprint) Key() string  { return "digital_footprint_analysis" }

func (a *DigitalFootprint) Analyze(ctx context.Context, dc domain.DealContext) (domain.Fragment, error) {
	founders := founderList(dc)

	prompt := fmt.Sprintf(`You are a digital marketing and branding analyst with built-in web search capabilities. Your task is to conduct a thorough analysis of a startup's digital footprint, including the online presence of its founders.

**Instructions:**
1.  **Analyze the Startup's Digital Presence:**
    - Review the internal document summaries to understand the company's intended image.
    - Use your web search capabilities to find the startup's website, social media profiles, and any news or articles.
    - Analyze the external messaging. Does it align with the internal documents? Is it consistent?

2.  **Analyze the Founders' Digital Presence:**
    - The founders are: **%s**.
    - Use your web search capabilities to search for each founder on professional networks (like LinkedIn) and social media (like Twitter/X).
    - Analyze their professional background, thought leadership, and public statements.
    - Is their online persona consistent with the startup's brand and goals?

3.  **Synthesize and Report:**
    - Combine your findings into a single, comprehensive report.
    - Highlight strengths, weaknesses, and any inconsistencies between the company's intended image and its actual online presence (including its founders').

**Startup Information:**
- **Name:** %s
- **Industry/Sector:** %s
- **Founders:** %s

**Internal Document Summaries:**
`+"```json\n%s\n```"+`

**Report Structure:**
1.  **Overall Digital Presence Summary:** A high-level overview of the startup's and founders' digital footprint.
2.  **Startup Digital Channel Analysis:** Evaluation of the company's website, social media, and other online channels.
3.  **Founder Presence Analysis:** An individual analysis of each founder's digital presence and its impact on the company brand.
4.  **Brand Alignment Analysis:** A critical assessment of the consistency and alignment between the startup's internal goals and its external-facing brand, including the founders' personas.
5.  **Recommendations:** Actionable advice for improving the startup's digital footprint.

Begin your analysis. Use your internal web search capabilities to gather external data on both the company and its founders.

%s`,
		founders, field(dc, "company"), field(dc, "sector"), founders,
		detailsJSON(dc), referencesInstruction)

	return domain.Fragment{Key: a.Key(), Text: a.oracle.GenerateText(ctx, prompt)}, nil
}
