package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

// Fixed protocol strings the router and dispatcher match against. These are
// part of the wire contract with stored conversation histories, so they must
// not be reworded.
const (
	// recipientPrompt is returned when an email is requested but no recipient
	// address is known.
	recipientPrompt = "I can help with that. Who should I address the email to? Please provide the recipient's email address."

	// draftMarker opens every rendered email confirmation message.
	draftMarker = "I have drafted the following email"

	apologyDraftFailed     = "I'm sorry, I had trouble drafting the email. Please try rephrasing your request."
	apologyDraftIncomplete = "I'm sorry, I couldn't generate a complete email draft. Please try again with more specific details."
	apologyExtractFailed   = "I'm sorry, I couldn't retrieve the email details to send. Please try the request again."

	preferencesAck = "Acknowledged. I will remember this for future deals."
)

// referencesTrailer is appended to user-facing answer prompts so the model
// cites documents at the end instead of inline.
const referencesTrailer = `Do NOT include inline citations. Instead, list all sources in a separate "References" section at the end of your response.
The references should be formatted in italics and include the document name and page number.`

// formatHistory renders turns the way every prompt expects them.
func formatHistory(history []domain.Turn) string {
	lines := make([]string, 0, len(history))
	for _, t := range history {
		lines = append(lines, fmt.Sprintf("User: %s\nAI: %s", t.User, t.AI))
	}
	return strings.Join(lines, "\n")
}

// contextJSON serializes the deal context for prompt embedding.
func contextJSON(dc domain.DealContext) string {
	b, err := json.MarshalIndent(dc, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

func classifierPrompt(query string, history []domain.Turn, agents []string, dc domain.DealContext) string {
	return fmt.Sprintf(`You are an intelligent routing agent. Your job is to determine the best course of action based on a user's query.

Here are the available options:
1.  **direct_answer**: If the query can be answered directly from the provided 'Startup Data', especially from the 'companyDetails'.
2.  **chat**: If the query is a follow-up or conversational in nature.
3.  **run_specific_agent**: If the query maps to one of the specialist agents.
4.  **run_all_agents**: For broad, comprehensive analysis queries.
5.  **send_email**: If the user wants to send an email.
6.  **save_deal_note_preferences**: If the user wants to make changes to the deal notes.

**User Query:** "%s"

**Conversation History:**
%s

**Available Specialist Agents:** [%s]

**Startup Data (for context):**
`+"```json\n%s\n```"+`

**Decision Logic:**
- If the user's query is about changing or saving preferences for deal notes, choose `+"`save_deal_note_preferences`"+`.
- If the query is specific and the answer is likely within the 'Startup Data' (e.g., asking for ARR, company name, or details from the document summaries), choose `+"`direct_answer`"+`.
- If the user is asking a follow-up question, choose `+"`chat`"+`.
- If the user asks to send an email or implies a need to get information *from* the founder (e.g., 'need more info from founder', 'ask the founder about...'), choose `+"`send_email`"+`.
- If the query clearly aligns with a specialist agent (e.g., "analyze competitors" -> "benchmarking"), return `+"`run_specific_agent:<agent_name>`"+`.
- If the query is general (e.g., "give me a full analysis"), choose `+"`run_all_agents`"+`.

**Return only the chosen action as a single string.** For example: `+"`direct_answer`, `chat`, `run_specific_agent:deal_memo`, `run_all_agents`, `send_email`, `save_deal_note_preferences`.",
		query, formatHistory(history), strings.Join(agents, ", "), contextJSON(dc))
}

func directAnswerPrompt(query string, dc domain.DealContext) string {
	return fmt.Sprintf(`You are an expert investment analyst. Answer the user's query directly using the provided data, paying special attention to the `+"`companyDetails`"+` field which contains summaries of internal documents.

**User Query:** "%s"

**Startup Data:**
%s

**Your Answer:**
%s`, query, contextJSON(dc), referencesTrailer)
}

func chatPrompt(query string, history []domain.Turn, dc domain.DealContext) string {
	return fmt.Sprintf(`You are an investment analyst continuing a conversation about the startup '%s'.

**Previous Conversation:**
%s
**Startup Context (including internal document summaries):**
%s
**User's New Query:** "%s"
Please provide a direct answer to the user's new query based on the context and history.
%s`, dc.Name(), formatHistory(history), contextJSON(dc), query, referencesTrailer)
}

func singleAgentPrompt(agentName, fragmentText, startupName string) string {
	return fmt.Sprintf(`You are an expert investment analyst. Your specialist agent, the '%s', has just completed its analysis for the startup '%s'.
The agent provided the following data:
**Agent's Data:**
`+"```json\n%s\n```"+`
Your task is to present this information to the user in a clear, natural, and easy-to-read narrative.
Synthesize it into a coherent summary as if you were presenting the findings.
%s`, agentName, startupName, fragmentText, referencesTrailer)
}

func synthesisPrompt(company, fragmentsJSON string) string {
	return fmt.Sprintf(`You are a Chief Investment Officer reviewing the analysis from your team of specialist agents.
Based on the following reports, generate a final, comprehensive summary and recommendation for the startup: %s.

**Team's Analysis:**
%s

**Final Report:**
Provide a final summary that synthesizes these findings. Structure your report as follows:
1. Overall Investment Recommendation.
2. Key Strengths.
3. Key Weaknesses & Risks.
4. Final Verdict.

%s`, company, fragmentsJSON, referencesTrailer)
}

func composeEmailPrompt(query, investorName string, dc domain.DealContext) string {
	return fmt.Sprintf(`You are an intelligent assistant that composes a polite and professional email to a startup founder.

**Startup Data (including internal document summaries):**
`+"```json\n%s\n```"+`

**Instructions:**
1.  The user wants to send an email based on the following query: "%s"
2.  The email should be addressed to the founder of the startup, using the company name from the 'Startup Data' provided above.
3.  The email must mention that the request is on behalf of '%s'.
4.  The email must clearly instruct the founder to upload any requested documents to the "LVX platform".
5.  The tone should be professional, polite, and encouraging.
6.  Use the startup's actual name in the subject and body of the email.
7.  Extract a suitable subject line, and the email body from the user's query and the instructions. The recipient is already known.

**Return the details in a JSON format with the following keys:**
- "subject"
- "body"

**Example Query:** "Send an email to founder@example.com to request their pitch deck."

**Example JSON Output:**
{
    "subject": "Request for Pitch Deck for [Startup Name] from %s",
    "body": "Dear Founder of [Startup Name],\\n\\nMy name is %s, and I am a potential investor who is very interested in learning more about your startup. To proceed with our evaluation, could you please upload your pitch deck to the LVX platform at your earliest convenience?\\n\\nThank you for your time and cooperation.\\n\\nBest regards,\\n%s"
}`,
		contextJSON(dc), query, investorName, investorName, investorName, investorName)
}
