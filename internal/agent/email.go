package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

// confirmationTemplate is the literal contract between draft rendering and
// execute-time extraction. The markers must not appear in subjects or bodies.
const confirmationTemplate = `I have drafted the following email for you:

**To:** %s
**Subject:** %s
**Body:**
%s

Do you approve of sending this email? Please respond with 'yes' to send, or provide any changes you'd like to make.`

// Composer drafts emails via the oracle and renders the confirmation message.
type Composer struct {
	oracle       domain.Oracle
	investorName string
	logger       *slog.Logger
}

func NewComposer(oracle domain.Oracle, investorName string, logger *slog.Logger) *Composer {
	if investorName == "" {
		investorName = "a potential investor"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{oracle: oracle, investorName: investorName, logger: logger}
}

// Compose drafts an email for query. When the context has no recipient it
// returns the fixed recipient prompt with a pending awaiting-recipient state.
// On a successful draft it returns the rendered confirmation message with a
// pending awaiting-confirmation state. Draft failures come back as apology
// text with no pending state.
func (c *Composer) Compose(ctx context.Context, query string, dc domain.DealContext) (string, *domain.PendingAction) {
	recipient := dc.Str("email")
	if recipient == "" {
		return recipientPrompt, &domain.PendingAction{
			Kind:          domain.PendingRecipient,
			OriginalQuery: query,
		}
	}

	investor := dc.Str("investor_name")
	if investor == "" {
		investor = c.investorName
	}
	raw := c.oracle.GenerateText(ctx, composeEmailPrompt(query, investor, dc))

	var draft struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	obj, ok := firstJSONObject(raw)
	if !ok || json.Unmarshal([]byte(obj), &draft) != nil {
		c.logger.Warn("email draft was not valid JSON", "recipient", recipient)
		return apologyDraftFailed, nil
	}
	if draft.Subject == "" || draft.Body == "" {
		return apologyDraftIncomplete, nil
	}

	msg := fmt.Sprintf(confirmationTemplate, recipient, draft.Subject, draft.Body)
	return msg, &domain.PendingAction{
		Kind:      domain.PendingConfirmation,
		Recipient: recipient,
		Subject:   draft.Subject,
		Body:      draft.Body,
	}
}

// firstJSONObject returns the outermost {...} block in s. Oracle replies
// often wrap the JSON in prose or code fences.
func firstJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

var errNoDraft = errors.New("no email draft in confirmation text")

// extractDraft recovers recipient, subject, and body from a rendered
// confirmation message. The body keeps its line breaks; HTML conversion is
// the caller's concern.
func extractDraft(text string) (recipient, subject, body string, err error) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(line, "**To:**"); ok && recipient == "" {
			recipient = strings.TrimSpace(v)
		}
		if v, ok := strings.CutPrefix(line, "**Subject:**"); ok && subject == "" {
			subject = strings.TrimSpace(v)
		}
	}

	bodyStart := strings.Index(text, "**Body:**")
	bodyEnd := strings.Index(text, "Do you approve")
	if recipient == "" || subject == "" || bodyStart < 0 || bodyEnd < 0 || bodyEnd < bodyStart {
		return "", "", "", errNoDraft
	}
	body = strings.TrimSpace(text[bodyStart+len("**Body:**") : bodyEnd])
	return recipient, subject, body, nil
}

// htmlBody converts a plain-text body to the HTML form handed to the mailer.
func htmlBody(body string) string {
	return strings.ReplaceAll(body, "\n", "<br>")
}
