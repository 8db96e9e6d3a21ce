package agent

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

// affirmatives is the closed set of replies that confirm a drafted email.
// Matching is case-insensitive and exact; anything else is a revision request.
var affirmatives = map[string]bool{
	"yes":     true,
	"y":       true,
	"confirm": true,
	"send it": true,
}

func isAffirmative(query string) bool {
	return affirmatives[strings.ToLower(strings.TrimSpace(query))]
}

// looksLikeEmail is the deliberately loose address check applied when the
// previous turn asked for a recipient.
func looksLikeEmail(s string) bool {
	s = strings.TrimSpace(s)
	return strings.Contains(s, "@") && strings.Contains(s, ".")
}

// Router decides the action for a turn. Email-workflow protocol state is
// resolved deterministically before the classifier is consulted: the pending
// state attached to the last turn wins, and for histories written before
// pending state existed the same transitions are recovered from the rendered
// AI text.
type Router struct {
	classifier domain.Classifier
	agents     []string
	logger     *slog.Logger
}

// NewRouter builds a router over classifier. agents is the list of registered
// specialist names advertised to the classifier.
func NewRouter(classifier domain.Classifier, agents []string, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{classifier: classifier, agents: agents, logger: logger}
}

// Route returns the action for query. When the previous turn asked for a
// recipient address and the query is one, the resolved address is merged into
// dc under "email" and the returned action carries the original request as
// its query.
func (r *Router) Route(ctx context.Context, query string, history []domain.Turn, dc domain.DealContext) domain.Action {
	if len(history) == 0 {
		return r.classifier.Classify(ctx, query, history, r.agents, dc)
	}
	last := history[len(history)-1]

	if awaitingRecipient(last) && looksLikeEmail(query) {
		addr := strings.TrimSpace(query)
		dc["email"] = addr
		original := originalEmailQuery(last)
		r.logger.Info("recipient address provided, resuming email request", "recipient", addr)
		return domain.Action{Kind: domain.ActionSendEmail, Query: original}
	}

	if awaitingConfirmation(last) {
		if isAffirmative(query) {
			return domain.Action{Kind: domain.ActionExecuteEmail, Query: query}
		}
		// Any other reply revises the draft.
		return domain.Action{Kind: domain.ActionSendEmail, Query: query}
	}

	return r.classifier.Classify(ctx, query, history, r.agents, dc)
}

func awaitingRecipient(last domain.Turn) bool {
	if last.Pending != nil {
		return last.Pending.Kind == domain.PendingRecipient
	}
	return last.AI == recipientPrompt
}

func awaitingConfirmation(last domain.Turn) bool {
	if last.Pending != nil {
		return last.Pending.Kind == domain.PendingConfirmation
	}
	return strings.Contains(last.AI, draftMarker)
}

// originalEmailQuery recovers the request that triggered the recipient
// prompt: the explicit pending state when present, otherwise the user side of
// the prompting turn.
func originalEmailQuery(last domain.Turn) string {
	if last.Pending != nil && last.Pending.OriginalQuery != "" {
		return last.Pending.OriginalQuery
	}
	return last.User
}
