package agent

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

// LLMClassifier asks the text oracle to pick an action label for the turn.
type LLMClassifier struct {
	oracle domain.Oracle
	logger *slog.Logger
}

func NewLLMClassifier(oracle domain.Oracle, logger *slog.Logger) *LLMClassifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMClassifier{oracle: oracle, logger: logger}
}

// Classify builds the routing prompt, runs it, and parses the label. Anything
// the parser does not recognize falls back to a full analysis run.
func (c *LLMClassifier) Classify(ctx context.Context, query string, history []domain.Turn, agents []string, dc domain.DealContext) domain.Action {
	raw := c.oracle.GenerateText(ctx, classifierPrompt(query, history, agents, dc))
	action := ParseActionLabel(raw, query)
	c.logger.Debug("router decision", "label", strings.TrimSpace(raw), "action", string(action.Kind), "agent", action.Agent)
	return action
}

// ParseActionLabel normalizes a raw oracle label into an Action. Models tend
// to wrap the label in backticks, quotes, or whitespace, so those are
// stripped before matching.
func ParseActionLabel(raw, query string) domain.Action {
	label := strings.TrimSpace(raw)
	label = strings.Trim(label, "`'\"")
	label = strings.TrimSpace(label)

	if name, ok := strings.CutPrefix(label, string(domain.ActionRunAgent)+":"); ok {
		return domain.Action{Kind: domain.ActionRunAgent, Agent: strings.TrimSpace(name), Query: query}
	}

	switch label {
	case string(domain.ActionDirectAnswer):
		return domain.Action{Kind: domain.ActionDirectAnswer, Query: query}
	case string(domain.ActionChat):
		return domain.Action{Kind: domain.ActionChat, Query: query}
	case string(domain.ActionRunAll):
		return domain.Action{Kind: domain.ActionRunAll, Query: query}
	case string(domain.ActionSendEmail):
		return domain.Action{Kind: domain.ActionSendEmail, Query: query}
	case string(domain.ActionExecuteEmail):
		return domain.Action{Kind: domain.ActionExecuteEmail, Query: query}
	case string(domain.ActionSavePreferences), "save_deal_note_preferences":
		// The routing prompt advertises the longer historical spelling.
		return domain.Action{Kind: domain.ActionSavePreferences, Query: query}
	default:
		return domain.Action{Kind: domain.ActionRunAll, Query: query}
	}
}
