package domain

import "context"

// DealContext is the flat attribute map assembled per request from the deal,
// startup, and key-metrics records, plus request-scoped fields such as the
// current query and a resolved recipient email.
type DealContext map[string]any

// Str returns the string value for key, or "" when absent or non-string.
func (c DealContext) Str(key string) string {
	if v, ok := c[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Name returns the startup name, falling back to the company field.
func (c DealContext) Name() string {
	if n := c.Str("name"); n != "" {
		return n
	}
	return c.Str("company")
}

// ActionKind enumerates the closed set of per-turn actions.
type ActionKind string

const (
	ActionDirectAnswer    ActionKind = "direct_answer"
	ActionChat            ActionKind = "chat"
	ActionRunAgent        ActionKind = "run_specific_agent"
	ActionRunAll          ActionKind = "run_all_agents"
	ActionSendEmail       ActionKind = "send_email"
	ActionExecuteEmail    ActionKind = "execute_email"
	ActionSavePreferences ActionKind = "save_preferences"
)

// Action is the routing decision for one turn.
type Action struct {
	Kind ActionKind
	// Agent names the specialist for ActionRunAgent.
	Agent string
	// Query is the effective query the dispatcher should act on. Normally the
	// incoming query; for the resumed email workflow it is the original
	// request that preceded the recipient prompt.
	Query string
}

// Analysis is the payload of a successful invocation: either a response or a
// user-visible error message.
type Analysis struct {
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

// AnalysisResult pairs the (possibly newly generated) conversation id with the
// analysis payload.
type AnalysisResult struct {
	ConversationID string   `json:"conversation_id"`
	Analysis       Analysis `json:"analysis"`
}

// Fragment is one specialist's named report piece.
type Fragment struct {
	Key  string
	Text string
}

// Analyst is a stateless specialist: deal context in, named fragment out.
type Analyst interface {
	// Name is the human-readable agent name used in prompts.
	Name() string
	// Key is the fragment key this analyst reports under.
	Key() string
	Analyze(ctx context.Context, dc DealContext) (Fragment, error)
}

// Classifier decides the action for a turn. Implementations may consult an
// LLM; the deterministic overrides around it live in the router.
type Classifier interface {
	Classify(ctx context.Context, query string, history []Turn, agents []string, dc DealContext) Action
}
