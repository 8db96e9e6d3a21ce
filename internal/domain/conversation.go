package domain

import "context"

// Turn is a single user/AI exchange within a conversation.
type Turn struct {
	User string `json:"user"`
	AI   string `json:"ai"`

	// Pending carries the email workflow state this turn left behind, if any.
	// Histories written before this field existed recover the same state from
	// the rendered AI text.
	Pending *PendingAction `json:"pending,omitempty"`
}

// PendingKind tags the email-workflow state attached to a turn.
type PendingKind string

const (
	// PendingRecipient: the AI asked for a recipient address; OriginalQuery
	// holds the email request that triggered the ask.
	PendingRecipient PendingKind = "awaiting_recipient"
	// PendingConfirmation: a draft was rendered and awaits approval.
	PendingConfirmation PendingKind = "awaiting_confirmation"
)

// PendingAction is the explicit protocol state of the two-step email workflow.
type PendingAction struct {
	Kind          PendingKind `json:"kind"`
	OriginalQuery string      `json:"original_query,omitempty"`
	Recipient     string      `json:"recipient,omitempty"`
	Subject       string      `json:"subject,omitempty"`
	Body          string      `json:"body,omitempty"`
}

// ConversationStore persists conversation histories keyed by an opaque id.
type ConversationStore interface {
	// Get returns the turns for id, or an empty slice when the id is unknown
	// or empty.
	Get(ctx context.Context, id string) ([]Turn, error)
	// Save stores turns under id, generating a fresh id when id is empty, and
	// returns the id the history is stored under.
	Save(ctx context.Context, id string, turns []Turn) (string, error)
}
