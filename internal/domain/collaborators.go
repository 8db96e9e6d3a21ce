package domain

import "context"

// Record is one row of a structured-data collection.
type Record map[string]any

// DealSource is the structured-data capability backing context assembly.
type DealSource interface {
	// Query returns the records in collection whose field equals value, keyed
	// by their storage key. An empty map means no match.
	Query(ctx context.Context, collection, field, value string) (map[string]Record, error)
}

// SendStatus reports the outcome of an email delivery attempt.
type SendStatus string

const (
	SendSuccess SendStatus = "success"
	SendError   SendStatus = "error"
)

// SendResult is the user-facing outcome of a delivery attempt. Delivery
// failures are carried in Message, not raised.
type SendResult struct {
	Status  SendStatus `json:"status"`
	Message string     `json:"message"`
}

// Mailer is the email-delivery capability. Implementations without a
// configured transport simulate success and say the draft was only logged.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, htmlBody string) SendResult
}
