// Package mailer provides email delivery. The SendGrid transport is used
// when an API key is configured; otherwise delivery is simulated and the
// draft is only logged.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
	"github.com/pankajrawal86/lvx-agents/internal/metrics"
	"github.com/pankajrawal86/lvx-agents/internal/provider"
)

const sendgridEndpoint = "https://api.sendgrid.com/v3/mail/send"

// successMessage is the user-facing delivery confirmation. It is part of the
// conversation contract, not just log text.
const successMessage = "The email has been sent successfully. I will monitor for a reply and let you know when a response is received with any updated documents or information."

const simulatedMessage = "An email draft has been generated and logged because no email provider is configured. Once an email provider is set up, I will send the email and notify you when a response is received with any updated documents or information."

// SendGrid sends mail through the SendGrid v3 API.
type SendGrid struct {
	apiKey   string
	sender   string
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

func NewSendGrid(apiKey, sender string, logger *slog.Logger) *SendGrid {
	if logger == nil {
		logger = slog.Default()
	}
	return &SendGrid{
		apiKey:   apiKey,
		sender:   sender,
		endpoint: sendgridEndpoint,
		client:   provider.SharedHTTPClient(0),
		logger:   logger,
	}
}

type sgRequest struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
}

type sgPersonalization struct {
	To []sgAddress `json:"to"`
}

type sgAddress struct {
	Email string `json:"email"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Send delivers one HTML email. Failures are reported in the result message,
// never as an error: the caller records the outcome in conversation history
// either way.
func (s *SendGrid) Send(ctx context.Context, recipient, subject, htmlBody string) domain.SendResult {
	metrics.EmailsSentTotal.Inc()

	if s.apiKey == "" {
		s.logger.Info("no email provider configured, logging draft instead",
			"recipient", recipient, "subject", subject, "body", htmlBody)
		return domain.SendResult{Status: domain.SendSuccess, Message: simulatedMessage}
	}
	if s.sender == "" {
		return domain.SendResult{Status: domain.SendError, Message: "Sender email address is not configured for SendGrid."}
	}

	body := sgRequest{
		Personalizations: []sgPersonalization{{To: []sgAddress{{Email: recipient}}}},
		From:             sgAddress{Email: s.sender},
		Subject:          subject,
		Content:          []sgContent{{Type: "text/html", Value: htmlBody}},
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return domain.SendResult{Status: domain.SendError, Message: fmt.Sprintf("Error sending email via SendGrid: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return domain.SendResult{Status: domain.SendError, Message: fmt.Sprintf("Error sending email via SendGrid: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("sendgrid request failed", "error", err)
		return domain.SendResult{Status: domain.SendError, Message: fmt.Sprintf("Error sending email via SendGrid: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		s.logger.Error("sendgrid rejected message", "status", resp.StatusCode, "body", string(respBody))
		return domain.SendResult{
			Status:  domain.SendError,
			Message: fmt.Sprintf("Error sending email via SendGrid: status %d", resp.StatusCode),
		}
	}

	s.logger.Info("email sent", "recipient", recipient, "subject", subject)
	return domain.SendResult{Status: domain.SendSuccess, Message: successMessage}
}
