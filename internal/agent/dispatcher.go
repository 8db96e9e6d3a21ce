package agent

import (
	"context"
	"log/slog"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

// Dispatcher executes a routed action against the deal context and history.
type Dispatcher struct {
	oracle   domain.Oracle
	synth    *Synthesizer
	composer *Composer
	mailer   domain.Mailer
	logger   *slog.Logger
}

func NewDispatcher(oracle domain.Oracle, synth *Synthesizer, composer *Composer, mailer domain.Mailer, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{oracle: oracle, synth: synth, composer: composer, mailer: mailer, logger: logger}
}

// Dispatch runs action and returns the user-facing response plus any email
// workflow state the resulting turn should carry. Every branch recovers its
// own failures into user-visible text.
func (d *Dispatcher) Dispatch(ctx context.Context, action domain.Action, history []domain.Turn, dc domain.DealContext) (string, *domain.PendingAction) {
	switch action.Kind {
	case domain.ActionDirectAnswer:
		return d.oracle.GenerateText(ctx, directAnswerPrompt(action.Query, dc)), nil

	case domain.ActionChat:
		return d.oracle.GenerateText(ctx, chatPrompt(action.Query, history, dc)), nil

	case domain.ActionRunAgent:
		if resp, ok := d.synth.RunOne(ctx, action.Agent, dc); ok {
			return resp, nil
		}
		d.logger.Warn("router returned unknown agent, running full analysis", "agent", action.Agent)
		return d.synth.RunAll(ctx, dc), nil

	case domain.ActionRunAll:
		return d.synth.RunAll(ctx, dc), nil

	case domain.ActionSendEmail:
		return d.composer.Compose(ctx, action.Query, dc)

	case domain.ActionExecuteEmail:
		return d.executeEmail(ctx, history), nil

	case domain.ActionSavePreferences:
		return preferencesAck, nil

	default:
		return d.synth.RunAll(ctx, dc), nil
	}
}

// executeEmail sends the draft confirmed by the user. Fields come from the
// confirmation turn's pending state when present, otherwise they are
// re-extracted from its rendered text.
func (d *Dispatcher) executeEmail(ctx context.Context, history []domain.Turn) string {
	if len(history) == 0 {
		return apologyExtractFailed
	}
	last := history[len(history)-1]

	var recipient, subject, body string
	if p := last.Pending; p != nil && p.Kind == domain.PendingConfirmation {
		recipient, subject, body = p.Recipient, p.Subject, p.Body
	} else {
		var err error
		recipient, subject, body, err = extractDraft(last.AI)
		if err != nil {
			d.logger.Warn("could not recover email draft from history", "error", err)
			return apologyExtractFailed
		}
	}

	d.logger.Info("sending email", "recipient", recipient, "subject", subject)
	result := d.mailer.Send(ctx, recipient, subject, htmlBody(body))
	if result.Status == domain.SendError {
		d.logger.Error("email delivery failed", "recipient", recipient, "message", result.Message)
	}
	return result.Message
}
