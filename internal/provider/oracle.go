package provider

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

// TextOracle adapts a Provider to the domain.Oracle contract: generation
// failures never propagate, they become placeholder text so the conversation
// can still advance with a user-visible message.
type TextOracle struct {
	provider domain.Provider
	logger   *slog.Logger
}

func NewTextOracle(p domain.Provider, logger *slog.Logger) *TextOracle {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextOracle{provider: p, logger: logger}
}

func (o *TextOracle) GenerateText(ctx context.Context, prompt string) string {
	if o.provider == nil {
		o.logger.Warn("no LLM provider configured, returning placeholder")
		return fmt.Sprintf("[Placeholder LLM response for: %s...]", truncate(prompt, 50))
	}

	resp, err := o.provider.Generate(ctx, domain.GenerateRequest{Prompt: prompt})
	if err != nil {
		o.logger.Error("LLM generation failed", "provider", o.provider.Name(), "err", err)
		return fmt.Sprintf("[LLM Generation Failed: %v]", err)
	}
	return resp.Text
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
