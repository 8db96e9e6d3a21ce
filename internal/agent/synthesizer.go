package agent

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pankajrawal86/lvx-agents/internal/analyst"
	"github.com/pankajrawal86/lvx-agents/internal/domain"
	"github.com/pankajrawal86/lvx-agents/internal/metrics"
)

// Synthesizer runs specialists and folds their fragments into user-facing
// prose.
type Synthesizer struct {
	oracle   domain.Oracle
	registry *analyst.Registry
	logger   *slog.Logger
}

func NewSynthesizer(oracle domain.Oracle, registry *analyst.Registry, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{oracle: oracle, registry: registry, logger: logger}
}

// RunAll runs every registered specialist sequentially in registration order
// and asks the oracle for a single investment-committee narrative over the
// collected fragments. Later fragments win on key collisions.
func (s *Synthesizer) RunAll(ctx context.Context, dc domain.DealContext) string {
	fragments := make(map[string]string)
	for _, a := range s.registry.All() {
		s.logger.Info("running specialist", "agent", a.Name())
		start := time.Now()
		frag, err := a.Analyze(ctx, dc)
		metrics.SpecialistRuns.Inc()
		metrics.SpecialistLatency.Observe(time.Since(start).Seconds())
		if err != nil {
			s.logger.Error("specialist failed", "agent", a.Name(), "error", err)
			continue
		}
		fragments[frag.Key] = frag.Text
	}

	b, err := json.MarshalIndent(fragments, "", "  ")
	if err != nil {
		b = []byte("{}")
	}
	return s.oracle.GenerateText(ctx, synthesisPrompt(dc.Str("company"), string(b)))
}

// RunOne runs the named specialist and reformats its fragment into prose.
// ok is false when name is not registered.
func (s *Synthesizer) RunOne(ctx context.Context, name string, dc domain.DealContext) (string, bool) {
	a, ok := s.registry.Get(name)
	if !ok {
		return "", false
	}
	s.logger.Info("running specialist", "agent", a.Name())
	start := time.Now()
	frag, err := a.Analyze(ctx, dc)
	metrics.SpecialistRuns.Inc()
	metrics.SpecialistLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		s.logger.Error("specialist failed", "agent", a.Name(), "error", err)
		return "The agent did not provide a valid response.", true
	}
	return s.oracle.GenerateText(ctx, singleAgentPrompt(a.Name(), frag.Text, dc.Name())), true
}
