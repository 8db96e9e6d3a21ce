package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/pankajrawal86/lvx-agents/internal/analyst"
	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

// scriptOracle replies from a script, or with a fixed reply once the script
// runs out. Every prompt is recorded.
type scriptOracle struct {
	script   []string
	fallback string
	prompts  []string
}

func (o *scriptOracle) GenerateText(ctx context.Context, prompt string) string {
	o.prompts = append(o.prompts, prompt)
	if len(o.script) > 0 {
		reply := o.script[0]
		o.script = o.script[1:]
		return reply
	}
	if o.fallback != "" {
		return o.fallback
	}
	return "oracle reply"
}

// fixedClassifier always returns the same action and counts calls.
type fixedClassifier struct {
	action domain.Action
	calls  int
	agents []string
}

func (c *fixedClassifier) Classify(ctx context.Context, query string, history []domain.Turn, agents []string, dc domain.DealContext) domain.Action {
	c.calls++
	c.agents = agents
	a := c.action
	if a.Query == "" {
		a.Query = query
	}
	return a
}

// countingAnalyst records how often it ran and with which context.
type countingAnalyst struct {
	name     string
	key      string
	runs     int
	contexts []domain.DealContext
}

func (a *countingAnalyst) Name() string { return a.name }
func (a *countingAnalyst) Key() string  { return a.key }

func (a *countingAnalyst) Analyze(ctx context.Context, dc domain.DealContext) (domain.Fragment, error) {
	a.runs++
	a.contexts = append(a.contexts, dc)
	return domain.Fragment{Key: a.key, Text: a.name + " findings"}, nil
}

func countingRegistry(analysts ...*countingAnalyst) *analyst.Registry {
	r := analyst.NewRegistry()
	for _, a := range analysts {
		r.Register(a.key, a)
	}
	return r
}

// recordingMailer captures sends and answers with a canned result.
type recordingMailer struct {
	result domain.SendResult
	sends  []sentMail
}

type sentMail struct {
	recipient, subject, html string
}

func (m *recordingMailer) Send(ctx context.Context, recipient, subject, htmlBody string) domain.SendResult {
	m.sends = append(m.sends, sentMail{recipient, subject, htmlBody})
	if m.result.Message == "" {
		return domain.SendResult{Status: domain.SendSuccess, Message: "sent"}
	}
	return m.result
}

// mapSource serves canned collections keyed as collection/field=value.
type mapSource struct {
	records map[string]map[string]domain.Record
}

func (s *mapSource) Query(ctx context.Context, collection, field, value string) (map[string]domain.Record, error) {
	recs, ok := s.records[fmt.Sprintf("%s/%s=%s", collection, field, value)]
	if !ok {
		return map[string]domain.Record{}, nil
	}
	return recs, nil
}

func dealSource(dealID string) *mapSource {
	return &mapSource{records: map[string]map[string]domain.Record{
		"deals/id=" + dealID: {
			"d0": {"id": dealID, "startupId": "s-1", "stage": "Seed"},
		},
		"startups/id=s-1": {
			"s0": {"id": "s-1", "company": "Acme Robotics", "sector": "Robotics"},
		},
		"keyMetrics/dealId=" + dealID: {
			"k0": {"dealId": dealID, "arr": "$1.2M"},
		},
	}}
}

func draftJSON(subject, body string) string {
	return fmt.Sprintf("```json\n{%q: %q, %q: %q}\n```", "subject", subject, "body", body)
}

func confirmationFor(recipient, subject, body string) string {
	return fmt.Sprintf(confirmationTemplate, recipient, subject, body)
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
