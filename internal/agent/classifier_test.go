package agent

import (
	"context"
	"testing"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

func TestParseActionLabel(t *testing.T) {
	cases := []struct {
		raw   string
		kind  domain.ActionKind
		agent string
	}{
		{"direct_answer", domain.ActionDirectAnswer, ""},
		{"chat", domain.ActionChat, ""},
		{"run_all_agents", domain.ActionRunAll, ""},
		{"send_email", domain.ActionSendEmail, ""},
		{"execute_email", domain.ActionExecuteEmail, ""},
		{"save_preferences", domain.ActionSavePreferences, ""},
		{"save_deal_note_preferences", domain.ActionSavePreferences, ""},
		{"run_specific_agent:deal_memo", domain.ActionRunAgent, "deal_memo"},
		{"run_specific_agent: benchmarking", domain.ActionRunAgent, "benchmarking"},
		{"`direct_answer`", domain.ActionDirectAnswer, ""},
		{"\"chat\"", domain.ActionChat, ""},
		{"  run_all_agents\n", domain.ActionRunAll, ""},
		{"`run_specific_agent:market_research`", domain.ActionRunAgent, "market_research"},
		{"I think run_all_agents would be best", domain.ActionRunAll, ""},
		{"", domain.ActionRunAll, ""},
		{"unknown_label", domain.ActionRunAll, ""},
	}
	for _, tc := range cases {
		got := ParseActionLabel(tc.raw, "the query")
		if got.Kind != tc.kind {
			t.Errorf("ParseActionLabel(%q).Kind = %s, want %s", tc.raw, got.Kind, tc.kind)
		}
		if got.Agent != tc.agent {
			t.Errorf("ParseActionLabel(%q).Agent = %q, want %q", tc.raw, got.Agent, tc.agent)
		}
		if got.Query != "the query" {
			t.Errorf("ParseActionLabel(%q).Query = %q", tc.raw, got.Query)
		}
	}
}

func TestClassifyBuildsRoutingPrompt(t *testing.T) {
	oracle := &scriptOracle{script: []string{"`run_specific_agent:benchmarking`"}}
	cls := NewLLMClassifier(oracle, nil)

	history := []domain.Turn{{User: "hello", AI: "hi there"}}
	dc := domain.DealContext{"company": "Acme Robotics"}
	action := cls.Classify(context.Background(), "analyze competitors", history, []string{"deal_memo", "benchmarking"}, dc)

	if action.Kind != domain.ActionRunAgent || action.Agent != "benchmarking" {
		t.Fatalf("action = %+v", action)
	}
	if len(oracle.prompts) != 1 {
		t.Fatalf("oracle calls = %d", len(oracle.prompts))
	}
	prompt := oracle.prompts[0]
	if !containsAll(prompt,
		`"analyze competitors"`,
		"User: hello\nAI: hi there",
		"deal_memo, benchmarking",
		"Acme Robotics",
		"save_deal_note_preferences") {
		t.Fatalf("routing prompt missing expected content:\n%s", prompt)
	}
}
