package agent

import (
	"context"
	"testing"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

func TestAffirmativeDetection(t *testing.T) {
	cases := []struct {
		query string
		want  bool
	}{
		{"yes", true},
		{"YES", true},
		{"y", true},
		{"Confirm", true},
		{"SEND IT", true},
		{"  yes  ", true},
		{"yes please", false},
		{"no", false},
		{"send", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := isAffirmative(tc.query); got != tc.want {
			t.Errorf("isAffirmative(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestRouteRecipientOverrideFromPendingState(t *testing.T) {
	cls := &fixedClassifier{action: domain.Action{Kind: domain.ActionChat}}
	r := NewRouter(cls, []string{"deal_memo"}, nil)

	history := []domain.Turn{{
		User: "send an email asking for the pitch deck",
		AI:   recipientPrompt,
		Pending: &domain.PendingAction{
			Kind:          domain.PendingRecipient,
			OriginalQuery: "send an email asking for the pitch deck",
		},
	}}
	dc := domain.DealContext{"company": "Acme Robotics"}

	action := r.Route(context.Background(), "founder@example.com", history, dc)
	if action.Kind != domain.ActionSendEmail {
		t.Fatalf("action = %s, want send_email", action.Kind)
	}
	if action.Query != "send an email asking for the pitch deck" {
		t.Fatalf("query = %q, want original request", action.Query)
	}
	if dc.Str("email") != "founder@example.com" {
		t.Fatalf("email not merged into context: %q", dc.Str("email"))
	}
	if cls.calls != 0 {
		t.Fatal("classifier must not run for the recipient override")
	}
}

func TestRouteRecipientOverrideFromRenderedText(t *testing.T) {
	cls := &fixedClassifier{action: domain.Action{Kind: domain.ActionChat}}
	r := NewRouter(cls, nil, nil)

	history := []domain.Turn{{
		User: "ask the founder about churn",
		AI:   recipientPrompt,
	}}
	dc := domain.DealContext{}

	action := r.Route(context.Background(), " founder@example.com ", history, dc)
	if action.Kind != domain.ActionSendEmail {
		t.Fatalf("action = %s, want send_email", action.Kind)
	}
	if action.Query != "ask the founder about churn" {
		t.Fatalf("query = %q", action.Query)
	}
	if dc.Str("email") != "founder@example.com" {
		t.Fatalf("email = %q, want trimmed address", dc.Str("email"))
	}
	if cls.calls != 0 {
		t.Fatal("classifier must not run for the recipient override")
	}
}

func TestRouteNonAddressAfterRecipientPrompt(t *testing.T) {
	cls := &fixedClassifier{action: domain.Action{Kind: domain.ActionChat}}
	r := NewRouter(cls, nil, nil)

	history := []domain.Turn{{User: "send an email", AI: recipientPrompt}}
	action := r.Route(context.Background(), "never mind", history, domain.DealContext{})
	if action.Kind != domain.ActionChat {
		t.Fatalf("action = %s, want classifier decision", action.Kind)
	}
	if cls.calls != 1 {
		t.Fatalf("classifier calls = %d, want 1", cls.calls)
	}
}

func TestRouteConfirmationOverride(t *testing.T) {
	history := []domain.Turn{{
		User: "send an email asking for the pitch deck",
		AI:   confirmationFor("founder@example.com", "Pitch deck", "Please share it."),
		Pending: &domain.PendingAction{
			Kind:      domain.PendingConfirmation,
			Recipient: "founder@example.com",
			Subject:   "Pitch deck",
			Body:      "Please share it.",
		},
	}}

	cls := &fixedClassifier{action: domain.Action{Kind: domain.ActionChat}}
	r := NewRouter(cls, nil, nil)

	action := r.Route(context.Background(), "Yes", history, domain.DealContext{})
	if action.Kind != domain.ActionExecuteEmail {
		t.Fatalf("affirmative: action = %s, want execute_email", action.Kind)
	}

	action = r.Route(context.Background(), "make the tone more formal", history, domain.DealContext{})
	if action.Kind != domain.ActionSendEmail {
		t.Fatalf("revision: action = %s, want send_email", action.Kind)
	}
	if action.Query != "make the tone more formal" {
		t.Fatalf("revision query = %q, want the new query verbatim", action.Query)
	}
	if cls.calls != 0 {
		t.Fatal("classifier must not run while a draft awaits confirmation")
	}
}

func TestRouteConfirmationOverrideFromRenderedText(t *testing.T) {
	history := []domain.Turn{{
		User: "email the founder",
		AI:   confirmationFor("founder@example.com", "Intro", "Hello."),
	}}
	r := NewRouter(&fixedClassifier{}, nil, nil)

	action := r.Route(context.Background(), "send it", history, domain.DealContext{})
	if action.Kind != domain.ActionExecuteEmail {
		t.Fatalf("action = %s, want execute_email", action.Kind)
	}
}

func TestRouteDelegatesToClassifier(t *testing.T) {
	cls := &fixedClassifier{action: domain.Action{Kind: domain.ActionRunAgent, Agent: "benchmarking"}}
	r := NewRouter(cls, []string{"deal_memo", "benchmarking"}, nil)

	history := []domain.Turn{{User: "hello", AI: "hi"}}
	action := r.Route(context.Background(), "analyze competitors", history, domain.DealContext{})
	if action.Kind != domain.ActionRunAgent || action.Agent != "benchmarking" {
		t.Fatalf("action = %+v", action)
	}
	if cls.calls != 1 {
		t.Fatalf("classifier calls = %d, want 1", cls.calls)
	}
	if len(cls.agents) != 2 || cls.agents[0] != "deal_memo" {
		t.Fatalf("classifier saw agents %v", cls.agents)
	}
}
