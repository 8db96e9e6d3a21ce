package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

func TestComposeWithoutRecipient(t *testing.T) {
	oracle := &scriptOracle{}
	c := NewComposer(oracle, "Jane Doe", nil)

	query := "send an email asking for the pitch deck"
	resp, pending := c.Compose(context.Background(), query, domain.DealContext{"company": "Acme Robotics"})

	if resp != recipientPrompt {
		t.Fatalf("response = %q, want the fixed recipient prompt", resp)
	}
	if pending == nil || pending.Kind != domain.PendingRecipient {
		t.Fatalf("pending = %+v, want awaiting_recipient", pending)
	}
	if pending.OriginalQuery != query {
		t.Fatalf("original query = %q", pending.OriginalQuery)
	}
	if len(oracle.prompts) != 0 {
		t.Fatal("oracle must not be consulted without a recipient")
	}
}

func TestComposeRendersConfirmation(t *testing.T) {
	body := "Dear Founder,\n\nPlease upload your pitch deck to the LVX platform.\n\nBest regards,\nJane Doe"
	oracle := &scriptOracle{script: []string{draftJSON("Request for Pitch Deck", body)}}
	c := NewComposer(oracle, "Jane Doe", nil)

	dc := domain.DealContext{"company": "Acme Robotics", "email": "founder@example.com"}
	resp, pending := c.Compose(context.Background(), "send an email asking for the pitch deck", dc)

	want := confirmationFor("founder@example.com", "Request for Pitch Deck", body)
	if resp != want {
		t.Fatalf("confirmation mismatch:\ngot:\n%s\nwant:\n%s", resp, want)
	}
	if pending == nil || pending.Kind != domain.PendingConfirmation {
		t.Fatalf("pending = %+v, want awaiting_confirmation", pending)
	}
	if pending.Recipient != "founder@example.com" || pending.Subject != "Request for Pitch Deck" || pending.Body != body {
		t.Fatalf("pending fields = %+v", pending)
	}

	if len(oracle.prompts) != 1 {
		t.Fatalf("oracle calls = %d, want 1", len(oracle.prompts))
	}
	if !containsAll(oracle.prompts[0], "Jane Doe", "LVX platform", "send an email asking for the pitch deck") {
		t.Fatalf("compose prompt missing expected content:\n%s", oracle.prompts[0])
	}
}

func TestComposeUnparseableDraft(t *testing.T) {
	oracle := &scriptOracle{script: []string{"I cannot produce JSON today."}}
	c := NewComposer(oracle, "", nil)

	dc := domain.DealContext{"email": "founder@example.com"}
	resp, pending := c.Compose(context.Background(), "send an email", dc)
	if resp != apologyDraftFailed {
		t.Fatalf("response = %q", resp)
	}
	if pending != nil {
		t.Fatal("failed drafts must not leave pending state")
	}
}

func TestComposeIncompleteDraft(t *testing.T) {
	oracle := &scriptOracle{script: []string{`{"subject": "Only a subject"}`}}
	c := NewComposer(oracle, "", nil)

	dc := domain.DealContext{"email": "founder@example.com"}
	resp, pending := c.Compose(context.Background(), "send an email", dc)
	if resp != apologyDraftIncomplete {
		t.Fatalf("response = %q", resp)
	}
	if pending != nil {
		t.Fatal("incomplete drafts must not leave pending state")
	}
}

func TestExtractDraftRoundTrip(t *testing.T) {
	body := "Dear Founder,\n\nCould you upload the latest metrics?\n\nBest regards,\nJane"
	rendered := confirmationFor("founder@example.com", "Metrics request", body)

	recipient, subject, got, err := extractDraft(rendered)
	if err != nil {
		t.Fatal(err)
	}
	if recipient != "founder@example.com" {
		t.Fatalf("recipient = %q", recipient)
	}
	if subject != "Metrics request" {
		t.Fatalf("subject = %q", subject)
	}
	if got != body {
		t.Fatalf("body = %q, want %q", got, body)
	}

	html := htmlBody(got)
	if strings.Contains(html, "\n") {
		t.Fatal("html body still contains raw newlines")
	}
	if !strings.Contains(html, "Dear Founder,<br><br>Could you upload") {
		t.Fatalf("html body = %q", html)
	}
}

func TestExtractDraftMalformed(t *testing.T) {
	cases := []string{
		"",
		"just some chat text",
		"**To:** someone@example.com\nno other markers here",
		"**Subject:** hello\n**Body:**\ntext without approval line",
	}
	for _, text := range cases {
		if _, _, _, err := extractDraft(text); err == nil {
			t.Errorf("extractDraft(%q) succeeded, want error", text)
		}
	}
}

func TestFirstJSONObject(t *testing.T) {
	obj, ok := firstJSONObject("Sure! ```json\n{\"subject\": \"s\", \"body\": \"b\"}\n``` hope that helps")
	if !ok {
		t.Fatal("no object found")
	}
	if obj != `{"subject": "s", "body": "b"}` {
		t.Fatalf("obj = %q", obj)
	}
	if _, ok := firstJSONObject("no braces here"); ok {
		t.Fatal("expected no object")
	}
}
