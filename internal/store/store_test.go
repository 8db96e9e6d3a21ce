package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

func testStores(t *testing.T) map[string]domain.ConversationStore {
	t.Helper()
	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "conv.db"), slog.Default())
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]domain.ConversationStore{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			turns := []domain.Turn{
				{User: "full analysis please", AI: "here you go"},
				{
					User: "email the founder",
					AI:   "I have drafted the following email for you...",
					Pending: &domain.PendingAction{
						Kind:      domain.PendingConfirmation,
						Recipient: "founder@example.com",
						Subject:   "Pitch deck",
						Body:      "line one\nline two",
					},
				},
			}

			id, err := s.Save(ctx, "", turns)
			if err != nil {
				t.Fatalf("Save: %v", err)
			}
			if id == "" {
				t.Fatal("Save returned empty id")
			}

			got, err := s.Get(ctx, id)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("got %d turns, want 2", len(got))
			}
			if got[0].User != turns[0].User || got[0].AI != turns[0].AI {
				t.Fatalf("turn 0 mismatch: %+v", got[0])
			}
			p := got[1].Pending
			if p == nil || p.Kind != domain.PendingConfirmation {
				t.Fatalf("pending state not preserved: %+v", p)
			}
			if p.Recipient != "founder@example.com" || p.Body != "line one\nline two" {
				t.Fatalf("pending fields mismatch: %+v", p)
			}
		})
	}
}

func TestStoreSaveKeepsID(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			id, err := s.Save(ctx, "", []domain.Turn{{User: "hi", AI: "hello"}})
			if err != nil {
				t.Fatalf("Save: %v", err)
			}

			// Saving under the same id replaces the history, id unchanged.
			id2, err := s.Save(ctx, id, []domain.Turn{
				{User: "hi", AI: "hello"},
				{User: "more", AI: "sure"},
			})
			if err != nil {
				t.Fatalf("second Save: %v", err)
			}
			if id2 != id {
				t.Fatalf("id changed: %s -> %s", id, id2)
			}

			got, err := s.Get(ctx, id)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("got %d turns, want 2", len(got))
			}
		})
	}
}

func TestStoreUnknownID(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Get(context.Background(), "no-such-id")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if len(got) != 0 {
				t.Fatalf("expected empty history, got %d turns", len(got))
			}
		})
	}
}
