package provider

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

type failingProvider struct{ err error }

func (p *failingProvider) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.GenerateResponse, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &domain.GenerateResponse{Text: "generated text"}, nil
}

func (p *failingProvider) Name() string                      { return "fake" }
func (p *failingProvider) Mode() domain.ProviderMode         { return domain.ModeAPI }
func (p *failingProvider) Healthy(ctx context.Context) error { return nil }

func TestOracleWithoutProvider(t *testing.T) {
	o := NewTextOracle(nil, nil)

	long := strings.Repeat("x", 80)
	got := o.GenerateText(context.Background(), long)
	want := "[Placeholder LLM response for: " + strings.Repeat("x", 50) + "...]"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	short := o.GenerateText(context.Background(), "hi")
	if short != "[Placeholder LLM response for: hi...]" {
		t.Fatalf("got %q", short)
	}
}

func TestOracleSurfacesFailureAsText(t *testing.T) {
	o := NewTextOracle(&failingProvider{err: errors.New("quota exceeded")}, nil)
	got := o.GenerateText(context.Background(), "prompt")
	if got != "[LLM Generation Failed: quota exceeded]" {
		t.Fatalf("got %q", got)
	}
}

func TestOraclePassesThroughText(t *testing.T) {
	o := NewTextOracle(&failingProvider{}, nil)
	if got := o.GenerateText(context.Background(), "prompt"); got != "generated text" {
		t.Fatalf("got %q", got)
	}
}
