package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("LVX_TEST_VAR", "hello")
	defer os.Unsetenv("LVX_TEST_VAR")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"set variable", "key=${LVX_TEST_VAR}", "key=hello"},
		{"unset without default", "key=${LVX_TEST_UNSET}", "key=${LVX_TEST_UNSET}"},
		{"unset with default", "key=${LVX_TEST_UNSET:-fallback}", "key=fallback"},
		{"set with default", "key=${LVX_TEST_VAR:-fallback}", "key=hello"},
		{"no pattern", "plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandEnvVars(tt.input); got != tt.want {
				t.Fatalf("ExpandEnvVars(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	os.Setenv("LVX_TEST_KEY", "sk-test")
	defer os.Unsetenv("LVX_TEST_KEY")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	raw := `{
		"providers": {"gemini": {"enabled": true, "apiKey": "${LVX_TEST_KEY}"}},
		"dealData": {"source": "fixture", "fixturePath": "deals.yaml"}
	}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Providers["gemini"].APIKey != "sk-test" {
		t.Fatalf("apiKey = %q, want sk-test", cfg.Providers["gemini"].APIKey)
	}
	// Defaults still fill unspecified sections.
	if cfg.Server.Port != 8080 {
		t.Fatalf("port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	cfg.Conversations.Concurrency = "race"
	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "conversations.concurrency") {
		t.Fatalf("expected concurrency validation error, got %v", err)
	}

	cfg = Defaults()
	cfg.DealData.Source = "firebase"
	cfg.DealData.DatabaseURL = ""
	if err := Validate(cfg); err == nil {
		t.Fatal("expected databaseURL validation error")
	}

	cfg = Defaults()
	cfg.General.DefaultProvider = "missing"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected defaultProvider validation error")
	}
}
