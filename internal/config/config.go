package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Config is the root configuration for the deal-analysis service.
type Config struct {
	General       GeneralConfig             `json:"general"`
	Providers     map[string]ProviderConfig `json:"providers"`
	Server        ServerConfig              `json:"server"`
	Conversations ConversationsConfig       `json:"conversations"`
	DealData      DealDataConfig            `json:"dealData"`
	Email         EmailConfig               `json:"email"`
	Metrics       MetricsConfig             `json:"metrics"`
}

type GeneralConfig struct {
	LogLevel        string `json:"logLevel"`
	LogFile         string `json:"logFile,omitempty"`
	DefaultProvider string `json:"defaultProvider"`
	// InvestorName is mentioned in drafted founder emails.
	InvestorName string `json:"investorName,omitempty"`
}

type ProviderConfig struct {
	Enabled      bool   `json:"enabled"`
	APIBase      string `json:"apiBase,omitempty"`
	APIKey       string `json:"apiKey,omitempty"`
	DefaultModel string `json:"defaultModel,omitempty"`
}

type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// ConversationsConfig selects the history backend and the policy for
// concurrent turns on one conversation id.
type ConversationsConfig struct {
	Backend string `json:"backend"` // "memory" | "sqlite"
	DBPath  string `json:"dbPath,omitempty"`
	// Concurrency: "serialize" queues turns per conversation id behind a
	// lock; "reject" answers busy conversations with an error.
	Concurrency string `json:"concurrency"`
}

type DealDataConfig struct {
	Source      string `json:"source"` // "firebase" | "fixture"
	DatabaseURL string `json:"databaseURL,omitempty"`
	AuthToken   string `json:"authToken,omitempty"`
	FixturePath string `json:"fixturePath,omitempty"`
}

type EmailConfig struct {
	SendGridAPIKey string `json:"sendgridApiKey,omitempty"`
	SenderEmail    string `json:"senderEmail,omitempty"`
}

type MetricsConfig struct {
	Enabled bool `json:"enabled"`
}

// DefaultConfigDir returns the default config directory (~/.lvx-agents).
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lvx-agents"
	}
	return filepath.Join(home, ".lvx-agents")
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

func Load(path string) (*Config, error) {
	path = ExpandPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	// Substitute environment variables: ${VAR} and ${VAR:-default}
	data = []byte(ExpandEnvVars(string(data)))

	cfg := Defaults()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}

	cfg.Conversations.DBPath = ExpandPath(cfg.Conversations.DBPath)
	cfg.DealData.FixturePath = ExpandPath(cfg.DealData.FixturePath)
	cfg.General.LogFile = ExpandPath(cfg.General.LogFile)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns in config strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-(.*?))?\}`)

// ExpandEnvVars replaces ${VAR} with the environment variable value.
// Supports default values: ${VAR:-default} uses "default" when VAR is unset or empty.
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		varName := groups[1]
		defaultVal := ""
		hasDefault := len(groups) >= 3 && groups[2] != ""
		if hasDefault {
			defaultVal = groups[2]
		}

		val, exists := os.LookupEnv(varName)
		if !exists || val == "" {
			if hasDefault {
				return defaultVal
			}
			return match // keep original if no env var and no default
		}
		return val
	})
}

func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate checks that the config has valid values.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 0 and 65535")
	}

	switch cfg.Conversations.Backend {
	case "memory", "sqlite":
	default:
		errs = append(errs, "conversations.backend must be one of: memory, sqlite")
	}
	if cfg.Conversations.Backend == "sqlite" && cfg.Conversations.DBPath == "" {
		errs = append(errs, "conversations.dbPath is required for the sqlite backend")
	}
	switch cfg.Conversations.Concurrency {
	case "serialize", "reject":
	default:
		errs = append(errs, "conversations.concurrency must be one of: serialize, reject")
	}

	switch cfg.DealData.Source {
	case "firebase":
		if cfg.DealData.DatabaseURL == "" {
			errs = append(errs, "dealData.databaseURL is required for the firebase source")
		}
	case "fixture":
		if cfg.DealData.FixturePath == "" {
			errs = append(errs, "dealData.fixturePath is required for the fixture source")
		}
	default:
		errs = append(errs, "dealData.source must be one of: firebase, fixture")
	}

	if cfg.General.DefaultProvider != "" {
		if _, ok := cfg.Providers[cfg.General.DefaultProvider]; !ok {
			errs = append(errs, fmt.Sprintf("general.defaultProvider references unknown provider: %s", cfg.General.DefaultProvider))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ExpandPath resolves ~/ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
