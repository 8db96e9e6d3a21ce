package config

import "os"

func Defaults() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel:        "info",
			DefaultProvider: "gemini",
			InvestorName:    "a potential investor",
		},
		Providers: map[string]ProviderConfig{
			"gemini": {
				Enabled:      true,
				APIKey:       os.Getenv("GOOGLE_API_KEY"),
				DefaultModel: "gemini-flash-latest",
			},
			"openai": {
				Enabled:      false,
				APIBase:      "https://api.openai.com/v1",
				APIKey:       os.Getenv("OPENAI_API_KEY"),
				DefaultModel: "gpt-4o-mini",
			},
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Conversations: ConversationsConfig{
			Backend:     "memory",
			DBPath:      "~/.lvx-agents/conversations.db",
			Concurrency: "serialize",
		},
		DealData: DealDataConfig{
			Source:      "fixture",
			FixturePath: "~/.lvx-agents/deals.yaml",
		},
		Email: EmailConfig{
			SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
			SenderEmail:    os.Getenv("SENDER_EMAIL"),
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}
