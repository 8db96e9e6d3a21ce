package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pankajrawal86/lvx-agents/internal/agent"
	"github.com/pankajrawal86/lvx-agents/internal/analyst"
	"github.com/pankajrawal86/lvx-agents/internal/api"
	"github.com/pankajrawal86/lvx-agents/internal/config"
	"github.com/pankajrawal86/lvx-agents/internal/dealdata"
	"github.com/pankajrawal86/lvx-agents/internal/domain"
	"github.com/pankajrawal86/lvx-agents/internal/mailer"
	"github.com/pankajrawal86/lvx-agents/internal/provider"
	"github.com/pankajrawal86/lvx-agents/internal/store"
	"github.com/pankajrawal86/lvx-agents/internal/tool"
)

var (
	version    = "0.1.0"
	logger     *slog.Logger
	configPath string // overridable via --config flag
)

func main() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	root := &cobra.Command{
		Use:   "lvx-agents",
		Short: "LVX deal-analysis agent service",
		Long:  "lvx-agents runs an AI specialist team that analyzes venture deals and answers questions about them over HTTP.",
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.json (default: ~/.lvx-agents/config.json)")

	root.AddCommand(initCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(statusCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := resolveConfigPath()
			if _, err := os.Stat(cfgPath); err == nil {
				return fmt.Errorf("config already exists at %s", cfgPath)
			}
			if err := config.Save(cfgPath, config.Defaults()); err != nil {
				return err
			}
			logger.Info("initialized", "config", cfgPath)
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP server",
		RunE:  runServe,
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			fmt.Printf("config:        %s\n", resolveConfigPath())
			fmt.Printf("provider:      %s\n", cfg.General.DefaultProvider)
			fmt.Printf("server:        %s:%d\n", cfg.Server.Host, cfg.Server.Port)
			fmt.Printf("conversations: %s (%s)\n", cfg.Conversations.Backend, cfg.Conversations.Concurrency)
			fmt.Printf("deal data:     %s\n", cfg.DealData.Source)
			if cfg.Email.SendGridAPIKey == "" {
				fmt.Println("email:         simulated (no SendGrid key)")
			} else {
				fmt.Printf("email:         sendgrid (from %s)\n", cfg.Email.SenderEmail)
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("lvx-agents", version)
		},
	}
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

func loadConfig() *config.Config {
	cfgPath := resolveConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Warn("config not found, using defaults", "path", cfgPath, "err", err)
		cfg = config.Defaults()
	}
	return cfg
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	convStore, closeStore, err := buildConversationStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	source, err := buildDealSource(cfg)
	if err != nil {
		return err
	}

	tools := []domain.ToolDefinition{tool.VectorSearch(logger)}
	factory := provider.NewFactory(cfg, tools, logger)
	llm, err := factory.Get("")
	if err != nil {
		logger.Warn("no usable LLM provider, responses will be placeholders", "err", err)
		llm = nil
	}
	oracle := provider.NewTextOracle(llm, logger)

	registry := analyst.Default(oracle)
	synth := agent.NewSynthesizer(oracle, registry, logger)
	composer := agent.NewComposer(oracle, cfg.General.InvestorName, logger)
	sender := mailer.NewSendGrid(cfg.Email.SendGridAPIKey, cfg.Email.SenderEmail, logger)
	dispatcher := agent.NewDispatcher(oracle, synth, composer, sender, logger)
	classifier := agent.NewLLMClassifier(oracle, logger)
	router := agent.NewRouter(classifier, registry.Names(), logger)
	assembler := dealdata.NewAssembler(source, logger)

	engine := agent.NewEngine(convStore, assembler, router, dispatcher,
		agent.ConcurrencyPolicy(cfg.Conversations.Concurrency), logger)

	server := api.NewServer(api.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Engine:         engine,
		Version:        version,
		DisableMetrics: !cfg.Metrics.Enabled,
		Logger:         logger,
	})

	logger.Info("starting lvx-agents", "version", version, "provider", cfg.General.DefaultProvider)
	return server.Start(ctx)
}

func buildConversationStore(cfg *config.Config) (domain.ConversationStore, func(), error) {
	switch cfg.Conversations.Backend {
	case "sqlite":
		s, err := store.NewSQLiteStore(cfg.Conversations.DBPath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open conversation store: %w", err)
		}
		return s, func() { s.Close() }, nil
	default:
		return store.NewMemoryStore(), func() {}, nil
	}
}

func buildDealSource(cfg *config.Config) (domain.DealSource, error) {
	switch cfg.DealData.Source {
	case "firebase":
		return dealdata.NewFirebaseSource(dealdata.FirebaseConfig{
			DatabaseURL: cfg.DealData.DatabaseURL,
			AuthToken:   cfg.DealData.AuthToken,
			Logger:      logger,
		}), nil
	default:
		return dealdata.NewFixtureSource(cfg.DealData.FixturePath)
	}
}

func setupLogger(cfg *config.Config) {
	var level slog.Level
	switch cfg.General.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var out io.Writer = os.Stderr
	if cfg.General.LogFile != "" {
		f, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Warn("cannot open log file, logging to stderr", "path", cfg.General.LogFile, "err", err)
		} else {
			out = io.MultiWriter(os.Stderr, f)
		}
	}

	logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
