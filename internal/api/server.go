// Package api exposes the analysis engine over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pankajrawal86/lvx-agents/internal/agent"
	"github.com/pankajrawal86/lvx-agents/internal/dealdata"
	"github.com/pankajrawal86/lvx-agents/internal/domain"
	"github.com/pankajrawal86/lvx-agents/internal/metrics"
)

const (
	maxBodySize    = 1 << 20 // 1MB
	requestTimeout = 10 * time.Minute
)

// Analyzer runs one conversational turn against a deal.
type Analyzer interface {
	Analyze(ctx context.Context, dealID, query, conversationID string) (*domain.AnalysisResult, error)
}

// Server is the HTTP surface over the analysis engine.
type Server struct {
	host      string
	port      int
	engine    Analyzer
	version   string
	noMetrics bool
	logger    *slog.Logger
	server    *http.Server
}

type ServerConfig struct {
	Host    string
	Port    int
	Engine  Analyzer
	Version string
	// DisableMetrics removes the /metrics endpoint.
	DisableMetrics bool
	Logger         *slog.Logger
}

func NewServer(cfg ServerConfig) *Server {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Server{
		host:      cfg.Host,
		port:      cfg.Port,
		engine:    cfg.Engine,
		version:   cfg.Version,
		noMetrics: cfg.DisableMetrics,
		logger:    cfg.Logger,
	}
}

// Handler builds the route table. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/analyze/{dealID}", s.handleAnalyze)
	mux.HandleFunc("GET /status", s.handleStatus)
	if !s.noMetrics {
		mux.Handle("GET /metrics", metrics.Collector.Handler())
	}
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.host, s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// Full-analysis runs hold the connection through several LLM round
		// trips, so the write timeout is generous.
		WriteTimeout: requestTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("http server listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("web server error: %w", err)
	}
	return nil
}

type analyzeRequest struct {
	Query          string `json:"query"`
	ConversationID string `json:"conversation_id"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	dealID := r.PathValue("dealID")

	var req analyzeRequest
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil || req.Query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing query in request body"})
		return
	}

	result, err := s.engine.Analyze(r.Context(), dealID, req.Query, req.ConversationID)
	if err != nil {
		var unknown *dealdata.UnknownDealError
		switch {
		case errors.As(err, &unknown):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": unknown.Error()})
		case errors.Is(err, agent.ErrConversationBusy):
			writeJSON(w, http.StatusConflict, map[string]string{"error": "Conversation is busy with another request. Please retry."})
		default:
			s.logger.Error("analysis failed", "dealID", dealID, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"version":        s.version,
		"uptime_seconds": int64(metrics.Collector.Uptime().Seconds()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
