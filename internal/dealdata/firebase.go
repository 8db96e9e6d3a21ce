// Package dealdata supplies the structured deal records and assembles the
// flat per-request context the agents reason over.
package dealdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

// FirebaseSource reads records from a Firebase Realtime Database over its
// REST API using indexed equality queries.
type FirebaseSource struct {
	baseURL   string
	authToken string
	client    *http.Client
	logger    *slog.Logger
}

type FirebaseConfig struct {
	DatabaseURL string
	AuthToken   string
	Client      *http.Client
	Logger      *slog.Logger
}

func NewFirebaseSource(cfg FirebaseConfig) *FirebaseSource {
	if cfg.Client == nil {
		cfg.Client = &http.Client{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &FirebaseSource{
		baseURL:   strings.TrimRight(cfg.DatabaseURL, "/"),
		authToken: cfg.AuthToken,
		client:    cfg.Client,
		logger:    cfg.Logger,
	}
}

func (f *FirebaseSource) Query(ctx context.Context, collection, field, value string) (map[string]domain.Record, error) {
	q := url.Values{}
	// RTDB requires the orderBy/equalTo operands as JSON strings.
	q.Set("orderBy", fmt.Sprintf("%q", field))
	q.Set("equalTo", fmt.Sprintf("%q", value))
	if f.authToken != "" {
		q.Set("auth", f.authToken)
	}

	endpoint := fmt.Sprintf("%s/%s.json?%s", f.baseURL, url.PathEscape(collection), q.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("firebase query %s: %w", collection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("firebase %s returned %d: %s", collection, resp.StatusCode, string(body))
	}

	// An empty result is the literal JSON null.
	var records map[string]domain.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode firebase response: %w", err)
	}
	if records == nil {
		return map[string]domain.Record{}, nil
	}
	return records, nil
}
