package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pankajrawal86/lvx-agents/internal/agent"
	"github.com/pankajrawal86/lvx-agents/internal/dealdata"
	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

type stubEngine struct {
	result *domain.AnalysisResult
	err    error

	dealID, query, conversationID string
}

func (e *stubEngine) Analyze(ctx context.Context, dealID, query, conversationID string) (*domain.AnalysisResult, error) {
	e.dealID, e.query, e.conversationID = dealID, query, conversationID
	return e.result, e.err
}

func newTestServer(engine Analyzer) *httptest.Server {
	s := NewServer(ServerConfig{Engine: engine, Version: "test"})
	return httptest.NewServer(s.Handler())
}

func postAnalyze(t *testing.T, srv *httptest.Server, dealID, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/v1/analyze/"+dealID, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatal(err)
	}
	return resp, decoded
}

func TestAnalyzeEndpoint(t *testing.T) {
	engine := &stubEngine{result: &domain.AnalysisResult{
		ConversationID: "conv-42",
		Analysis:       domain.Analysis{Response: "a narrative"},
	}}
	srv := newTestServer(engine)
	defer srv.Close()

	resp, body := postAnalyze(t, srv, "deal-1", `{"query": "full analysis", "conversation_id": "conv-42"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["conversation_id"] != "conv-42" {
		t.Fatalf("body = %v", body)
	}
	analysis, ok := body["analysis"].(map[string]any)
	if !ok || analysis["response"] != "a narrative" {
		t.Fatalf("analysis = %v", body["analysis"])
	}

	if engine.dealID != "deal-1" || engine.query != "full analysis" || engine.conversationID != "conv-42" {
		t.Fatalf("engine saw %q %q %q", engine.dealID, engine.query, engine.conversationID)
	}
}

func TestAnalyzeMissingQuery(t *testing.T) {
	engine := &stubEngine{}
	srv := newTestServer(engine)
	defer srv.Close()

	for _, body := range []string{``, `{}`, `{"query": ""}`, `not json`} {
		resp, decoded := postAnalyze(t, srv, "deal-1", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, resp.StatusCode)
		}
		if decoded["error"] != "Missing query in request body" {
			t.Fatalf("body %q: error = %v", body, decoded["error"])
		}
	}
	if engine.query != "" {
		t.Fatal("engine must not run for malformed requests")
	}
}

func TestAnalyzeUnknownDeal(t *testing.T) {
	engine := &stubEngine{err: &dealdata.UnknownDealError{DealID: "deal-404"}}
	srv := newTestServer(engine)
	defer srv.Close()

	resp, body := postAnalyze(t, srv, "deal-404", `{"query": "full analysis"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if body["error"] != "No data found for deal ID: deal-404" {
		t.Fatalf("error = %v", body["error"])
	}
}

func TestAnalyzeBusyConversation(t *testing.T) {
	engine := &stubEngine{err: fmt.Errorf("conversation conv-1: %w", agent.ErrConversationBusy)}
	srv := newTestServer(engine)
	defer srv.Close()

	resp, _ := postAnalyze(t, srv, "deal-1", `{"query": "q", "conversation_id": "conv-1"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
}

func TestStatusEndpoint(t *testing.T) {
	srv := newTestServer(&stubEngine{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["version"] != "test" {
		t.Fatalf("body = %v", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&stubEngine{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "lvx_uptime_seconds") {
		t.Fatalf("metrics output missing uptime:\n%s", body)
	}
}
