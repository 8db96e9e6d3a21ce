package provider

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
	"github.com/pankajrawal86/lvx-agents/internal/metrics"
)

// maxToolIterations bounds the function-calling loop so a model that keeps
// requesting tools cannot spin forever.
const maxToolIterations = 8

// Gemini implements domain.Provider using the Google GenAI SDK. Registered
// tools are exposed to the model as function declarations; when the model
// requests one mid-generation the call is executed and the result fed back
// until the model produces text.
type Gemini struct {
	apiKey string
	model  string
	tools  []domain.ToolDefinition
	logger *slog.Logger

	client *genai.Client // created lazily on first use
}

type GeminiConfig struct {
	APIKey string
	Model  string
	Tools  []domain.ToolDefinition
	Logger *slog.Logger
}

func NewGemini(cfg GeminiConfig) *Gemini {
	if cfg.Model == "" {
		cfg.Model = "gemini-flash-latest"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Gemini{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		tools:  cfg.Tools,
		logger: cfg.Logger,
	}
}

func (g *Gemini) Name() string              { return "gemini" }
func (g *Gemini) Mode() domain.ProviderMode { return domain.ModeAPI }

func (g *Gemini) Healthy(ctx context.Context) error {
	if g.apiKey == "" {
		return fmt.Errorf("gemini: API key not configured")
	}
	_, err := g.ensureClient(ctx)
	return err
}

func (g *Gemini) ensureClient(ctx context.Context) (*genai.Client, error) {
	if g.client != nil {
		return g.client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	g.client = client
	return client, nil
}

func (g *Gemini) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.GenerateResponse, error) {
	client, err := g.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = g.model
	}

	cfg := &genai.GenerateContentConfig{}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		cfg.Temperature = &temp
	}
	if len(g.tools) > 0 {
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: g.declarations()}}
	}

	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}

	start := time.Now()
	metrics.LLMRequestsTotal.Inc()

	var result *genai.GenerateContentResponse
	for i := 0; i < maxToolIterations; i++ {
		result, err = client.Models.GenerateContent(ctx, model, contents, cfg)
		if err != nil {
			metrics.LLMFailuresTotal.Inc()
			return nil, fmt.Errorf("gemini generate: %w", err)
		}

		calls := result.FunctionCalls()
		if len(calls) == 0 {
			break
		}

		// The model asked for tools: run them and resume the generation with
		// their responses appended.
		if len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			contents = append(contents, result.Candidates[0].Content)
		}
		parts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			g.logger.Info("model invoked tool", "tool", call.Name)
			parts = append(parts, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					Name:     call.Name,
					Response: g.invokeTool(ctx, call.Name, call.Args),
				},
			})
		}
		contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: parts})
	}

	latency := time.Since(start)
	metrics.LLMLatency.Observe(latency.Seconds())

	if result == nil {
		return nil, fmt.Errorf("gemini: empty response")
	}

	resp := &domain.GenerateResponse{
		Text:      result.Text(),
		LatencyMs: latency.Milliseconds(),
	}
	if result.UsageMetadata != nil {
		resp.Usage = domain.Usage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}
	return resp, nil
}

// invokeTool runs the named registered tool. Unknown names and tool errors go
// back to the model as content so it can recover in text.
func (g *Gemini) invokeTool(ctx context.Context, name string, args map[string]any) map[string]any {
	for _, t := range g.tools {
		if t.Name != name || t.Fn == nil {
			continue
		}
		out, err := t.Fn(ctx, args)
		if err != nil {
			return map[string]any{"content": fmt.Sprintf("Error: %v", err), "is_error": true}
		}
		return map[string]any{"content": out}
	}
	g.logger.Warn("model requested unknown tool", "tool", name)
	return map[string]any{"content": fmt.Sprintf("Error: tool %q not found.", name), "is_error": true}
}

func (g *Gemini) declarations() []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(g.tools))
	for _, t := range g.tools {
		props := make(map[string]*genai.Schema, len(t.Parameters))
		for name, raw := range t.Parameters {
			schema := &genai.Schema{Type: genai.TypeString}
			if m, ok := raw.(map[string]any); ok {
				if d, ok := m["description"].(string); ok {
					schema.Description = d
				}
				switch m["type"] {
				case "integer":
					schema.Type = genai.TypeInteger
				case "number":
					schema.Type = genai.TypeNumber
				case "boolean":
					schema.Type = genai.TypeBoolean
				}
			}
			props[name] = schema
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: props,
				Required:   t.Required,
			},
		})
	}
	return decls
}
