package domain

import "context"

type ProviderMode string

const ModeAPI ProviderMode = "api"

// Provider is the interface all LLM providers must implement.
type Provider interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
	Name() string
	Mode() ProviderMode
	Healthy(ctx context.Context) error
}

type GenerateRequest struct {
	Prompt      string
	Model       string // optional: override the provider default
	MaxTokens   int
	Temperature float64
}

type GenerateResponse struct {
	Text      string
	Usage     Usage
	LatencyMs int64 // time taken for this LLM call in milliseconds
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Oracle is the text-generation capability as the core sees it: prompt in,
// text out, never an error. Failures come back as placeholder text so the
// conversation still advances.
type Oracle interface {
	GenerateText(ctx context.Context, prompt string) string
}

// ToolFunc is an auxiliary function the provider may invoke mid-generation
// when the model requests it, transparent to callers of Generate.
type ToolFunc func(ctx context.Context, args map[string]any) (any, error)

// ToolDefinition describes a callable tool to the model.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any // property name -> JSON-schema style description
	Required    []string
	Fn          ToolFunc
}
