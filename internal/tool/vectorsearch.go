// Package tool holds the auxiliary functions the LLM may call mid-generation.
package tool

import (
	"context"
	"log/slog"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

// VectorSearch returns the vector_search tool definition. The tool searches
// the internal document knowledge base (pitch decks, call transcripts, market
// research). Until a vector index is configured it answers every query with
// an empty result set, which the model handles by relying on the document
// summaries already present in its prompt.
func VectorSearch(logger *slog.Logger) domain.ToolDefinition {
	if logger == nil {
		logger = slog.Default()
	}
	return domain.ToolDefinition{
		Name:        "vector_search",
		Description: "Search the internal document knowledge base (pitch decks, transcripts, market research) for passages relevant to the query.",
		Parameters: map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search query.",
			},
			"num_neighbors": map[string]any{
				"type":        "integer",
				"description": "Number of results to return (default 5).",
			},
		},
		Required: []string{"query"},
		Fn: func(ctx context.Context, args map[string]any) (any, error) {
			query, _ := args["query"].(string)
			logger.Info("vector search requested but no index is configured", "query", query)
			return map[string]any{"search_results": []any{}}, nil
		},
	}
}
