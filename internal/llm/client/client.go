// Package llmclient contains the provider clients used for content
// generation. Clients focus on the API call itself; cross-cutting concerns
// (logging, metrics, timeouts) are layered on via middleware.
package llmclient

import "context"

// Usage is the provider-reported token accounting for one call.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Add accumulates usage across retry attempts.
func (u Usage) Add(other Usage) Usage {
	return Usage{
		PromptTokens:     u.PromptTokens + other.PromptTokens,
		CompletionTokens: u.CompletionTokens + other.CompletionTokens,
		TotalTokens:      u.TotalTokens + other.TotalTokens,
	}
}

// LLMClient generates one string value per requested field. Implementations
// ask the provider for structured JSON output when the provider supports it,
// and otherwise parse the response as JSON, failing the call on a parse
// error so the orchestrator can retry.
type LLMClient interface {
	Name() string
	Model() string
	GenerateFields(ctx context.Context, prompt string, fields []string) (map[string]string, Usage, error)
	Close() error
}
