package llm

import (
	"context"
	"time"

	llmclient "illustrator/internal/llm/client"
)

// WithTimeout bounds each individual call. An in-flight call is never
// canceled from outside the deadline; the orchestrator treats a deadline
// error as a failed attempt.
func WithTimeout(d time.Duration) Middleware {
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		return &timeout{next: next, d: d}
	}
}

type timeout struct {
	next llmclient.LLMClient
	d    time.Duration
}

func (t *timeout) Name() string  { return t.next.Name() }
func (t *timeout) Model() string { return t.next.Model() }
func (t *timeout) Close() error  { return t.next.Close() }

func (t *timeout) GenerateFields(ctx context.Context, prompt string, fields []string) (map[string]string, llmclient.Usage, error) {
	if t.d <= 0 {
		return t.next.GenerateFields(ctx, prompt, fields)
	}
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.GenerateFields(ctx, prompt, fields)
}
