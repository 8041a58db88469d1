package llm

import (
	"context"
	"time"

	llmclient "illustrator/internal/llm/client"
	"illustrator/internal/metrics"
)

// WithMetrics records per-call counters and latency histograms.
func WithMetrics() Middleware {
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		return &metered{next: next}
	}
}

type metered struct {
	next llmclient.LLMClient
}

func (m *metered) Name() string  { return m.next.Name() }
func (m *metered) Model() string { return m.next.Model() }
func (m *metered) Close() error  { return m.next.Close() }

func (m *metered) GenerateFields(ctx context.Context, prompt string, fields []string) (map[string]string, llmclient.Usage, error) {
	start := time.Now()
	content, usage, err := m.next.GenerateFields(ctx, prompt, fields)
	metrics.ObserveLLMRequest(m.next.Name(), time.Since(start), err)
	return content, usage, err
}
