package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	llmclient "illustrator/internal/llm/client"
)

// WithLogging logs each call's size, duration and errors.
func WithLogging(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next llmclient.LLMClient
	log  *zap.Logger
}

func (l *logging) Name() string  { return l.next.Name() }
func (l *logging) Model() string { return l.next.Model() }
func (l *logging) Close() error  { return l.next.Close() }

func (l *logging) GenerateFields(ctx context.Context, prompt string, fields []string) (map[string]string, llmclient.Usage, error) {
	start := time.Now()
	l.log.Debug("llm request",
		zap.String("client", l.next.Name()),
		zap.Int("prompt_bytes", len(prompt)),
		zap.Int("fields", len(fields)),
	)
	content, usage, err := l.next.GenerateFields(ctx, prompt, fields)
	if err != nil {
		l.log.Warn("llm request failed",
			zap.String("client", l.next.Name()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return content, usage, err
	}
	l.log.Debug("llm response",
		zap.String("client", l.next.Name()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("total_tokens", usage.TotalTokens),
	)
	return content, usage, nil
}
