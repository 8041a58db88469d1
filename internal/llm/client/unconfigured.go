package llmclient

import (
	"context"
	"fmt"
)

// unconfiguredClient stands in when provider credentials are missing. The
// server still starts and serves health checks; generation requests fail
// with ErrNotConfigured, wrapped as permanent so the loop does not retry.
type unconfiguredClient struct {
	provider string
}

// NewUnconfigured returns a client that fails every call.
func NewUnconfigured(provider string) LLMClient {
	return unconfiguredClient{provider: provider}
}

func (c unconfiguredClient) Name() string  { return c.provider }
func (c unconfiguredClient) Model() string { return "" }
func (c unconfiguredClient) Close() error  { return nil }

func (c unconfiguredClient) GenerateFields(context.Context, string, []string) (map[string]string, Usage, error) {
	return nil, Usage{}, NewPermanentError(fmt.Errorf("%w: provider %s", ErrNotConfigured, c.provider))
}
