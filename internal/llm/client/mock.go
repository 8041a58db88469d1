package llmclient

import (
	"context"
	"fmt"
)

// MockClient fills every requested field with placeholder text. It exists
// for local wiring without credentials; the placeholders will usually fail
// constraint validation, which exercises the degraded path end to end.
type MockClient struct{}

func (MockClient) Name() string  { return "mock" }
func (MockClient) Model() string { return "mock" }
func (MockClient) Close() error  { return nil }

func (MockClient) GenerateFields(_ context.Context, _ string, fields []string) (map[string]string, Usage, error) {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f] = fmt.Sprintf("Placeholder <strong>content</strong> for %s", f)
	}
	return out, Usage{}, nil
}
