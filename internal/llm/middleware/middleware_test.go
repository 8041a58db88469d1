package llm

import (
	"context"
	"testing"
	"time"

	llmclient "illustrator/internal/llm/client"
)

type recordingClient struct {
	hadDeadline bool
}

func (r *recordingClient) Name() string  { return "recording" }
func (r *recordingClient) Model() string { return "m" }
func (r *recordingClient) Close() error  { return nil }

func (r *recordingClient) GenerateFields(ctx context.Context, _ string, fields []string) (map[string]string, llmclient.Usage, error) {
	_, r.hadDeadline = ctx.Deadline()
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f] = "v"
	}
	return out, llmclient.Usage{}, nil
}

func TestWithTimeoutSetsDeadline(t *testing.T) {
	base := &recordingClient{}
	cli := Chain(base, WithTimeout(time.Second))
	if _, _, err := cli.GenerateFields(context.Background(), "p", []string{"f"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !base.hadDeadline {
		t.Fatal("expected a deadline on the call context")
	}
}

func TestWithTimeoutZeroDisables(t *testing.T) {
	base := &recordingClient{}
	cli := Chain(base, WithTimeout(0))
	if _, _, err := cli.GenerateFields(context.Background(), "p", []string{"f"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if base.hadDeadline {
		t.Fatal("zero timeout must not add a deadline")
	}
}

func TestChainPreservesIdentityAndContent(t *testing.T) {
	base := &recordingClient{}
	cli := Chain(base, WithTimeout(time.Second), WithMetrics(), WithLogging(nil))
	if cli.Name() != "recording" || cli.Model() != "m" {
		t.Fatalf("chain must pass identity through: %s/%s", cli.Name(), cli.Model())
	}
	content, _, err := cli.GenerateFields(context.Background(), "p", []string{"a", "b"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(content) != 2 || content["a"] != "v" {
		t.Fatalf("unexpected content: %v", content)
	}
}
