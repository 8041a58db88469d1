package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"illustrator/internal/constraint"
	llmclient "illustrator/internal/llm/client"
	"illustrator/internal/prompt"
)

type fakeCall struct {
	fields map[string]string
	usage  llmclient.Usage
	err    error
}

type fakeLLM struct {
	calls   []fakeCall
	prompts []string
}

func (f *fakeLLM) Name() string  { return "fake" }
func (f *fakeLLM) Model() string { return "fake-model" }
func (f *fakeLLM) Close() error  { return nil }

func (f *fakeLLM) GenerateFields(_ context.Context, p string, _ []string) (map[string]string, llmclient.Usage, error) {
	f.prompts = append(f.prompts, p)
	if len(f.calls) == 0 {
		return nil, llmclient.Usage{}, errors.New("fakeLLM: out of scripted calls")
	}
	call := f.calls[0]
	f.calls = f.calls[1:]
	return call.fields, call.usage, call.err
}

func genSpec() constraint.Spec {
	return constraint.Spec{
		VariantID: "pyramid_3",
		Fields:    []constraint.FieldRange{{Name: "f", Min: 5, Max: 10}},
	}
}

func genBuilder() *prompt.Builder {
	return &prompt.Builder{Purpose: "a %d-level pyramid"}
}

func run(t *testing.T, llm *fakeLLM, validate bool) (*Result, error) {
	t.Helper()
	g := New(llm, 3, nil)
	return g.Generate(context.Background(), genBuilder(), prompt.Request{Topic: "testing", Shape: 3}, genSpec(), validate)
}

func TestGenerateValidFirstAttempt(t *testing.T) {
	llm := &fakeLLM{calls: []fakeCall{
		{fields: map[string]string{"f": "sevench"}, usage: llmclient.Usage{TotalTokens: 10}},
	}}
	res, err := run(t, llm, true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Attempts != 1 || !res.Validation.Valid {
		t.Fatalf("expected valid on attempt 1, got attempts=%d valid=%v", res.Attempts, res.Validation.Valid)
	}
	if res.Model != "fake-model" {
		t.Errorf("unexpected model: %q", res.Model)
	}
	if res.Usage.TotalTokens != 10 {
		t.Errorf("unexpected usage: %+v", res.Usage)
	}
}

func TestGenerateRetryThenSuccess(t *testing.T) {
	llm := &fakeLLM{calls: []fakeCall{
		{fields: map[string]string{"f": "ab"}},
		{fields: map[string]string{"f": "long enou"}},
	}}
	res, err := run(t, llm, true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Attempts != 2 || !res.Validation.Valid {
		t.Fatalf("expected valid on attempt 2, got attempts=%d valid=%v", res.Attempts, res.Validation.Valid)
	}
	if len(llm.prompts) != 2 {
		t.Fatalf("expected 2 prompts, got %d", len(llm.prompts))
	}
	if strings.Contains(llm.prompts[0], "[RETRY_FEEDBACK]") {
		t.Error("first prompt must not carry feedback")
	}
	if !strings.Contains(llm.prompts[1], "[RETRY_FEEDBACK]") {
		t.Error("retry prompt missing feedback")
	}
}

func TestGenerateDegradedAfterMaxAttempts(t *testing.T) {
	llm := &fakeLLM{calls: []fakeCall{
		{fields: map[string]string{"f": "a"}},
		{fields: map[string]string{"f": "ab"}},
		{fields: map[string]string{"f": "abc"}},
	}}
	res, err := run(t, llm, true)
	if err != nil {
		t.Fatalf("violations must not fail the request: %v", err)
	}
	if res.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", res.Attempts)
	}
	if res.Validation.Valid {
		t.Fatal("expected degraded result")
	}
	// Always the last attempt's content, even if an earlier attempt was
	// closer to the budget.
	if res.Content["f"] != "abc" {
		t.Fatalf("expected last attempt's content, got %q", res.Content["f"])
	}
}

func TestGenerateCallFailureConsumesAttempt(t *testing.T) {
	llm := &fakeLLM{calls: []fakeCall{
		{err: errors.New("upstream hiccup")},
		{fields: map[string]string{"f": "sevench"}},
	}}
	res, err := run(t, llm, true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Attempts != 2 || !res.Validation.Valid {
		t.Fatalf("expected recovery on attempt 2, got attempts=%d valid=%v", res.Attempts, res.Validation.Valid)
	}
}

func TestGenerateFailsOnFinalAttemptError(t *testing.T) {
	llm := &fakeLLM{calls: []fakeCall{
		{err: errors.New("down")},
		{err: errors.New("down")},
		{err: errors.New("down")},
	}}
	_, err := run(t, llm, true)
	var failed *FailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected FailedError, got %v", err)
	}
	if failed.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", failed.Attempts)
	}
}

func TestGeneratePermanentErrorFailsImmediately(t *testing.T) {
	llm := &fakeLLM{calls: []fakeCall{
		{err: llmclient.NewPermanentError(llmclient.ErrNotConfigured)},
	}}
	_, err := run(t, llm, true)
	var failed *FailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected FailedError, got %v", err)
	}
	if failed.Attempts != 1 {
		t.Fatalf("permanent error must not retry, got %d attempts", failed.Attempts)
	}
	if !errors.Is(err, llmclient.ErrNotConfigured) {
		t.Fatal("cause must unwrap to ErrNotConfigured")
	}
}

func TestGenerateValidationDisabled(t *testing.T) {
	llm := &fakeLLM{calls: []fakeCall{
		{fields: map[string]string{"f": "x"}}, // would violate if validated
	}}
	res, err := run(t, llm, false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Attempts != 1 || !res.Validation.Valid {
		t.Fatalf("validation off must accept first response, got attempts=%d valid=%v", res.Attempts, res.Validation.Valid)
	}
	if res.Validation.Violations == nil {
		t.Fatal("skipped validation must still report an empty violations slice")
	}
}

func TestGenerateMissingFieldCoercedToEmpty(t *testing.T) {
	llm := &fakeLLM{calls: []fakeCall{
		{fields: map[string]string{"unexpected": "zzz"}},
		{fields: map[string]string{}},
		{fields: map[string]string{}},
	}}
	res, err := run(t, llm, true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	v, ok := res.Content["f"]
	if !ok || v != "" {
		t.Fatalf("missing schema field must be present and empty, got %q ok=%v", v, ok)
	}
	if _, ok := res.Content["unexpected"]; ok {
		t.Fatal("fields outside schema must be dropped")
	}
}

func TestGenerateAccumulatesUsageAcrossAttempts(t *testing.T) {
	llm := &fakeLLM{calls: []fakeCall{
		{fields: map[string]string{"f": "a"}, usage: llmclient.Usage{PromptTokens: 5, CompletionTokens: 2, TotalTokens: 7}},
		{fields: map[string]string{"f": "sevench"}, usage: llmclient.Usage{PromptTokens: 6, CompletionTokens: 3, TotalTokens: 9}},
	}}
	res, err := run(t, llm, true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Usage.TotalTokens != 16 || res.Usage.PromptTokens != 11 || res.Usage.CompletionTokens != 5 {
		t.Fatalf("unexpected accumulated usage: %+v", res.Usage)
	}
}
