// Package generate drives the constrained-generation loop: build prompt,
// call the LLM, validate character budgets, retry with sharpened feedback,
// and degrade to best-effort content when retries run out.
package generate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"illustrator/internal/constraint"
	llmclient "illustrator/internal/llm/client"
	"illustrator/internal/prompt"
)

// DefaultMaxAttempts is 1 initial attempt plus 2 retries.
const DefaultMaxAttempts = 3

// FailedError means the LLM call itself failed on the final attempt.
// Constraint violations never produce this; they are reported as data.
type FailedError struct {
	Attempts int
	Cause    error
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("generation failed after %d attempt(s): %v", e.Attempts, e.Cause)
}
func (e *FailedError) Unwrap() error { return e.Cause }

// Result is the orchestrator's output for one request. Content is always
// the last attempt's content, even when Validation still lists violations.
type Result struct {
	Content    map[string]string
	Validation constraint.Report
	Attempts   int
	Usage      llmclient.Usage
	ElapsedMS  int64
	Model      string
}

// Generator owns the retry loop. Stateless across requests.
type Generator struct {
	llm         llmclient.LLMClient
	maxAttempts int
	log         *zap.Logger
}

func New(llm llmclient.LLMClient, maxAttempts int, log *zap.Logger) *Generator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{llm: llm, maxAttempts: maxAttempts, log: log}
}

// loopState makes the degradation policy explicit: a request ends either
// in doneValid or doneDegraded, never by falling off the loop.
type loopState int

const (
	stateGenerating loopState = iota
	stateValidating
	stateRetrying
	stateDoneValid
	stateDoneDegraded
)

// Generate runs the loop for one request. Validation can be switched off by
// the caller, in which case the first successful call wins. Only a failed
// LLM call on the final attempt returns an error; content that still breaks
// constraints is returned with its report.
func (g *Generator) Generate(ctx context.Context, builder *prompt.Builder, req prompt.Request, spec constraint.Spec, validate bool) (*Result, error) {
	start := time.Now()
	attempt := 1
	usage := llmclient.Usage{}

	var (
		content    map[string]string
		report     constraint.Report
		lastReport *constraint.Report
	)

	st := stateGenerating
	for {
		switch st {
		case stateGenerating:
			text, schema := builder.Build(req, spec, attempt, lastReport)
			raw, u, err := g.llm.GenerateFields(ctx, text, schema)
			usage = usage.Add(u)
			if err != nil {
				var perm *llmclient.PermanentError
				if attempt >= g.maxAttempts || errors.As(err, &perm) {
					return nil, &FailedError{Attempts: attempt, Cause: err}
				}
				g.log.Warn("llm call failed, retrying",
					zap.String("variant", string(spec.VariantID)),
					zap.Int("attempt", attempt),
					zap.Error(err),
				)
				attempt++
				continue
			}
			content = coerce(raw, schema)
			st = stateValidating

		case stateValidating:
			if !validate {
				report = constraint.Report{Valid: true, Violations: []constraint.Violation{}}
				st = stateDoneValid
				continue
			}
			report = constraint.Validate(content, spec)
			switch {
			case report.Valid:
				st = stateDoneValid
			case attempt >= g.maxAttempts:
				st = stateDoneDegraded
			default:
				st = stateRetrying
			}

		case stateRetrying:
			r := report
			lastReport = &r
			g.log.Info("constraints violated, retrying with feedback",
				zap.String("variant", string(spec.VariantID)),
				zap.Int("attempt", attempt),
				zap.Int("violations", len(report.Violations)),
			)
			attempt++
			st = stateGenerating

		case stateDoneValid, stateDoneDegraded:
			if st == stateDoneDegraded {
				g.log.Warn("retries exhausted, returning best-effort content",
					zap.String("variant", string(spec.VariantID)),
					zap.Int("attempts", attempt),
					zap.Int("violations", len(report.Violations)),
				)
			}
			return &Result{
				Content:    content,
				Validation: report,
				Attempts:   attempt,
				Usage:      usage,
				ElapsedMS:  time.Since(start).Milliseconds(),
				Model:      g.llm.Model(),
			}, nil
		}
	}
}

// coerce guarantees every schema field is present as a string; a partially
// missing LLM response degrades to empty fields instead of failing the
// whole request.
func coerce(raw map[string]string, schema []string) map[string]string {
	out := make(map[string]string, len(schema))
	for _, f := range schema {
		out[f] = raw[f]
	}
	return out
}
