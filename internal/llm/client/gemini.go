package llmclient

import (
	"context"
	"strings"

	genai "google.golang.org/genai"
)

// GeminiClient wraps the official genai client. Gemini supports
// schema-validated structured output, so every call requests
// application/json constrained to the field schema and no free-text
// parsing heuristics are needed on the happy path.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(model) == "" {
		return nil, ErrNotConfigured
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

func (g *GeminiClient) Name() string  { return "gemini:" + g.model }
func (g *GeminiClient) Model() string { return g.model }
func (g *GeminiClient) Close() error  { return nil }

func (g *GeminiClient) GenerateFields(ctx context.Context, prompt string, fields []string) (map[string]string, Usage, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr[float32](0.7),
			MaxOutputTokens:  2048,
			ResponseMIMEType: "application/json",
			ResponseSchema:   fieldSchema(fields),
		},
	)
	if err != nil {
		return nil, Usage{}, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, usageFrom(resp), ErrInvalidJSON
	}
	txt := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	content, err := ParseFields([]byte(txt))
	if err != nil {
		return nil, usageFrom(resp), err
	}
	return content, usageFrom(resp), nil
}

// fieldSchema builds the structured-output schema: a flat object with one
// required string property per content field.
func fieldSchema(fields []string) *genai.Schema {
	props := make(map[string]*genai.Schema, len(fields))
	for _, f := range fields {
		props[f] = &genai.Schema{Type: genai.TypeString}
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   fields,
	}
}

func usageFrom(resp *genai.GenerateContentResponse) Usage {
	if resp == nil || resp.UsageMetadata == nil {
		return Usage{}
	}
	return Usage{
		PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
		CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
	}
}
