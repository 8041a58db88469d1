package llmclient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient implements LLMClient over the official openai-go SDK (chat
// completions). Chat completions have no per-field schema enforcement, so
// this client takes the fallback branch: instruct JSON in the prompt, strip
// an eventual code fence, and fail the attempt with ErrInvalidJSON when the
// reply does not parse.
type OpenAIClient struct {
	model string
	opts  []option.RequestOption
}

func NewOpenAIClient(apiKey, model, baseURL string) (*OpenAIClient, error) {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(model) == "" {
		return nil, ErrNotConfigured
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIClient{model: model, opts: opts}, nil
}

func (o *OpenAIClient) Name() string  { return "openai:" + o.model }
func (o *OpenAIClient) Model() string { return o.model }
func (o *OpenAIClient) Close() error  { return nil }

func (o *OpenAIClient) GenerateFields(ctx context.Context, prompt string, fields []string) (map[string]string, Usage, error) {
	client := openai.NewClient(o.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You fill infographic templates. Reply with a single JSON object only."),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return nil, Usage{}, err
	}
	if len(resp.Choices) == 0 {
		return nil, Usage{}, errors.New("openai: empty choices")
	}
	usage := Usage{
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:      int(resp.Usage.TotalTokens),
	}
	body := StripFence(resp.Choices[0].Message.Content)
	content, err := ParseFields([]byte(body))
	if err != nil {
		return nil, usage, fmt.Errorf("openai response: %w", err)
	}
	return content, usage, nil
}
