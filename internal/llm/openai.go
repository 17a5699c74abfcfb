package llm

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openaiClient struct {
	client    openai.Client
	model     string
	maxTokens int
	hasKey    bool
}

func newOpenAIClient(cfg Config) *openaiClient {
	opts := []option.RequestOption{}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	return &openaiClient{
		client:    openai.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
		hasKey:    cfg.APIKey != "",
	}
}

func (c *openaiClient) Generate(ctx context.Context, prompt string) (Generation, error) {
	if !c.hasKey {
		return Generation{}, &Error{Kind: KindConfiguration, Detail: "LLM_API_KEY is not set"}
	}

	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens: openai.Int(int64(c.maxTokens)),
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return Generation{}, &Error{Kind: KindNetwork, Detail: "openai chat", Err: err}
	}

	slog.DebugContext(ctx, "generation completed",
		"model", c.model,
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 {
		return Generation{}, &Error{Kind: KindEmptyResponse, Detail: "no choices in response"}
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return Generation{}, &Error{Kind: KindEmptyResponse, Detail: "response contained no text"}
	}

	return Generation{Text: text, Model: c.model}, nil
}

func (c *openaiClient) Model() string {
	return c.model
}
