package llm

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type anthropicClient struct {
	client    anthropic.Client
	model     string
	maxTokens int
	hasKey    bool
}

func newAnthropicClient(cfg Config) *anthropicClient {
	opts := []option.RequestOption{}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-5-20250514"
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	return &anthropicClient{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
		hasKey:    cfg.APIKey != "",
	}
}

func (c *anthropicClient) Generate(ctx context.Context, prompt string) (Generation, error) {
	if !c.hasKey {
		return Generation{}, &Error{Kind: KindConfiguration, Detail: "LLM_API_KEY is not set"}
	}

	start := time.Now()
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return Generation{}, &Error{Kind: KindNetwork, Detail: "anthropic messages", Err: err}
	}

	slog.DebugContext(ctx, "generation completed",
		"model", c.model,
		"duration_ms", time.Since(start).Milliseconds(),
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens)

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Generation{}, &Error{Kind: KindEmptyResponse, Detail: "response contained no text"}
	}

	return Generation{Text: text, Model: c.model}, nil
}

func (c *anthropicClient) Model() string {
	return c.model
}
