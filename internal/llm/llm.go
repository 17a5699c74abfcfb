package llm

import (
	"context"
	"fmt"
)

// Provider constants for generation backend selection.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds generation client configuration.
type Config struct {
	Provider  string // "openai" or "anthropic"
	APIKey    string // May be empty; Generate then fails with KindConfiguration
	BaseURL   string // Optional: custom API endpoint
	Model     string
	MaxTokens int
}

// Generation is the outcome of a successful generation call: the trimmed
// text and the model identifier that actually produced it.
type Generation struct {
	Text  string
	Model string
}

// Client wraps a single call to an external text-generation backend.
// Implementations make exactly one network attempt per Generate call and
// never retry; the call is bounded by the HTTP client's own timeout.
type Client interface {
	Generate(ctx context.Context, prompt string) (Generation, error)
	Model() string
}

// New creates a Client for the configured provider. The client is
// constructed even without an API key so that a missing credential surfaces
// as a per-request typed failure rather than a startup error.
func New(cfg Config) (Client, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = ProviderOpenAI
	}

	switch provider {
	case ProviderOpenAI:
		return newOpenAIClient(cfg), nil
	case ProviderAnthropic:
		return newAnthropicClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
