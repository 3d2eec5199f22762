package llm

import (
	"context"
	"fmt"

	"github.com/anhpng/luyende/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with event
// logging. There is deliberately no retry layer: every inbound request maps
// to at most one upstream attempt, and failures surface to the caller as-is.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if events != nil {
		return WithLogging(base, events), nil
	}
	return base, nil
}

// NewProviderFromEnv builds a provider from environment configuration.
func NewProviderFromEnv(ctx context.Context, events store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, events)
}
