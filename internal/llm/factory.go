package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/lkpd/internal/logger"
	"github.com/abhisek/lkpd/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderGemini:
		base = NewGeminiProvider(cfg.Gemini, cfg.Timeout)
	case ProviderGeminiSDK:
		base, err = NewGeminiSDKProvider(ctx, cfg.Gemini)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewDemoProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// The REST provider enforces cfg.Timeout in its HTTP client.
	if cfg.Provider != ProviderGemini {
		base = WithTimeout(base, cfg.Timeout)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo, log)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// NewProviderFromEnv discovers the configuration from the environment and
// builds the provider stack.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, log *logger.Logger) (Provider, Config, error) {
	cfg, ok := DiscoverConfig()
	if !ok {
		cfg = ConfigFromEnv()
	}
	p, err := NewProvider(ctx, cfg, eventRepo, log)
	return p, cfg, err
}
