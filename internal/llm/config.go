package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider names accepted in LKPD_LLM_PROVIDER.
const (
	ProviderGemini     = "gemini"
	ProviderGeminiSDK  = "gemini-sdk"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "gemini-sdk", "openai", "openrouter", "anthropic", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single generation round trip. Zero means no limit.
	// Default: 3m.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenRouter or compatible APIs.
}

// GeminiConfig holds Gemini configuration for both the REST and SDK
// providers.
type GeminiConfig struct {
	// APIKey pins the credential. When empty the key is read from the
	// environment on every call.
	APIKey  string
	Model   string // Default: "gemini-3-flash-preview"
	BaseURL string // Default: DefaultGeminiBaseURL
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults. Generation is
// attempted exactly once unless LKPD_LLM_MAX_ATTEMPTS says otherwise.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model:   DefaultGeminiModel,
			BaseURL: DefaultGeminiBaseURL,
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 2 * time.Second,
			MaxWait:     20 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 3 * time.Minute,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("LKPD_LLM_PROVIDER"); p != "" {
		cfg.Provider = strings.ToLower(p)
	}

	if k := os.Getenv("LKPD_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("LKPD_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("LKPD_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("LKPD_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("LKPD_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	// The Gemini key is not copied here; GeminiProvider reads
	// it at call time through EnvGeminiKey.
	if m := os.Getenv("LKPD_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}
	if u := os.Getenv("LKPD_GEMINI_BASE_URL"); u != "" {
		cfg.Gemini.BaseURL = strings.TrimRight(u, "/")
	}

	if k := os.Getenv("LKPD_OPENROUTER_API_KEY"); k != "" {
		cfg.OpenRouter.APIKey = k
	}
	if m := os.Getenv("LKPD_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}

	if v := os.Getenv("LKPD_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("LKPD_LLM_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			cfg.Retry.MaxAttempts = n
		}
	}

	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
// An explicit LKPD_LLM_PROVIDER always wins over discovery.
func DiscoverConfig() (Config, bool) {
	if os.Getenv("LKPD_LLM_PROVIDER") != "" {
		return Config{}, false
	}
	cfg := ConfigFromEnv()

	if _, ok := EnvGeminiKey(); ok {
		cfg.Provider = ProviderGemini
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
// The default Gemini provider resolves its key per call, so a missing key
// is reported on Generate instead.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("LKPD_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("LKPD_OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderGeminiSDK:
		if c.Gemini.APIKey == "" {
			if _, ok := EnvGeminiKey(); !ok {
				return fmt.Errorf("GEMINI_API_KEY is required for the gemini-sdk provider")
			}
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("LKPD_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case ProviderGemini, ProviderMock:
		// Key checked per request, or not needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}

// KeyFunc returns the API credential and whether one is present.
type KeyFunc func() (string, bool)

// StaticKey returns a KeyFunc that always yields key. An empty key reports
// absence.
func StaticKey(key string) KeyFunc {
	return func() (string, bool) {
		return key, strings.TrimSpace(key) != ""
	}
}

// EnvKey returns a KeyFunc reading the first non-empty variable among names.
func EnvKey(names ...string) KeyFunc {
	return func() (string, bool) {
		for _, n := range names {
			if v := strings.TrimSpace(os.Getenv(n)); v != "" {
				return v, true
			}
		}
		return "", false
	}
}

// EnvGeminiKey reads LKPD_GEMINI_API_KEY, then GEMINI_API_KEY.
var EnvGeminiKey = EnvKey("LKPD_GEMINI_API_KEY", "GEMINI_API_KEY")

// keyFunc picks the pinned key when set, else the environment.
func (c GeminiConfig) keyFunc() KeyFunc {
	if c.APIKey != "" {
		return StaticKey(c.APIKey)
	}
	return EnvGeminiKey
}
