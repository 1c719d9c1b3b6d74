package llm

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider wraps OpenAIProvider with OpenRouter-specific defaults.
// OpenRouter exposes an OpenAI-compatible API, so the underlying SDK is reused.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, &ErrConfig{Provider: ProviderOpenRouter, Msg: "API key is required"}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	inner := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	})
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
