package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// GeminiSDKProvider implements Provider using the Google Gen AI SDK.
// It talks to the same models as GeminiProvider but sends the key in a
// header and maps SDK errors onto the same error taxonomy.
type GeminiSDKProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiSDKProvider creates a Gemini provider backed by genai.
func NewGeminiSDKProvider(ctx context.Context, cfg GeminiConfig) (*GeminiSDKProvider, error) {
	key, ok := cfg.keyFunc()()
	if !ok {
		return nil, &ErrConfig{Provider: ProviderGeminiSDK, Msg: "GEMINI_API_KEY is not set"}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiSDKProvider{
		client: client,
		model:  resolveModel(model, geminiModels),
	}, nil
}

func (p *GeminiSDKProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	config := &genai.GenerateContentConfig{}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, buildGenaiContents(req.Messages), config)
	if err != nil {
		return nil, mapGenaiError(err)
	}

	text := result.Text()
	if text == "" {
		return nil, &ErrInvalidResponse{Err: errors.New("no text in Gemini response")}
	}

	resp := &Response{
		Content:    text,
		Model:      p.model,
		StopReason: mapGenaiStopReason(result),
	}
	if result.ModelVersion != "" {
		resp.Model = result.ModelVersion
	}
	if result.UsageMetadata != nil {
		resp.Usage = Usage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
		}
	}
	return resp, nil
}

func (p *GeminiSDKProvider) ModelID() string {
	return p.model
}

func buildGenaiContents(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, len(msgs))
	for i, m := range msgs {
		var role genai.Role = genai.RoleUser
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		out[i] = genai.NewContentFromText(m.Content, role)
	}
	return out
}

func mapGenaiStopReason(result *genai.GenerateContentResponse) string {
	if len(result.Candidates) > 0 {
		switch result.Candidates[0].FinishReason {
		case genai.FinishReasonStop:
			return "end"
		case genai.FinishReasonMaxTokens:
			return "max_tokens"
		}
	}
	return "end"
}

func mapGenaiError(err error) error {
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &apiErrPtr):
		apiErr = *apiErrPtr
	default:
		return &ErrProviderUnavailable{Err: err}
	}
	return statusFromCode(apiErr.Code, err)
}

// statusFromCode maps an SDK-reported HTTP status onto the error taxonomy.
func statusFromCode(code int, err error) error {
	if code == 0 {
		return &ErrProviderUnavailable{Err: err}
	}
	statusErr := &ErrHTTPStatus{StatusCode: code, Status: http.StatusText(code), Err: err}
	if code == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: statusErr}
	}
	return statusErr
}
