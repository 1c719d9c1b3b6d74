package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultGeminiModel   = "gemini-3-flash-preview"
)

// geminiModels maps friendly names to Gemini model IDs.
var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.5-flash",
	"gemini-pro":   "gemini-2.5-pro",
}

// maxResponseBody caps how much of a generateContent body is read.
const maxResponseBody = 8 << 20

// GeminiProvider implements Provider against the Gemini generateContent
// REST endpoint. The API key travels in the query string and is resolved
// on every call.
type GeminiProvider struct {
	client  *http.Client
	baseURL string
	model   string
	key     KeyFunc
}

// GeminiOption customizes a GeminiProvider.
type GeminiOption func(*GeminiProvider)

// WithHTTPClient replaces the transport client.
func WithHTTPClient(c *http.Client) GeminiOption {
	return func(p *GeminiProvider) { p.client = c }
}

// WithKeyFunc replaces the credential lookup.
func WithKeyFunc(fn KeyFunc) GeminiOption {
	return func(p *GeminiProvider) { p.key = fn }
}

// NewGeminiProvider creates a REST Gemini provider. timeout bounds the
// whole round trip; zero disables it.
func NewGeminiProvider(cfg GeminiConfig, timeout time.Duration, opts ...GeminiOption) *GeminiProvider {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	p := &GeminiProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		model:   resolveModel(model, geminiModels),
		key:     cfg.keyFunc(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
	ModelVersion string `json:"modelVersion"`
}

// geminiEnvelope requires candidates[0].content.parts[0].text.
var geminiEnvelope = &Schema{
	Name: "gemini-generate-content",
	Definition: map[string]any{
		"$schema":  "https://json-schema.org/draft/2020-12/schema",
		"type":     "object",
		"required": []any{"candidates"},
		"properties": map[string]any{
			"candidates": map[string]any{
				"type":     "array",
				"minItems": 1,
				"prefixItems": []any{map[string]any{
					"type":     "object",
					"required": []any{"content"},
					"properties": map[string]any{
						"content": map[string]any{
							"type":     "object",
							"required": []any{"parts"},
							"properties": map[string]any{
								"parts": map[string]any{
									"type":     "array",
									"minItems": 1,
									"prefixItems": []any{map[string]any{
										"type":     "object",
										"required": []any{"text"},
										"properties": map[string]any{
											"text": map[string]any{"type": "string"},
										},
									}},
								},
							},
						},
					},
				}},
			},
		},
	},
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	key, ok := p.key()
	if !ok {
		return nil, &ErrConfig{Provider: ProviderGemini, Msg: "GEMINI_API_KEY is not set"}
	}

	body, err := json.Marshal(buildGeminiRequest(req))
	if err != nil {
		return nil, fmt.Errorf("marshal gemini request: %w", err)
	}

	endpoint := p.Endpoint()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		endpoint+"?"+url.Values{"key": {key}}.Encode(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build gemini request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &ErrProviderUnavailable{Err: redactURL(err, endpoint)}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		return nil, &ErrProviderUnavailable{Err: redactURL(err, endpoint)}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, statusError(httpResp, raw)
	}

	if err := validateBody(geminiEnvelope, raw); err != nil {
		return nil, err
	}

	var decoded geminiResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &ErrInvalidResponse{Content: truncateBody(raw), Err: err}
	}
	cand := decoded.Candidates[0]
	text := cand.Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return nil, &ErrInvalidResponse{
			Content: truncateBody(raw),
			Err:     errors.New("empty text in first candidate"),
		}
	}

	resp := &Response{
		Content:    text,
		Model:      p.model,
		StopReason: mapGeminiFinishReason(cand.FinishReason),
	}
	if decoded.ModelVersion != "" {
		resp.Model = decoded.ModelVersion
	}
	if u := decoded.UsageMetadata; u != nil {
		resp.Usage = Usage{
			InputTokens:  u.PromptTokenCount,
			OutputTokens: u.CandidatesTokenCount,
			TotalTokens:  u.TotalTokenCount,
		}
	}
	return resp, nil
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

// Endpoint returns the generateContent URL without the key.
func (p *GeminiProvider) Endpoint() string {
	return p.baseURL + "/" + url.PathEscape(p.model) + ":generateContent"
}

func buildGeminiRequest(req Request) geminiRequest {
	out := geminiRequest{}
	for _, m := range req.Messages {
		c := geminiContent{Parts: []geminiPart{{Text: m.Content}}}
		// A lone user turn is sent without a role, matching the minimal
		// envelope the endpoint documents.
		if len(req.Messages) > 1 {
			c.Role = "user"
			if m.Role == RoleAssistant {
				c.Role = "model"
			}
		}
		out.Contents = append(out.Contents, c)
	}
	if req.System != "" {
		out.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}
	if req.MaxTokens > 0 || req.Temperature > 0 {
		gc := &geminiGenerationConfig{MaxOutputTokens: req.MaxTokens}
		if req.Temperature > 0 {
			t := req.Temperature
			gc.Temperature = &t
		}
		out.GenerationConfig = gc
	}
	return out
}

func statusError(resp *http.Response, body []byte) error {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	statusErr := &ErrHTTPStatus{
		StatusCode: resp.StatusCode,
		Status:     reason,
		Body:       truncateBody(body),
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return &ErrRateLimit{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")), Err: statusErr}
	}
	return statusErr
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// redactURL rewrites the URL inside a transport error so the key never
// reaches logs or the event store.
func redactURL(err error, endpoint string) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = endpoint
	}
	return err
}

func mapGeminiFinishReason(reason string) string {
	switch reason {
	case "MAX_TOKENS":
		return "max_tokens"
	case "", "STOP":
		return "end"
	default:
		return "error"
	}
}
