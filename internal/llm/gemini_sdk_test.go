package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genai"
)

func TestNewGeminiSDKProvider_RequiresKey(t *testing.T) {
	t.Setenv("LKPD_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := NewGeminiSDKProvider(context.Background(), GeminiConfig{})
	var cfgErr *ErrConfig
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestNewGeminiSDKProvider_ResolvesModel(t *testing.T) {
	p, err := NewGeminiSDKProvider(context.Background(), GeminiConfig{APIKey: "k", Model: "gemini-pro"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gemini-2.5-pro" {
		t.Fatalf("model = %q", p.ModelID())
	}
}

func TestMapGenaiError(t *testing.T) {
	var rl *ErrRateLimit
	if !errors.As(mapGenaiError(genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}), &rl) {
		t.Error("429 should map to ErrRateLimit")
	}

	var status *ErrHTTPStatus
	err := mapGenaiError(fmt.Errorf("call: %w", &genai.APIError{Code: 500, Message: "internal"}))
	if !errors.As(err, &status) || status.StatusCode != 500 || status.Status != "Internal Server Error" {
		t.Errorf("500 mapped to %v", err)
	}

	var unavailable *ErrProviderUnavailable
	if !errors.As(mapGenaiError(errors.New("dial tcp: refused")), &unavailable) {
		t.Error("transport errors should map to ErrProviderUnavailable")
	}
}

func TestMapGenaiStopReason(t *testing.T) {
	resp := func(r genai.FinishReason) *genai.GenerateContentResponse {
		return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: r}}}
	}
	if got := mapGenaiStopReason(resp(genai.FinishReasonMaxTokens)); got != "max_tokens" {
		t.Errorf("max tokens = %q", got)
	}
	if got := mapGenaiStopReason(resp(genai.FinishReasonStop)); got != "end" {
		t.Errorf("stop = %q", got)
	}
	if got := mapGenaiStopReason(&genai.GenerateContentResponse{}); got != "end" {
		t.Errorf("no candidates = %q", got)
	}
}

func TestBuildGenaiContents(t *testing.T) {
	contents := buildGenaiContents([]Message{
		{Role: RoleUser, Content: "buat"},
		{Role: RoleAssistant, Content: "siap"},
	})
	if len(contents) != 2 {
		t.Fatalf("got %d contents", len(contents))
	}
	if contents[0].Role != genai.RoleUser || contents[1].Role != genai.RoleModel {
		t.Errorf("roles = %q, %q", contents[0].Role, contents[1].Role)
	}
	if contents[1].Parts[0].Text != "siap" {
		t.Errorf("text = %q", contents[1].Parts[0].Text)
	}
}
