package llm

import (
	"errors"
	"fmt"
	"time"
)

// ErrConfig indicates the provider cannot run with the current
// configuration, typically a missing API key. It is raised before any I/O.
type ErrConfig struct {
	Provider string
	Msg      string
}

func (e *ErrConfig) Error() string {
	return fmt.Sprintf("%s provider misconfigured: %s", e.Provider, e.Msg)
}

// ErrHTTPStatus indicates the endpoint answered with a non-2xx status.
type ErrHTTPStatus struct {
	StatusCode int
	Status     string // reason phrase, e.g. "Internal Server Error"
	Body       string // truncated response body, for diagnostics only
	Err        error
}

func (e *ErrHTTPStatus) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d %s", e.StatusCode, e.Status)
}

func (e *ErrHTTPStatus) Unwrap() error { return e.Err }

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates a success response whose shape does not
// carry the expected text.
type ErrInvalidResponse struct {
	Content string
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// Banner messages shown to the user.
const (
	MsgMissingKey  = "API Key tidak ditemukan. Pastikan variabel lingkungan GEMINI_API_KEY telah diatur."
	MsgMalformed   = "Format respons AI tidak sesuai atau kosong."
	MsgUnreachable = "Terjadi kesalahan saat menghubungi AI. Pastikan koneksi internet lancar."
)

// UserMessage converts a generation error into the single banner line
// shown above the form. It returns "" for a nil error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var cfgErr *ErrConfig
	if errors.As(err, &cfgErr) {
		return MsgMissingKey
	}

	var status *ErrHTTPStatus
	if errors.As(err, &status) {
		msg := fmt.Sprintf("Gagal menghubungi AI: %d", status.StatusCode)
		if status.Status != "" {
			msg += " " + status.Status
		}
		return msg
	}

	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		return MsgMalformed
	}

	return MsgUnreachable
}
