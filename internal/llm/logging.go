package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/lkpd/internal/logger"
	"github.com/abhisek/lkpd/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an event
// and writes one structured log line per call.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
	log       *logger.Logger
}

// WithLogging wraps a Provider with event logging. repo may be nil when the
// event store is unavailable; log may be nil to skip log lines.
func WithLogging(p Provider, name string, repo store.EventRepo, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{inner: p, provider: name, eventRepo: repo, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)
	requestID := RequestIDFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	data := store.LLMRequestEventData{
		RequestID:   requestID,
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latencyMs,
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = resp.Content
	}

	if err != nil {
		data.ErrorMessage = logger.ScrubString(err.Error())
		l.log.Warn("generation failed",
			"request_id", requestID,
			"provider", l.provider,
			"model", data.Model,
			"purpose", purpose,
			"latency_ms", latencyMs,
			"error", err,
		)
	} else {
		l.log.Info("generation complete",
			"request_id", requestID,
			"provider", l.provider,
			"model", data.Model,
			"purpose", purpose,
			"latency_ms", latencyMs,
			"input_tokens", data.InputTokens,
			"output_tokens", data.OutputTokens,
			"chars", len(data.ResponseBody),
		)
	}

	// A logging failure never fails the request.
	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
			l.log.Warn("failed to record LLM request event", "error", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	return b.String()
}
