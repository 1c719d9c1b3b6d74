package llm

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	purposeKey   contextKey = "llm_purpose"
	requestIDKey contextKey = "llm_request_id"
)

// Purposes recorded in the event log.
const (
	PurposeWorksheet = "worksheet"
	PurposeCLI       = "cli-generate"
)

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// WithRequestID tags the context with a generation request ID. An empty id
// gets a fresh UUID.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom returns the request ID, or "" when none was attached.
func RequestIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}
