package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // id > After
	Before  int64     // id < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match, "" = any
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	RequestID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates successful and failed calls per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates calls per model, for cost estimation.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
