package store

import (
	"context"
	"encoding/json"
	"time"
)

// DocumentRepo stores keyed JSON documents. Every Put rewrites the whole
// value for the key, so callers always observe a complete document.
type DocumentRepo interface {
	// Get returns the document for key. The bool reports whether it exists.
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value json.RawMessage) error

	// Delete removes the document for key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error
}

// LLMRequestEventData captures a single upstream LLM call.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a persisted LLM call record.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // filter by purpose label ("" = all)
}

// EventRepo provides access to the LLM request event log.
type EventRepo interface {
	// AppendLLMRequest records an upstream LLM call.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events in descending sequence order.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns a single event by ID, or nil if not found.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)
}
