package usage

import (
	"context"
	"io"
	"time"
)

// Outcome classifies how a request ended.
type Outcome string

const (
	// OutcomeDelivered means a reply reached the channel.
	OutcomeDelivered Outcome = "delivered"

	// OutcomeRejected means admission control denied the request.
	OutcomeRejected Outcome = "rejected"

	// OutcomeFailed means the completion or delivery failed.
	OutcomeFailed Outcome = "failed"
)

// Record is one request's accounting entry. It is deliberately
// content-free: the prompt appears only as a SHA-256 digest and a
// length, the reply only as a length and a chunk count. Conversation
// text never reaches the store.
type Record struct {
	// ID is the record's unique identifier (UUID).
	ID string `json:"id"`

	// Timestamp is when the request arrived.
	Timestamp time.Time `json:"timestamp"`

	// Nick is the requesting IRC nick.
	Nick string `json:"nick"`

	// Channel is the channel the request came from.
	Channel string `json:"channel"`

	// Command is the bot command without the bang, e.g. "ask".
	Command string `json:"command"`

	// Outcome is how the request ended.
	Outcome Outcome `json:"outcome"`

	// DenyReason names the admission rule that rejected the request.
	// Set only when Outcome is "rejected". Values: "global_minute",
	// "global_day", "user_day", "cooldown".
	DenyReason string `json:"deny_reason,omitempty"`

	// ErrorKind classifies the failure for failed requests. Set only
	// when Outcome is "failed". Values: "timeout", "network", "remote",
	// "malformed", "canceled", "other".
	ErrorKind string `json:"error_kind,omitempty"`

	// Latency is the time from request arrival to the final outcome.
	Latency time.Duration `json:"latency"`

	// Model is the model that served the request, empty for requests
	// that never reached the provider.
	Model string `json:"model,omitempty"`

	// PromptTokens is the prompt token count.
	PromptTokens int `json:"prompt_tokens"`

	// CompletionTokens is the reply token count.
	CompletionTokens int `json:"completion_tokens"`

	// TokensEstimated is true when the token counts come from the
	// character-based estimator instead of the provider's usage block.
	TokensEstimated bool `json:"tokens_estimated"`

	// EstimatedCost is the exchange cost in USD per the configured
	// pricing, zero when no pricing matched.
	EstimatedCost float64 `json:"estimated_cost"`

	// ChunkCount is the number of IRC lines the reply was split into.
	ChunkCount int `json:"chunk_count"`

	// PromptHash is the hex-encoded SHA-256 digest of the prompt text.
	// Empty for requests with no prompt, e.g. "!help".
	PromptHash string `json:"prompt_hash,omitempty"`

	// PromptLength is the prompt length in bytes.
	PromptLength int `json:"prompt_length"`

	// ResponseLength is the reply length in bytes before chunking.
	ResponseLength int `json:"response_length"`
}

// Query selects records from a store. Zero-value fields match
// everything; results are ordered by timestamp ascending.
type Query struct {
	// StartTime filters records at or after this time.
	StartTime *time.Time

	// EndTime filters records at or before this time.
	EndTime *time.Time

	// Nick filters by requesting nick.
	Nick string

	// Channel filters by channel.
	Channel string

	// Command filters by command.
	Command string

	// Outcome filters by outcome.
	Outcome Outcome

	// Limit caps the number of results. Zero means no limit.
	Limit int

	// Offset skips this many results, for pagination.
	Offset int
}

// Store persists usage records.
//
// Implementations must be safe for concurrent use: the async recorder
// writes while CLI queries and the retention pruner read and delete.
type Store interface {
	// Insert persists one record.
	Insert(ctx context.Context, rec *Record) error

	// Query returns the records matching q, oldest first.
	Query(ctx context.Context, q *Query) ([]*Record, error)

	// Count returns the number of records matching q.
	Count(ctx context.Context, q *Query) (int64, error)

	// DeleteBefore removes records with a timestamp before cutoff and
	// returns how many were deleted.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Ping reports whether the store is reachable. The readiness probe
	// calls this.
	Ping(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}

// Exporter writes records to an output stream in some format.
type Exporter interface {
	Export(ctx context.Context, records []*Record, w io.Writer) error
}
