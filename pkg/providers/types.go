package providers

import "time"

// Message roles on the chat-completions wire.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Normalized finish reasons. Adapters map provider-specific values onto
// these before the response leaves the package.
const (
	FinishReasonStop          = "stop"
	FinishReasonLength        = "length"
	FinishReasonContentFilter = "content_filter"
)

// Message is a single chat message in a prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage is the token count the provider reported for one completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionRequest is a provider-agnostic completion request. Zero fields
// are filled from the provider configuration defaults.
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// CompletionResponse is a completion normalized out of the provider's wire
// shape: flattened to a single content string with a normalized finish
// reason.
type CompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Content string `json:"content"`

	// FinishReason is one of the FinishReason* constants.
	FinishReason string `json:"finish_reason"`

	// Usage is nil when the provider did not report token counts; callers
	// fall back to estimation.
	Usage *Usage `json:"usage,omitempty"`

	// Created is the provider's creation time as a Unix timestamp.
	Created int64 `json:"created"`
}

// ProviderHealth is a snapshot of how the provider has been answering.
// The provider flips unhealthy after three consecutive failures and
// recovers on the first success.
type ProviderHealth struct {
	IsHealthy             bool
	LastCheck             time.Time
	LastError             error
	ConsecutiveFailures   int
	LastSuccessfulRequest time.Time
	TotalRequests         int64
	FailedRequests        int64
}

// ProviderConfig configures a single provider instance.
type ProviderConfig struct {
	// Name identifies the provider, e.g. "mistral".
	Name    string
	BaseURL string
	APIKey  string

	// Defaults applied to requests that leave the field zero.
	Model       string
	MaxTokens   int
	Temperature float64

	// Timeout bounds one completion round trip, connection setup included.
	Timeout time.Duration

	// HealthCheckInterval is the base wait between background health
	// probes while the provider is unhealthy.
	HealthCheckInterval time.Duration

	// Connection pool tuning for the underlying HTTP transport.
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}
