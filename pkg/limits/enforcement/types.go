package enforcement

import "mercator-hq/europa/pkg/limits"

// Result contains the outcome of one admission check.
type Result struct {
	// Proceed indicates if the request may continue to the completion
	// pipeline. The ledger reservation is already registered when true.
	Proceed bool

	// UserMessage is the one-line rejection to relay to the requester
	// (if Proceed=false). Short, stable, and non-technical.
	UserMessage string

	// Decision is the underlying ledger decision, kept for logs,
	// metrics, and usage records.
	Decision limits.Decision
}
