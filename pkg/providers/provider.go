package providers

import "context"

// Provider is the interface a completion backend must implement.
//
// All methods accept a context.Context for cancellation and timeout
// control. Implementations must respect context cancellation and
// return immediately when the context is cancelled.
//
// Example usage:
//
//	req := &CompletionRequest{
//		Messages: []Message{
//			{Role: RoleUser, Content: prompt},
//		},
//	}
//
//	resp, err := provider.Complete(ctx, req)
//	if err != nil {
//		return err
//	}
//	fmt.Println(resp.Content)
type Provider interface {
	// Complete sends one completion request and returns the normalized
	// response. It makes exactly one attempt: completion errors are
	// returned to the caller, never retried, so a struggling remote
	// sees no amplified load.
	//
	// Failures are typed: *TimeoutError, *NetworkError, *RemoteError
	// (any non-2xx status, including 429), or *MalformedResponseError.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// HealthCheck performs a lightweight probe to verify the provider
	// is reachable and responding.
	HealthCheck(ctx context.Context) error

	// GetName returns the provider's configured name.
	GetName() string

	// IsHealthy returns the current health status as tracked from
	// request outcomes and background probes.
	IsHealthy() bool

	// GetHealth returns detailed health information including last
	// check time, consecutive failures, and error details.
	GetHealth() ProviderHealth

	// Close closes the provider and releases any resources.
	Close() error
}
