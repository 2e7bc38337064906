// Package providers implements the completion backend abstraction.
//
// # Overview
//
// The Provider interface is what the dispatcher talks to: one
// Complete call per admitted request, a health probe, and lifecycle
// management. HTTPProvider is the shared base for HTTP adapters and
// carries the pieces every adapter needs: a pooled http.Client,
// request/response plumbing, error mapping, and passive health
// tracking fed by request outcomes.
//
// The concrete Mistral adapter lives in the mistral sub-package.
//
// # Single Attempt
//
// Requests are never retried. A user is waiting on IRC for each
// completion, and the failure contract is one generic line per failed
// request; retrying inside the provider would stack delays on the
// user and amplify load on a remote that is already degraded. Rate
// limit responses (429) surface as *RemoteError with status 429 and
// take the same failure path as any other remote error.
//
// # Error Taxonomy
//
// Failures are typed so callers can label metrics and usage records
// without string matching:
//
//   - *TimeoutError: the configured request timeout elapsed
//   - *NetworkError: transport failure (refused, reset, DNS)
//   - *RemoteError: any non-2xx status, body snippet attached
//   - *MalformedResponseError: a 2xx body that could not be parsed
//
// Kind maps any of these to a stable label ("timeout", "network",
// "remote", "malformed").
//
// # Health Tracking
//
// Every request outcome feeds a ProviderHealth record; three
// consecutive failures mark the provider unhealthy, one success marks
// it healthy again. StartHealthChecker adds an optional background
// probe (GET /models) so readiness reflects reality during idle
// periods. Health gates nothing on the request path; it only feeds
// the readiness endpoint and logs.
package providers
