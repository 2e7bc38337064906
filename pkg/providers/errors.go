package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// TimeoutError reports a request that exceeded the configured timeout.
type TimeoutError struct {
	Provider string
	Timeout  time.Duration // the configured limit, not the elapsed time
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("provider %q request timeout after %s", e.Provider, e.Timeout)
}

// NetworkError reports a transport-level failure: connection refused,
// DNS failure, connection reset mid-request.
type NetworkError struct {
	Provider string
	Cause    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("provider %q network error: %v", e.Provider, e.Cause)
}

func (e *NetworkError) Unwrap() error { return e.Cause }

// RemoteError reports a non-2xx response from the provider. It covers
// rate limiting (429), authentication failures (401, 403), and server
// errors (5xx) alike; no automatic retry is attempted for any of them.
type RemoteError struct {
	Provider   string
	StatusCode int
	Message    string // truncated snippet of the response body
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("provider %q error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider %q error (status %d)", e.Provider, e.StatusCode)
}

// MalformedResponseError reports a 2xx response whose body could not
// be parsed or lacked required fields.
type MalformedResponseError struct {
	Provider    string
	RawResponse string // truncated snippet of the raw body
	Cause       error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider %q malformed response: %v", e.Provider, e.Cause)
	}
	return fmt.Sprintf("provider %q malformed response", e.Provider)
}

func (e *MalformedResponseError) Unwrap() error { return e.Cause }

// ConfigError reports invalid provider configuration detected at
// construction time.
type ConfigError struct {
	Provider string
	Field    string
	Message  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("provider %q configuration error for field %q: %s",
		e.Provider, e.Field, e.Message)
}

// Error kind labels used for metrics and usage records.
const (
	KindTimeout   = "timeout"
	KindNetwork   = "network"
	KindRemote    = "remote"
	KindMalformed = "malformed"
	KindCanceled  = "canceled"
	KindOther     = "other"
)

// Kind classifies err into the stable label set above.
func Kind(err error) string {
	if err == nil {
		return ""
	}

	var (
		timeout   *TimeoutError
		network   *NetworkError
		remote    *RemoteError
		malformed *MalformedResponseError
	)
	switch {
	case errors.As(err, &timeout):
		return KindTimeout
	case errors.As(err, &network):
		return KindNetwork
	case errors.As(err, &remote):
		return KindRemote
	case errors.As(err, &malformed):
		return KindMalformed
	case errors.Is(err, context.Canceled):
		return KindCanceled
	default:
		return KindOther
	}
}

// IsRateLimited reports whether err is a remote rate limit response.
func IsRateLimited(err error) bool {
	var remote *RemoteError
	return errors.As(err, &remote) && remote.StatusCode == http.StatusTooManyRequests
}
