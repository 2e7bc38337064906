package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// snippetLen caps how much of a provider response body is carried in
// errors. Bodies can be large and end up in operator logs.
const snippetLen = 256

// unhealthyAfter is how many consecutive failures flip a provider to
// unhealthy. A single success flips it back.
const unhealthyAfter = 3

// HTTPProvider is the base implementation for HTTP-based provider
// adapters. It provides connection pooling, timeout handling, and
// health tracking.
//
// Every request is a single attempt. A failed completion surfaces to
// the caller immediately; retrying would amplify load on a remote
// that is already struggling, and the user-facing contract is one
// answer or one failure line per request.
type HTTPProvider struct {
	config ProviderConfig
	client *http.Client

	healthMu sync.RWMutex
	health   ProviderHealth

	checkerMu      sync.Mutex
	checkerStarted bool
	probeStop      chan struct{} // closed by Close to stop the probe loop
	probeDone      chan struct{} // closed when the probe loop has exited
}

// NewHTTPProvider builds a provider around a pooled HTTP client.
func NewHTTPProvider(cfg ProviderConfig) *HTTPProvider {
	now := time.Now()
	return &HTTPProvider{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        cfg.MaxIdleConns,
				MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
				IdleConnTimeout:     cfg.IdleConnTimeout,
				ForceAttemptHTTP2:   true,
			},
		},
		// A fresh provider counts as healthy until requests prove
		// otherwise.
		health: ProviderHealth{
			IsHealthy:             true,
			LastCheck:             now,
			LastSuccessfulRequest: now,
		},
		probeStop: make(chan struct{}),
		probeDone: make(chan struct{}),
	}
}

// GetName returns the configured provider name.
func (p *HTTPProvider) GetName() string { return p.config.Name }

// GetConfig returns a copy of the provider configuration.
func (p *HTTPProvider) GetConfig() ProviderConfig { return p.config }

// IsHealthy reports the current health flag.
func (p *HTTPProvider) IsHealthy() bool {
	p.healthMu.RLock()
	defer p.healthMu.RUnlock()
	return p.health.IsHealthy
}

// GetHealth returns a snapshot of the health state.
func (p *HTTPProvider) GetHealth() ProviderHealth {
	p.healthMu.RLock()
	defer p.healthMu.RUnlock()
	return p.health
}

// updateHealth folds one request or probe outcome into the health
// state.
func (p *HTTPProvider) updateHealth(success bool, err error) {
	p.healthMu.Lock()
	defer p.healthMu.Unlock()

	h := &p.health
	h.LastCheck = time.Now()

	if success {
		h.IsHealthy = true
		h.ConsecutiveFailures = 0
		h.LastError = nil
		h.LastSuccessfulRequest = h.LastCheck
		return
	}

	h.ConsecutiveFailures++
	h.LastError = err

	if h.IsHealthy && h.ConsecutiveFailures >= unhealthyAfter {
		h.IsHealthy = false
		slog.Warn("provider marked unhealthy",
			"provider", p.config.Name,
			"consecutive_failures", h.ConsecutiveFailures,
			"error", err,
		)
	}
}

// recordRequest bumps the request counters.
func (p *HTTPProvider) recordRequest(success bool) {
	p.healthMu.Lock()
	defer p.healthMu.Unlock()

	p.health.TotalRequests++
	if !success {
		p.health.FailedRequests++
	}
}

// DoRequest performs a single HTTP request attempt and maps failures
// onto the provider error taxonomy. The caller owns the response body
// on success.
func (p *HTTPProvider) DoRequest(ctx context.Context, method, url string, body []byte, headers map[string]string) (*http.Response, error) {
	var payload io.Reader
	if body != nil {
		payload = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	slog.Debug("provider request", "provider", p.config.Name, "method", method, "url", url)

	resp, err := p.client.Do(req)
	if err != nil {
		// Shutdown cancellation is not a provider fault.
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, ctx.Err()
		}
		p.recordRequest(false)

		if errors.Is(ctx.Err(), context.DeadlineExceeded) || isClientTimeout(err) {
			tErr := &TimeoutError{Provider: p.config.Name, Timeout: p.config.Timeout}
			p.updateHealth(false, tErr)
			return nil, tErr
		}
		nErr := &NetworkError{Provider: p.config.Name, Cause: err}
		p.updateHealth(false, nErr)
		return nil, nErr
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		p.recordRequest(true)
		p.updateHealth(true, nil)
		return resp, nil
	}

	errBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	p.recordRequest(false)

	rErr := &RemoteError{
		Provider:   p.config.Name,
		StatusCode: resp.StatusCode,
		Message:    snippet(errBody),
	}
	// 429 means the remote is up and shedding load; only real failures
	// count against health.
	if resp.StatusCode != http.StatusTooManyRequests {
		p.updateHealth(false, rErr)
	}
	return nil, rErr
}

// DoJSONRequest marshals reqBody, performs the request, and decodes the
// response into respBody when both are non-nil.
func (p *HTTPProvider) DoJSONRequest(ctx context.Context, method, url string, reqBody, respBody any, headers map[string]string) error {
	var payload []byte
	if reqBody != nil {
		var err error
		if payload, err = json.Marshal(reqBody); err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	resp, err := p.DoRequest(ctx, method, url, payload, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &MalformedResponseError{
			Provider: p.config.Name,
			Cause:    fmt.Errorf("failed to read response: %w", err),
		}
	}
	if respBody == nil || len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, respBody); err != nil {
		return &MalformedResponseError{
			Provider:    p.config.Name,
			RawResponse: snippet(raw),
			Cause:       fmt.Errorf("failed to unmarshal response: %w", err),
		}
	}
	return nil
}

// Close stops the probe loop (if running) and releases idle
// connections. The provider must not be used afterwards.
func (p *HTTPProvider) Close() error {
	p.checkerMu.Lock()
	started := p.checkerStarted
	p.checkerMu.Unlock()

	if started {
		close(p.probeStop)
		select {
		case <-p.probeDone:
		case <-time.After(5 * time.Second):
			slog.Warn("health checker did not stop in time", "provider", p.config.Name)
		}
	}

	p.client.CloseIdleConnections()
	slog.Info("provider closed", "provider", p.config.Name)
	return nil
}

// isClientTimeout reports whether err is the http.Client's own timeout
// rather than a transport failure.
func isClientTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// snippet truncates a response body for inclusion in errors and logs.
func snippet(body []byte) string {
	s := string(body)
	if len(s) > snippetLen {
		return s[:snippetLen] + "..."
	}
	return s
}
