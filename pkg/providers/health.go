package providers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultProbeInterval = 30 * time.Second
	probeTimeout         = 5 * time.Second
	maxProbeBackoff      = 5 * time.Minute
)

// HealthCheck probes the provider once, synchronously. The outcome
// feeds the same health state the background loop maintains.
func (p *HTTPProvider) HealthCheck(ctx context.Context) error {
	return p.probe(ctx)
}

// StartHealthChecker launches the background probe loop. Only the
// first call starts a goroutine; the loop exits when ctx is cancelled
// or the provider is closed.
func (p *HTTPProvider) StartHealthChecker(ctx context.Context) {
	p.checkerMu.Lock()
	defer p.checkerMu.Unlock()
	if p.checkerStarted {
		return
	}
	p.checkerStarted = true
	go p.probeLoop(ctx)
}

func (p *HTTPProvider) probeLoop(ctx context.Context) {
	defer close(p.probeDone)

	base := p.config.HealthCheckInterval
	if base == 0 {
		base = defaultProbeInterval
	}
	slog.Info("health checker started", "provider", p.config.Name, "interval", base)

	ticker := time.NewTicker(base)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Debug("health checker exiting", "provider", p.config.Name, "reason", "context cancelled")
			return
		case <-p.probeStop:
			slog.Debug("health checker exiting", "provider", p.config.Name, "reason", "provider closed")
			return
		case <-ticker.C:
		}

		p.probeOnce(ctx)

		// While failing, stretch the wait so a dead upstream is not
		// hammered every tick.
		next := base
		if h := p.GetHealth(); !h.IsHealthy {
			next = probeBackoff(h.ConsecutiveFailures, base)
			slog.Debug("health probe backoff",
				"provider", p.config.Name,
				"consecutive_failures", h.ConsecutiveFailures,
				"next_check_in", next,
			)
		}
		ticker.Reset(next)
	}
}

// probeOnce runs one timed probe and logs the outcome. DoRequest inside
// the probe records the health transition itself.
func (p *HTTPProvider) probeOnce(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	failing := p.GetHealth().ConsecutiveFailures > 0

	start := time.Now()
	err := p.probe(probeCtx)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, context.Canceled):
		// Shutdown raced the probe.
	case err != nil:
		slog.Error("health probe failed", "provider", p.config.Name, "error", err, "latency", elapsed)
	default:
		slog.Debug("health probe ok", "provider", p.config.Name, "latency", elapsed)
		if failing {
			slog.Info("provider recovered", "provider", p.config.Name)
		}
	}
}

// probe issues an authenticated GET of the models listing, the
// cheapest call the chat API answers.
func (p *HTTPProvider) probe(ctx context.Context) error {
	var headers map[string]string
	if p.config.APIKey != "" {
		headers = map[string]string{"Authorization": "Bearer " + p.config.APIKey}
	}

	resp, err := p.DoRequest(ctx, http.MethodGet, p.config.BaseURL+"/models", nil, headers)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// probeBackoff doubles the wait per consecutive failure, capped at 10x
// the base interval and five minutes.
func probeBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	mult := 1 << min(failures, 4)
	if mult > 10 {
		mult = 10
	}
	return min(base*time.Duration(mult), maxProbeBackoff)
}
