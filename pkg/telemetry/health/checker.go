package health

import (
	"context"
	"errors"
	"sync"
	"time"

	"mercator-hq/europa/pkg/config"
)

// Component names registered by the runtime. Readiness reports one entry per
// registered component.
const (
	// ComponentIRC reports whether the IRC connection is registered and live.
	ComponentIRC = "irc"

	// ComponentProvider reports whether the completion provider has been
	// answering (no run of consecutive failures).
	ComponentProvider = "provider"

	// ComponentStore reports whether the usage store is reachable.
	ComponentStore = "store"
)

// Probe status values as they appear on the wire.
const (
	StatusOK        = "ok"
	StatusReady     = "ready"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// ErrCheckTimeout replaces a check's result when it outruns the per-check
// timeout.
var ErrCheckTimeout = errors.New("health check timeout")

// defaultCheckTimeout bounds a single component check when the config does
// not say otherwise.
const defaultCheckTimeout = 5 * time.Second

// CheckFunc probes one component. A nil return means healthy; an error
// carries the problem description into the readiness report.
type CheckFunc func(ctx context.Context) error

// CheckResult is one component's entry in a readiness report.
type CheckResult struct {
	Status string `json:"status"`

	// Message carries the check error for unhealthy components.
	Message string `json:"message,omitempty"`

	// Duration is the check's wall time in milliseconds.
	Duration float64 `json:"duration_ms,omitempty"`
}

// Report is the aggregate probe response: ok for liveness, ready or
// degraded for readiness, with per-component results attached.
type Report struct {
	Status    string                 `json:"status"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Checker runs registered component checks and aggregates them into
// readiness reports. Safe for concurrent use.
type Checker struct {
	mu           sync.RWMutex
	checks       map[string]CheckFunc
	checkTimeout time.Duration
}

// New returns a Checker whose individual checks are bounded by checkTimeout.
// Zero means the default of 5 seconds.
func New(checkTimeout time.Duration) *Checker {
	if checkTimeout == 0 {
		checkTimeout = defaultCheckTimeout
	}
	return &Checker{
		checks:       make(map[string]CheckFunc),
		checkTimeout: checkTimeout,
	}
}

// NewFromConfig creates a health checker with the configured check timeout.
func NewFromConfig(cfg *config.HealthConfig) *Checker {
	if cfg == nil {
		return New(0)
	}
	return New(cfg.CheckTimeout)
}

// BoolCheck adapts a connectivity predicate into a CheckFunc. The check fails
// with the given problem message whenever the predicate reports false. Useful
// for components that track their own state, like the IRC connection gauge.
func BoolCheck(up func() bool, problem string) CheckFunc {
	return func(ctx context.Context) error {
		if !up() {
			return errors.New(problem)
		}
		return nil
	}
}

// RegisterCheck adds a component check, replacing any previous check
// registered under the same name.
func (c *Checker) RegisterCheck(name string, check CheckFunc) {
	c.mu.Lock()
	c.checks[name] = check
	c.mu.Unlock()
}

// CheckReadiness runs every registered check concurrently and aggregates
// the results. The report is "ready" only when all components pass; a
// checker with nothing registered is trivially ready.
func (c *Checker) CheckReadiness(ctx context.Context) Report {
	c.mu.RLock()
	names := make([]string, 0, len(c.checks))
	funcs := make([]CheckFunc, 0, len(c.checks))
	for name, fn := range c.checks {
		names = append(names, name)
		funcs = append(funcs, fn)
	}
	c.mu.RUnlock()

	// One goroutine per component, each writing its own slot.
	results := make([]CheckResult, len(funcs))
	var wg sync.WaitGroup
	for i, fn := range funcs {
		wg.Add(1)
		go func(i int, fn CheckFunc) {
			defer wg.Done()
			results[i] = c.runCheck(ctx, fn)
		}(i, fn)
	}
	wg.Wait()

	report := Report{
		Status:    StatusReady,
		Checks:    make(map[string]CheckResult, len(names)),
		Timestamp: time.Now(),
	}
	for i, name := range names {
		report.Checks[name] = results[i]
		if results[i].Status != StatusOK {
			report.Status = StatusDegraded
		}
	}
	return report
}

// runCheck executes one check under the per-check timeout. The check runs in
// its own goroutine so a check that ignores its context cannot stall the
// whole readiness probe.
func (c *Checker) runCheck(ctx context.Context, check CheckFunc) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, c.checkTimeout)
	defer cancel()

	start := time.Now()
	done := make(chan error, 1)
	go func() { done <- check(ctx) }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			err = ErrCheckTimeout
		}
	}

	elapsed := float64(time.Since(start)) / float64(time.Millisecond)
	if err != nil {
		return CheckResult{Status: StatusUnhealthy, Message: err.Error(), Duration: elapsed}
	}
	return CheckResult{Status: StatusOK, Duration: elapsed}
}
