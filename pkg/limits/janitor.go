package limits

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Janitor evicts stale per-user quota state on a cron schedule so the
// ledger's memory does not grow with every nickname ever seen.
type Janitor struct {
	ledger   *Ledger
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewJanitor creates a janitor for the given ledger.
//
// Common schedules:
//   - "@hourly"     - Once per hour (the default wiring)
//   - "0 4 * * *"   - Daily at 4 AM
//
// An empty schedule disables the janitor.
func NewJanitor(ledger *Ledger, schedule string) *Janitor {
	return &Janitor{
		ledger:   ledger,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "limits.janitor"),
	}
}

// Start begins scheduled eviction. It validates the cron expression,
// registers the job, and stops itself when ctx is cancelled.
func (j *Janitor) Start(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.schedule == "" {
		j.logger.Info("eviction schedule not configured, skipping janitor")
		return nil
	}

	if _, err := cron.ParseStandard(j.schedule); err != nil {
		return fmt.Errorf("invalid eviction schedule %q: %w", j.schedule, err)
	}

	if _, err := j.cron.AddFunc(j.schedule, j.runEviction); err != nil {
		return fmt.Errorf("failed to schedule eviction: %w", err)
	}

	j.cron.Start()
	j.running = true

	j.logger.Info("stale user eviction scheduled",
		"schedule", j.schedule,
		"evict_after", j.ledger.Config().EvictAfter.String(),
	)

	go func() {
		<-ctx.Done()
		j.Stop()
	}()

	return nil
}

// runEviction executes one eviction cycle.
func (j *Janitor) runEviction() {
	evicted := j.ledger.EvictStale(time.Now())
	if evicted > 0 {
		j.logger.Info("stale user state evicted",
			"evicted_count", evicted,
			"tracked_users", j.ledger.Stats().TrackedUsers,
		)
	} else {
		j.logger.Debug("eviction cycle completed, nothing stale")
	}
}

// Stop stops the janitor and waits for a running cycle to finish.
func (j *Janitor) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.cron != nil && j.running {
		ctx := j.cron.Stop()
		<-ctx.Done()
		j.running = false
		j.logger.Info("janitor stopped")
	}
}

// IsRunning returns true if the janitor is running.
func (j *Janitor) IsRunning() bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.running
}
