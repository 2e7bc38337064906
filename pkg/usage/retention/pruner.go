// Package retention enforces the usage record retention policy:
// records older than a configured number of days are deleted on a
// cron schedule.
package retention

import (
	"context"
	"log/slog"
	"time"

	"mercator-hq/europa/pkg/usage"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the number of days to keep usage records.
	// Zero keeps records forever (no pruning).
	// Default: 90
	RetentionDays int

	// PruneSchedule is a cron expression for scheduling pruning.
	// Empty disables the scheduler; Prune can still be called directly.
	// Default: "0 3 * * *" (daily at 03:00)
	PruneSchedule string
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		RetentionDays: 90,
		PruneSchedule: "0 3 * * *",
	}
}

// Metrics counts pruning outcomes. A nil Metrics disables counting.
type Metrics interface {
	// RecordPruned counts records deleted by retention.
	RecordPruned(n int64)
}

type nopMetrics struct{}

func (nopMetrics) RecordPruned(int64) {}

// Pruner deletes usage records older than the retention period.
type Pruner struct {
	store     usage.Store
	config    *Config
	metrics   Metrics
	logger    *slog.Logger
	scheduler *Scheduler
}

// NewPruner creates a retention pruner. metrics may be nil.
func NewPruner(store usage.Store, config *Config, metrics Metrics) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	p := &Pruner{
		store:   store,
		config:  config,
		metrics: metrics,
		logger:  slog.Default().With("component", "usage.retention"),
	}
	p.scheduler = NewScheduler(p)

	return p
}

// Prune deletes records older than the retention period and returns
// how many were deleted. With RetentionDays zero it does nothing.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	if p.config.RetentionDays <= 0 {
		p.logger.Debug("retention disabled, nothing to prune")
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -p.config.RetentionDays)

	deleted, err := p.store.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, usage.NewRetentionError(p.config.RetentionDays, err)
	}

	p.metrics.RecordPruned(deleted)

	if deleted > 0 {
		p.logger.Info("pruned usage records",
			"deleted_count", deleted,
			"retention_days", p.config.RetentionDays,
			"cutoff", cutoff,
		)
	} else {
		p.logger.Debug("no usage records past retention",
			"retention_days", p.config.RetentionDays,
		)
	}

	return deleted, nil
}

// Start starts the automatic pruning scheduler. Call this when
// starting the application.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops the automatic pruning scheduler. Call this during
// graceful shutdown.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the time of the next scheduled pruning, or nil
// when no pruning is scheduled.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}
