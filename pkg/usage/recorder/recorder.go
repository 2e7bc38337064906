// Package recorder provides the asynchronous write path for usage
// records. Handlers enqueue completed records without blocking; a
// single worker goroutine persists them in the background.
package recorder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"mercator-hq/europa/pkg/usage"
)

// Config contains configuration for the usage recorder.
type Config struct {
	// Enabled controls whether records are written at all. A disabled
	// recorder silently discards everything handed to it.
	// Default: true
	Enabled bool

	// BufferSize is the capacity of the write queue. When the queue is
	// full new records are dropped and counted, never blocking the
	// caller.
	// Default: 1000
	BufferSize int

	// WriteTimeout bounds a single store write.
	// Default: 5s
	WriteTimeout time.Duration

	// DrainTimeout is the maximum time Close waits for queued records
	// to reach the store.
	// Default: 5s
	DrainTimeout time.Duration
}

// DefaultConfig returns the default recorder configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		BufferSize:   1000,
		WriteTimeout: 5 * time.Second,
		DrainTimeout: 5 * time.Second,
	}
}

// Metrics counts recorder outcomes. The telemetry package provides the
// production implementation; a nil Metrics disables counting.
type Metrics interface {
	// RecordAccepted counts a record taken onto the queue.
	RecordAccepted()

	// RecordDropped counts a record lost to a full queue.
	RecordDropped()

	// RecordWriteError counts a failed store write.
	RecordWriteError()
}

// nopMetrics is the fallback when no metrics sink is wired.
type nopMetrics struct{}

func (nopMetrics) RecordAccepted()   {}
func (nopMetrics) RecordDropped()    {}
func (nopMetrics) RecordWriteError() {}

// Recorder queues usage records and persists them from a background
// worker. Record never blocks and never returns an error to the
// request path: storage trouble surfaces in logs and metrics, not in
// channel replies.
type Recorder struct {
	store   usage.Store
	config  *Config
	metrics Metrics
	logger  *slog.Logger

	records chan *usage.Record
	done    chan struct{}
	wg      sync.WaitGroup

	closeOnce sync.Once
}

// NewRecorder creates a usage recorder and starts its worker. metrics
// may be nil.
func NewRecorder(store usage.Store, config *Config, metrics Metrics) *Recorder {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BufferSize <= 0 {
		config.BufferSize = 1000
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = 5 * time.Second
	}
	if config.DrainTimeout <= 0 {
		config.DrainTimeout = 5 * time.Second
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	r := &Recorder{
		store:   store,
		config:  config,
		metrics: metrics,
		logger:  slog.Default().With("component", "usage.recorder"),
		records: make(chan *usage.Record, config.BufferSize),
		done:    make(chan struct{}),
	}

	r.wg.Add(1)
	go r.worker()

	return r
}

// Record queues a completed usage record for persistence. Missing ID
// and timestamp fields are filled in. When the queue is full the
// record is dropped and the drop counted; the caller is never blocked.
func (r *Recorder) Record(rec *usage.Record) {
	if !r.config.Enabled || rec == nil {
		return
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	select {
	case r.records <- rec:
		r.metrics.RecordAccepted()
	default:
		r.metrics.RecordDropped()
		r.logger.Warn("usage record dropped, queue full",
			"record_id", rec.ID,
			"buffer_size", r.config.BufferSize,
		)
	}
}

// Close stops the worker after draining queued records, waiting at
// most DrainTimeout. Records still queued when the timeout expires are
// abandoned. Close is idempotent.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		close(r.done)
	})

	drained := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-time.After(r.config.DrainTimeout):
		return usage.NewRecorderError("",
			fmt.Errorf("drain did not finish within %s", r.config.DrainTimeout))
	}
}

// worker persists queued records until done is closed, then drains
// whatever is still queued.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case rec := <-r.records:
			r.write(rec)
		case <-r.done:
			// Drain remaining records before exiting.
			for {
				select {
				case rec := <-r.records:
					r.write(rec)
				default:
					return
				}
			}
		}
	}
}

// write persists one record, bounded by WriteTimeout.
func (r *Recorder) write(rec *usage.Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	start := time.Now()
	if err := r.store.Insert(ctx, rec); err != nil {
		r.metrics.RecordWriteError()
		r.logger.Error("failed to write usage record",
			"record_id", rec.ID,
			"error", err,
		)
		return
	}

	// A write taking half the timeout is a sign the store is struggling.
	if elapsed := time.Since(start); elapsed > r.config.WriteTimeout/2 {
		r.logger.Warn("slow usage record write",
			"record_id", rec.ID,
			"elapsed", elapsed,
		)
	}
}
