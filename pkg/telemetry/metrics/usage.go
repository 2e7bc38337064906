package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// UsageMetrics tracks the accounting pipeline that persists per-request
// usage records.
//
// Metrics:
//   - europa_usage_records_total: Records accepted by the async recorder
//   - europa_usage_dropped_total: Records dropped because the buffer was full
//   - europa_usage_write_errors_total: Store writes that failed
//   - europa_usage_pruned_total: Records deleted by retention pruning
type UsageMetrics struct {
	records     prometheus.Counter
	dropped     prometheus.Counter
	writeErrors prometheus.Counter
	pruned      prometheus.Counter
}

// NewUsageMetrics builds the usage metric set and registers it.
func NewUsageMetrics(registry *prometheus.Registry) *UsageMetrics {
	um := &UsageMetrics{}

	um.records = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "europa_usage_records_total",
		Help: "Total usage records accepted by the recorder",
	})

	um.dropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "europa_usage_dropped_total",
		Help: "Total usage records dropped because the recorder buffer was full",
	})

	um.writeErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "europa_usage_write_errors_total",
		Help: "Total usage store writes that failed",
	})

	um.pruned = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "europa_usage_pruned_total",
		Help: "Total usage records deleted by retention pruning",
	})

	registry.MustRegister(um.records, um.dropped, um.writeErrors, um.pruned)
	return um
}

// RecordAccepted counts a record handed to the recorder.
func (um *UsageMetrics) RecordAccepted() {
	um.records.Inc()
}

// RecordDropped counts a record lost to a full buffer.
func (um *UsageMetrics) RecordDropped() {
	um.dropped.Inc()
}

// RecordWriteError counts a failed store write.
func (um *UsageMetrics) RecordWriteError() {
	um.writeErrors.Inc()
}

// RecordPruned counts records deleted by retention.
func (um *UsageMetrics) RecordPruned(n int64) {
	if n > 0 {
		um.pruned.Add(float64(n))
	}
}
