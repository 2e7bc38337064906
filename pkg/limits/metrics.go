package limits

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains Prometheus metrics for the quota ledger.
//
// Metrics:
//   - europa_limits_decisions_total: Admission decisions by outcome
//   - europa_limits_tracked_users: Nicknames with live quota state
//   - europa_limits_evictions_total: Stale user states removed
type Metrics struct {
	decisionsTotal *prometheus.CounterVec
	trackedUsers   prometheus.Gauge
	evictionsTotal prometheus.Counter
}

// NewMetrics creates and registers ledger metrics with the provided
// registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		decisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "europa_limits_decisions_total",
				Help: "Total admission decisions by outcome (allowed or the denial reason)",
			},
			[]string{"decision"},
		),

		trackedUsers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "europa_limits_tracked_users",
				Help: "Number of nicknames with live quota state",
			},
		),

		evictionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "europa_limits_evictions_total",
				Help: "Total stale per-user quota states evicted",
			},
		),
	}

	registry.MustRegister(
		m.decisionsTotal,
		m.trackedUsers,
		m.evictionsTotal,
	)

	return m
}

// RecordAllowed counts an admitted request.
func (m *Metrics) RecordAllowed() {
	m.decisionsTotal.WithLabelValues("allowed").Inc()
}

// RecordDenied counts a denied request under its reason.
func (m *Metrics) RecordDenied(reason DenyReason) {
	m.decisionsTotal.WithLabelValues(string(reason)).Inc()
}

// SetTrackedUsers updates the live user-state gauge.
func (m *Metrics) SetTrackedUsers(n int) {
	m.trackedUsers.Set(float64(n))
}

// RecordEvictions counts removed stale user states.
func (m *Metrics) RecordEvictions(n int) {
	m.evictionsTotal.Add(float64(n))
}
