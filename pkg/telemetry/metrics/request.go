package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics tracks metrics for bot command processing.
//
// Metrics:
//   - europa_requests_total: Total commands processed by command, status
//   - europa_request_duration_seconds: End-to-end request duration
//   - europa_response_chunks: Chunks emitted per delivered response
//
// Nicknames and channels are never used as label values; the label
// sets here are closed so cardinality is bounded by construction.
type RequestMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	responseChunks  *prometheus.HistogramVec
}

// NewRequestMetrics builds the request metric set and registers it.
func NewRequestMetrics(registry *prometheus.Registry) *RequestMetrics {
	rm := &RequestMetrics{}

	rm.requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "europa_requests_total",
		Help: "Total number of bot commands processed",
	}, []string{"command", "status"})

	rm.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "europa_request_duration_seconds",
		Help: "End-to-end request duration in seconds",
		// Delivery pacing stretches big answers well past the provider
		// timeout, hence the 60s tail.
		Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0},
	}, []string{"command"})

	rm.responseChunks = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "europa_response_chunks",
		Help:    "Number of IRC lines emitted per delivered response",
		Buckets: []float64{1, 2, 3, 4, 6, 8, 12, 16, 24},
	}, []string{"command"})

	registry.MustRegister(rm.requestsTotal, rm.requestDuration, rm.responseChunks)
	return rm
}

// RecordRequest counts a finished request (status "completed",
// "rejected", or "failed") and observes its end-to-end duration.
func (rm *RequestMetrics) RecordRequest(command, status string, duration time.Duration) {
	rm.requestsTotal.WithLabelValues(command, status).Inc()
	rm.requestDuration.WithLabelValues(command).Observe(duration.Seconds())
}

// RecordChunks observes how many IRC lines a response produced.
func (rm *RequestMetrics) RecordChunks(command string, chunks int) {
	if chunks > 0 {
		rm.responseChunks.WithLabelValues(command).Observe(float64(chunks))
	}
}
