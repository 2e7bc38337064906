package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ProviderMetrics tracks metrics for the chat-completion provider.
//
// Metrics:
//   - europa_provider_healthy: Provider health status (1=healthy, 0=unhealthy)
//   - europa_provider_latency_seconds: Provider API latency
//   - europa_provider_errors_total: Provider error count by kind
//   - europa_provider_requests_total: Total API calls by provider, model, status
//   - europa_provider_tokens_total: Tokens consumed by provider, model, type
type ProviderMetrics struct {
	healthy  *prometheus.GaugeVec
	latency  *prometheus.HistogramVec
	errors   *prometheus.CounterVec
	requests *prometheus.CounterVec
	tokens   *prometheus.CounterVec
}

// NewProviderMetrics builds the provider metric set and registers it.
func NewProviderMetrics(registry *prometheus.Registry) *ProviderMetrics {
	pm := &ProviderMetrics{}

	pm.healthy = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "europa_provider_healthy",
		Help: "Provider health status (1=healthy, 0=unhealthy)",
	}, []string{"provider"})

	pm.latency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "europa_provider_latency_seconds",
		Help: "Provider API call latency in seconds",
		// The client timeout is 30s, so the top bucket sits there.
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 20.0, 30.0},
	}, []string{"provider", "model"})

	pm.errors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "europa_provider_errors_total",
		Help: "Total number of provider errors by kind",
	}, []string{"provider", "kind"})

	pm.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "europa_provider_requests_total",
		Help: "Total number of API calls by provider, model and status",
	}, []string{"provider", "model", "status"})

	pm.tokens = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "europa_provider_tokens_total",
		Help: "Total tokens consumed by provider, model and type",
	}, []string{"provider", "model", "type"})

	registry.MustRegister(pm.healthy, pm.latency, pm.errors, pm.requests, pm.tokens)
	return pm
}

// UpdateHealth sets the health gauge for provider: 1 healthy, 0 not.
func (pm *ProviderMetrics) UpdateHealth(provider string, healthy bool) {
	v := 0.0
	if healthy {
		v = 1.0
	}
	pm.healthy.WithLabelValues(provider).Set(v)
}

// RecordCall counts one completion call (status "success" or "error")
// and observes its latency.
func (pm *ProviderMetrics) RecordCall(provider, model, status string, latencySeconds float64) {
	pm.requests.WithLabelValues(provider, model, status).Inc()
	pm.latency.WithLabelValues(provider, model).Observe(latencySeconds)
}

// RecordError counts a provider error by kind ("timeout", "network",
// "remote", "malformed", "canceled", "other").
func (pm *ProviderMetrics) RecordError(provider, kind string) {
	pm.errors.WithLabelValues(provider, kind).Inc()
}

// RecordTokens adds prompt and completion token counts.
func (pm *ProviderMetrics) RecordTokens(provider, model string, promptTokens, completionTokens int) {
	if promptTokens > 0 {
		pm.tokens.WithLabelValues(provider, model, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		pm.tokens.WithLabelValues(provider, model, "completion").Add(float64(completionTokens))
	}
}
