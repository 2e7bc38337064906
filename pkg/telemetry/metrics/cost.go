package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CostMetrics tracks estimated spend on completion calls.
//
// Costs here are estimates: when the provider omits token usage, token
// counts come from the character-ratio estimator, so treat these series
// as budget guidance rather than billing truth.
//
// Metrics:
//   - europa_estimated_cost_usd_total: Estimated spend in USD by provider and model
//   - europa_estimated_cost_usd_per_request: Estimated cost distribution per request
type CostMetrics struct {
	costTotal      *prometheus.CounterVec
	costPerRequest *prometheus.HistogramVec
}

// NewCostMetrics builds the cost metric pair and registers it.
func NewCostMetrics(registry *prometheus.Registry) *CostMetrics {
	cm := &CostMetrics{}

	cm.costTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "europa_estimated_cost_usd_total",
		Help: "Estimated spend in USD by provider and model",
	}, []string{"provider", "model"})

	cm.costPerRequest = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "europa_estimated_cost_usd_per_request",
		Help: "Estimated cost distribution per request in USD",
		// A 300-token completion on a small model lands well under a
		// cent, so the buckets skew tiny.
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	}, []string{"provider", "model"})

	registry.MustRegister(cm.costTotal, cm.costPerRequest)
	return cm
}

// RecordRequestCost folds one request's estimated cost into the total
// counter and the per-request histogram. Zero and negative estimates
// are dropped.
func (cm *CostMetrics) RecordRequestCost(provider, model string, costUSD float64) {
	if costUSD <= 0 {
		return
	}
	cm.costTotal.WithLabelValues(provider, model).Add(costUSD)
	cm.costPerRequest.WithLabelValues(provider, model).Observe(costUSD)
}
