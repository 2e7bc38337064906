package metrics

import (
	"time"

	"mercator-hq/europa/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the orchestrator for all Prometheus metrics in Europa.
// It owns the registry and provides a unified recording interface so
// the rest of the codebase never touches prometheus types directly.
//
// All metric names are fixed europa_* series; every label set is a
// closed enum (command names, terminal statuses, error kinds), so the
// collector needs no cardinality guard. Nicknames and channels are
// deliberately kept out of label values.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	requestMetrics  *RequestMetrics
	providerMetrics *ProviderMetrics
	ircMetrics      *IRCMetrics
	costMetrics     *CostMetrics
	usageMetrics    *UsageMetrics
}

// NewCollector creates a collector with every metric subsystem
// registered. A nil registry gets a fresh one, which is what tests
// want; production passes nil too and exposes it via Handler.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	return &Collector{
		config:          cfg,
		registry:        registry,
		requestMetrics:  NewRequestMetrics(registry),
		providerMetrics: NewProviderMetrics(registry),
		ircMetrics:      NewIRCMetrics(registry),
		costMetrics:     NewCostMetrics(registry),
		usageMetrics:    NewUsageMetrics(registry),
	}
}

// RecordRequest records a finished bot request: the command name, its
// terminal status ("completed", "rejected", "failed"), and end-to-end
// duration.
func (c *Collector) RecordRequest(command, status string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.requestMetrics.RecordRequest(command, status, duration)
}

// RecordChunks records how many IRC lines a delivered response produced.
func (c *Collector) RecordChunks(command string, chunks int) {
	if !c.config.Enabled {
		return
	}

	c.requestMetrics.RecordChunks(command, chunks)
}

// RecordProviderCall records one completion call with its status
// ("success" or "error") and latency.
func (c *Collector) RecordProviderCall(provider, model, status string, latency time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.providerMetrics.RecordCall(provider, model, status, latency.Seconds())
}

// RecordProviderError records a provider error by kind ("timeout",
// "network", "remote", "malformed", "canceled", "other").
func (c *Collector) RecordProviderError(provider, kind string) {
	if !c.config.Enabled {
		return
	}

	c.providerMetrics.RecordError(provider, kind)
}

// RecordTokens records prompt and completion token counts.
func (c *Collector) RecordTokens(provider, model string, promptTokens, completionTokens int) {
	if !c.config.Enabled {
		return
	}

	c.providerMetrics.RecordTokens(provider, model, promptTokens, completionTokens)
}

// RecordCost records the estimated cost of a request in USD.
func (c *Collector) RecordCost(provider, model string, costUSD float64) {
	if !c.config.Enabled {
		return
	}

	c.costMetrics.RecordRequestCost(provider, model, costUSD)
}

// UpdateProviderHealth sets the provider health gauge: 1 healthy, 0 not.
func (c *Collector) UpdateProviderHealth(provider string, healthy bool) {
	if !c.config.Enabled {
		return
	}

	c.providerMetrics.UpdateHealth(provider, healthy)
}

// UpdateIRCConnected sets the IRC connection gauge.
func (c *Collector) UpdateIRCConnected(connected bool) {
	if !c.config.Enabled {
		return
	}

	c.ircMetrics.UpdateConnected(connected)
}

// RecordIRCReconnect counts a reconnect attempt.
func (c *Collector) RecordIRCReconnect() {
	if !c.config.Enabled {
		return
	}

	c.ircMetrics.RecordReconnect()
}

// RecordIRCMessage counts one IRC line in the given direction ("in", "out").
func (c *Collector) RecordIRCMessage(direction string) {
	if !c.config.Enabled {
		return
	}

	c.ircMetrics.RecordMessage(direction)
}

// UpdateIRCSendQueueDepth sets the outbound queue gauge.
func (c *Collector) UpdateIRCSendQueueDepth(depth int) {
	if !c.config.Enabled {
		return
	}

	c.ircMetrics.UpdateSendQueueDepth(depth)
}

// RecordUsageAccepted counts a usage record handed to the recorder.
func (c *Collector) RecordUsageAccepted() {
	if !c.config.Enabled {
		return
	}

	c.usageMetrics.RecordAccepted()
}

// RecordUsageDropped counts a usage record lost to a full buffer.
func (c *Collector) RecordUsageDropped() {
	if !c.config.Enabled {
		return
	}

	c.usageMetrics.RecordDropped()
}

// RecordUsageWriteError counts a failed usage store write.
func (c *Collector) RecordUsageWriteError() {
	if !c.config.Enabled {
		return
	}

	c.usageMetrics.RecordWriteError()
}

// RecordUsagePruned counts usage records deleted by retention.
func (c *Collector) RecordUsagePruned(n int64) {
	if !c.config.Enabled {
		return
	}

	c.usageMetrics.RecordPruned(n)
}

// IRC returns the IRC metric set for components that take their
// metrics sink directly (the IRC client's Metrics interface).
func (c *Collector) IRC() *IRCMetrics {
	return c.ircMetrics
}

// Usage returns the usage-pipeline metric set for components that take
// their metrics sink directly (the recorder and retention pruner).
func (c *Collector) Usage() *UsageMetrics {
	return c.usageMetrics
}

// Registry returns the Prometheus registry used by this collector.
// This can be used to create an HTTP handler for the /metrics endpoint:
//
//	http.Handle("/metrics", promhttp.HandlerFor(
//		collector.Registry(),
//		promhttp.HandlerOpts{},
//	))
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
