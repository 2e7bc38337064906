// Package metrics provides Prometheus metrics collection for Europa.
//
// # Overview
//
// The metrics package implements Prometheus metrics for monitoring bot
// request processing, provider health, the IRC connection, estimated
// costs, and the usage accounting pipeline. All series carry the fixed
// europa_ prefix.
//
// # Metrics Categories
//
//   - Request Metrics: Command count, end-to-end duration, chunks per response
//   - Provider Metrics: API calls, latency, error kinds, token counts, health
//   - IRC Metrics: Connection status, reconnects, line counts, queue depth
//   - Cost Metrics: Estimated spend by provider/model
//   - Usage Metrics: Recorder throughput, drops, write errors, pruning
//
// # Usage
//
//	// Create collector
//	collector := metrics.NewCollector(cfg, registry)
//
//	// Record a finished request
//	collector.RecordRequest("ask", "completed", 1200*time.Millisecond)
//	collector.RecordChunks("ask", 3)
//
//	// Record provider activity
//	collector.RecordProviderCall("mistral", "mistral-tiny", "success", 900*time.Millisecond)
//	collector.UpdateProviderHealth("mistral", true)
//
//	// Track the IRC connection
//	collector.UpdateIRCConnected(true)
//	collector.RecordIRCMessage("in")
//
// # Cardinality
//
// Every label set is a closed enum: command names, terminal statuses,
// error kinds, and the configured provider/model pair. Nicknames and
// channels are never used as label values, so series counts stay flat
// no matter how busy the channels get.
//
// # Prometheus Endpoint
//
// All metrics are exposed on the /metrics endpoint in standard Prometheus format:
//
//	# HELP europa_requests_total Total number of bot commands processed
//	# TYPE europa_requests_total counter
//	europa_requests_total{command="ask",status="completed"} 1234
//
// # Integration with pkg/limits
//
// The collector extends (but does not replace) the admission metrics in
// pkg/limits. Both register against the same registry:
//
//   - pkg/limits: Admission decisions, tracked users, evictions
//   - pkg/telemetry/metrics: Request, provider, IRC, cost, usage metrics
package metrics
