// Package server provides the operational HTTP server for Europa.
//
// The ops server is the only HTTP surface in the process. User traffic
// arrives over IRC; this listener exists for operators and orchestration,
// exposing Prometheus metrics and health probes on a loopback address by
// default.
//
// # Basic Usage
//
//	import (
//	    "context"
//	    "mercator-hq/europa/pkg/server"
//	    "mercator-hq/europa/pkg/telemetry/health"
//	    "mercator-hq/europa/pkg/telemetry/metrics"
//	)
//
//	collector := metrics.NewCollector(&cfg.Metrics, nil)
//	checker := health.NewFromConfig(&cfg.Health)
//
//	srv := server.New(server.Options{
//	    Metrics:   &cfg.Metrics,
//	    Health:    &cfg.Health,
//	    Collector: collector,
//	    Checker:   checker,
//	    Logger:    logger,
//	    Version:   version,
//	})
//	if err := srv.Start(); err != nil {
//	    return err
//	}
//	defer srv.Shutdown(context.Background())
//
// Start binds synchronously and serves in the background, so a busy port
// fails fast at startup instead of surfacing later in the logs.
//
// # Routes
//
//   - GET /metrics - Prometheus scrape endpoint
//   - GET /healthz - Liveness probe (always 200 while the process runs)
//   - GET /readyz - Readiness probe (IRC connected, provider healthy, store reachable)
//   - GET /version - Build information
//
// Metrics and probe paths come from configuration; the above are the
// defaults. Disabling both the metrics and health sections turns Start into
// a no-op and nothing listens.
//
// # Shutdown
//
// Shutdown stops accepting connections and waits for in-flight scrapes up
// to the context deadline. The run command calls it after the IRC client
// has left the network, so probes stay accurate through most of the
// shutdown sequence.
package server
