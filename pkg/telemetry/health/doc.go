// Package health provides liveness and readiness probes for Europa.
//
// # Overview
//
// The health package implements the probe endpoints served by the ops HTTP
// listener alongside /metrics. Liveness reports that the process is running;
// readiness aggregates component checks registered by the runtime.
//
// # Endpoints
//
//   - /healthz: Liveness probe - the process is running
//   - /readyz: Readiness probe - the bot can serve requests
//   - /version: Build information - version, commit, build time
//
// Probe paths come from configuration; /healthz and /readyz are the defaults.
//
// # Component Checks
//
// Readiness covers three components:
//
//   - irc: the IRC connection is registered and live
//   - provider: the completion provider has been answering
//   - store: the usage store is reachable
//
// The runtime registers them at startup:
//
//	checker := health.NewFromConfig(&cfg.Health)
//	checker.RegisterCheck(health.ComponentIRC,
//	    health.BoolCheck(client.Connected, "not connected"))
//	checker.RegisterCheck(health.ComponentStore, func(ctx context.Context) error {
//	    return store.Ping(ctx)
//	})
//
// # Liveness vs Readiness
//
// Liveness (/healthz) answers "is the process alive" and always returns
// 200 OK while the process can serve HTTP. Readiness (/readyz) answers "can
// the bot serve requests" and returns 503 Service Unavailable while any
// component check fails, for example during an IRC reconnect window.
//
// # Example Responses
//
// Readiness response (/readyz):
//
//	{
//	    "status": "ready",
//	    "checks": {
//	        "irc": {"status": "ok", "duration_ms": 0.1},
//	        "provider": {"status": "ok", "duration_ms": 0.1},
//	        "store": {"status": "ok", "duration_ms": 1.2}
//	    },
//	    "timestamp": "2026-08-25T10:30:00Z"
//	}
//
// Degraded response (/readyz):
//
//	{
//	    "status": "degraded",
//	    "checks": {
//	        "irc": {"status": "unhealthy", "message": "not connected"},
//	        "provider": {"status": "ok"},
//	        "store": {"status": "ok"}
//	    },
//	    "timestamp": "2026-08-25T10:30:00Z"
//	}
//
// Checks run concurrently under a per-check timeout (default 5s), so a hung
// store never delays the probe past the timeout.
package health
