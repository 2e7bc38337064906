// Package telemetry holds the operator-facing side of the Europa bot:
// structured logging, Prometheus metrics, OpenTelemetry tracing, and
// health probes. User traffic flows over IRC; everything under this
// tree serves the separate loopback ops listener instead.
//
// Subpackages:
//
//   - logging: slog-based structured logging with credential redaction
//   - metrics: Prometheus collectors for requests, quotas, provider calls
//   - tracing: OTLP span export, inert unless enabled in config
//   - health: liveness and readiness checks behind the ops endpoints
//
// Typical wiring:
//
//	logger, err := logging.NewFromConfig(&cfg.Logging)
//	collector := metrics.NewCollector(&cfg.Metrics, nil)
//	tracer, err := tracing.New(&cfg.Tracing)
//
//	logger.Info("request completed", "nick", "alice", "command", "ask")
//	collector.RecordRequest("ask", "completed", time.Since(start))
//	ctx, span := tracer.Start(ctx, "bot.request")
//	defer span.End()
//
// With redaction on, credentials are scrubbed before a line is written:
// bearer tokens, api_key-style parameters, and userinfo embedded in
// URLs all come out masked. Message text from IRC is never logged above
// debug level.
package telemetry
