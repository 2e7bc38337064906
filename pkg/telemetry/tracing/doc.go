// Package tracing exports request spans to an OTLP collector.
//
// Each handled request produces a bot.request span; the call to the
// completion API nests under it as provider.complete. A rejected
// request keeps the single bot.request span with a deny reason
// attribute, so a trace view separates rejections from failures at a
// glance.
//
//	bot.request                 4.2s
//	└── provider.complete       3.1s
//
// Spans carry identifiers, counts, and outcome classifications in the
// europa.* attribute namespace (see attributes.go). Prompt and
// response text are never attached.
//
// # Configuration
//
//	tracing:
//	  enabled: true
//	  sampler: always        # always | never | ratio
//	  sample_ratio: 0.1      # used with sampler: ratio
//	  endpoint: localhost:4317
//	  service_name: europa
//	  insecure: true
//	  export_timeout: 10s
//
// Tracing is disabled by default. A disabled tracer hands out no-op
// spans, so instrumented call sites cost next to nothing and never
// branch on configuration. The global request quota caps traffic at
// ten requests a minute, which keeps sampler: always affordable for a
// single bot.
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(ctx)
//
//	ctx, span := tracer.Start(ctx, "bot.request")
//	defer span.End()
//	tracing.SetRequestAttributes(span, requestID, nick, channel, "ask")
//
// The exporter speaks OTLP over gRPC and dials the collector while the
// tracer is being built; a misconfigured endpoint fails startup rather
// than quietly buffering spans toward a dead address.
package tracing
