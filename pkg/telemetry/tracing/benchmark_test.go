package tracing

import (
	"context"
	"testing"

	"mercator-hq/europa/pkg/config"
)

// Benchmarks cover the paths that run on every request in production:
// the noop tracer (tracing defaults to disabled) and the attribute
// helpers. Enabled tracers dial a collector and are not benchmarked.

func newBenchTracer(b *testing.B) *Tracer {
	b.Helper()
	tracer, err := New(&config.TracingConfig{Enabled: false})
	if err != nil {
		b.Fatalf("New: %v", err)
	}
	b.Cleanup(func() { _ = tracer.Shutdown(context.Background()) })
	return tracer
}

func BenchmarkTracer_StartEnd_Disabled(b *testing.B) {
	tracer := newBenchTracer(b)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, span := tracer.Start(ctx, "bot.request")
		span.End()
	}
}

// BenchmarkTracer_RequestSpanPair walks the span shape of a delivered
// completion: the request span with a nested provider span and the
// attributes the dispatcher sets on each.
func BenchmarkTracer_RequestSpanPair(b *testing.B) {
	tracer := newBenchTracer(b)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx, request := tracer.Start(context.Background(), "bot.request")
		SetRequestAttributes(request, "req-1", "alice", "#help", "ask")

		_, provider := tracer.Start(ctx, "provider.complete")
		SetProviderAttributes(provider, "mistral", "mistral-tiny")
		SetTokenAttributes(provider, 120, 280)
		provider.End()

		SetChunkAttribute(request, 3)
		SetDurationAttribute(request, 4200)
		request.End()
	}
}

func BenchmarkSetRequestAttributes(b *testing.B) {
	tracer := newBenchTracer(b)
	_, span := tracer.Start(context.Background(), "bot.request")
	defer span.End()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SetRequestAttributes(span, "req-1", "alice", "#help", "ask")
	}
}

func BenchmarkNewSampler(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = newSampler("ratio", 0.1)
	}
}
