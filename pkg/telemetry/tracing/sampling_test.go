package tracing

import (
	"context"
	"testing"

	"mercator-hq/europa/pkg/config"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// rootParams builds ShouldSample parameters with no parent span, so
// the ParentBased wrapper falls through to the configured root.
func rootParams() sdktrace.SamplingParameters {
	var traceID trace.TraceID
	traceID[0] = 0x11
	traceID[15] = 0x01
	return sdktrace.SamplingParameters{
		ParentContext: context.Background(),
		TraceID:       traceID,
		Name:          "bot.request",
		Kind:          trace.SpanKindInternal,
	}
}

func TestNewSampler_RootDecisions(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		ratio    float64
		want     sdktrace.SamplingDecision
	}{
		{name: "always records", strategy: "always", want: sdktrace.RecordAndSample},
		{name: "never drops", strategy: "never", want: sdktrace.Drop},
		{name: "ratio 1.0 records", strategy: "ratio", ratio: 1.0, want: sdktrace.RecordAndSample},
		{name: "ratio 0.0 drops", strategy: "ratio", ratio: 0.0, want: sdktrace.Drop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := newSampler(tt.strategy, tt.ratio)
			if err != nil {
				t.Fatalf("newSampler(%q, %v) error: %v", tt.strategy, tt.ratio, err)
			}
			if got := s.ShouldSample(rootParams()).Decision; got != tt.want {
				t.Errorf("decision = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewSampler_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		ratio    float64
	}{
		{name: "unknown strategy", strategy: "sometimes"},
		{name: "negative ratio", strategy: "ratio", ratio: -0.1},
		{name: "ratio above one", strategy: "ratio", ratio: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := newSampler(tt.strategy, tt.ratio); err == nil {
				t.Errorf("newSampler(%q, %v) accepted invalid input", tt.strategy, tt.ratio)
			}
		})
	}
}

// A sampled remote parent must override a never root: the wrapper
// keeps traces whole across process boundaries.
func TestNewSampler_RespectsSampledParent(t *testing.T) {
	s, err := newSampler("never", 0)
	if err != nil {
		t.Fatalf("newSampler: %v", err)
	}

	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01},
		SpanID:     trace.SpanID{0x02},
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	params := sdktrace.SamplingParameters{
		ParentContext: trace.ContextWithSpanContext(context.Background(), parent),
		TraceID:       parent.TraceID(),
		Name:          "bot.request",
		Kind:          trace.SpanKindInternal,
	}

	if got := s.ShouldSample(params).Decision; got != sdktrace.RecordAndSample {
		t.Errorf("decision under sampled parent = %v, want RecordAndSample", got)
	}
}

func TestNewSampler_AcceptsConfigDefaults(t *testing.T) {
	cfg := config.Default()
	if _, err := newSampler(cfg.Tracing.Sampler, cfg.Tracing.SampleRatio); err != nil {
		t.Fatalf("default sampler settings rejected: %v", err)
	}
}
