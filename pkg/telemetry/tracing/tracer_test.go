package tracing

import (
	"context"
	"errors"
	"testing"

	"mercator-hq/europa/pkg/config"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// The enabled-tracer happy path is not covered here: New dials the
// collector with a blocking connect and only succeeds against a live
// OTLP endpoint. Everything below runs without one.

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.TracingConfig
		wantErr bool
	}{
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: true,
		},
		{
			name:    "disabled",
			cfg:     &config.TracingConfig{Enabled: false},
			wantErr: false,
		},
		{
			name: "unknown sampler fails before dialing",
			cfg: &config.TracingConfig{
				Enabled:  true,
				Sampler:  "sometimes",
				Endpoint: "localhost:4317",
			},
			wantErr: true,
		},
		{
			name: "ratio out of range fails before dialing",
			cfg: &config.TracingConfig{
				Enabled:     true,
				Sampler:     "ratio",
				SampleRatio: 2,
				Endpoint:    "localhost:4317",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if tracer.Enabled() != tt.cfg.Enabled {
				t.Errorf("Enabled() = %v, want %v", tracer.Enabled(), tt.cfg.Enabled)
			}
			if err := tracer.Shutdown(context.Background()); err != nil {
				t.Errorf("Shutdown() error = %v", err)
			}
		})
	}
}

func TestNew_DisabledTracerIsNoop(t *testing.T) {
	tracer, err := New(&config.TracingConfig{Enabled: false})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer tracer.Shutdown(context.Background())

	ctx, span := tracer.Start(context.Background(), "bot.request")
	defer span.End()
	if span.IsRecording() {
		t.Error("disabled tracer produced a recording span")
	}

	_, child := tracer.Start(ctx, "provider.complete")
	defer child.End()
	if child.IsRecording() {
		t.Error("child of a noop span is recording")
	}
}

func TestTracer_ShutdownTwice(t *testing.T) {
	tracer, err := New(&config.TracingConfig{Enabled: false})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("first Shutdown() error = %v", err)
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
}

// ---------------------------------------------------------------------------
// Attribute helpers, verified against spans recorded by the SDK
// ---------------------------------------------------------------------------

// recordSpan applies fn to a recording span and returns the span as
// it ended.
func recordSpan(t *testing.T, fn func(span trace.Span)) sdktrace.ReadOnlySpan {
	t.Helper()

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer(scopeName).Start(context.Background(), "bot.request")
	fn(span)
	span.End()

	ended := rec.Ended()
	if len(ended) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(ended))
	}
	return ended[0]
}

// attrValue finds key among the span's attributes.
func attrValue(s sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range s.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestSetRequestAttributes(t *testing.T) {
	s := recordSpan(t, func(span trace.Span) {
		SetRequestAttributes(span, "req-1", "Alice", "#help", "ask")
	})

	want := map[string]string{
		AttrRequestID: "req-1",
		AttrNick:      "Alice",
		AttrChannel:   "#help",
		AttrCommand:   "ask",
	}
	for key, val := range want {
		got, ok := attrValue(s, key)
		if !ok {
			t.Errorf("attribute %s missing", key)
			continue
		}
		if got.AsString() != val {
			t.Errorf("attribute %s = %q, want %q", key, got.AsString(), val)
		}
	}
}

func TestSetRequestAttributes_SkipsEmptyFields(t *testing.T) {
	s := recordSpan(t, func(span trace.Span) {
		SetRequestAttributes(span, "req-2", "", "", "help")
	})

	if _, ok := attrValue(s, AttrNick); ok {
		t.Error("empty nick still became an attribute")
	}
	if _, ok := attrValue(s, AttrChannel); ok {
		t.Error("empty channel still became an attribute")
	}
	if got, ok := attrValue(s, AttrCommand); !ok || got.AsString() != "help" {
		t.Errorf("command attribute = %q (present=%v), want \"help\"", got.AsString(), ok)
	}
}

func TestSetTokenAttributes_DerivesTotal(t *testing.T) {
	s := recordSpan(t, func(span trace.Span) {
		SetTokenAttributes(span, 120, 280)
	})

	total, ok := attrValue(s, AttrTokensTotal)
	if !ok {
		t.Fatal("total tokens attribute missing")
	}
	if total.AsInt64() != 400 {
		t.Errorf("total tokens = %d, want 400", total.AsInt64())
	}
}

func TestSetCostAttributes(t *testing.T) {
	s := recordSpan(t, func(span trace.Span) {
		SetCostAttributes(span, 0.000175, true)
	})

	cost, ok := attrValue(s, AttrCost)
	if !ok || cost.AsFloat64() != 0.000175 {
		t.Errorf("cost attribute = %v (present=%v), want 0.000175", cost.AsFloat64(), ok)
	}
	est, ok := attrValue(s, AttrCostEstimated)
	if !ok || !est.AsBool() {
		t.Errorf("estimated attribute = %v (present=%v), want true", est.AsBool(), ok)
	}
}

func TestSetChunkAndDurationAttributes(t *testing.T) {
	s := recordSpan(t, func(span trace.Span) {
		SetChunkAttribute(span, 3)
		SetDurationAttribute(span, 4200)
	})

	if got, ok := attrValue(s, AttrChunks); !ok || got.AsInt64() != 3 {
		t.Errorf("chunks = %d (present=%v), want 3", got.AsInt64(), ok)
	}
	if got, ok := attrValue(s, AttrDuration); !ok || got.AsInt64() != 4200 {
		t.Errorf("duration = %d (present=%v), want 4200", got.AsInt64(), ok)
	}
}

func TestSetDenyReasonAttribute(t *testing.T) {
	s := recordSpan(t, func(span trace.Span) {
		SetDenyReasonAttribute(span, "cooldown")
	})
	if got, ok := attrValue(s, AttrDenyReason); !ok || got.AsString() != "cooldown" {
		t.Errorf("deny reason = %q (present=%v), want \"cooldown\"", got.AsString(), ok)
	}

	s = recordSpan(t, func(span trace.Span) {
		SetDenyReasonAttribute(span, "")
	})
	if _, ok := attrValue(s, AttrDenyReason); ok {
		t.Error("empty deny reason still became an attribute")
	}
}

func TestSetErrorAttributes(t *testing.T) {
	cause := errors.New("request timed out after 30s")
	s := recordSpan(t, func(span trace.Span) {
		SetErrorAttributes(span, cause, "timeout")
	})

	if got, ok := attrValue(s, AttrErrorKind); !ok || got.AsString() != "timeout" {
		t.Errorf("error kind = %q (present=%v), want \"timeout\"", got.AsString(), ok)
	}
	if s.Status().Code != codes.Error {
		t.Errorf("span status = %v, want Error", s.Status().Code)
	}

	var exception bool
	for _, ev := range s.Events() {
		if ev.Name == "exception" {
			exception = true
		}
	}
	if !exception {
		t.Error("no exception event recorded on the span")
	}
}

func TestSetErrorAttributes_NilErrorLeavesSpanClean(t *testing.T) {
	s := recordSpan(t, func(span trace.Span) {
		SetErrorAttributes(span, nil, "timeout")
	})

	if s.Status().Code == codes.Error {
		t.Error("nil error flipped the span status to Error")
	}
	if _, ok := attrValue(s, AttrErrorKind); ok {
		t.Error("nil error still set an error kind attribute")
	}
}
