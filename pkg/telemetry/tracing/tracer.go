package tracing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mercator-hq/europa/pkg/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// scopeName identifies the instrumentation scope on exported spans.
const scopeName = "mercator-hq/europa"

// collectorDialTimeout bounds the initial connection to the OTLP
// collector during New.
const collectorDialTimeout = 10 * time.Second

// Tracer owns the span pipeline: sampler, batching provider, and
// OTLP/gRPC exporter. When tracing is disabled it degrades to a no-op
// tracer, so call sites never branch on configuration.
type Tracer struct {
	cfg      *config.TracingConfig
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
}

// New builds a Tracer from configuration. A disabled config yields a
// no-op tracer and cannot fail. An enabled one dials the collector
// synchronously, so a bad endpoint surfaces at startup rather than at
// the first sampled request.
//
// The caller owns shutdown:
//
//	defer tracer.Shutdown(ctx)
func New(cfg *config.TracingConfig) (*Tracer, error) {
	if cfg == nil {
		return nil, errors.New("tracing config is nil")
	}
	if !cfg.Enabled {
		return &Tracer{
			cfg:    cfg,
			tracer: noop.NewTracerProvider().Tracer(scopeName),
		}, nil
	}

	sampler, err := newSampler(cfg.Sampler, cfg.SampleRatio)
	if err != nil {
		return nil, err
	}
	exporter, err := newCollectorExporter(cfg)
	if err != nil {
		return nil, err
	}
	res, err := resource.New(context.Background(),
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("building trace resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sampler),
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
	)

	// Register globally so any library instrumentation in the process
	// agrees with us on provider and propagation format.
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Tracer{
		cfg:      cfg,
		tracer:   provider.Tracer(scopeName),
		provider: provider,
	}, nil
}

// Start opens a span named name, parented to the span in ctx if one
// exists. End the returned span exactly once.
func (t *Tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, opts...)
}

// Shutdown flushes buffered spans and stops the export pipeline. On a
// disabled tracer it is a no-op.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}

// Enabled reports whether spans are recorded and exported.
func (t *Tracer) Enabled() bool {
	return t.cfg.Enabled
}

// newCollectorExporter dials the OTLP collector over gRPC. The dial
// blocks: with no collector listening, the constructor fails instead
// of silently buffering spans toward a dead endpoint.
func newCollectorExporter(cfg *config.TracingConfig) (sdktrace.SpanExporter, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithDialOption(grpc.WithBlock()),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()))
	}
	if cfg.ExportTimeout > 0 {
		opts = append(opts, otlptracegrpc.WithTimeout(cfg.ExportTimeout))
	}

	ctx, cancel := context.WithTimeout(context.Background(), collectorDialTimeout)
	defer cancel()

	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(opts...))
	if err != nil {
		return nil, fmt.Errorf("connecting to OTLP collector %s: %w", cfg.Endpoint, err)
	}
	return exporter, nil
}
