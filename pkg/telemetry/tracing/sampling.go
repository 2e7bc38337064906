package tracing

import (
	"fmt"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// newSampler maps the configured strategy onto an SDK sampler:
//
//	always  record every trace
//	never   record nothing (the pipeline stays wired, volume is zero)
//	ratio   record a trace-ID-keyed fraction, ratio in [0, 1]
//
// Every strategy is wrapped in ParentBased, so a child span follows
// its parent's recorded/dropped decision and traces never export in
// fragments.
//
// The global quota already caps traffic at ten requests a minute, so
// "always" is affordable for a single bot; "ratio" exists for
// operators aggregating many processes into one collector.
func newSampler(strategy string, ratio float64) (sdktrace.Sampler, error) {
	var root sdktrace.Sampler
	switch strategy {
	case "always":
		root = sdktrace.AlwaysSample()
	case "never":
		root = sdktrace.NeverSample()
	case "ratio":
		if ratio < 0 || ratio > 1 {
			return nil, fmt.Errorf("sample ratio %v outside [0.0, 1.0]", ratio)
		}
		root = sdktrace.TraceIDRatioBased(ratio)
	default:
		return nil, fmt.Errorf("unknown sampler %q (valid: always, never, ratio)", strategy)
	}
	return sdktrace.ParentBased(root), nil
}
