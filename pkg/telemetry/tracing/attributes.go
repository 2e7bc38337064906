package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attributes live in the europa.* namespace. Only identifiers,
// counts, and classifications are attached; prompt and response text
// never leave the process through the trace pipeline.
const (
	AttrRequestID = "europa.request_id"
	AttrNick      = "europa.nick"
	AttrChannel   = "europa.channel"
	AttrCommand   = "europa.command"

	AttrProvider = "europa.provider"
	AttrModel    = "europa.model"

	AttrTokensPrompt     = "europa.tokens.prompt"
	AttrTokensCompletion = "europa.tokens.completion"
	AttrTokensTotal      = "europa.tokens.total"

	AttrCost          = "europa.cost.usd"
	AttrCostEstimated = "europa.cost.estimated"

	AttrChunks     = "europa.chunks"
	AttrDenyReason = "europa.deny_reason"

	AttrErrorKind = "europa.error.kind"
	AttrDuration  = "europa.duration_ms"
)

// SetRequestAttributes stamps request identity on a span. Empty
// fields are skipped; a help request arriving by direct message has
// no channel.
func SetRequestAttributes(span trace.Span, requestID, nick, channel, command string) {
	attrs := make([]attribute.KeyValue, 1, 4)
	attrs[0] = attribute.String(AttrRequestID, requestID)
	for _, f := range [...]struct{ key, val string }{
		{AttrNick, nick},
		{AttrChannel, channel},
		{AttrCommand, command},
	} {
		if f.val != "" {
			attrs = append(attrs, attribute.String(f.key, f.val))
		}
	}
	span.SetAttributes(attrs...)
}

// SetProviderAttributes records which upstream and model served a
// completion.
func SetProviderAttributes(span trace.Span, provider, model string) {
	span.SetAttributes(
		attribute.String(AttrProvider, provider),
		attribute.String(AttrModel, model),
	)
}

// SetTokenAttributes records the token split of an exchange. The
// total is derived here so the three values always agree.
func SetTokenAttributes(span trace.Span, prompt, completion int) {
	span.SetAttributes(
		attribute.Int(AttrTokensPrompt, prompt),
		attribute.Int(AttrTokensCompletion, completion),
		attribute.Int(AttrTokensTotal, prompt+completion),
	)
}

// SetCostAttributes records the dollar cost of an exchange and
// whether the token counts behind it were locally estimated rather
// than reported by the API.
func SetCostAttributes(span trace.Span, usd float64, estimated bool) {
	span.SetAttributes(
		attribute.Float64(AttrCost, usd),
		attribute.Bool(AttrCostEstimated, estimated),
	)
}

// SetChunkAttribute records how many IRC lines a response produced.
func SetChunkAttribute(span trace.Span, chunks int) {
	span.SetAttributes(attribute.Int(AttrChunks, chunks))
}

// SetDenyReasonAttribute records why admission rejected the request.
func SetDenyReasonAttribute(span trace.Span, reason string) {
	if reason == "" {
		return
	}
	span.SetAttributes(attribute.String(AttrDenyReason, reason))
}

// SetErrorAttributes marks the span failed: the classification kind
// becomes an attribute, the error is recorded as a span event, and
// the status flips to Error. A nil err is ignored.
func SetErrorAttributes(span trace.Span, err error, kind string) {
	if err == nil {
		return
	}
	span.SetAttributes(attribute.String(AttrErrorKind, kind))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetDurationAttribute records wall time in milliseconds.
func SetDurationAttribute(span trace.Span, ms int64) {
	span.SetAttributes(attribute.Int64(AttrDuration, ms))
}
