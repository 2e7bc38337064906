package logging

import "context"

// contextKey scopes this package's context values.
type contextKey string

// Context keys for per-request log fields. The dispatcher stamps
// these onto a request's context once; every *Context log call then
// carries them without the call site repeating itself.
const (
	RequestIDKey contextKey = "request_id"
	NickKey      contextKey = "nick"
	ChannelKey   contextKey = "channel"
	CommandKey   contextKey = "command"
	ProviderKey  contextKey = "provider"
	ModelKey     contextKey = "model"
	TraceIDKey   contextKey = "trace_id"
	SpanIDKey    contextKey = "span_id"
)

// fieldKeys lists the keys extractContextFields scans, in the order
// the fields appear in log entries.
var fieldKeys = [...]contextKey{
	RequestIDKey,
	NickKey,
	ChannelKey,
	CommandKey,
	ProviderKey,
	ModelKey,
	TraceIDKey,
	SpanIDKey,
}

func stringValue(ctx context.Context, key contextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// WithRequestID stamps a request ID onto the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// GetRequestID returns the request ID, or "" when absent.
func GetRequestID(ctx context.Context) string { return stringValue(ctx, RequestIDKey) }

// WithNick stamps the requesting nick onto the context.
func WithNick(ctx context.Context, nick string) context.Context {
	return context.WithValue(ctx, NickKey, nick)
}

// GetNick returns the requesting nick, or "" when absent.
func GetNick(ctx context.Context) string { return stringValue(ctx, NickKey) }

// WithChannel stamps the originating channel onto the context.
func WithChannel(ctx context.Context, channel string) context.Context {
	return context.WithValue(ctx, ChannelKey, channel)
}

// GetChannel returns the originating channel, or "" when absent.
func GetChannel(ctx context.Context) string { return stringValue(ctx, ChannelKey) }

// WithCommand stamps the bot command name onto the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, CommandKey, command)
}

// GetCommand returns the bot command name, or "" when absent.
func GetCommand(ctx context.Context) string { return stringValue(ctx, CommandKey) }

// WithProvider stamps a provider name onto the context.
func WithProvider(ctx context.Context, provider string) context.Context {
	return context.WithValue(ctx, ProviderKey, provider)
}

// GetProvider returns the provider name, or "" when absent.
func GetProvider(ctx context.Context) string { return stringValue(ctx, ProviderKey) }

// WithModel stamps a model name onto the context.
func WithModel(ctx context.Context, model string) context.Context {
	return context.WithValue(ctx, ModelKey, model)
}

// GetModel returns the model name, or "" when absent.
func GetModel(ctx context.Context) string { return stringValue(ctx, ModelKey) }

// WithTraceID stamps a trace ID onto the context.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, TraceIDKey, id)
}

// GetTraceID returns the trace ID, or "" when absent.
func GetTraceID(ctx context.Context) string { return stringValue(ctx, TraceIDKey) }

// WithSpanID stamps a span ID onto the context.
func WithSpanID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SpanIDKey, id)
}

// GetSpanID returns the span ID, or "" when absent.
func GetSpanID(ctx context.Context) string { return stringValue(ctx, SpanIDKey) }

// extractContextFields returns the context's log fields as slog
// key-value pairs, skipping absent ones.
func extractContextFields(ctx context.Context) []any {
	var fields []any
	for _, key := range fieldKeys {
		if v := stringValue(ctx, key); v != "" {
			fields = append(fields, string(key), v)
		}
	}
	return fields
}
