package bot

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"mercator-hq/europa/pkg/config"
	"mercator-hq/europa/pkg/irc"
	"mercator-hq/europa/pkg/limits/enforcement"
	"mercator-hq/europa/pkg/processing"
	"mercator-hq/europa/pkg/providers"
	"mercator-hq/europa/pkg/telemetry/logging"
	"mercator-hq/europa/pkg/telemetry/tracing"
	"mercator-hq/europa/pkg/usage"
	"mercator-hq/europa/pkg/usage/recorder"
)

// User-facing outcome lines. Rejection text comes from the admission
// layer; these cover the failure paths the dispatcher owns. Like the
// rejection messages they are deliberately stable and non-technical:
// provider errors and stack traces belong in operator logs, never in a
// public channel.
const (
	// msgCompletionFailed is sent when the completion call fails or
	// produces nothing worth delivering.
	msgCompletionFailed = "Sorry, I couldn't get a response right now."

	// msgInternalError is sent for faults that should be unreachable:
	// formatting errors and recovered panics.
	msgInternalError = "An error occurred processing your request."
)

// helpText is the static usage description. Help bypasses admission,
// so it keeps working for users whose quota is exhausted.
const helpText = "Commands: !ask <question> - Ask a general question | " +
	"!code <question> - Get programming help | !help - Show this help message"

// Terminal status labels for request metrics.
const (
	statusCompleted = "completed"
	statusRejected  = "rejected"
	statusFailed    = "failed"
)

// Transport is the outbound slice of the IRC client the dispatcher
// uses. *irc.Client satisfies it; tests substitute a recording fake.
type Transport interface {
	// SendReply queues reply lines to target with the bot's reply
	// prefix applied.
	SendReply(target string, lines []string)

	// Nick returns the bot's current nick, used to recognize direct
	// messages.
	Nick() string

	// ReplyPrefixLen returns the byte length of the reply prefix, fed
	// to the chunker's line budget.
	ReplyPrefixLen() int
}

// Completer is the slice of the completion provider the dispatcher
// calls. Any providers.Provider satisfies it.
type Completer interface {
	Complete(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error)
	GetName() string
}

// Formatter renders a command's query into the finalized prompt.
// *prompts.Manager satisfies it.
type Formatter interface {
	Format(command, query string) (string, error)
}

// Auditor receives the accounting record for each finished request.
// *recorder.Recorder satisfies it.
type Auditor interface {
	Record(rec *usage.Record)
}

// nopAuditor is used when no usage recording is configured.
type nopAuditor struct{}

func (nopAuditor) Record(*usage.Record) {}

// Metrics receives request observations. *metrics.Collector satisfies
// this.
type Metrics interface {
	RecordRequest(command, status string, duration time.Duration)
	RecordChunks(command string, chunks int)
	RecordProviderCall(provider, model, status string, latency time.Duration)
	RecordProviderError(provider, kind string)
	RecordTokens(provider, model string, promptTokens, completionTokens int)
	RecordCost(provider, model string, costUSD float64)
}

// nopMetrics is used when no metrics sink is configured.
type nopMetrics struct{}

func (nopMetrics) RecordRequest(string, string, time.Duration)              {}
func (nopMetrics) RecordChunks(string, int)                                 {}
func (nopMetrics) RecordProviderCall(string, string, string, time.Duration) {}
func (nopMetrics) RecordProviderError(string, string)                       {}
func (nopMetrics) RecordTokens(string, string, int, int)                    {}
func (nopMetrics) RecordCost(string, string, float64)                       {}

// Options configures a Dispatcher.
type Options struct {
	// Config is the application configuration. The dispatcher reads
	// the IRC channel allowlist and the provider request parameters.
	Config *config.Config

	// Enforcer is the admission controller.
	Enforcer *enforcement.Enforcer

	// Formatter renders prompts.
	Formatter Formatter

	// Completer calls the completion API.
	Completer Completer

	// Pipeline renders replies into transport-ready lines and builds
	// exchange summaries.
	Pipeline *processing.Pipeline

	// Transport delivers outbound lines.
	Transport Transport

	// Auditor receives usage records. Optional.
	Auditor Auditor

	// Metrics receives request metrics. Optional.
	Metrics Metrics

	// Tracer creates request spans. Optional.
	Tracer *tracing.Tracer

	// Logger receives request lifecycle events.
	Logger *logging.Logger
}

// Dispatcher turns inbound IRC traffic into finished requests. Each
// recognized command runs on its own goroutine through admission,
// formatting, completion, and chunked delivery; concurrent requests
// share no state beyond the quota ledger inside the enforcer, so one
// slow completion never delays admitting or rejecting the next
// request.
type Dispatcher struct {
	config    *config.Config
	parser    *Parser
	enforcer  *enforcement.Enforcer
	formatter Formatter
	completer Completer
	pipeline  *processing.Pipeline
	transport Transport
	auditor   Auditor
	metrics   Metrics
	tracer    *tracing.Tracer
	logger    *logging.Logger

	wg sync.WaitGroup
}

// New creates a Dispatcher from the given options.
func New(opts Options) (*Dispatcher, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if opts.Enforcer == nil || opts.Formatter == nil || opts.Completer == nil ||
		opts.Pipeline == nil || opts.Transport == nil {
		return nil, fmt.Errorf("enforcer, formatter, completer, pipeline, and transport are required")
	}

	logger := opts.Logger
	if logger == nil {
		logger, _ = logging.New(logging.Config{}) // zero config cannot fail
	}

	auditor := opts.Auditor
	if auditor == nil {
		auditor = nopAuditor{}
	}

	metrics := opts.Metrics
	if metrics == nil {
		metrics = nopMetrics{}
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer, _ = tracing.New(&config.TracingConfig{}) // disabled config cannot fail
	}

	return &Dispatcher{
		config:    opts.Config,
		parser:    NewParser(opts.Config.IRC.Channels),
		enforcer:  opts.Enforcer,
		formatter: opts.Formatter,
		completer: opts.Completer,
		pipeline:  opts.Pipeline,
		transport: opts.Transport,
		auditor:   auditor,
		metrics:   metrics,
		tracer:    tracer,
		logger:    logger.Component("bot"),
	}, nil
}

// Handler adapts the dispatcher to the transport's handler interface,
// binding every spawned request to ctx. Cancelling ctx abandons
// in-flight completions and discards their output.
func (d *Dispatcher) Handler(ctx context.Context) irc.Handler {
	return irc.HandlerFunc(func(msg *irc.Message) {
		d.HandleMessage(ctx, msg)
	})
}

// HandleMessage inspects one inbound message and, when it carries a
// recognized command, runs it on its own goroutine. Everything else is
// ignored. HandleMessage never blocks: the connection's read loop must
// keep consuming while completions are in flight.
func (d *Dispatcher) HandleMessage(ctx context.Context, msg *irc.Message) {
	req, ok := d.parser.Parse(msg, d.transport.Nick(), time.Now())
	if !ok {
		return
	}

	d.wg.Add(1)
	go d.handle(ctx, req)
}

// Wait blocks until all in-flight request goroutines have finished.
// Call during shutdown, after cancelling the handler context has dried
// up the completion calls.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// handle runs one request start to finish. It is the goroutine body:
// a panic is contained here so a bad request cannot take the process
// down, surfacing as the generic internal-error line instead.
func (d *Dispatcher) handle(ctx context.Context, req *Request) {
	defer d.wg.Done()

	requestID := newRequestID()
	ctx = logging.WithRequestID(ctx, requestID)
	ctx = logging.WithNick(ctx, req.Nick)
	ctx = logging.WithChannel(ctx, req.Channel)
	ctx = logging.WithCommand(ctx, string(req.Command))

	defer func() {
		if r := recover(); r != nil {
			d.logger.ErrorContext(ctx, "panic handling request",
				"error", r,
				"stack", string(debug.Stack()),
			)
			d.transport.SendReply(req.Channel, []string{msgInternalError})
		}
	}()

	ctx, span := d.tracer.Start(ctx, "bot.request")
	defer span.End()
	tracing.SetRequestAttributes(span, requestID, req.Nick, req.Channel, string(req.Command))

	if req.Command == CommandHelp {
		d.serveHelp(ctx, span, req)
		return
	}
	d.serveCompletion(ctx, span, req)
}

// serveHelp answers help with the static usage text. No admission
// check: help must keep working for users whose quota is exhausted.
func (d *Dispatcher) serveHelp(ctx context.Context, span trace.Span, req *Request) {
	lines := []string{helpText}
	d.transport.SendReply(req.Channel, lines)

	latency := time.Since(req.ReceivedAt)
	d.metrics.RecordRequest(string(req.Command), statusCompleted, latency)
	d.metrics.RecordChunks(string(req.Command), len(lines))
	tracing.SetChunkAttribute(span, len(lines))
	tracing.SetDurationAttribute(span, latency.Milliseconds())

	rec := d.newRecord(req, usage.OutcomeDelivered, latency)
	rec.ChunkCount = len(lines)
	rec.ResponseLength = len(helpText)
	d.auditor.Record(rec)

	d.logger.InfoContext(ctx, "served help",
		"total_latency_ms", latency.Milliseconds(),
	)
}

// serveCompletion runs an ask or code request through admission,
// formatting, completion, chunking, and delivery.
func (d *Dispatcher) serveCompletion(ctx context.Context, span trace.Span, req *Request) {
	command := string(req.Command)

	// Admission. A Proceed result has already consumed quota; a denial
	// has not.
	result := d.enforcer.Admit(req.Nick, req.ReceivedAt)
	if !result.Proceed {
		d.reject(ctx, span, req, result)
		return
	}

	// Formatting. The parser's closed command set makes a failure here
	// an internal fault, not user error.
	prompt, err := d.formatter.Format(command, req.Query)
	if err != nil {
		d.logger.ErrorContext(ctx, "prompt formatting failed", "error", err)
		d.transport.SendReply(req.Channel, []string{msgInternalError})
		d.recordFailure(span, req, "", err)
		return
	}

	// Completion: the request's single blocking point, bounded by the
	// provider's configured timeout and cancelled with ctx on shutdown.
	// One attempt only; a struggling remote sees no amplified load.
	providerName := d.completer.GetName()
	model := d.config.Provider.Model

	pctx, pspan := d.tracer.Start(ctx, "provider.complete")
	tracing.SetProviderAttributes(pspan, providerName, model)

	providerStart := time.Now()
	resp, err := d.completer.Complete(pctx, &providers.CompletionRequest{
		Model:       model,
		Messages:    []providers.Message{{Role: providers.RoleUser, Content: prompt}},
		Temperature: d.config.Provider.Temperature,
		MaxTokens:   d.config.Provider.MaxTokens,
	})
	providerLatency := time.Since(providerStart)

	if err != nil {
		kind := providers.Kind(err)
		tracing.SetErrorAttributes(pspan, err, kind)
		pspan.End()

		d.metrics.RecordProviderCall(providerName, model, "error", providerLatency)
		d.metrics.RecordProviderError(providerName, kind)
		d.logger.ErrorContext(ctx, "completion failed",
			"error", err,
			"error_kind", kind,
			"provider_latency_ms", providerLatency.Milliseconds(),
		)

		// A cancelled context means the session is going down and the
		// reply sink with it; the failure line is discarded too.
		if kind != providers.KindCanceled {
			d.transport.SendReply(req.Channel, []string{msgCompletionFailed})
		}
		d.recordFailure(span, req, model, err)
		return
	}
	pspan.End()
	d.metrics.RecordProviderCall(providerName, model, "success", providerLatency)

	if resp.Model != "" {
		model = resp.Model
	}

	// Chunking.
	prefixLen := d.transport.ReplyPrefixLen()
	var lines []string
	if req.Command == CommandCode {
		lines = d.pipeline.RenderCode(resp.Content, prefixLen)
	} else {
		lines = d.pipeline.RenderText(resp.Content, prefixLen)
	}
	if len(lines) == 0 {
		// The call succeeded but nothing survived sanitization. The
		// user still gets an answer line, never silence.
		renderErr := &providers.MalformedResponseError{
			Provider: providerName,
			Cause:    errors.New("completion rendered no lines"),
		}
		d.logger.ErrorContext(ctx, "completion rendered no lines", "model", model)
		d.transport.SendReply(req.Channel, []string{msgCompletionFailed})
		d.recordFailure(span, req, model, renderErr)
		return
	}

	d.transport.SendReply(req.Channel, lines)

	// Accounting.
	summary := d.pipeline.DescribeExchange(model, prompt, resp.Content, resp.Usage)
	latency := time.Since(req.ReceivedAt)

	d.metrics.RecordRequest(command, statusCompleted, latency)
	d.metrics.RecordChunks(command, len(lines))
	d.metrics.RecordTokens(providerName, model, summary.PromptTokens, summary.CompletionTokens)
	d.metrics.RecordCost(providerName, model, summary.Cost)

	tracing.SetProviderAttributes(span, providerName, model)
	tracing.SetTokenAttributes(span, summary.PromptTokens, summary.CompletionTokens)
	tracing.SetCostAttributes(span, summary.Cost, summary.Estimated)
	tracing.SetChunkAttribute(span, len(lines))
	tracing.SetDurationAttribute(span, latency.Milliseconds())

	rec := d.newRecord(req, usage.OutcomeDelivered, latency)
	rec.Model = summary.Model
	rec.PromptTokens = summary.PromptTokens
	rec.CompletionTokens = summary.CompletionTokens
	rec.TokensEstimated = summary.Estimated
	rec.EstimatedCost = summary.Cost
	rec.ChunkCount = len(lines)
	rec.PromptHash = recorder.HashPrompt(prompt)
	rec.PromptLength = len(prompt)
	rec.ResponseLength = len(resp.Content)
	d.auditor.Record(rec)

	d.logger.InfoContext(ctx, "request completed",
		"finish_reason", resp.FinishReason,
		"prompt_tokens", summary.PromptTokens,
		"completion_tokens", summary.CompletionTokens,
		"chunks", len(lines),
		"provider_latency_ms", providerLatency.Milliseconds(),
		"total_latency_ms", latency.Milliseconds(),
	)
}

// reject relays the admission result's one-line rejection and books
// the outcome. Denials are normal operation, logged at info.
func (d *Dispatcher) reject(ctx context.Context, span trace.Span, req *Request, result enforcement.Result) {
	reason := string(result.Decision.Reason)
	latency := time.Since(req.ReceivedAt)

	d.transport.SendReply(req.Channel, []string{result.UserMessage})

	d.metrics.RecordRequest(string(req.Command), statusRejected, latency)
	tracing.SetDenyReasonAttribute(span, reason)
	tracing.SetDurationAttribute(span, latency.Milliseconds())

	rec := d.newRecord(req, usage.OutcomeRejected, latency)
	rec.DenyReason = reason
	d.auditor.Record(rec)

	d.logger.InfoContext(ctx, "request rejected",
		"reason", reason,
		"retry_after_ms", result.Decision.RetryAfter.Milliseconds(),
	)
}

// recordFailure books a failed request in metrics, the span, and the
// usage trail. model is empty when the request never reached the
// provider.
func (d *Dispatcher) recordFailure(span trace.Span, req *Request, model string, err error) {
	kind := providers.Kind(err)
	latency := time.Since(req.ReceivedAt)

	d.metrics.RecordRequest(string(req.Command), statusFailed, latency)
	tracing.SetErrorAttributes(span, err, kind)
	tracing.SetDurationAttribute(span, latency.Milliseconds())

	rec := d.newRecord(req, usage.OutcomeFailed, latency)
	rec.ErrorKind = kind
	rec.Model = model
	d.auditor.Record(rec)
}

// newRecord starts a usage record with the request's identity fields.
// The recorder assigns the ID.
func (d *Dispatcher) newRecord(req *Request, outcome usage.Outcome, latency time.Duration) *usage.Record {
	return &usage.Record{
		Timestamp: req.ReceivedAt,
		Nick:      req.Nick,
		Channel:   req.Channel,
		Command:   string(req.Command),
		Outcome:   outcome,
		Latency:   latency,
	}
}

// newRequestID returns a 32-character hex identifier correlating a
// request's logs, span, and usage record.
func newRequestID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// A failing crypto source means bigger problems than log
		// correlation; degrade instead of dying.
		return "unknown"
	}
	return hex.EncodeToString(b)
}
