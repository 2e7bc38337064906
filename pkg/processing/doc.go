// Package processing turns model output into deliverable IRC lines and
// accounts for what each exchange consumed.
//
// The package is organized into specialized sub-packages:
//
//   - chunk: pure word-wrap splitting of text into byte-budgeted lines
//   - content: markdown sanitizing and CODE-marker segmentation
//   - tokens: character-based token estimation fallback
//   - costs: per-model USD cost calculation
//
// Pipeline composes them into the two operations the dispatcher needs:
// rendering a reply into ordered lines that fit the transport budget,
// and summarizing an exchange's token and cost footprint for usage
// records and metrics.
//
// # Rendering
//
//	pipeline := processing.NewPipeline(&cfg.Chunking, &cfg.Usage)
//
//	// prefixLen is len("nick: ") for the requester being answered.
//	lines := pipeline.RenderText(reply, prefixLen)
//	for _, line := range lines {
//		conn.Privmsg(channel, prefix+line)
//	}
//
// Replies to the code command go through RenderCode instead, which
// honors the CODE: marker the code template instructs the model to
// emit.
//
// # Accounting
//
//	summary := pipeline.DescribeExchange(model, prompt, reply, resp.Usage)
//	// summary.PromptTokens, summary.CompletionTokens, summary.Cost
//
// Provider-reported usage is always preferred; the estimator only
// fills gaps, and summaries carry an Estimated flag so records note
// which numbers are approximate.
//
// # Thread Safety
//
// Pipeline holds only immutable configuration and compiled patterns
// after construction and is safe for concurrent use by any number of
// request goroutines.
package processing
