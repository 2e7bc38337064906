package processing

import (
	"log/slog"

	"mercator-hq/europa/pkg/config"
	"mercator-hq/europa/pkg/processing/chunk"
	"mercator-hq/europa/pkg/processing/content"
	"mercator-hq/europa/pkg/processing/costs"
	"mercator-hq/europa/pkg/processing/tokens"
	"mercator-hq/europa/pkg/providers"
)

// minBudget is the floor for the per-line byte budget. Absurdly long
// reply prefixes degrade into short lines rather than a zero or
// negative budget.
const minBudget = 32

// Pipeline turns raw model output into transport-ready lines and
// produces accounting summaries for completed exchanges. It is
// thread-safe and shared by all request goroutines.
type Pipeline struct {
	sanitizer  *content.Sanitizer
	segmenter  *content.Segmenter
	estimator  tokens.Estimator
	calculator *costs.Calculator
	logger     *slog.Logger

	maxLine int
	margin  int
}

// NewPipeline creates a pipeline from the chunking and usage
// configuration sections.
func NewPipeline(chunking *config.ChunkingConfig, usage *config.UsageConfig) *Pipeline {
	return &Pipeline{
		sanitizer:  content.NewSanitizer(),
		segmenter:  content.NewSegmenter(chunking.CodeGroupSize),
		estimator:  tokens.NewSimpleEstimator(&usage.Estimation),
		calculator: costs.NewCalculator(&usage.Pricing),
		logger:     slog.Default().With("component", "processing"),
		maxLine:    chunking.MaxLineLength,
		margin:     chunking.SafetyMargin,
	}
}

// RenderText renders a plain reply as word-wrapped lines. prefixLen is
// the byte length of the reply prefix the transport will prepend; it
// is subtracted from the line budget along with the safety margin.
func (p *Pipeline) RenderText(text string, prefixLen int) []string {
	clean := p.sanitizer.Sanitize(text)
	if clean == "" {
		return nil
	}

	return chunk.Split(clean, p.budget(prefixLen))
}

// RenderCode renders a reply from the code template: prose segments
// are word-wrapped, code segments become pipe-joined "Code: " lines.
// Replies without the code marker render exactly like RenderText.
func (p *Pipeline) RenderCode(text string, prefixLen int) []string {
	clean := p.sanitizer.Sanitize(text)
	if clean == "" {
		return nil
	}

	budget := p.budget(prefixLen)

	var lines []string
	for _, seg := range p.segmenter.Segment(clean) {
		switch seg.Kind {
		case content.KindText:
			lines = append(lines, chunk.Split(seg.Text, budget)...)
		case content.KindCode:
			// Rendered code lines can still overflow the budget, so
			// each one passes through the chunker as well.
			for _, rendered := range p.segmenter.RenderCode(seg.Text) {
				lines = append(lines, chunk.Split(rendered, budget)...)
			}
		}
	}

	return lines
}

// DescribeExchange builds the accounting summary for one exchange.
// Provider-reported usage wins; the character-based estimator fills in
// when the response carried none. A missing pricing entry leaves the
// cost at zero rather than failing the exchange.
func (p *Pipeline) DescribeExchange(model, prompt, reply string, usage *providers.Usage) *ExchangeSummary {
	summary := &ExchangeSummary{Model: model}

	if usage != nil && usage.TotalTokens > 0 {
		summary.PromptTokens = usage.PromptTokens
		summary.CompletionTokens = usage.CompletionTokens
		summary.TotalTokens = usage.TotalTokens
	} else {
		est, err := p.estimator.EstimateExchange(prompt, reply, model)
		if err == nil {
			summary.PromptTokens = est.PromptTokens
			summary.CompletionTokens = est.CompletionTokens
			summary.TotalTokens = est.TotalTokens
			summary.Estimated = true
		}
	}

	cost, err := p.calculator.Cost(summary.PromptTokens, summary.CompletionTokens, model)
	if err != nil {
		p.logger.Debug("no pricing for model", "model", model)
		return summary
	}
	summary.Cost = cost.TotalCost

	return summary
}

// budget computes the per-line byte budget for a given prefix length.
func (p *Pipeline) budget(prefixLen int) int {
	budget := p.maxLine - prefixLen - p.margin
	if budget < minBudget {
		budget = minBudget
	}
	return budget
}
