package tokens

import (
	"strings"
	"sync"

	"mercator-hq/europa/pkg/config"
)

// Chat formatting overhead in tokens: role markers, message boundaries,
// and special tokens around a single-message prompt.
const promptOverheadTokens = 5

// SimpleEstimator implements character-based token estimation using
// model-specific characters-per-token ratios. It is used when the
// provider response carries no usage block, so counts feed usage
// records and cost accounting rather than billing.
type SimpleEstimator struct {
	config *config.EstimationConfig

	// mu protects the estimator for concurrent access
	mu sync.RWMutex
}

// NewSimpleEstimator creates a character-based token estimator.
func NewSimpleEstimator(cfg *config.EstimationConfig) *SimpleEstimator {
	return &SimpleEstimator{
		config: cfg,
	}
}

// EstimateText estimates tokens for a single text string using the
// model's characters-per-token ratio. Non-empty text is at least one
// token.
func (e *SimpleEstimator) EstimateText(text string, model string) (int, error) {
	if text == "" {
		return 0, nil
	}

	charsPerToken := e.charsPerToken(model)

	tokens := float64(len(text)) / charsPerToken
	if tokens < 1.0 {
		tokens = 1.0
	}

	return int(tokens + 0.5), nil
}

// EstimateExchange estimates tokens for one prompt/reply pair.
func (e *SimpleEstimator) EstimateExchange(prompt, reply string, model string) (*Estimate, error) {
	estimate := &Estimate{
		Model:      model,
		Confidence: 0.9,
	}

	promptTokens, err := e.EstimateText(prompt, model)
	if err != nil {
		return nil, err
	}
	estimate.PromptTokens = promptTokens + promptOverheadTokens

	completionTokens, err := e.EstimateText(reply, model)
	if err != nil {
		return nil, err
	}
	estimate.CompletionTokens = completionTokens

	estimate.TotalTokens = estimate.PromptTokens + estimate.CompletionTokens

	return estimate, nil
}

// charsPerToken returns the characters-per-token ratio for a model,
// trying exact match, then model prefix match, then the configured
// default.
func (e *SimpleEstimator) charsPerToken(model string) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if ratio, ok := e.config.Models[model]; ok && ratio > 0 {
		return ratio
	}

	for pattern, ratio := range e.config.Models {
		if pattern != "default" && ratio > 0 && strings.HasPrefix(model, pattern) {
			return ratio
		}
	}

	if ratio, ok := e.config.Models["default"]; ok && ratio > 0 {
		return ratio
	}

	return 4.0
}
