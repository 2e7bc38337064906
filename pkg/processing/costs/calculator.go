package costs

import (
	"fmt"
	"strings"
	"sync"

	"mercator-hq/europa/pkg/config"
)

// Calculator computes exchange costs from the configured per-model
// pricing table. It is thread-safe.
type Calculator struct {
	config *config.PricingConfig

	// mu protects the calculator for concurrent access
	mu sync.RWMutex
}

// NewCalculator creates a cost calculator with the given pricing.
func NewCalculator(cfg *config.PricingConfig) *Calculator {
	return &Calculator{
		config: cfg,
	}
}

// Cost computes the USD cost of one exchange from its token counts.
func (c *Calculator) Cost(promptTokens, completionTokens int, model string) (*CostEstimate, error) {
	pricing, err := c.ModelPricing(model)
	if err != nil {
		return nil, err
	}

	estimate := &CostEstimate{
		Model:    model,
		Currency: "USD",
	}

	estimate.PromptCost = tokenCost(promptTokens, pricing.PromptCostPer1KTokens)
	estimate.CompletionCost = tokenCost(completionTokens, pricing.CompletionCostPer1KTokens)
	estimate.TotalCost = estimate.PromptCost + estimate.CompletionCost

	return estimate, nil
}

// ModelPricing resolves pricing for a model. It tries an exact match,
// then a model prefix match, then the "default" entry.
func (c *Calculator) ModelPricing(model string) (*ModelPricing, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if cost, ok := c.config.Models[model]; ok {
		return pricingFor(model, cost), nil
	}

	for pattern, cost := range c.config.Models {
		if pattern != "default" && strings.HasPrefix(model, pattern) {
			return pricingFor(model, cost), nil
		}
	}

	if cost, ok := c.config.Models["default"]; ok {
		return pricingFor(model, cost), nil
	}

	return nil, fmt.Errorf("no pricing found for model %q", model)
}

func pricingFor(model string, cost config.ModelCost) *ModelPricing {
	return &ModelPricing{
		Model:                     model,
		PromptCostPer1KTokens:     cost.Prompt,
		CompletionCostPer1KTokens: cost.Completion,
		Currency:                  "USD",
	}
}

// tokenCost calculates the cost for a token count at a per-1K rate.
func tokenCost(tokens int, costPer1K float64) float64 {
	if tokens <= 0 {
		return 0.0
	}

	return (float64(tokens) / 1000.0) * costPer1K
}
