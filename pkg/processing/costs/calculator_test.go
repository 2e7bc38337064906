package costs

import (
	"math"
	"testing"

	"mercator-hq/europa/pkg/config"
)

func testPricingConfig() *config.PricingConfig {
	return &config.PricingConfig{
		Models: map[string]config.ModelCost{
			"default":      {Prompt: 0.001, Completion: 0.003},
			"mistral-tiny": {Prompt: 0.00025, Completion: 0.00025},
			"mistral-small": {
				Prompt:     0.002,
				Completion: 0.006,
			},
		},
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestCalculator_CostExactModel(t *testing.T) {
	c := NewCalculator(testPricingConfig())

	est, err := c.Cost(1000, 2000, "mistral-tiny")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !approxEqual(est.PromptCost, 0.00025) {
		t.Errorf("PromptCost = %v, want 0.00025", est.PromptCost)
	}
	if !approxEqual(est.CompletionCost, 0.0005) {
		t.Errorf("CompletionCost = %v, want 0.0005", est.CompletionCost)
	}
	if !approxEqual(est.TotalCost, 0.00075) {
		t.Errorf("TotalCost = %v, want 0.00075", est.TotalCost)
	}
	if est.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", est.Currency)
	}
}

func TestCalculator_CostPrefixMatch(t *testing.T) {
	c := NewCalculator(testPricingConfig())

	est, err := c.Cost(1000, 1000, "mistral-small-2402")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !approxEqual(est.TotalCost, 0.008) {
		t.Errorf("Prefix match should price as mistral-small, got %v", est.TotalCost)
	}
}

func TestCalculator_CostDefaultFallback(t *testing.T) {
	c := NewCalculator(testPricingConfig())

	est, err := c.Cost(1000, 1000, "open-mixtral-8x7b")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !approxEqual(est.TotalCost, 0.004) {
		t.Errorf("Unknown model should use default pricing, got %v", est.TotalCost)
	}
}

func TestCalculator_CostZeroTokens(t *testing.T) {
	c := NewCalculator(testPricingConfig())

	est, err := c.Cost(0, 0, "mistral-tiny")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if est.TotalCost != 0 {
		t.Errorf("Zero tokens should cost nothing, got %v", est.TotalCost)
	}
}

func TestCalculator_CostNoPricingAtAll(t *testing.T) {
	c := NewCalculator(&config.PricingConfig{})

	if _, err := c.Cost(100, 100, "mistral-tiny"); err == nil {
		t.Fatal("Expected error when no pricing is configured")
	}
}

func TestCalculator_ModelPricingResolution(t *testing.T) {
	c := NewCalculator(testPricingConfig())

	tests := []struct {
		name       string
		model      string
		wantPrompt float64
	}{
		{name: "exact", model: "mistral-tiny", wantPrompt: 0.00025},
		{name: "prefix", model: "mistral-tiny-2312", wantPrompt: 0.00025},
		{name: "default", model: "unknown", wantPrompt: 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pricing, err := c.ModelPricing(tt.model)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !approxEqual(pricing.PromptCostPer1KTokens, tt.wantPrompt) {
				t.Errorf("PromptCostPer1KTokens = %v, want %v", pricing.PromptCostPer1KTokens, tt.wantPrompt)
			}
			if pricing.Model != tt.model {
				t.Errorf("Model = %q, want %q", pricing.Model, tt.model)
			}
		})
	}
}
