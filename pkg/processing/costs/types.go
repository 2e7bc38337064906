package costs

// CostEstimate is the computed cost of one exchange. All amounts are
// USD; Currency is carried anyway so exported records stay explicit.
type CostEstimate struct {
	PromptCost     float64 // spend on prompt tokens
	CompletionCost float64 // spend on completion tokens
	TotalCost      float64 // PromptCost + CompletionCost
	Model          string  // model the pricing was resolved for
	Currency       string  // always "USD"
}

// ModelPricing holds per-1000-token rates for one model.
type ModelPricing struct {
	Model                     string
	PromptCostPer1KTokens     float64
	CompletionCostPer1KTokens float64
	Currency                  string // always "USD"
}
