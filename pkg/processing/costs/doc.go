// Package costs computes exchange costs from token usage.
//
// Pricing is a per-model table of USD rates per 1000 tokens, loaded
// from configuration with a "default" entry as the fallback. Model
// lookup tries exact match first, then treats table keys as prefixes
// so "mistral-tiny" also prices "mistral-tiny-2312".
//
// Costs exist for operator accounting only: they appear in usage
// records, summary stats, and the spend counter metric. They never
// influence admission.
//
// # Usage
//
//	calc := costs.NewCalculator(&cfg.Usage.Pricing)
//
//	est, err := calc.Cost(usage.PromptTokens, usage.CompletionTokens, model)
//	if err == nil {
//		record.EstimatedCost = est.TotalCost
//	}
package costs
