// Package tokens estimates token usage for prompt/reply exchanges.
//
// The Mistral chat API reports exact usage on successful responses,
// and those numbers are always preferred. This package covers the
// gap: responses without a usage block still need token counts for
// usage records and cost accounting, and the character-based
// estimator here provides them.
//
// # Accuracy
//
// Estimation divides byte length by a model-specific
// characters-per-token ratio (default 4.0) and adds a small fixed
// overhead for chat formatting. That lands within roughly 10% for
// English prose, which is enough for operator-facing accounting; it
// is never used for admission decisions.
//
// # Usage
//
//	estimator := tokens.NewSimpleEstimator(&cfg.Usage.Estimation)
//
//	est, err := estimator.EstimateExchange(prompt, reply, "mistral-tiny")
//	if err == nil {
//		record.PromptTokens = est.PromptTokens
//		record.CompletionTokens = est.CompletionTokens
//	}
package tokens
