package processing

// ExchangeSummary describes the token and cost accounting of one
// completed prompt/reply exchange. It feeds usage records and the
// spend metrics.
type ExchangeSummary struct {
	// Model is the model that produced the reply.
	Model string

	// PromptTokens is the prompt token count.
	PromptTokens int

	// CompletionTokens is the reply token count.
	CompletionTokens int

	// TotalTokens is PromptTokens + CompletionTokens.
	TotalTokens int

	// Estimated is true when the counts come from the character-based
	// estimator because the provider response carried no usage block.
	Estimated bool

	// Cost is the exchange cost in USD, zero when no pricing is
	// configured for the model.
	Cost float64
}
