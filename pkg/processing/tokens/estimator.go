package tokens

// Estimator estimates token counts for prompt and completion text.
// Implementations may use different algorithms (character-based, BPE,
// provider tokenizers).
type Estimator interface {
	// EstimateText estimates tokens for a single text string.
	EstimateText(text string, model string) (int, error)

	// EstimateExchange estimates tokens for one prompt/reply pair,
	// including chat formatting overhead on the prompt side.
	EstimateExchange(prompt, reply string, model string) (*Estimate, error)
}

// Estimate contains token estimation results for one exchange.
type Estimate struct {
	// PromptTokens is the estimated token count of the rendered
	// prompt, including message formatting overhead.
	PromptTokens int

	// CompletionTokens is the estimated token count of the reply.
	CompletionTokens int

	// TotalTokens is PromptTokens + CompletionTokens.
	TotalTokens int

	// Model is the model the estimate was computed for.
	Model string

	// Confidence is the estimation confidence from 0.0 (low) to 1.0
	// (high). Character-based estimation sits around 0.9.
	Confidence float64
}
