package mistral

import (
	"fmt"

	"mercator-hq/europa/pkg/providers"
)

// Mistral API request/response types.
//
// The chat completions endpoint follows the OpenAI wire format, minus
// tool calling. Only the fields the bot actually sends are included.

// mistralRequest represents a Mistral chat completion request.
type mistralRequest struct {
	Model       string           `json:"model"`
	Messages    []mistralMessage `json:"messages"`
	Temperature float64          `json:"temperature,omitempty"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
}

// mistralMessage represents a message in Mistral format.
type mistralMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// mistralResponse represents a Mistral chat completion response.
type mistralResponse struct {
	ID      string          `json:"id"`
	Object  string          `json:"object"`
	Created int64           `json:"created"`
	Model   string          `json:"model"`
	Choices []mistralChoice `json:"choices"`
	Usage   *mistralUsage   `json:"usage,omitempty"`
}

// mistralChoice represents a completion choice in Mistral format.
type mistralChoice struct {
	Index        int            `json:"index"`
	Message      mistralMessage `json:"message"`
	FinishReason string         `json:"finish_reason"`
}

// mistralUsage represents token usage in Mistral format.
type mistralUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// transformRequest transforms a provider-agnostic request to Mistral format.
func transformRequest(req *providers.CompletionRequest) *mistralRequest {
	mistralReq := &mistralRequest{
		Model:       req.Model,
		Messages:    make([]mistralMessage, len(req.Messages)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	for i, msg := range req.Messages {
		mistralReq.Messages[i] = mistralMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	return mistralReq
}

// transformResponse transforms a Mistral response to provider-agnostic format.
func transformResponse(resp *mistralResponse) (*providers.CompletionResponse, error) {
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	// Use the first choice (we only ever request one)
	choice := resp.Choices[0]

	result := &providers.CompletionResponse{
		ID:           resp.ID,
		Model:        resp.Model,
		Content:      choice.Message.Content,
		FinishReason: normalizeFinishReason(choice.FinishReason),
		Created:      resp.Created,
	}

	if resp.Usage != nil {
		result.Usage = &providers.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}

	return result, nil
}

// normalizeFinishReason normalizes Mistral finish reasons to
// provider-agnostic values. Mistral reports "model_length" where
// OpenAI-compatible APIs report "length".
func normalizeFinishReason(reason string) string {
	switch reason {
	case "stop":
		return providers.FinishReasonStop
	case "length", "model_length":
		return providers.FinishReasonLength
	case "content_filter":
		return providers.FinishReasonContentFilter
	default:
		return reason
	}
}
