package mistral

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mercator-hq/europa/pkg/providers"
)

// DefaultBaseURL is the Mistral API endpoint.
const DefaultBaseURL = "https://api.mistral.ai/v1"

// Provider is the Mistral provider adapter.
// It implements the providers.Provider interface for Mistral's chat
// completions API.
type Provider struct {
	*providers.HTTPProvider
}

// NewProvider creates a new Mistral provider instance.
func NewProvider(config providers.ProviderConfig) (*Provider, error) {
	if config.Name == "" {
		config.Name = "mistral"
	}

	if config.APIKey == "" {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "api_key",
			Message:  "API key is required for Mistral",
		}
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	// Set defaults if not provided
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.MaxIdleConns == 0 {
		config.MaxIdleConns = 100
	}
	if config.MaxIdleConnsPerHost == 0 {
		config.MaxIdleConnsPerHost = 10
	}

	p := &Provider{
		HTTPProvider: providers.NewHTTPProvider(config),
	}

	slog.Info("Mistral provider initialized",
		"provider", config.Name,
		"base_url", config.BaseURL,
		"model", config.Model,
	)

	return p, nil
}

// Complete sends a chat completion request to Mistral and returns the
// response. It makes exactly one attempt; any failure is returned to
// the caller as a typed provider error.
func (p *Provider) Complete(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error) {
	if req == nil || len(req.Messages) == 0 {
		return nil, fmt.Errorf("completion request must contain at least one message")
	}

	// Fill request defaults from the provider configuration
	config := p.GetConfig()
	if req.Model == "" {
		req.Model = config.Model
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = config.MaxTokens
	}
	if req.Temperature == 0 {
		req.Temperature = config.Temperature
	}

	mistralReq := transformRequest(req)

	url := fmt.Sprintf("%s/chat/completions", config.BaseURL)
	headers := map[string]string{
		"Authorization": "Bearer " + config.APIKey,
		"Content-Type":  "application/json",
	}

	var mistralResp mistralResponse
	if err := p.DoJSONRequest(ctx, "POST", url, mistralReq, &mistralResp, headers); err != nil {
		return nil, err
	}

	resp, err := transformResponse(&mistralResp)
	if err != nil {
		return nil, &providers.MalformedResponseError{
			Provider: p.GetName(),
			Cause:    err,
		}
	}

	totalTokens := 0
	if resp.Usage != nil {
		totalTokens = resp.Usage.TotalTokens
	}
	slog.Debug("completion request succeeded",
		"provider", p.GetName(),
		"model", resp.Model,
		"finish_reason", resp.FinishReason,
		"tokens", totalTokens,
	)

	return resp, nil
}
