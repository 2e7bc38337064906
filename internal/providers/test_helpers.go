package providers

import (
	"time"

	"mercator-hq/europa/pkg/providers"
)

// TestConfig returns a provider configuration with small timeouts suited
// to adapter tests.
func TestConfig(name string) providers.ProviderConfig {
	return providers.ProviderConfig{
		Name:                name,
		BaseURL:             "http://localhost:8080",
		APIKey:              "test-key",
		Model:               "mistral-tiny",
		MaxTokens:           300,
		Temperature:         0.7,
		Timeout:             5 * time.Second,
		HealthCheckInterval: 1 * time.Second,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     30 * time.Second,
	}
}

// TestConfigWithURL points the test configuration at a mock server.
func TestConfigWithURL(name, baseURL string) providers.ProviderConfig {
	config := TestConfig(name)
	config.BaseURL = baseURL
	return config
}
