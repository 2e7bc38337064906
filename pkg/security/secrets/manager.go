package secrets

import (
	"context"
	"fmt"
	"log/slog"

	"mercator-hq/europa/pkg/config"
)

// Manager resolves secrets through an ordered provider chain.
//
// Providers are tried in order; the first one that supports a name and
// returns a value wins. Secrets are resolved once at startup, so the
// manager keeps no cache in front of the providers.
type Manager struct {
	providers []Provider
}

// NewManager creates a manager over the given providers. Earlier providers
// take precedence.
func NewManager(providers ...Provider) *Manager {
	return &Manager{providers: providers}
}

// FromProviderConfig builds the resolution chain for the completion
// provider's API key:
//
//  1. api_key set directly in the configuration
//  2. api_key_file, when configured
//  3. the environment, MISTRAL_API_KEY for provider "mistral"
//
// When env_file is configured, the .env file is loaded into the process
// environment first. Variables already present in the real environment are
// kept, so the file never overrides operator-set values.
func FromProviderConfig(cfg *config.ProviderConfig) (*Manager, error) {
	if err := LoadEnvFile(cfg.EnvFile); err != nil {
		return nil, err
	}

	keyName := APIKeyName(cfg.Name)

	var providers []Provider
	if cfg.APIKey != "" {
		providers = append(providers, NewStaticProvider(map[string]string{keyName: cfg.APIKey}))
	}
	if cfg.APIKeyFile != "" {
		providers = append(providers, NewFileProvider(map[string]string{keyName: cfg.APIKeyFile}))
	}
	providers = append(providers, NewEnvProvider(""))

	return NewManager(providers...), nil
}

// GetSecret retrieves a secret from the first provider that supports it.
// Returns an error wrapping the last provider failure when all supporting
// providers fail, or a not-found error when no provider supports the name.
func (m *Manager) GetSecret(ctx context.Context, name string) (string, error) {
	var lastErr error
	for _, provider := range m.providers {
		if !provider.Supports(name) {
			continue
		}

		value, err := provider.GetSecret(ctx, name)
		if err != nil {
			lastErr = err
			slog.Debug("secret provider failed",
				"provider", provider.Provider(),
				"name", name,
				"error", err,
			)
			continue
		}

		slog.Debug("secret resolved",
			"provider", provider.Provider(),
			"name", name,
		)
		return value, nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("failed to get secret %q: %w", name, lastErr)
	}
	return "", fmt.Errorf("secret not found: %q (no provider supports this secret)", name)
}

// APIKey resolves the API key for the named completion provider.
func (m *Manager) APIKey(ctx context.Context, providerName string) (string, error) {
	return m.GetSecret(ctx, APIKeyName(providerName))
}
