// Package secrets resolves credentials from their possible sources.
package secrets

import (
	"context"
	"fmt"
	"strings"
)

// Provider retrieves secrets from one backend.
//
// Implementations cover inline configuration values, per-secret files, and
// environment variables. Providers are chained by the Manager with a fixed
// precedence order.
type Provider interface {
	// GetSecret retrieves a secret by name.
	// Returns an error if the secret is not found or cannot be read.
	GetSecret(ctx context.Context, name string) (string, error)

	// Provider returns the provider name (static, file, env).
	Provider() string

	// Supports reports whether this provider may hold the given secret.
	// The Manager skips providers that do not support a name.
	Supports(name string) bool
}

// APIKeyName returns the canonical secret name for a completion provider's
// API key. The name for provider "mistral" is "mistral-api-key", which the
// environment provider maps to MISTRAL_API_KEY.
func APIKeyName(providerName string) string {
	providerName = strings.TrimSpace(strings.ToLower(providerName))
	if providerName == "" {
		providerName = "provider"
	}
	return fmt.Sprintf("%s-api-key", providerName)
}
