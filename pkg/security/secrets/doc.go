/*
Package secrets resolves credentials from their possible sources.

# Overview

Europa needs exactly one credential at runtime: the completion provider's
API key. This package resolves it through an ordered provider chain so the
key can live wherever the deployment prefers — inline in the configuration
file, in a mounted secret file, or in the environment — without the rest of
the code caring which.

# Resolution Order

FromProviderConfig builds the chain from the provider configuration
section. Sources are tried in order and the first hit wins:

 1. api_key written directly in the configuration file
 2. api_key_file, a file holding just the key
 3. the environment variable derived from the provider name
    (MISTRAL_API_KEY for provider "mistral")

When env_file is configured, that .env file is loaded into the process
environment before resolution. Variables already present in the real
environment are kept, so an operator-set MISTRAL_API_KEY always beats the
file.

# Basic Usage

	import (
		"context"

		"mercator-hq/europa/pkg/config"
		"mercator-hq/europa/pkg/security/secrets"
	)

	manager, err := secrets.FromProviderConfig(&cfg.Provider)
	if err != nil {
		return err
	}

	apiKey, err := manager.APIKey(context.Background(), cfg.Provider.Name)
	if err != nil {
		return fmt.Errorf("no API key configured: %w", err)
	}

# Secret Names

Secret names are lowercase with hyphens. The environment provider maps
them to variable names by uppercasing and replacing hyphens with
underscores:

  - Secret name: "mistral-api-key"
  - Env var name: "MISTRAL_API_KEY"

APIKeyName derives the canonical key name from a provider name, so a
deployment pointing at a different provider gets a matching variable name
for free.

# File-Based Secrets

The file provider reads one secret per file, matching how Docker and
Kubernetes mount secrets. File permissions must be 0600 or 0400; anything
more permissive is rejected with an error rather than silently accepted:

	provider := secrets.NewFileProvider(map[string]string{
		"mistral-api-key": "/run/secrets/mistral_api_key",
	})

Values are whitespace-trimmed, so a trailing newline in the file does not
end up inside the Authorization header.

# Security Considerations

Secret values never appear in log output or error messages; errors name
the file or variable that failed, not its contents. The logging package
additionally redacts anything key-shaped that does reach a log field.
*/
package secrets
