package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvProvider retrieves secrets from environment variables.
//
// Secret names are mapped to environment variable names by uppercasing and
// replacing hyphens with underscores, so "mistral-api-key" resolves from
// MISTRAL_API_KEY.
type EnvProvider struct {
	// Prefix is prepended to the mapped variable name. Empty means the
	// bare variable name is used.
	Prefix string
}

// NewEnvProvider creates an environment variable secret provider.
func NewEnvProvider(prefix string) *EnvProvider {
	return &EnvProvider{Prefix: prefix}
}

// LoadEnvFile loads variables from a .env file into the process
// environment. Variables already present in the environment are kept, so
// the real environment always wins over the file. A missing file is an
// error; pass an empty path to skip loading entirely.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %q: %w", path, err)
	}
	return nil
}

// GetSecret retrieves a secret from an environment variable.
func (p *EnvProvider) GetSecret(ctx context.Context, name string) (string, error) {
	envVar := p.envVarName(name)

	value, ok := os.LookupEnv(envVar)
	if !ok {
		return "", fmt.Errorf("secret %q not found in environment (checked %s)", name, envVar)
	}
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("environment variable %s is set but empty", envVar)
	}

	return value, nil
}

// Provider returns the provider name.
func (p *EnvProvider) Provider() string {
	return "env"
}

// Supports always returns true. The environment provider is the fallback at
// the end of the resolution chain and any name can map to a variable.
func (p *EnvProvider) Supports(name string) bool {
	return true
}

// envVarName converts a secret name to its environment variable name.
// Examples with an empty prefix:
//
//	"mistral-api-key" -> "MISTRAL_API_KEY"
//	"db-password"     -> "DB_PASSWORD"
func (p *EnvProvider) envVarName(name string) string {
	mapped := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	return p.Prefix + mapped
}
