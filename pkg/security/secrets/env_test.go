package secrets

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestEnvProvider_GetSecret(t *testing.T) {
	os.Setenv("MISTRAL_API_KEY", "test-key-value")
	defer os.Unsetenv("MISTRAL_API_KEY")

	provider := NewEnvProvider("")

	value, err := provider.GetSecret(context.Background(), "mistral-api-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "test-key-value" {
		t.Errorf("expected value 'test-key-value', got '%s'", value)
	}
}

func TestEnvProvider_GetSecret_NotFound(t *testing.T) {
	provider := NewEnvProvider("")

	_, err := provider.GetSecret(context.Background(), "europa-nonexistent-secret")
	if err == nil {
		t.Error("expected error for nonexistent secret, got nil")
	}
}

func TestEnvProvider_GetSecret_EmptyValue(t *testing.T) {
	os.Setenv("EUROPA_TEST_EMPTY_SECRET", "")
	defer os.Unsetenv("EUROPA_TEST_EMPTY_SECRET")

	provider := NewEnvProvider("")

	_, err := provider.GetSecret(context.Background(), "europa-test-empty-secret")
	if err == nil {
		t.Error("expected error for empty variable, got nil")
	}
}

func TestEnvProvider_NameMapping(t *testing.T) {
	tests := []struct {
		name       string
		prefix     string
		secretName string
		envVar     string
	}{
		{
			name:       "provider api key",
			prefix:     "",
			secretName: "mistral-api-key",
			envVar:     "MISTRAL_API_KEY",
		},
		{
			name:       "multiple hyphens",
			prefix:     "",
			secretName: "europa-test-db-password",
			envVar:     "EUROPA_TEST_DB_PASSWORD",
		},
		{
			name:       "with prefix",
			prefix:     "EUROPA_SECRET_",
			secretName: "api-key",
			envVar:     "EUROPA_SECRET_API_KEY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv(tt.envVar, "mapped-value")
			defer os.Unsetenv(tt.envVar)

			provider := NewEnvProvider(tt.prefix)

			value, err := provider.GetSecret(context.Background(), tt.secretName)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if value != "mapped-value" {
				t.Errorf("expected 'mapped-value', got '%s'", value)
			}
		})
	}
}

func TestEnvProvider_Provider(t *testing.T) {
	provider := NewEnvProvider("")

	if provider.Provider() != "env" {
		t.Errorf("expected provider name 'env', got '%s'", provider.Provider())
	}
}

func TestEnvProvider_Supports(t *testing.T) {
	provider := NewEnvProvider("")

	if !provider.Supports("any-secret-name") {
		t.Error("expected Supports to return true for any secret name")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "EUROPA_TEST_FROM_FILE=file-value\n"
	if err := os.WriteFile(envFile, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	defer os.Unsetenv("EUROPA_TEST_FROM_FILE")

	if err := LoadEnvFile(envFile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := os.Getenv("EUROPA_TEST_FROM_FILE"); got != "file-value" {
		t.Errorf("expected 'file-value', got '%s'", got)
	}
}

func TestLoadEnvFile_EnvironmentWins(t *testing.T) {
	os.Setenv("EUROPA_TEST_PRECEDENCE", "real-env-value")
	defer os.Unsetenv("EUROPA_TEST_PRECEDENCE")

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "EUROPA_TEST_PRECEDENCE=file-value\n"
	if err := os.WriteFile(envFile, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	if err := LoadEnvFile(envFile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := os.Getenv("EUROPA_TEST_PRECEDENCE"); got != "real-env-value" {
		t.Errorf("expected existing environment to win, got '%s'", got)
	}
}

func TestLoadEnvFile_EmptyPath(t *testing.T) {
	if err := LoadEnvFile(""); err != nil {
		t.Errorf("expected empty path to be a no-op, got error: %v", err)
	}
}

func TestLoadEnvFile_Missing(t *testing.T) {
	if err := LoadEnvFile("/nonexistent/path/.env"); err == nil {
		t.Error("expected error for missing env file, got nil")
	}
}

func TestAPIKeyName(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		want     string
	}{
		{name: "mistral", provider: "mistral", want: "mistral-api-key"},
		{name: "mixed case", provider: "Mistral", want: "mistral-api-key"},
		{name: "surrounding whitespace", provider: " mistral ", want: "mistral-api-key"},
		{name: "empty falls back", provider: "", want: "provider-api-key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := APIKeyName(tt.provider); got != tt.want {
				t.Errorf("APIKeyName(%q) = %q, want %q", tt.provider, got, tt.want)
			}
		})
	}
}
