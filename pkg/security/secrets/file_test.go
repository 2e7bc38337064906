package secrets

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// writeSecretFile creates a secret file with the given contents and mode.
func writeSecretFile(t *testing.T, name, content string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatalf("failed to write secret file: %v", err)
	}
	return path
}

func TestFileProvider_GetSecret(t *testing.T) {
	path := writeSecretFile(t, "api_key", "test-key-value\n", 0600)

	provider := NewFileProvider(map[string]string{
		"mistral-api-key": path,
	})

	value, err := provider.GetSecret(context.Background(), "mistral-api-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Trailing newline should be trimmed.
	if value != "test-key-value" {
		t.Errorf("expected value 'test-key-value', got '%s'", value)
	}
}

func TestFileProvider_GetSecret_NotConfigured(t *testing.T) {
	provider := NewFileProvider(nil)

	_, err := provider.GetSecret(context.Background(), "mistral-api-key")
	if err == nil {
		t.Error("expected error for unconfigured secret, got nil")
	}
}

func TestFileProvider_GetSecret_MissingFile(t *testing.T) {
	provider := NewFileProvider(map[string]string{
		"mistral-api-key": filepath.Join(t.TempDir(), "does-not-exist"),
	})

	_, err := provider.GetSecret(context.Background(), "mistral-api-key")
	if err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestFileProvider_Permissions(t *testing.T) {
	tests := []struct {
		name    string
		mode    os.FileMode
		wantErr bool
	}{
		{name: "0600 permissions", mode: 0600, wantErr: false},
		{name: "0400 permissions", mode: 0400, wantErr: false},
		{name: "0644 permissions", mode: 0644, wantErr: true},
		{name: "0666 permissions", mode: 0666, wantErr: true},
		{name: "0700 permissions", mode: 0700, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSecretFile(t, "api_key", "value", tt.mode)

			provider := NewFileProvider(map[string]string{
				"mistral-api-key": path,
			})

			_, err := provider.GetSecret(context.Background(), "mistral-api-key")
			if tt.wantErr && err == nil {
				t.Errorf("expected error with permissions %04o, got nil", tt.mode)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected success with permissions %04o, got error: %v", tt.mode, err)
			}
		})
	}
}

func TestFileProvider_EmptyFile(t *testing.T) {
	path := writeSecretFile(t, "api_key", "  \n", 0600)

	provider := NewFileProvider(map[string]string{
		"mistral-api-key": path,
	})

	_, err := provider.GetSecret(context.Background(), "mistral-api-key")
	if err == nil {
		t.Error("expected error for empty secret file, got nil")
	}
}

func TestFileProvider_NotRegularFile(t *testing.T) {
	provider := NewFileProvider(map[string]string{
		"mistral-api-key": t.TempDir(),
	})

	_, err := provider.GetSecret(context.Background(), "mistral-api-key")
	if err == nil {
		t.Error("expected error for directory path, got nil")
	}
}

func TestFileProvider_Caching(t *testing.T) {
	path := writeSecretFile(t, "api_key", "value1", 0600)

	provider := NewFileProvider(map[string]string{
		"mistral-api-key": path,
	})

	value1, err := provider.GetSecret(context.Background(), "mistral-api-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Rotate the file contents; the cached value should still be served.
	if err := os.WriteFile(path, []byte("value2"), 0600); err != nil {
		t.Fatal(err)
	}

	value2, err := provider.GetSecret(context.Background(), "mistral-api-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value2 != value1 {
		t.Errorf("expected cached value '%s', got '%s'", value1, value2)
	}
}

func TestFileProvider_Provider(t *testing.T) {
	provider := NewFileProvider(nil)

	if provider.Provider() != "file" {
		t.Errorf("expected provider name 'file', got '%s'", provider.Provider())
	}
}

func TestFileProvider_Supports(t *testing.T) {
	provider := NewFileProvider(map[string]string{
		"mistral-api-key": "/run/secrets/mistral_api_key",
	})

	if !provider.Supports("mistral-api-key") {
		t.Error("expected Supports to return true for configured secret")
	}
	if provider.Supports("other-secret") {
		t.Error("expected Supports to return false for unconfigured secret")
	}
}
