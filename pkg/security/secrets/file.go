package secrets

import (
	"context"
	"fmt"
	"maps"
	"os"
	"strings"
	"sync"
)

// FileProvider retrieves secrets from individual files, one file per
// secret. This matches how container runtimes and orchestrators mount
// secrets: the file holds the raw value, optionally with a trailing
// newline.
//
// File permissions are validated to be 0600 or 0400 so a world-readable
// key file fails loudly instead of leaking quietly.
type FileProvider struct {
	mu    sync.RWMutex
	paths map[string]string
	cache map[string]string
}

// NewFileProvider creates a file-based secret provider. The paths map
// associates secret names with the files holding their values.
func NewFileProvider(paths map[string]string) *FileProvider {
	return &FileProvider{
		paths: maps.Clone(paths),
		cache: make(map[string]string),
	}
}

// GetSecret reads a secret from its configured file. The value is
// whitespace-trimmed and cached, so rotating the file contents requires a
// restart to take effect.
func (p *FileProvider) GetSecret(ctx context.Context, name string) (string, error) {
	p.mu.RLock()
	v, hit := p.cache[name]
	path, ok := p.paths[name]
	p.mu.RUnlock()

	if hit {
		return v, nil
	}
	if !ok {
		return "", fmt.Errorf("no file configured for secret %q", name)
	}

	v, err := p.readSecretFile(path)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	p.cache[name] = v
	p.mu.Unlock()
	return v, nil
}

// readSecretFile loads one secret file, enforcing that it is a regular
// file with owner-only permissions and a non-empty value.
func (p *FileProvider) readSecretFile(path string) (string, error) {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return "", fmt.Errorf("secret file %q not found", path)
	case err != nil:
		return "", fmt.Errorf("failed to stat secret file %q: %w", path, err)
	case !info.Mode().IsRegular():
		return "", fmt.Errorf("secret path %q is not a regular file", path)
	}
	if mode := info.Mode().Perm(); mode != 0600 && mode != 0400 {
		return "", fmt.Errorf("insecure permissions on %s: %04o (expected 0600 or 0400)", path, mode)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file %q: %w", path, err)
	}

	v := strings.TrimSpace(string(data))
	if v == "" {
		return "", fmt.Errorf("secret file %q is empty", path)
	}
	return v, nil
}

// Provider identifies this source as "file".
func (p *FileProvider) Provider() string { return "file" }

// Supports reports whether a file is configured for the given secret name.
func (p *FileProvider) Supports(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.paths[name]
	return ok
}
