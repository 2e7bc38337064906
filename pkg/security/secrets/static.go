package secrets

import (
	"context"
	"fmt"
)

// StaticProvider serves secrets from a fixed in-memory map. It backs
// values written directly into the configuration file, and is convenient
// in tests.
type StaticProvider struct {
	values map[string]string
}

// NewStaticProvider creates a provider over a fixed set of values.
func NewStaticProvider(values map[string]string) *StaticProvider {
	p := &StaticProvider{values: make(map[string]string, len(values))}
	for name, value := range values {
		p.values[name] = value
	}
	return p
}

// GetSecret returns the configured value for name.
func (p *StaticProvider) GetSecret(ctx context.Context, name string) (string, error) {
	value, ok := p.values[name]
	if !ok {
		return "", fmt.Errorf("secret %q not configured", name)
	}
	return value, nil
}

// Provider returns the provider name.
func (p *StaticProvider) Provider() string {
	return "static"
}

// Supports reports whether a value is configured for the given name.
func (p *StaticProvider) Supports(name string) bool {
	_, ok := p.values[name]
	return ok
}
