package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts with default values and allows selective overrides.
type ConfigBuilder struct {
	cfg Config
}

// NewTestConfig creates a new ConfigBuilder with sensible defaults for testing.
// The resulting configuration is valid and can be used immediately.
func NewTestConfig() *ConfigBuilder {
	cfg := Default()

	// Tests never touch a real network or database.
	cfg.Provider.APIKey = "test-key"
	cfg.Usage.Backend = "memory"
	cfg.Metrics.Enabled = false
	cfg.Health.Enabled = false

	return &ConfigBuilder{cfg: *cfg}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return &b.cfg
}

// WithServer sets the IRC server hostname.
func (b *ConfigBuilder) WithServer(server string) *ConfigBuilder {
	b.cfg.IRC.Server = server
	return b
}

// WithNick sets the bot nickname.
func (b *ConfigBuilder) WithNick(nick string) *ConfigBuilder {
	b.cfg.IRC.Nick = nick
	return b
}

// WithChannels sets the channel list.
func (b *ConfigBuilder) WithChannels(channels ...string) *ConfigBuilder {
	b.cfg.IRC.Channels = channels
	return b
}

// WithLimits sets the three request budgets.
func (b *ConfigBuilder) WithLimits(perMinute, globalPerDay, userPerDay int) *ConfigBuilder {
	b.cfg.Limits.GlobalPerMinute = perMinute
	b.cfg.Limits.GlobalPerDay = globalPerDay
	b.cfg.Limits.UserPerDay = userPerDay
	return b
}

// WithCooldown sets the per-user cooldown.
func (b *ConfigBuilder) WithCooldown(d time.Duration) *ConfigBuilder {
	b.cfg.Limits.Cooldown = d
	return b
}

// WithModel sets the completion model.
func (b *ConfigBuilder) WithModel(model string) *ConfigBuilder {
	b.cfg.Provider.Model = model
	return b
}

// WithProviderTimeout sets the completion request timeout.
func (b *ConfigBuilder) WithProviderTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Provider.Timeout = d
	return b
}

// WithTemperature sets the sampling temperature.
func (b *ConfigBuilder) WithTemperature(temp float64) *ConfigBuilder {
	b.cfg.Provider.Temperature = temp
	return b
}

// WithPromptsPath sets the templates file path.
func (b *ConfigBuilder) WithPromptsPath(path string) *ConfigBuilder {
	b.cfg.Prompts.Path = path
	return b
}

// WithChunking sets the chunking geometry.
func (b *ConfigBuilder) WithChunking(maxLine, margin int) *ConfigBuilder {
	b.cfg.Chunking.MaxLineLength = maxLine
	b.cfg.Chunking.SafetyMargin = margin
	return b
}

// WithUsageBackend selects the usage store backend.
func (b *ConfigBuilder) WithUsageBackend(backend string) *ConfigBuilder {
	b.cfg.Usage.Backend = backend
	return b
}

// WithSQLitePath sets the usage database path and selects the sqlite backend.
func (b *ConfigBuilder) WithSQLitePath(path string) *ConfigBuilder {
	b.cfg.Usage.Backend = "sqlite"
	b.cfg.Usage.SQLite.Path = path
	return b
}

// WithLoggingLevel sets the log level.
func (b *ConfigBuilder) WithLoggingLevel(level string) *ConfigBuilder {
	b.cfg.Logging.Level = level
	return b
}

// WithMetricsEnabled toggles the metrics endpoint.
func (b *ConfigBuilder) WithMetricsEnabled(enabled bool) *ConfigBuilder {
	b.cfg.Metrics.Enabled = enabled
	return b
}

// WithTracingEnabled toggles tracing.
func (b *ConfigBuilder) WithTracingEnabled(enabled bool) *ConfigBuilder {
	b.cfg.Tracing.Enabled = enabled
	return b
}

// MinimalConfig returns the smallest configuration that passes validation.
func MinimalConfig() *Config {
	return Default()
}
