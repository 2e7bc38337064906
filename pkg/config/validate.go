package config

import (
	"fmt"
	"net/url"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "irc.server").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateIRC(&cfg.IRC)...)
	errs = append(errs, validateLimits(&cfg.Limits)...)
	errs = append(errs, validateProvider(&cfg.Provider)...)
	errs = append(errs, validatePrompts(&cfg.Prompts)...)
	errs = append(errs, validateChunking(&cfg.Chunking)...)
	errs = append(errs, validateUsage(&cfg.Usage)...)
	errs = append(errs, validateLogging(&cfg.Logging)...)
	errs = append(errs, validateMetrics(&cfg.Metrics)...)
	errs = append(errs, validateTracing(&cfg.Tracing)...)
	errs = append(errs, validateHealth(&cfg.Health)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateIRC validates IRC connection configuration.
func validateIRC(cfg *IRCConfig) []FieldError {
	var errs []FieldError

	if cfg.Server == "" {
		errs = append(errs, FieldError{
			Field:   "irc.server",
			Message: "server is required",
		})
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		errs = append(errs, FieldError{
			Field:   "irc.port",
			Message: fmt.Sprintf("port must be 1-65535, got %d", cfg.Port),
		})
	}
	if cfg.Nick == "" {
		errs = append(errs, FieldError{
			Field:   "irc.nick",
			Message: "nick is required",
		})
	} else if strings.ContainsAny(cfg.Nick, " \r\n") {
		errs = append(errs, FieldError{
			Field:   "irc.nick",
			Message: "nick must not contain spaces or line breaks",
		})
	}
	if len(cfg.Channels) == 0 {
		errs = append(errs, FieldError{
			Field:   "irc.channels",
			Message: "at least one channel is required",
		})
	}
	for i, ch := range cfg.Channels {
		if !strings.HasPrefix(ch, "#") && !strings.HasPrefix(ch, "&") {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("irc.channels[%d]", i),
				Message: fmt.Sprintf("channel %q must start with # or &", ch),
			})
		}
	}
	if cfg.MessageDelay < 0 {
		errs = append(errs, FieldError{
			Field:   "irc.message_delay",
			Message: "message delay must be non-negative",
		})
	}
	if cfg.JoinDelay < 0 {
		errs = append(errs, FieldError{
			Field:   "irc.join_delay",
			Message: "join delay must be non-negative",
		})
	}
	if cfg.ReconnectDelay <= 0 {
		errs = append(errs, FieldError{
			Field:   "irc.reconnect_delay",
			Message: "reconnect delay must be positive",
		})
	}
	if cfg.RegistrationTimeout <= 0 {
		errs = append(errs, FieldError{
			Field:   "irc.registration_timeout",
			Message: "registration timeout must be positive",
		})
	}

	switch cfg.TLS.MinVersion {
	case "", "1.2", "1.3":
	default:
		errs = append(errs, FieldError{
			Field:   "irc.tls.min_version",
			Message: fmt.Sprintf("invalid TLS version %q (valid: 1.2, 1.3)", cfg.TLS.MinVersion),
		})
	}
	if cfg.TLS.HandshakeTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "irc.tls.handshake_timeout",
			Message: "handshake timeout must be non-negative",
		})
	}

	return errs
}

// validateLimits validates quota ledger configuration.
// All request budgets must be positive: a zero budget would deny every
// request while a negative one is meaningless.
func validateLimits(cfg *LimitsConfig) []FieldError {
	var errs []FieldError

	if cfg.GlobalPerMinute <= 0 {
		errs = append(errs, FieldError{
			Field:   "limits.global_per_minute",
			Message: "global per-minute limit must be positive",
		})
	}
	if cfg.GlobalPerDay <= 0 {
		errs = append(errs, FieldError{
			Field:   "limits.global_per_day",
			Message: "global per-day limit must be positive",
		})
	}
	if cfg.UserPerDay <= 0 {
		errs = append(errs, FieldError{
			Field:   "limits.user_per_day",
			Message: "per-user per-day limit must be positive",
		})
	}
	if cfg.GlobalPerDay > 0 && cfg.GlobalPerMinute > cfg.GlobalPerDay {
		errs = append(errs, FieldError{
			Field:   "limits.global_per_minute",
			Message: "global per-minute limit exceeds the global per-day limit",
		})
	}
	if cfg.UserPerDay > 0 && cfg.GlobalPerDay > 0 && cfg.UserPerDay > cfg.GlobalPerDay {
		errs = append(errs, FieldError{
			Field:   "limits.user_per_day",
			Message: "per-user per-day limit exceeds the global per-day limit",
		})
	}
	if cfg.Cooldown < 0 {
		errs = append(errs, FieldError{
			Field:   "limits.cooldown",
			Message: "cooldown must be non-negative",
		})
	}
	if cfg.EvictAfter <= 0 {
		errs = append(errs, FieldError{
			Field:   "limits.evict_after",
			Message: "eviction age must be positive",
		})
	}

	return errs
}

// validateProvider validates completion provider configuration.
func validateProvider(cfg *ProviderConfig) []FieldError {
	var errs []FieldError

	if cfg.Name == "" {
		errs = append(errs, FieldError{
			Field:   "provider.name",
			Message: "provider name is required",
		})
	}
	if cfg.BaseURL == "" {
		errs = append(errs, FieldError{
			Field:   "provider.base_url",
			Message: "base URL is required",
		})
	} else {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, FieldError{
				Field:   "provider.base_url",
				Message: fmt.Sprintf("invalid URL %q", cfg.BaseURL),
			})
		}
	}

	// API key may be empty here; it is resolved from the environment at
	// startup and its absence is reported there.

	if cfg.Model == "" {
		errs = append(errs, FieldError{
			Field:   "provider.model",
			Message: "model is required",
		})
	}
	if cfg.MaxTokens <= 0 {
		errs = append(errs, FieldError{
			Field:   "provider.max_tokens",
			Message: "max tokens must be positive",
		})
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		errs = append(errs, FieldError{
			Field:   "provider.temperature",
			Message: fmt.Sprintf("temperature must be between 0.0 and 2.0, got %g", cfg.Temperature),
		})
	}
	if cfg.Timeout <= 0 {
		errs = append(errs, FieldError{
			Field:   "provider.timeout",
			Message: "timeout must be positive",
		})
	}

	return errs
}

// validatePrompts validates prompt template configuration.
func validatePrompts(cfg *PromptsConfig) []FieldError {
	var errs []FieldError

	if cfg.Watch && cfg.Path == "" {
		errs = append(errs, FieldError{
			Field:   "prompts.watch",
			Message: "watch requires a templates path",
		})
	}
	if cfg.DebounceInterval < 0 {
		errs = append(errs, FieldError{
			Field:   "prompts.debounce_interval",
			Message: "debounce interval must be non-negative",
		})
	}

	return errs
}

// validateChunking validates response chunking configuration.
func validateChunking(cfg *ChunkingConfig) []FieldError {
	var errs []FieldError

	if cfg.MaxLineLength <= 0 {
		errs = append(errs, FieldError{
			Field:   "chunking.max_line_length",
			Message: "max line length must be positive",
		})
	}
	if cfg.SafetyMargin < 0 {
		errs = append(errs, FieldError{
			Field:   "chunking.safety_margin",
			Message: "safety margin must be non-negative",
		})
	}
	if cfg.MaxLineLength > 0 && cfg.SafetyMargin >= cfg.MaxLineLength {
		errs = append(errs, FieldError{
			Field:   "chunking.safety_margin",
			Message: "safety margin leaves no room for message text",
		})
	}
	if cfg.CodeGroupSize <= 0 {
		errs = append(errs, FieldError{
			Field:   "chunking.code_group_size",
			Message: "code group size must be positive",
		})
	}

	return errs
}

// validateUsage validates usage audit configuration.
func validateUsage(cfg *UsageConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "sqlite", "memory":
	default:
		errs = append(errs, FieldError{
			Field:   "usage.backend",
			Message: fmt.Sprintf("unsupported backend %q (valid: sqlite, memory)", cfg.Backend),
		})
	}
	if cfg.Backend == "sqlite" && cfg.SQLite.Path == "" {
		errs = append(errs, FieldError{
			Field:   "usage.sqlite.path",
			Message: "database path is required for the sqlite backend",
		})
	}
	if cfg.SQLite.BusyTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "usage.sqlite.busy_timeout",
			Message: "busy timeout must be non-negative",
		})
	}
	if cfg.Recorder.BufferSize <= 0 {
		errs = append(errs, FieldError{
			Field:   "usage.recorder.buffer_size",
			Message: "buffer size must be positive",
		})
	}
	if cfg.Recorder.DrainTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "usage.recorder.drain_timeout",
			Message: "drain timeout must be non-negative",
		})
	}
	if cfg.Retention.Days < 0 {
		errs = append(errs, FieldError{
			Field:   "usage.retention.days",
			Message: "retention days must be non-negative (0 disables pruning)",
		})
	}
	for model, ratio := range cfg.Estimation.Models {
		if ratio <= 0 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("usage.estimation.models.%s", model),
				Message: "characters-per-token ratio must be positive",
			})
		}
	}
	for model, cost := range cfg.Pricing.Models {
		if cost.Prompt < 0 || cost.Completion < 0 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("usage.pricing.models.%s", model),
				Message: "pricing must be non-negative",
			})
		}
	}

	return errs
}

// validateLogging validates logging configuration.
func validateLogging(cfg *LoggingConfig) []FieldError {
	var errs []FieldError

	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level %q (valid: debug, info, warn, error)", cfg.Level),
		})
	}
	switch cfg.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid format %q (valid: json, text)", cfg.Format),
		})
	}

	return errs
}

// validateMetrics validates metrics configuration.
func validateMetrics(cfg *MetricsConfig) []FieldError {
	var errs []FieldError

	if !cfg.Enabled {
		return errs
	}
	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "metrics.listen_address",
			Message: "listen address is required when metrics are enabled",
		})
	}
	if cfg.Path == "" || !strings.HasPrefix(cfg.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "metrics.path",
			Message: "path must start with /",
		})
	}

	return errs
}

// validateTracing validates tracing configuration.
func validateTracing(cfg *TracingConfig) []FieldError {
	var errs []FieldError

	if !cfg.Enabled {
		return errs
	}

	switch cfg.Sampler {
	case "always", "never", "ratio":
	default:
		errs = append(errs, FieldError{
			Field:   "tracing.sampler",
			Message: fmt.Sprintf("invalid sampler %q (valid: always, never, ratio)", cfg.Sampler),
		})
	}
	if cfg.Sampler == "ratio" && (cfg.SampleRatio < 0 || cfg.SampleRatio > 1) {
		errs = append(errs, FieldError{
			Field:   "tracing.sample_ratio",
			Message: fmt.Sprintf("sample ratio must be between 0.0 and 1.0, got %g", cfg.SampleRatio),
		})
	}
	if cfg.Endpoint == "" {
		errs = append(errs, FieldError{
			Field:   "tracing.endpoint",
			Message: "endpoint is required when tracing is enabled",
		})
	}
	if cfg.ServiceName == "" {
		errs = append(errs, FieldError{
			Field:   "tracing.service_name",
			Message: "service name is required when tracing is enabled",
		})
	}

	return errs
}

// validateHealth validates health check configuration.
func validateHealth(cfg *HealthConfig) []FieldError {
	var errs []FieldError

	if !cfg.Enabled {
		return errs
	}
	if cfg.LivenessPath == "" || !strings.HasPrefix(cfg.LivenessPath, "/") {
		errs = append(errs, FieldError{
			Field:   "health.liveness_path",
			Message: "liveness path must start with /",
		})
	}
	if cfg.ReadinessPath == "" || !strings.HasPrefix(cfg.ReadinessPath, "/") {
		errs = append(errs, FieldError{
			Field:   "health.readiness_path",
			Message: "readiness path must start with /",
		})
	}
	if cfg.LivenessPath == cfg.ReadinessPath {
		errs = append(errs, FieldError{
			Field:   "health.readiness_path",
			Message: "liveness and readiness paths must differ",
		})
	}
	if cfg.CheckTimeout <= 0 {
		errs = append(errs, FieldError{
			Field:   "health.check_timeout",
			Message: "check timeout must be positive",
		})
	}

	return errs
}
