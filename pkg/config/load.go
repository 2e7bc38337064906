package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// Parsing starts from the full default configuration, so fields absent
// from the file keep their defaults (including booleans that default to
// true). The result is validated before being returned.
//
// The configuration is not modified by environment variables; use
// LoadConfigWithEnvOverrides for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	// Catch zero values the file may have introduced explicitly.
	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention EUROPA_SECTION_FIELD (e.g., EUROPA_IRC_SERVER).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Start from default values
// 2. Apply values from the YAML file
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	// Re-validate after overrides
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format EUROPA_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// IRC overrides
	setString("EUROPA_IRC_SERVER", &cfg.IRC.Server)
	setInt("EUROPA_IRC_PORT", &cfg.IRC.Port)
	setString("EUROPA_IRC_NICK", &cfg.IRC.Nick)
	setString("EUROPA_IRC_REALNAME", &cfg.IRC.Realname)
	if val := os.Getenv("EUROPA_IRC_CHANNELS"); val != "" {
		cfg.IRC.Channels = splitList(val)
	}
	setDuration("EUROPA_IRC_MESSAGE_DELAY", &cfg.IRC.MessageDelay)
	setDuration("EUROPA_IRC_JOIN_DELAY", &cfg.IRC.JoinDelay)
	setDuration("EUROPA_IRC_RECONNECT_DELAY", &cfg.IRC.ReconnectDelay)
	setBool("EUROPA_IRC_TLS_ENABLED", &cfg.IRC.TLS.Enabled)
	setBool("EUROPA_IRC_TLS_INSECURE_SKIP_VERIFY", &cfg.IRC.TLS.InsecureSkipVerify)

	// Limits overrides
	setInt("EUROPA_LIMITS_GLOBAL_PER_MINUTE", &cfg.Limits.GlobalPerMinute)
	setInt("EUROPA_LIMITS_GLOBAL_PER_DAY", &cfg.Limits.GlobalPerDay)
	setInt("EUROPA_LIMITS_USER_PER_DAY", &cfg.Limits.UserPerDay)
	setDuration("EUROPA_LIMITS_COOLDOWN", &cfg.Limits.Cooldown)
	setDuration("EUROPA_LIMITS_EVICT_AFTER", &cfg.Limits.EvictAfter)
	setString("EUROPA_LIMITS_EVICT_SCHEDULE", &cfg.Limits.EvictSchedule)

	// Provider overrides
	setString("EUROPA_PROVIDER_BASE_URL", &cfg.Provider.BaseURL)
	setString("EUROPA_PROVIDER_API_KEY", &cfg.Provider.APIKey)
	setString("EUROPA_PROVIDER_API_KEY_FILE", &cfg.Provider.APIKeyFile)
	setString("EUROPA_PROVIDER_ENV_FILE", &cfg.Provider.EnvFile)
	setString("EUROPA_PROVIDER_MODEL", &cfg.Provider.Model)
	setInt("EUROPA_PROVIDER_MAX_TOKENS", &cfg.Provider.MaxTokens)
	setFloat("EUROPA_PROVIDER_TEMPERATURE", &cfg.Provider.Temperature)
	setDuration("EUROPA_PROVIDER_TIMEOUT", &cfg.Provider.Timeout)

	// Prompts overrides
	setString("EUROPA_PROMPTS_PATH", &cfg.Prompts.Path)
	setBool("EUROPA_PROMPTS_WATCH", &cfg.Prompts.Watch)

	// Chunking overrides
	setInt("EUROPA_CHUNKING_MAX_LINE_LENGTH", &cfg.Chunking.MaxLineLength)
	setInt("EUROPA_CHUNKING_SAFETY_MARGIN", &cfg.Chunking.SafetyMargin)
	setInt("EUROPA_CHUNKING_CODE_GROUP_SIZE", &cfg.Chunking.CodeGroupSize)

	// Usage overrides
	setBool("EUROPA_USAGE_ENABLED", &cfg.Usage.Enabled)
	setString("EUROPA_USAGE_BACKEND", &cfg.Usage.Backend)
	setString("EUROPA_USAGE_SQLITE_PATH", &cfg.Usage.SQLite.Path)
	setInt("EUROPA_USAGE_RETENTION_DAYS", &cfg.Usage.Retention.Days)
	setString("EUROPA_USAGE_RETENTION_PRUNE_SCHEDULE", &cfg.Usage.Retention.PruneSchedule)

	// Logging overrides
	setString("EUROPA_LOGGING_LEVEL", &cfg.Logging.Level)
	setString("EUROPA_LOGGING_FORMAT", &cfg.Logging.Format)
	setBool("EUROPA_LOGGING_ADD_SOURCE", &cfg.Logging.AddSource)
	setBool("EUROPA_LOGGING_REDACT_SECRETS", &cfg.Logging.RedactSecrets)

	// Metrics overrides
	setBool("EUROPA_METRICS_ENABLED", &cfg.Metrics.Enabled)
	setString("EUROPA_METRICS_LISTEN_ADDRESS", &cfg.Metrics.ListenAddress)
	setString("EUROPA_METRICS_PATH", &cfg.Metrics.Path)

	// Tracing overrides
	setBool("EUROPA_TRACING_ENABLED", &cfg.Tracing.Enabled)
	setString("EUROPA_TRACING_SAMPLER", &cfg.Tracing.Sampler)
	setFloat("EUROPA_TRACING_SAMPLE_RATIO", &cfg.Tracing.SampleRatio)
	setString("EUROPA_TRACING_ENDPOINT", &cfg.Tracing.Endpoint)
	setString("EUROPA_TRACING_SERVICE_NAME", &cfg.Tracing.ServiceName)

	// Health overrides
	setBool("EUROPA_HEALTH_ENABLED", &cfg.Health.Enabled)
}

// setString overrides dst when the environment variable is set and non-empty.
func setString(key string, dst *string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

// setInt overrides dst when the environment variable parses as an integer.
func setInt(key string, dst *int) {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

// setFloat overrides dst when the environment variable parses as a float.
func setFloat(key string, dst *float64) {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			*dst = f
		}
	}
}

// setBool overrides dst when the environment variable parses as a boolean.
func setBool(key string, dst *bool) {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

// setDuration overrides dst when the environment variable parses as a duration.
func setDuration(key string, dst *time.Duration) {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}

// splitList splits a comma-separated environment value into trimmed,
// non-empty elements.
func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
