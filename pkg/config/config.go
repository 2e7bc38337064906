package config

import "time"

// Config is the root configuration structure for Europa.
// It contains all configuration sections for the IRC transport, quota
// limits, completion provider, prompt templates, response chunking,
// usage auditing, and telemetry settings.
type Config struct {
	// IRC contains IRC connection configuration including server address,
	// TLS settings, identity, channels, and pacing.
	IRC IRCConfig `yaml:"irc"`

	// Limits contains quota ledger configuration: global and per-user
	// request budgets, cooldown, and stale-state eviction.
	Limits LimitsConfig `yaml:"limits"`

	// Provider contains configuration for the completion API integration.
	Provider ProviderConfig `yaml:"provider"`

	// Prompts contains prompt template configuration including the
	// optional templates file and hot-reload settings.
	Prompts PromptsConfig `yaml:"prompts"`

	// Chunking contains response chunking configuration.
	Chunking ChunkingConfig `yaml:"chunking"`

	// Usage contains usage audit configuration including storage backend,
	// recorder, retention, and accounting settings.
	Usage UsageConfig `yaml:"usage"`

	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection and ops server configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`

	// Health contains health check endpoint configuration.
	Health HealthConfig `yaml:"health"`
}

// IRCConfig contains configuration for the IRC connection.
type IRCConfig struct {
	// Server is the IRC server hostname.
	// Default: "irc.example.com"
	Server string `yaml:"server"`

	// Port is the IRC server port. The standard TLS port is 6697.
	// Default: 6697
	Port int `yaml:"port"`

	// TLS contains TLS settings for the connection.
	TLS IRCTLSConfig `yaml:"tls"`

	// Nick is the bot's nickname. If the server reports the nick in use
	// (433), an underscore is appended and registration retried.
	// Default: "MistralBot"
	Nick string `yaml:"nick"`

	// Realname is the real-name field sent in the USER command.
	// Default: "MansionNet AI Assistant Bot"
	Realname string `yaml:"realname"`

	// Channels is the list of channels to join after registration.
	// Commands are only accepted from these channels.
	// Default: ["#help", "#welcome"]
	Channels []string `yaml:"channels"`

	// MessageDelay is the pause between consecutive outbound PRIVMSG
	// lines, keeping the bot under server flood limits.
	// Default: 500ms
	MessageDelay time.Duration `yaml:"message_delay"`

	// JoinDelay is the pause between consecutive JOIN commands.
	// Default: 1s
	JoinDelay time.Duration `yaml:"join_delay"`

	// ReconnectDelay is the fixed pause before a reconnection attempt
	// after the connection is lost.
	// Default: 30s
	ReconnectDelay time.Duration `yaml:"reconnect_delay"`

	// RegistrationTimeout is the maximum time to wait for the server
	// welcome (001) after sending NICK/USER.
	// Default: 60s
	RegistrationTimeout time.Duration `yaml:"registration_timeout"`
}

// IRCTLSConfig contains TLS settings for the IRC connection.
type IRCTLSConfig struct {
	// Enabled controls whether the connection uses TLS.
	// Plaintext IRC is only appropriate for local test servers.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// InsecureSkipVerify disables server certificate verification.
	// Default: false
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`

	// ServerName overrides the hostname used for certificate
	// verification. Defaults to the server hostname.
	ServerName string `yaml:"server_name"`

	// CAFile is an optional PEM bundle of CA certificates to trust in
	// place of the system roots. For networks running a private CA.
	CAFile string `yaml:"ca_file"`

	// MinVersion is the minimum TLS version to accept.
	// Options: "1.2", "1.3"
	// Default: "1.2"
	MinVersion string `yaml:"min_version"`

	// HandshakeTimeout is the maximum duration for the TLS handshake.
	// Default: 10s
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
}

// LimitsConfig contains quota ledger configuration.
type LimitsConfig struct {
	// GlobalPerMinute is the total number of requests all users may make
	// per rolling minute window.
	// Default: 10
	GlobalPerMinute int `yaml:"global_per_minute"`

	// GlobalPerDay is the total number of requests all users may make
	// per rolling day window.
	// Default: 1000
	GlobalPerDay int `yaml:"global_per_day"`

	// UserPerDay is the number of requests a single nickname may make
	// per rolling day window.
	// Default: 50
	UserPerDay int `yaml:"user_per_day"`

	// Cooldown is the minimum pause between consecutive requests from
	// the same nickname.
	// Default: 3s
	Cooldown time.Duration `yaml:"cooldown"`

	// EvictAfter is how long a nickname's quota state may sit untouched
	// before the eviction pass removes it.
	// Default: 48h (twice the daily window)
	EvictAfter time.Duration `yaml:"evict_after"`

	// EvictSchedule is the cron schedule for the eviction pass.
	// Default: "@hourly"
	EvictSchedule string `yaml:"evict_schedule"`
}

// ProviderConfig contains configuration for the completion provider.
type ProviderConfig struct {
	// Name is the provider name used in logs and metrics.
	// Default: "mistral"
	Name string `yaml:"name"`

	// BaseURL is the base URL for the provider's API endpoint.
	// Default: "https://api.mistral.ai/v1"
	BaseURL string `yaml:"base_url"`

	// APIKey is the authentication key for the provider.
	// Usually left empty here and resolved from the MISTRAL_API_KEY
	// environment variable (or a .env file) at startup.
	APIKey string `yaml:"api_key"`

	// APIKeyFile is an optional file to read the API key from, one key
	// per file in the style of mounted container secrets. Takes
	// precedence over the environment when set.
	APIKeyFile string `yaml:"api_key_file"`

	// EnvFile is an optional .env file loaded into the process
	// environment before the key is resolved. Variables already present
	// in the real environment are not overwritten.
	EnvFile string `yaml:"env_file"`

	// Model is the model identifier sent with each completion request.
	// Default: "mistral-tiny"
	Model string `yaml:"model"`

	// MaxTokens is the completion token cap sent with each request.
	// Default: 300
	MaxTokens int `yaml:"max_tokens"`

	// Temperature is the sampling temperature (0.0 to 2.0).
	// Default: 0.7
	Temperature float64 `yaml:"temperature"`

	// Timeout is the maximum duration for a completion request,
	// including connection setup and reading the response.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`
}

// PromptsConfig contains prompt template configuration.
type PromptsConfig struct {
	// Path is an optional YAML file of prompt templates layered over the
	// built-in set. Empty runs on built-ins only.
	Path string `yaml:"path"`

	// Watch enables hot reload of the templates file on change.
	// Default: false
	Watch bool `yaml:"watch"`

	// DebounceInterval is the quiet period after a file change before
	// the templates are reloaded.
	// Default: 100ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`
}

// ChunkingConfig contains response chunking configuration.
type ChunkingConfig struct {
	// MaxLineLength is the target maximum length of an outbound IRC
	// message body in bytes, before the nick prefix is applied.
	// Default: 400
	MaxLineLength int `yaml:"max_line_length"`

	// SafetyMargin is subtracted from the chunk budget to absorb
	// server-added framing overhead.
	// Default: 10
	SafetyMargin int `yaml:"safety_margin"`

	// CodeGroupSize is the number of source code lines folded into one
	// IRC line when rendering code segments.
	// Default: 4
	CodeGroupSize int `yaml:"code_group_size"`
}

// UsageConfig contains usage audit configuration.
type UsageConfig struct {
	// Enabled controls whether usage records are written at all.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Backend selects the usage store.
	// Options: "sqlite", "memory"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite-specific settings.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Recorder contains async recorder settings.
	Recorder RecorderConfig `yaml:"recorder"`

	// Retention contains record retention settings.
	Retention RetentionConfig `yaml:"retention"`

	// Estimation contains token estimation settings used when the API
	// response carries no usage block.
	Estimation EstimationConfig `yaml:"estimation"`

	// Pricing contains per-model pricing used for cost estimates.
	Pricing PricingConfig `yaml:"pricing"`
}

// SQLiteConfig contains SQLite-specific configuration.
type SQLiteConfig struct {
	// Path is the SQLite database file path.
	// Default: "data/usage.db"
	Path string `yaml:"path"`

	// BusyTimeout is how long a write waits on a locked database before
	// failing.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RecorderConfig contains async usage recorder configuration.
type RecorderConfig struct {
	// BufferSize is the capacity of the recorder's write queue. When the
	// queue is full new records are dropped, counted in metrics.
	// Default: 1000
	BufferSize int `yaml:"buffer_size"`

	// DrainTimeout is the maximum time Close waits for queued records to
	// reach the store.
	// Default: 5s
	DrainTimeout time.Duration `yaml:"drain_timeout"`
}

// RetentionConfig contains usage record retention configuration.
type RetentionConfig struct {
	// Days is how many days of usage records to keep. Zero disables
	// pruning.
	// Default: 90
	Days int `yaml:"days"`

	// PruneSchedule is the cron schedule for the retention pruner.
	// Default: "0 3 * * *" (daily at 03:00)
	PruneSchedule string `yaml:"prune_schedule"`
}

// EstimationConfig contains token estimation configuration.
type EstimationConfig struct {
	// Models maps model name (or name prefix) to a characters-per-token
	// ratio. The "default" key is the fallback ratio.
	Models map[string]float64 `yaml:"models"`
}

// PricingConfig contains model pricing configuration.
type PricingConfig struct {
	// Models maps model name (or name prefix) to per-1K-token costs.
	// The "default" key is the fallback pricing.
	Models map[string]ModelCost `yaml:"models"`
}

// ModelCost contains pricing for a single model.
type ModelCost struct {
	// Prompt is the cost per 1K prompt tokens in USD.
	Prompt float64 `yaml:"prompt"`

	// Completion is the cost per 1K completion tokens in USD.
	Completion float64 `yaml:"completion"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactSecrets enables automatic redaction of API keys and bearer
	// tokens in log output.
	// Default: true
	RedactSecrets bool `yaml:"redact_secrets"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether the ops HTTP server exposes metrics.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address and port for the ops HTTP server,
	// which serves the metrics and health endpoints.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 0.1 (10%)
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "europa"
	ServiceName string `yaml:"service_name"`

	// Insecure disables TLS for the OTLP connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// ExportTimeout is the timeout for OTLP exports.
	// Default: 10s
	ExportTimeout time.Duration `yaml:"export_timeout"`
}

// HealthConfig contains health check endpoint configuration.
type HealthConfig struct {
	// Enabled controls whether health endpoints are served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// LivenessPath is the path for the liveness probe endpoint.
	// Default: "/healthz"
	LivenessPath string `yaml:"liveness_path"`

	// ReadinessPath is the path for the readiness probe endpoint.
	// Default: "/readyz"
	ReadinessPath string `yaml:"readiness_path"`

	// CheckTimeout is the timeout for individual component checks.
	// Default: 5s
	CheckTimeout time.Duration `yaml:"check_timeout"`
}
