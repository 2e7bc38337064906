package config

import "time"

// Default values for configuration fields.
const (
	// IRC defaults
	DefaultIRCServer              = "irc.example.com"
	DefaultIRCPort                = 6697
	DefaultIRCNick                = "MistralBot"
	DefaultIRCRealname            = "MansionNet AI Assistant Bot"
	DefaultIRCMessageDelay        = 500 * time.Millisecond
	DefaultIRCJoinDelay           = 1 * time.Second
	DefaultIRCReconnectDelay      = 30 * time.Second
	DefaultIRCRegistrationTimeout = 60 * time.Second
	DefaultIRCTLSEnabled          = true
	DefaultIRCTLSMinVersion       = "1.2"
	DefaultIRCTLSHandshakeTimeout = 10 * time.Second

	// Limits defaults
	DefaultGlobalPerMinute = 10
	DefaultGlobalPerDay    = 1000
	DefaultUserPerDay      = 50
	DefaultCooldown        = 3 * time.Second
	DefaultEvictAfter      = 48 * time.Hour
	DefaultEvictSchedule   = "@hourly"

	// Provider defaults
	DefaultProviderName        = "mistral"
	DefaultProviderBaseURL     = "https://api.mistral.ai/v1"
	DefaultProviderModel       = "mistral-tiny"
	DefaultProviderMaxTokens   = 300
	DefaultProviderTemperature = 0.7
	DefaultProviderTimeout     = 30 * time.Second

	// Prompts defaults
	DefaultPromptsDebounce = 100 * time.Millisecond

	// Chunking defaults
	DefaultMaxLineLength = 400
	DefaultSafetyMargin  = 10
	DefaultCodeGroupSize = 4

	// Usage defaults
	DefaultUsageEnabled              = true
	DefaultUsageBackend              = "sqlite"
	DefaultUsageSQLitePath           = "data/usage.db"
	DefaultUsageSQLiteBusyTimeout    = 5 * time.Second
	DefaultUsageRecorderBufferSize   = 1000
	DefaultUsageRecorderDrainTimeout = 5 * time.Second
	DefaultUsageRetentionDays        = 90
	DefaultUsageRetentionSchedule    = "0 3 * * *"
	DefaultEstimationRatio           = 4.0
	DefaultPricingPrompt             = 0.00025 // USD per 1K tokens
	DefaultPricingCompletion         = 0.00025

	// Logging defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "json"
	DefaultLoggingRedactSecrets = true

	// Metrics defaults
	DefaultMetricsEnabled       = true
	DefaultMetricsListenAddress = "127.0.0.1:9090"
	DefaultMetricsPath          = "/metrics"

	// Tracing defaults
	DefaultTracingEnabled       = false
	DefaultTracingSampler       = "ratio"
	DefaultTracingSampleRatio   = 0.1
	DefaultTracingEndpoint      = "localhost:4317"
	DefaultTracingServiceName   = "europa"
	DefaultTracingInsecure      = true
	DefaultTracingExportTimeout = 10 * time.Second

	// Health defaults
	DefaultHealthEnabled       = true
	DefaultHealthLivenessPath  = "/healthz"
	DefaultHealthReadinessPath = "/readyz"
	DefaultHealthCheckTimeout  = 5 * time.Second
)

// DefaultIRCChannels returns the default channel list.
func DefaultIRCChannels() []string {
	return []string{"#help", "#welcome"}
}

// Default returns a fully populated configuration with every field at
// its default value. LoadConfig parses YAML over this base, so boolean
// fields that default to true stay true unless the file sets them
// false explicitly.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)

	cfg.IRC.TLS.Enabled = DefaultIRCTLSEnabled
	cfg.Usage.Enabled = DefaultUsageEnabled
	cfg.Logging.RedactSecrets = DefaultLoggingRedactSecrets
	cfg.Metrics.Enabled = DefaultMetricsEnabled
	cfg.Tracing.Insecure = DefaultTracingInsecure
	cfg.Health.Enabled = DefaultHealthEnabled

	return cfg
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
//
// Boolean fields are left alone: false is indistinguishable from unset
// here, so their true defaults are seeded by Default before YAML
// parsing instead.
func ApplyDefaults(cfg *Config) {
	// IRC defaults
	if cfg.IRC.Server == "" {
		cfg.IRC.Server = DefaultIRCServer
	}
	if cfg.IRC.Port == 0 {
		cfg.IRC.Port = DefaultIRCPort
	}
	if cfg.IRC.Nick == "" {
		cfg.IRC.Nick = DefaultIRCNick
	}
	if cfg.IRC.Realname == "" {
		cfg.IRC.Realname = DefaultIRCRealname
	}
	if len(cfg.IRC.Channels) == 0 {
		cfg.IRC.Channels = DefaultIRCChannels()
	}
	if cfg.IRC.MessageDelay == 0 {
		cfg.IRC.MessageDelay = DefaultIRCMessageDelay
	}
	if cfg.IRC.JoinDelay == 0 {
		cfg.IRC.JoinDelay = DefaultIRCJoinDelay
	}
	if cfg.IRC.ReconnectDelay == 0 {
		cfg.IRC.ReconnectDelay = DefaultIRCReconnectDelay
	}
	if cfg.IRC.RegistrationTimeout == 0 {
		cfg.IRC.RegistrationTimeout = DefaultIRCRegistrationTimeout
	}
	if cfg.IRC.TLS.ServerName == "" {
		cfg.IRC.TLS.ServerName = cfg.IRC.Server
	}
	if cfg.IRC.TLS.MinVersion == "" {
		cfg.IRC.TLS.MinVersion = DefaultIRCTLSMinVersion
	}
	if cfg.IRC.TLS.HandshakeTimeout == 0 {
		cfg.IRC.TLS.HandshakeTimeout = DefaultIRCTLSHandshakeTimeout
	}

	// Limits defaults
	if cfg.Limits.GlobalPerMinute == 0 {
		cfg.Limits.GlobalPerMinute = DefaultGlobalPerMinute
	}
	if cfg.Limits.GlobalPerDay == 0 {
		cfg.Limits.GlobalPerDay = DefaultGlobalPerDay
	}
	if cfg.Limits.UserPerDay == 0 {
		cfg.Limits.UserPerDay = DefaultUserPerDay
	}
	if cfg.Limits.Cooldown == 0 {
		cfg.Limits.Cooldown = DefaultCooldown
	}
	if cfg.Limits.EvictAfter == 0 {
		cfg.Limits.EvictAfter = DefaultEvictAfter
	}
	if cfg.Limits.EvictSchedule == "" {
		cfg.Limits.EvictSchedule = DefaultEvictSchedule
	}

	// Provider defaults
	if cfg.Provider.Name == "" {
		cfg.Provider.Name = DefaultProviderName
	}
	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = DefaultProviderBaseURL
	}
	if cfg.Provider.Model == "" {
		cfg.Provider.Model = DefaultProviderModel
	}
	if cfg.Provider.MaxTokens == 0 {
		cfg.Provider.MaxTokens = DefaultProviderMaxTokens
	}
	if cfg.Provider.Temperature == 0 {
		cfg.Provider.Temperature = DefaultProviderTemperature
	}
	if cfg.Provider.Timeout == 0 {
		cfg.Provider.Timeout = DefaultProviderTimeout
	}

	// Prompts defaults
	if cfg.Prompts.DebounceInterval == 0 {
		cfg.Prompts.DebounceInterval = DefaultPromptsDebounce
	}

	// Chunking defaults
	if cfg.Chunking.MaxLineLength == 0 {
		cfg.Chunking.MaxLineLength = DefaultMaxLineLength
	}
	if cfg.Chunking.SafetyMargin == 0 {
		cfg.Chunking.SafetyMargin = DefaultSafetyMargin
	}
	if cfg.Chunking.CodeGroupSize == 0 {
		cfg.Chunking.CodeGroupSize = DefaultCodeGroupSize
	}

	// Usage defaults
	if cfg.Usage.Backend == "" {
		cfg.Usage.Backend = DefaultUsageBackend
	}
	if cfg.Usage.SQLite.Path == "" {
		cfg.Usage.SQLite.Path = DefaultUsageSQLitePath
	}
	if cfg.Usage.SQLite.BusyTimeout == 0 {
		cfg.Usage.SQLite.BusyTimeout = DefaultUsageSQLiteBusyTimeout
	}
	if cfg.Usage.Recorder.BufferSize == 0 {
		cfg.Usage.Recorder.BufferSize = DefaultUsageRecorderBufferSize
	}
	if cfg.Usage.Recorder.DrainTimeout == 0 {
		cfg.Usage.Recorder.DrainTimeout = DefaultUsageRecorderDrainTimeout
	}
	if cfg.Usage.Retention.Days == 0 {
		cfg.Usage.Retention.Days = DefaultUsageRetentionDays
	}
	if cfg.Usage.Retention.PruneSchedule == "" {
		cfg.Usage.Retention.PruneSchedule = DefaultUsageRetentionSchedule
	}
	if len(cfg.Usage.Estimation.Models) == 0 {
		cfg.Usage.Estimation.Models = map[string]float64{
			"default": DefaultEstimationRatio,
		}
	}
	if len(cfg.Usage.Pricing.Models) == 0 {
		cfg.Usage.Pricing.Models = map[string]ModelCost{
			"default": {
				Prompt:     DefaultPricingPrompt,
				Completion: DefaultPricingCompletion,
			},
		}
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	// Metrics defaults
	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	// Tracing defaults
	if cfg.Tracing.Sampler == "" {
		cfg.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Tracing.SampleRatio == 0 {
		cfg.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Tracing.Endpoint == "" {
		cfg.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Tracing.ExportTimeout == 0 {
		cfg.Tracing.ExportTimeout = DefaultTracingExportTimeout
	}

	// Health defaults
	if cfg.Health.LivenessPath == "" {
		cfg.Health.LivenessPath = DefaultHealthLivenessPath
	}
	if cfg.Health.ReadinessPath == "" {
		cfg.Health.ReadinessPath = DefaultHealthReadinessPath
	}
	if cfg.Health.CheckTimeout == 0 {
		cfg.Health.CheckTimeout = DefaultHealthCheckTimeout
	}
}
