// Package config loads and validates Europa's YAML configuration.
//
// Defaults from defaults.go fill every field a file leaves out,
// environment variables override both, and the merged result is
// validated before anything else starts. Precedence, lowest first:
//
//  1. built-in defaults
//  2. the YAML file
//  3. EUROPA_* environment variables
//
// # Loading
//
// LoadConfig reads and validates a file as-is. LoadConfigWithEnvOverrides
// additionally applies environment overrides and then revalidates, so an
// override can never smuggle in an out-of-range value:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// Override names follow EUROPA_SECTION_FIELD:
//
//   - EUROPA_IRC_SERVER overrides irc.server
//   - EUROPA_PROVIDER_API_KEY overrides provider.api_key
//   - EUROPA_LIMITS_COOLDOWN overrides limits.cooldown
//
// Overrides that fail to parse for typed fields (ports, durations,
// floats) are ignored rather than fatal.
//
// # Process-wide access
//
// The cmd wiring passes *Config explicitly. For code that cannot take a
// parameter there is a guarded singleton:
//
//	if err := config.Initialize("config.yaml"); err != nil {
//		log.Fatal(err)
//	}
//	cfg := config.GetConfig()
//
// Tests should inject explicit Config values (SetConfig, or plain
// parameters) instead of going through Initialize.
//
// # Validation
//
// Validate checks required fields (IRC server, nick, channels, provider
// model), ranges (ports, temperature, token budgets), and cross-field
// rules such as the per-user daily limit never exceeding the global
// one. Failures carry field paths:
//
//	configuration validation failed with 2 errors:
//	  - irc.channels: at least one channel is required
//	  - limits.user_per_day: per-user per-day limit must be positive
//
// # A minimal file
//
//	irc:
//	  server: "irc.example.com"
//	  port: 6697
//	  nick: "MistralBot"
//	  channels: ["#help", "#welcome"]
//
//	limits:
//	  global_per_minute: 10
//	  global_per_day: 1000
//	  user_per_day: 50
//	  cooldown: "3s"
//
//	provider:
//	  model: "mistral-tiny"
//	  max_tokens: 300
//	  temperature: 0.7
//
// The loaded Config is immutable for the process lifetime. Prompt
// templates are the only hot-reloadable surface and live in the prompts
// package.
package config
