// Europa is an IRC assistant bot backed by the Mistral chat completions API.
//
// It connects to an IRC network over TLS, joins its configured channels, and
// answers !ask, !code, and !help commands in-channel, providing:
//   - Per-user and global quota enforcement with cooldowns
//   - Prompt templates per command, hot-reloaded from disk
//   - IRC-safe response chunking with code block flattening
//   - SQLite usage auditing with scheduled retention pruning
//   - Prometheus metrics and health probes on a separate ops listener
//
// Usage:
//
//	# Start the bot with default configuration
//	europa run
//
//	# Start with custom configuration file
//	europa run --config /path/to/config.yaml
//
//	# Show version information
//	europa version
//
//	# Validate configuration and prompt templates
//	europa validate
//
//	# Send a single test completion through the provider
//	europa test --query "ping"
//
//	# Export usage records
//	europa usage export --time-range "2026-02-01T00:00:00Z/2026-03-01T00:00:00Z"
//
// For complete documentation, see: https://github.com/mercator-hq/europa
package main

func main() {
	Execute()
}
