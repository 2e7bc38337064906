// Package logging wraps log/slog with the two things this bot cannot
// log without: credential redaction and per-request context fields.
//
// A Logger is built once from config and handed down; subsystems tag
// themselves with Component, and request handling stores request ID,
// nick, channel, and command on the context so every later log line
// carries them:
//
//	logger, err := logging.New(logging.Config{
//	    Level:         "info",
//	    Format:        "json",
//	    RedactSecrets: true,
//	})
//
//	ircLog := logger.Component("irc")
//	ircLog.Info("connected", "server", "irc.libera.chat")
//
//	ctx = logging.WithRequestID(ctx, "req-123")
//	ctx = logging.WithNick(ctx, "alice")
//	logger.InfoContext(ctx, "admitted") // carries request_id and nick
//
// # Redaction
//
// With RedactSecrets on, values under credential-looking keys
// (api_key, token, password, ...) collapse to a 4-character prefix
// plus "***", and string values are scanned for Authorization headers,
// key assignments, and URL userinfo. The redactor exists to keep the
// provider API key out of log output no matter which call site leaks
// it into a field.
//
// The level check runs before redaction, so suppressed messages never
// touch the regex patterns.
package logging
