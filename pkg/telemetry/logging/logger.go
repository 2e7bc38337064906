package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"mercator-hq/europa/pkg/config"
)

// LogFormat selects the handler wire format.
type LogFormat string

// Output formats accepted by Config.Format.
const (
	FormatJSON LogFormat = "json"
	FormatText LogFormat = "text"
)

// Logger wraps log/slog with credential redaction and context field
// extraction (request IDs and friends). The zero cost of a disabled
// level is preserved: redaction only runs for entries that will be
// written.
type Logger struct {
	slog     *slog.Logger
	redactor *Redactor
}

// Config controls level, format, and redaction for a Logger.
type Config struct {
	Level         string    // minimum level: debug, info, warn, error (default info)
	Format        string    // json or text (default json)
	AddSource     bool      // annotate entries with file:line
	RedactSecrets bool      // scrub API keys and tokens from field values
	Writer        io.Writer // destination, default os.Stdout
}

// New creates a Logger. The zero Config is valid: info level, JSON
// output, stdout, no redaction.
func New(cfg Config) (*Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	format, err := parseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: level, AddSource: cfg.AddSource}

	var h slog.Handler
	switch format {
	case FormatText:
		h = slog.NewTextHandler(w, opts)
	default:
		h = slog.NewJSONHandler(w, opts)
	}

	l := &Logger{slog: slog.New(h)}
	if cfg.RedactSecrets {
		l.redactor = NewRedactor()
	}
	return l, nil
}

// NewFromConfig creates a Logger from the application logging section,
// writing to stdout.
func NewFromConfig(cfg *config.LoggingConfig) (*Logger, error) {
	return New(Config{
		Level:         cfg.Level,
		Format:        cfg.Format,
		AddSource:     cfg.AddSource,
		RedactSecrets: cfg.RedactSecrets,
	})
}

// Debug logs msg at debug level.
func (l *Logger) Debug(msg string, args ...any) { l.log(context.Background(), slog.LevelDebug, msg, args...) }

// Info logs msg at info level.
func (l *Logger) Info(msg string, args ...any) { l.log(context.Background(), slog.LevelInfo, msg, args...) }

// Warn logs msg at warn level.
func (l *Logger) Warn(msg string, args ...any) { l.log(context.Background(), slog.LevelWarn, msg, args...) }

// Error logs msg at error level.
func (l *Logger) Error(msg string, args ...any) { l.log(context.Background(), slog.LevelError, msg, args...) }

// DebugContext logs a debug message with the context's log fields.
func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelDebug, msg, append(extractContextFields(ctx), args...)...)
}

// InfoContext logs an info message with the context's log fields.
func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelInfo, msg, append(extractContextFields(ctx), args...)...)
}

// WarnContext logs a warning message with the context's log fields.
func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelWarn, msg, append(extractContextFields(ctx), args...)...)
}

// ErrorContext logs an error message with the context's log fields.
func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelError, msg, append(extractContextFields(ctx), args...)...)
}

func (l *Logger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if !l.slog.Enabled(ctx, level) {
		return
	}
	if l.redactor != nil {
		args = l.redactor.RedactArgs(args...)
	}
	l.slog.Log(ctx, level, msg, args...)
}

// With returns a logger that adds args to every entry. Values pass
// through the redactor once, here, not per entry.
func (l *Logger) With(args ...any) *Logger {
	if l.redactor != nil {
		args = l.redactor.RedactArgs(args...)
	}
	return &Logger{slog: l.slog.With(args...), redactor: l.redactor}
}

// Component returns a logger for a named subsystem. All entries carry
// a component field ("irc", "bot", "limits", ...).
func (l *Logger) Component(name string) *Logger {
	return l.With("component", name)
}

// WithContext returns a logger carrying the context's log fields.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	args := extractContextFields(ctx)
	if len(args) == 0 {
		return l
	}
	return l.With(args...)
}

// Slog exposes the underlying slog.Logger for libraries that want one.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

var levelNames = map[string]slog.Level{
	"":        slog.LevelInfo,
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

func parseLevel(s string) (slog.Level, error) {
	lvl, ok := levelNames[strings.ToLower(s)]
	if !ok {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

func parseFormat(s string) (LogFormat, error) {
	switch strings.ToLower(s) {
	case "json", "":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	default:
		return FormatJSON, fmt.Errorf("unknown log format %q", s)
	}
}
