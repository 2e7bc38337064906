package logging

import (
	"fmt"
	"regexp"
	"strings"
)

// Redactor scrubs credentials from log output. It is aimed at the
// secrets this process actually holds: the provider API key and the
// Authorization headers derived from it.
type Redactor struct {
	// patterns maps pattern names to compiled regex patterns
	patterns map[string]*redactPattern
}

// redactPattern contains a compiled regex and its replacement.
type redactPattern struct {
	regex       *regexp.Regexp
	replacement string
}

// NewRedactor creates a Redactor with the default credential patterns.
func NewRedactor() *Redactor {
	return &Redactor{patterns: defaultPatterns()}
}

// defaultPatterns returns the built-in redaction patterns.
func defaultPatterns() map[string]*redactPattern {
	return map[string]*redactPattern{
		"bearer_token": {
			regex:       regexp.MustCompile(`(?i)Bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
			replacement: "Bearer ***",
		},
		"api_key_assignment": {
			regex:       regexp.MustCompile(`(?i)(api[-_]?key|apikey)["':=\s]+[a-zA-Z0-9._-]{6,}`),
			replacement: "api_key=***",
		},
		"password_assignment": {
			regex:       regexp.MustCompile(`(?i)password["':=\s]+\S+`),
			replacement: "password=***",
		},
		"url_userinfo": {
			regex:       regexp.MustCompile(`://[^/\s:@]+:[^/\s:@]+@`),
			replacement: "://***:***@",
		},
	}
}

// RedactString applies all patterns to a string.
func (r *Redactor) RedactString(s string) string {
	for _, p := range r.patterns {
		s = p.regex.ReplaceAllString(s, p.replacement)
	}
	return s
}

// RedactArgs walks slog-style key-value pairs and redacts values whose
// keys look sensitive, plus any string value matching a credential
// pattern.
func (r *Redactor) RedactArgs(args ...any) []any {
	redacted := make([]any, len(args))
	copy(redacted, args)

	for i := 0; i+1 < len(redacted); i += 2 {
		key, ok := redacted[i].(string)
		if !ok {
			continue
		}

		if isSensitiveKey(key) {
			redacted[i+1] = redactValue(redacted[i+1])
			continue
		}

		if s, ok := redacted[i+1].(string); ok {
			redacted[i+1] = r.RedactString(s)
		}
	}

	return redacted
}

// sensitiveKeys are field names whose values are always redacted.
var sensitiveKeys = []string{
	"api_key",
	"apikey",
	"authorization",
	"bearer",
	"credential",
	"password",
	"secret",
	"token",
}

// isSensitiveKey reports whether a field name looks like it carries a
// credential.
func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(lower, sensitive) {
			return true
		}
	}
	return false
}

// redactValue replaces a sensitive value, keeping a short prefix so
// operators can tell keys apart.
func redactValue(v any) any {
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprintf("%v", v)
	}
	if len(s) > 8 {
		return s[:4] + "***"
	}
	return "***"
}

// RedactAPIKey redacts an API key, keeping the first 4 characters.
func RedactAPIKey(key string) string {
	if len(key) > 8 {
		return key[:4] + "***"
	}
	if key == "" {
		return ""
	}
	return "***"
}
