package content

import (
	"regexp"
	"strings"
)

// Sanitizer strips markdown artifacts from model output.
//
// Models emit code fences and inline code spans even when the prompt
// asks for plain text, and IRC renders backticks literally. Patterns
// are compiled once at construction.
type Sanitizer struct {
	fences *regexp.Regexp
	blanks *regexp.Regexp
}

// NewSanitizer creates a sanitizer with compiled patterns.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		// Fence with an optional language tag, e.g. ```python or ```.
		fences: regexp.MustCompile("```[a-zA-Z0-9_+#.-]*"),
		blanks: regexp.MustCompile(`\n{3,}`),
	}
}

// Sanitize returns text with code fences and inline backticks removed,
// runs of blank lines collapsed to one, and surrounding whitespace
// trimmed. The fenced content itself is kept.
func (s *Sanitizer) Sanitize(text string) string {
	if text == "" {
		return ""
	}

	text = s.fences.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "`", "")
	text = s.blanks.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
