package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// OutputFormat selects how a command renders its result.
type OutputFormat string

const (
	// FormatText is plain text output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat validates an --output flag value. Empty means text.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected text or json)", s)
	}
}

// Formatter renders a command result to a writer.
type Formatter interface {
	FormatTo(w io.Writer, data any) error
}

// NewFormatter returns the formatter for format, defaulting to text.
func NewFormatter(format OutputFormat) Formatter {
	if format == FormatJSON {
		return &JSONFormatter{Indent: true}
	}
	return &TextFormatter{}
}

// textRenderer lets a result type control its own text layout. Summary
// types like the usage stats implement it.
type textRenderer interface {
	WriteText(w io.Writer) error
}

// TextFormatter renders results as plain text. Types implementing
// WriteText lay themselves out; everything else goes through %v.
type TextFormatter struct{}

func (f *TextFormatter) FormatTo(w io.Writer, data any) error {
	if tr, ok := data.(textRenderer); ok {
		return tr.WriteText(w)
	}
	_, err := fmt.Fprintf(w, "%v\n", data)
	return err
}

// JSONFormatter renders results as a single JSON document.
type JSONFormatter struct {
	Indent bool
}

func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(data)
}
