package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"
)

// selfRendering implements the WriteText hook the text formatter honors.
type selfRendering struct {
	text string
	err  error
}

func (s selfRendering) WriteText(w io.Writer) error {
	if s.err != nil {
		return s.err
	}
	_, err := io.WriteString(w, s.text)
	return err
}

func TestParseOutputFormat(t *testing.T) {
	good := map[string]OutputFormat{
		"":     FormatText,
		"text": FormatText,
		"json": FormatJSON,
	}
	for input, want := range good {
		got, err := ParseOutputFormat(input)
		if err != nil {
			t.Errorf("ParseOutputFormat(%q) error: %v", input, err)
		}
		if got != want {
			t.Errorf("ParseOutputFormat(%q) = %q, want %q", input, got, want)
		}
	}

	// csv belongs to the usage exporter, not the command formatters.
	for _, input := range []string{"yaml", "csv", "TEXT"} {
		if _, err := ParseOutputFormat(input); err == nil {
			t.Errorf("ParseOutputFormat(%q) accepted", input)
		}
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON).(*JSONFormatter); !ok {
		t.Error("FormatJSON did not yield a JSONFormatter")
	}
	if _, ok := NewFormatter(FormatText).(*TextFormatter); !ok {
		t.Error("FormatText did not yield a TextFormatter")
	}
	if _, ok := NewFormatter("").(*TextFormatter); !ok {
		t.Error("empty format did not default to text")
	}
}

func TestTextFormatter_PlainValue(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextFormatter{}).FormatTo(&buf, "42 records"); err != nil {
		t.Fatalf("FormatTo: %v", err)
	}
	if got := buf.String(); got != "42 records\n" {
		t.Errorf("output = %q, want %q", got, "42 records\n")
	}
}

func TestTextFormatter_SelfRenderingValue(t *testing.T) {
	var buf bytes.Buffer
	data := selfRendering{text: "Total requests: 7\nDelivered: 5\n"}

	if err := (&TextFormatter{}).FormatTo(&buf, data); err != nil {
		t.Fatalf("FormatTo: %v", err)
	}
	if buf.String() != data.text {
		t.Errorf("output = %q, want the type's own layout %q", buf.String(), data.text)
	}
}

func TestTextFormatter_SelfRenderingError(t *testing.T) {
	failure := errors.New("render failed")
	err := (&TextFormatter{}).FormatTo(io.Discard, selfRendering{err: failure})
	if !errors.Is(err, failure) {
		t.Errorf("FormatTo error = %v, want %v", err, failure)
	}
}

func TestJSONFormatter(t *testing.T) {
	type summary struct {
		Nick  string `json:"nick"`
		Count int    `json:"count"`
	}
	data := summary{Nick: "alice", Count: 42}

	for _, indent := range []bool{false, true} {
		t.Run(fmt.Sprintf("indent=%v", indent), func(t *testing.T) {
			var buf bytes.Buffer
			if err := (&JSONFormatter{Indent: indent}).FormatTo(&buf, data); err != nil {
				t.Fatalf("FormatTo: %v", err)
			}

			var got summary
			if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatalf("output %q is not valid JSON: %v", buf.String(), err)
			}
			if got != data {
				t.Errorf("round trip = %+v, want %+v", got, data)
			}

			indented := bytes.Contains(buf.Bytes(), []byte("\n  "))
			if indented != indent {
				t.Errorf("indented = %v, want %v in %q", indented, indent, buf.String())
			}
		})
	}
}
