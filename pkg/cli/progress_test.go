package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"
)

func TestSpinner_RendersAndClears(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "waiting on mistral")

	s.Start()
	time.Sleep(250 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "waiting on mistral") {
		t.Errorf("output %q missing the label", out)
	}
	if !strings.Contains(out, spinnerFrames[0]) {
		t.Errorf("output %q missing the first frame", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("output %q does not hand the cursor back at column zero", out)
	}
}

// The line blank after Stop must cover the frame and label so no
// characters linger under the next print.
func TestSpinner_ClearWidth(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "querying usage store")

	s.Start()
	s.Stop()

	out := buf.String()
	idx := strings.LastIndex(out, "\r")
	blank := out[strings.LastIndex(out[:idx], "\r")+1 : idx]
	if len(blank) < len("querying usage store") {
		t.Errorf("blank %q shorter than the label", blank)
	}
	if strings.TrimSpace(blank) != "" {
		t.Errorf("blank %q contains non-space characters", blank)
	}
}

func TestSpinner_StopWithoutStart(t *testing.T) {
	s := NewSpinner(&bytes.Buffer{}, "idle")
	s.Stop()
	s.Stop()
}

func TestSpinner_StartTwice(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "busy")

	s.Start()
	s.Start()
	s.Stop()

	// Restartable after Stop.
	s.Start()
	s.Stop()

	if buf.Len() == 0 {
		t.Error("spinner produced no output")
	}
}

func TestNewSpinner_NilWriterDefaultsToStderr(t *testing.T) {
	s := NewSpinner(nil, "x")
	if s.w != os.Stderr {
		t.Errorf("writer = %v, want os.Stderr", s.w)
	}
}
