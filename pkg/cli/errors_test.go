package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("invalid port")
	err := NewConfigError("/etc/europa/config.yaml", cause)

	want := "configuration error in /etc/europa/config.yaml: invalid port"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is cannot reach the wrapped cause")
	}
}

func TestCommandError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("store unavailable")
	err := NewCommandError("usage export", cause)

	want := `command "usage export" failed: store unavailable`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is cannot reach the wrapped cause")
	}
}

func TestErrorTypes_FieldsPreserved(t *testing.T) {
	cause := errors.New("boom")

	if err := NewConfigError("config.yaml", cause); err.Path != "config.yaml" || err.Err != cause {
		t.Errorf("NewConfigError stored Path=%q Err=%v", err.Path, err.Err)
	}
	if err := NewCommandError("run", cause); err.Command != "run" || err.Err != cause {
		t.Errorf("NewCommandError stored Command=%q Err=%v", err.Command, err.Err)
	}
}

// Both types must stay visible to errors.As through further wrapping.
func TestErrorTypes_AsTargets(t *testing.T) {
	wrapped := fmt.Errorf("while starting: %w", NewCommandError("run", errors.New("bind failed")))

	var cmdErr *CommandError
	if !errors.As(wrapped, &cmdErr) {
		t.Fatal("errors.As did not find the CommandError")
	}
	if cmdErr.Command != "run" {
		t.Errorf("Command = %q, want run", cmdErr.Command)
	}

	wrapped = fmt.Errorf("startup: %w", NewConfigError("europa.yaml", errors.New("bad nick")))

	var cfgErr *ConfigError
	if !errors.As(wrapped, &cfgErr) {
		t.Fatal("errors.As did not find the ConfigError")
	}
	if cfgErr.Path != "europa.yaml" {
		t.Errorf("Path = %q, want europa.yaml", cfgErr.Path)
	}
}
