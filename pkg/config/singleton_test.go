package config

import (
	"os"
	"path/filepath"
	"testing"
)

// resetGlobal clears the process-wide config before and after a test so
// singleton tests do not leak state into each other.
func resetGlobal(t *testing.T) {
	t.Helper()
	SetConfig(nil)
	t.Cleanup(func() { SetConfig(nil) })
}

func writeConfigFile(tb testing.TB, content string) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tb.Fatalf("writing config: %v", err)
	}
	return path
}

func TestInitialize(t *testing.T) {
	resetGlobal(t)

	path := writeConfigFile(t, `
irc:
  server: "irc.libera.chat"
  nick: "europabot"
logging:
  level: "info"
  format: "json"
`)

	if err := Initialize(path); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	cfg := GetConfig()
	if cfg == nil {
		t.Fatal("GetConfig returned nil after Initialize")
	}
	if cfg.IRC.Server != "irc.libera.chat" {
		t.Errorf("server = %q, want irc.libera.chat", cfg.IRC.Server)
	}
}

// The first successful Initialize wins; a later call with a different
// path must not replace the installed config.
func TestInitialize_FirstCallWins(t *testing.T) {
	resetGlobal(t)

	first := writeConfigFile(t, `
irc:
  server: "irc.first.example"
  nick: "firstbot"
`)
	second := writeConfigFile(t, `
irc:
  server: "irc.second.example"
  nick: "secondbot"
`)

	if err := Initialize(first); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := Initialize(second); err != nil {
		t.Fatalf("second Initialize: %v", err)
	}

	if got := GetConfig().IRC.Nick; got != "firstbot" {
		t.Errorf("nick = %q, want firstbot from the first Initialize", got)
	}
}

// A failed Initialize leaves the global unset so a corrected path can be
// retried.
func TestInitialize_FailureIsRetryable(t *testing.T) {
	resetGlobal(t)

	missing := filepath.Join(t.TempDir(), "nope.yaml")
	if err := Initialize(missing); err == nil {
		t.Fatal("Initialize with missing file succeeded")
	}
	if GetConfig() != nil {
		t.Fatal("failed Initialize installed a config")
	}

	path := writeConfigFile(t, `
irc:
  server: "irc.example.com"
`)
	if err := Initialize(path); err != nil {
		t.Fatalf("retry Initialize: %v", err)
	}
	if GetConfig() == nil {
		t.Error("retry did not install the config")
	}
}

func TestGetConfig_BeforeInitialize(t *testing.T) {
	resetGlobal(t)

	if cfg := GetConfig(); cfg != nil {
		t.Errorf("GetConfig before Initialize = %+v, want nil", cfg)
	}
}

func TestSetConfig(t *testing.T) {
	resetGlobal(t)

	SetConfig(NewTestConfig().WithServer("irc.testnet.example").Build())

	cfg := GetConfig()
	if cfg == nil {
		t.Fatal("GetConfig returned nil after SetConfig")
	}
	if cfg.IRC.Server != "irc.testnet.example" {
		t.Errorf("server = %q, want irc.testnet.example", cfg.IRC.Server)
	}
}
