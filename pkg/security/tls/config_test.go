package tls

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mercator-hq/europa/pkg/config"
)

// writeTestCA writes a self-signed CA certificate PEM to a temp file and
// returns its path.
func writeTestCA(t *testing.T) string {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	template := x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "Europa Test CA"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("failed to create certificate: %v", err)
	}

	path := filepath.Join(t.TempDir(), "ca.pem")
	pemData := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	if err := os.WriteFile(path, pemData, 0600); err != nil {
		t.Fatalf("failed to write CA file: %v", err)
	}

	return path
}

func TestClientConfig(t *testing.T) {
	tests := []struct {
		name           string
		cfg            config.IRCTLSConfig
		serverHost     string
		wantNil        bool
		wantServerName string
		wantMinVersion uint16
		wantInsecure   bool
	}{
		{
			name:       "disabled returns nil",
			cfg:        config.IRCTLSConfig{Enabled: false},
			serverHost: "irc.example.com",
			wantNil:    true,
		},
		{
			name:           "defaults",
			cfg:            config.IRCTLSConfig{Enabled: true},
			serverHost:     "irc.example.com",
			wantServerName: "irc.example.com",
			wantMinVersion: tls.VersionTLS12,
		},
		{
			name: "explicit server name wins",
			cfg: config.IRCTLSConfig{
				Enabled:    true,
				ServerName: "irc.internal.example",
			},
			serverHost:     "192.0.2.10",
			wantServerName: "irc.internal.example",
			wantMinVersion: tls.VersionTLS12,
		},
		{
			name: "min version 1.3",
			cfg: config.IRCTLSConfig{
				Enabled:    true,
				MinVersion: "1.3",
			},
			serverHost:     "irc.example.com",
			wantServerName: "irc.example.com",
			wantMinVersion: tls.VersionTLS13,
		},
		{
			name: "unknown min version falls back to 1.2",
			cfg: config.IRCTLSConfig{
				Enabled:    true,
				MinVersion: "1.0",
			},
			serverHost:     "irc.example.com",
			wantServerName: "irc.example.com",
			wantMinVersion: tls.VersionTLS12,
		},
		{
			name: "insecure skip verify carried",
			cfg: config.IRCTLSConfig{
				Enabled:            true,
				InsecureSkipVerify: true,
			},
			serverHost:     "irc.example.com",
			wantServerName: "irc.example.com",
			wantMinVersion: tls.VersionTLS12,
			wantInsecure:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tlsConfig, err := ClientConfig(&tt.cfg, tt.serverHost)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.wantNil {
				if tlsConfig != nil {
					t.Errorf("expected nil config when TLS disabled, got %v", tlsConfig)
				}
				return
			}

			if tlsConfig == nil {
				t.Fatal("expected non-nil config")
			}
			if tlsConfig.ServerName != tt.wantServerName {
				t.Errorf("expected server name %q, got %q", tt.wantServerName, tlsConfig.ServerName)
			}
			if tlsConfig.MinVersion != tt.wantMinVersion {
				t.Errorf("expected min version %d, got %d", tt.wantMinVersion, tlsConfig.MinVersion)
			}
			if tlsConfig.InsecureSkipVerify != tt.wantInsecure {
				t.Errorf("expected InsecureSkipVerify %v, got %v", tt.wantInsecure, tlsConfig.InsecureSkipVerify)
			}
		})
	}
}

func TestClientConfig_CAFile(t *testing.T) {
	caPath := writeTestCA(t)

	cfg := config.IRCTLSConfig{Enabled: true, CAFile: caPath}

	tlsConfig, err := ClientConfig(&cfg, "irc.example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tlsConfig.RootCAs == nil {
		t.Error("expected RootCAs to be set from CA file")
	}
}

func TestClientConfig_CAFile_Missing(t *testing.T) {
	cfg := config.IRCTLSConfig{
		Enabled: true,
		CAFile:  filepath.Join(t.TempDir(), "missing.pem"),
	}

	_, err := ClientConfig(&cfg, "irc.example.com")
	if err == nil {
		t.Fatal("expected error for missing CA file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to read CA file") {
		t.Errorf("expected read error, got: %v", err)
	}
}

func TestClientConfig_CAFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pem")
	if err := os.WriteFile(path, []byte("not a certificate"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := config.IRCTLSConfig{Enabled: true, CAFile: path}

	_, err := ClientConfig(&cfg, "irc.example.com")
	if err == nil {
		t.Fatal("expected error for invalid CA file, got nil")
	}
	if !strings.Contains(err.Error(), "no certificates parsed") {
		t.Errorf("expected parse error, got: %v", err)
	}
}

func TestParseTLSVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    uint16
	}{
		{name: "1.2", version: "1.2", want: tls.VersionTLS12},
		{name: "1.3", version: "1.3", want: tls.VersionTLS13},
		{name: "empty defaults to 1.2", version: "", want: tls.VersionTLS12},
		{name: "unknown defaults to 1.2", version: "ssl3", want: tls.VersionTLS12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseTLSVersion(tt.version); got != tt.want {
				t.Errorf("parseTLSVersion(%q) = %d, want %d", tt.version, got, tt.want)
			}
		})
	}
}
