package tls

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"mercator-hq/europa/pkg/config"
)

// ClientConfig builds the crypto/tls configuration for the outbound IRC
// connection. Returns nil when TLS is disabled, which callers treat as a
// plaintext dial.
//
// The server name for certificate verification comes from the
// configuration when set, otherwise from serverHost (the hostname being
// dialed).
func ClientConfig(cfg *config.IRCTLSConfig, serverHost string) (*tls.Config, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	serverName := cfg.ServerName
	if serverName == "" {
		serverName = serverHost
	}

	// #nosec G402 - InsecureSkipVerify is an explicit operator opt-in for
	// networks with self-signed certificates; MinVersion never goes below 1.2.
	tlsConfig := &tls.Config{
		ServerName:         serverName,
		MinVersion:         parseTLSVersion(cfg.MinVersion),
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	if cfg.CAFile != "" {
		pool, err := loadCAPool(cfg.CAFile)
		if err != nil {
			return nil, err
		}
		tlsConfig.RootCAs = pool
	}

	return tlsConfig, nil
}

// parseTLSVersion converts the MinVersion string to a tls.Version
// constant. Unknown values fall back to TLS 1.2, the floor most IRC
// networks support; 1.0 and 1.1 are never offered.
func parseTLSVersion(version string) uint16 {
	switch version {
	case "1.3":
		return tls.VersionTLS13
	default:
		return tls.VersionTLS12
	}
}

// loadCAPool reads a PEM bundle of CA certificates into a cert pool.
func loadCAPool(path string) (*x509.CertPool, error) {
	pemData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA file %q: %w", path, err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pemData) {
		return nil, fmt.Errorf("no certificates parsed from CA file %q", path)
	}

	return pool, nil
}
