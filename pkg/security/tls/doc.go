/*
Package tls builds the TLS client configuration for the IRC connection.

Europa only dials out: the IRC connection is the one TLS surface, and the
bot never terminates TLS itself. This package turns the irc.tls
configuration section into a crypto/tls.Config for that dial.

# Usage

	tlsConfig, err := tls.ClientConfig(&cfg.IRC.TLS, cfg.IRC.Server)
	if err != nil {
		return err
	}
	if tlsConfig == nil {
		// TLS disabled, plaintext dial (local test servers only).
	}

# Verification

Server certificates are verified against the system roots by default. For
networks running a private CA, ca_file points at a PEM bundle that
replaces the system roots. insecure_skip_verify disables verification
entirely and is only appropriate against self-signed test servers.

The minimum protocol version is TLS 1.2; configuring "1.3" raises the
floor. Versions below 1.2 are never offered.
*/
package tls
