/*
Package security holds transport security and secret resolution for Europa.

# TLS

The tls subpackage builds the client configuration for the outbound IRC
connection:

	tlsConfig, err := tls.ClientConfig(&cfg.IRC.TLS, cfg.IRC.Server)
	if err != nil {
		return err
	}

# Secrets

The secrets subpackage resolves the completion provider API key from the
configuration, a key file, or the environment:

	manager, err := secrets.FromProviderConfig(&cfg.Provider)
	if err != nil {
		return err
	}

	apiKey, err := manager.APIKey(ctx, cfg.Provider.Name)
	if err != nil {
		return err
	}
*/
package security
