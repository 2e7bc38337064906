// Package mistral implements the Mistral provider adapter.
//
// This package provides an implementation of the providers.Provider
// interface for Mistral's chat completions API. The wire format is
// OpenAI-compatible; the adapter handles the small differences, such
// as the "model_length" finish reason.
//
// # Basic Usage
//
//	config := providers.ProviderConfig{
//	    Name:      "mistral",
//	    APIKey:    os.Getenv("MISTRAL_API_KEY"),
//	    Model:     "mistral-tiny",
//	    MaxTokens: 300,
//	}
//
//	provider, err := mistral.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	req := &providers.CompletionRequest{
//	    Messages: []providers.Message{
//	        {Role: providers.RoleUser, Content: "What is a goroutine?"},
//	    },
//	}
//
//	resp, err := provider.Complete(context.Background(), req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.Content)
//
// Model, MaxTokens, and Temperature fall back to the provider
// configuration when left zero on the request.
//
// # Single Attempt
//
// Complete makes exactly one HTTP request. There is no retry loop; a
// failed request surfaces immediately as one of the typed errors in
// the providers package.
package mistral
