package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"mercator-hq/europa/pkg/cli"
	"mercator-hq/europa/pkg/config"
	"mercator-hq/europa/pkg/providers"
	"mercator-hq/europa/pkg/providers/mistral"
	"mercator-hq/europa/pkg/security/secrets"
)

var testFlags struct {
	query   string
	timeout time.Duration
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test completion through the provider",
	Long: `Send a single completion request through the configured provider.

The test command resolves the API key the same way the run command does,
sends one small completion request, and reports the model, latency, and
token usage. Use it to verify credentials and connectivity before
starting the bot.

Examples:
  # Default test query
  europa test

  # Custom query
  europa test --query "What is the capital of France?"

  # Shorter timeout
  europa test --timeout 10s`,
	RunE: testProvider,
}

func init() {
	rootCmd.AddCommand(testCmd)

	testCmd.Flags().StringVar(&testFlags.query, "query", "Reply with the single word: pong", "test query to send")
	testCmd.Flags().DurationVar(&testFlags.timeout, "timeout", 0, "override request timeout")
}

func testProvider(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	cfg := config.GetConfig()

	timeout := cfg.Provider.Timeout
	if testFlags.timeout > 0 {
		timeout = testFlags.timeout
	}

	ctx := context.Background()

	secretManager, err := secrets.FromProviderConfig(&cfg.Provider)
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	apiKey, err := secretManager.APIKey(ctx, cfg.Provider.Name)
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}

	provider, err := mistral.NewProvider(providers.ProviderConfig{
		Name:        cfg.Provider.Name,
		BaseURL:     cfg.Provider.BaseURL,
		APIKey:      apiKey,
		Model:       cfg.Provider.Model,
		MaxTokens:   cfg.Provider.MaxTokens,
		Temperature: cfg.Provider.Temperature,
		Timeout:     timeout,
	})
	if err != nil {
		return cli.NewCommandError("test", err)
	}
	defer provider.Close()

	fmt.Printf("Testing provider %s (%s)...\n", cfg.Provider.Name, cfg.Provider.BaseURL)
	fmt.Printf("Query: %s\n\n", testFlags.query)

	spin := cli.NewSpinner(nil, fmt.Sprintf("waiting on %s", cfg.Provider.Name))
	spin.Start()
	start := time.Now()
	resp, err := provider.Complete(ctx, &providers.CompletionRequest{
		Model:       cfg.Provider.Model,
		Messages:    []providers.Message{{Role: providers.RoleUser, Content: testFlags.query}},
		Temperature: cfg.Provider.Temperature,
		MaxTokens:   cfg.Provider.MaxTokens,
	})
	latency := time.Since(start)
	spin.Stop()
	if err != nil {
		return cli.NewCommandError("test", fmt.Errorf("completion failed after %s: %w", latency.Round(time.Millisecond), err))
	}

	fmt.Printf("✓ Completion received (%s)\n\n", latency.Round(time.Millisecond))
	fmt.Printf("Model: %s\n", resp.Model)
	fmt.Printf("Finish reason: %s\n", resp.FinishReason)
	if resp.Usage != nil {
		fmt.Printf("Tokens: %d prompt + %d completion = %d total\n",
			resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
	} else {
		fmt.Println("Tokens: not reported")
	}
	fmt.Printf("\n%s\n", resp.Content)

	return nil
}
