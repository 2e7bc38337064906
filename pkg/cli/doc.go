/*
Package cli provides command-line interface utilities for Europa.

The cli package includes output formatters, a spinner, and common CLI
helpers used by the europa command.

Output Formatting:

Command results print as text or JSON:

	format, err := cli.ParseOutputFormat(outputFlag)
	if err != nil {
		return err
	}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, stats); err != nil {
		return err
	}

Usage-record CSV and JSON exports are handled by the usage exporter, which
knows the record schema; the cli formatters cover command summaries only.

Progress:

While an operation of unknown duration runs, like a provider round trip,
a spinner keeps the terminal alive without polluting redirected output:

	spin := cli.NewSpinner(os.Stderr, "waiting on mistral")
	spin.Start()
	resp, err := provider.Complete(ctx, req)
	spin.Stop()

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Run the bot under ctx; cancellation starts the shutdown sequence.
	// A second signal force-exits.
*/
package cli
