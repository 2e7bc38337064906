package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "europa",
	Short: "Europa - IRC assistant bot backed by the Mistral API",
	Long: `Europa is an IRC assistant bot that answers channel commands with
completions from the Mistral chat API.

It joins the configured channels and responds to:
  - !ask <question>   general questions
  - !code <question>  programming help
  - !help             command summary

Requests pass through per-user and global quota enforcement, replies are
chunked to IRC-safe line lengths, and every exchange is recorded to a
usage store for audit and cost tracking.

For more information, visit: https://github.com/mercator-hq/europa`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Disable default completion command (we'll add our own)
	rootCmd.CompletionOptions.DisableDefaultCmd = false
}
