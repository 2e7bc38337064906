package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"mercator-hq/europa/pkg/cli"
	"mercator-hq/europa/pkg/config"
	"mercator-hq/europa/pkg/prompts"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and prompt templates",
	Long: `Validate the configuration file and the prompt templates it references.

The validate command loads the configuration with environment overrides
applied, checks every section against the same rules the run command
uses, verifies the cron schedules, and parses the prompt templates file
when one is configured.

Examples:
  # Validate the default config
  europa validate

  # Validate a specific config
  europa validate --config /etc/europa/config.yaml`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}

	fmt.Printf("Validating %s...\n\n", cfgFile)

	scheme := "irc"
	if cfg.IRC.TLS.Enabled {
		scheme = "ircs"
	}
	fmt.Printf("IRC: %s://%s:%d as %s (channels: %s)\n",
		scheme, cfg.IRC.Server, cfg.IRC.Port, cfg.IRC.Nick, strings.Join(cfg.IRC.Channels, ", "))
	fmt.Printf("Provider: %s (model %s, max %d tokens)\n",
		cfg.Provider.Name, cfg.Provider.Model, cfg.Provider.MaxTokens)
	fmt.Printf("Limits: global %d/min %d/day, user %d/day, cooldown %s\n",
		cfg.Limits.GlobalPerMinute, cfg.Limits.GlobalPerDay, cfg.Limits.UserPerDay, cfg.Limits.Cooldown)
	if cfg.Usage.Enabled {
		fmt.Printf("Usage: %s backend, %d day retention\n", cfg.Usage.Backend, cfg.Usage.Retention.Days)
	} else {
		fmt.Println("Usage: disabled")
	}
	fmt.Println()

	// The schedulers parse their cron expressions at startup; surface
	// mistakes here instead.
	for _, s := range []struct{ name, expr string }{
		{"limits.evict_schedule", cfg.Limits.EvictSchedule},
		{"usage.retention.prune_schedule", cfg.Usage.Retention.PruneSchedule},
	} {
		if s.expr == "" {
			continue
		}
		if _, err := cron.ParseStandard(s.expr); err != nil {
			return cli.NewConfigError(cfgFile, fmt.Errorf("invalid cron expression for %s: %w", s.name, err))
		}
	}

	fmt.Println("✓ Configuration valid")

	// Parse the templates file when one is configured; the built-in
	// templates are compiled in and always valid.
	manager, err := prompts.NewManager(prompts.Config{Path: cfg.Prompts.Path})
	if err != nil {
		return cli.NewConfigError(cfg.Prompts.Path, err)
	}
	defer manager.Close()

	names := manager.Names()
	sort.Strings(names)
	fmt.Printf("✓ Prompt templates valid (%d templates: %s)\n", len(names), strings.Join(names, ", "))

	return nil
}
