package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"mercator-hq/europa/pkg/bot"
	"mercator-hq/europa/pkg/cli"
	"mercator-hq/europa/pkg/config"
	"mercator-hq/europa/pkg/irc"
	"mercator-hq/europa/pkg/limits"
	"mercator-hq/europa/pkg/limits/enforcement"
	"mercator-hq/europa/pkg/processing"
	"mercator-hq/europa/pkg/prompts"
	"mercator-hq/europa/pkg/providers"
	"mercator-hq/europa/pkg/providers/mistral"
	"mercator-hq/europa/pkg/security/secrets"
	"mercator-hq/europa/pkg/server"
	"mercator-hq/europa/pkg/telemetry/health"
	"mercator-hq/europa/pkg/telemetry/logging"
	"mercator-hq/europa/pkg/telemetry/metrics"
	"mercator-hq/europa/pkg/telemetry/tracing"
	"mercator-hq/europa/pkg/usage"
	"mercator-hq/europa/pkg/usage/recorder"
	"mercator-hq/europa/pkg/usage/retention"
	"mercator-hq/europa/pkg/usage/storage"
)

var runFlags struct {
	logLevel string
	dryRun   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Europa IRC bot",
	Long: `Start the Europa IRC bot with the specified configuration.

The bot connects to the configured IRC server over TLS, joins its
channels, and answers !ask and !code commands with completions from the
Mistral API. Quota enforcement, usage auditing, and the ops endpoints
all run inside this single process.

Examples:
  # Start with default config
  europa run

  # Start with custom config
  europa run --config /etc/europa/config.yaml

  # Override log level
  europa run --log-level debug

  # Validate config without connecting
  europa run --dry-run`,
	RunE: runBot,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without connecting")
}

func runBot(cmd *cobra.Command, args []string) error {
	// Load configuration
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	cfg := config.GetConfig()

	// Apply flag overrides
	if runFlags.logLevel != "" {
		cfg.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	// Initialize logging based on config
	logger, err := logging.NewFromConfig(&cfg.Logging)
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	slog.SetDefault(logger.Slog())

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	// Print startup banner
	printBanner(cfg)

	// First signal cancels this context; a second one force-exits.
	ctx := cli.SetupSignalHandler()

	// Telemetry
	collector := metrics.NewCollector(&cfg.Metrics, nil)

	tracer, err := tracing.New(&cfg.Tracing)
	if err != nil {
		return cli.NewCommandError("run", fmt.Errorf("failed to initialize tracing: %w", err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("tracer shutdown failed", "error", err)
		}
	}()

	// Resolve the provider API key from file, environment, or .env
	secretManager, err := secrets.FromProviderConfig(&cfg.Provider)
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	apiKey, err := secretManager.APIKey(ctx, cfg.Provider.Name)
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}

	// Completion provider
	slog.Info("initializing completion provider", "provider", cfg.Provider.Name)
	provider, err := mistral.NewProvider(providers.ProviderConfig{
		Name:        cfg.Provider.Name,
		BaseURL:     cfg.Provider.BaseURL,
		APIKey:      apiKey,
		Model:       cfg.Provider.Model,
		MaxTokens:   cfg.Provider.MaxTokens,
		Temperature: cfg.Provider.Temperature,
		Timeout:     cfg.Provider.Timeout,
	})
	if err != nil {
		return cli.NewCommandError("run", fmt.Errorf("failed to initialize provider: %w", err))
	}
	defer provider.Close()
	fmt.Printf("✓ Provider initialized (%s, model %s)\n", cfg.Provider.Name, cfg.Provider.Model)

	// Quota ledger and admission control
	ledger := limits.NewLedger(limits.Config{
		GlobalPerMinute: int64(cfg.Limits.GlobalPerMinute),
		GlobalPerDay:    int64(cfg.Limits.GlobalPerDay),
		UserPerDay:      int64(cfg.Limits.UserPerDay),
		Cooldown:        cfg.Limits.Cooldown,
		EvictAfter:      cfg.Limits.EvictAfter,
	})
	ledger.SetMetrics(limits.NewMetrics(collector.Registry()))
	enforcer := enforcement.NewEnforcer(ledger)

	janitor := limits.NewJanitor(ledger, cfg.Limits.EvictSchedule)
	if err := janitor.Start(ctx); err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	defer janitor.Stop()
	fmt.Printf("✓ Quota ledger initialized (global %d/min %d/day, user %d/day)\n",
		cfg.Limits.GlobalPerMinute, cfg.Limits.GlobalPerDay, cfg.Limits.UserPerDay)

	// Prompt templates
	promptManager, err := prompts.NewManager(prompts.Config{
		Path:             cfg.Prompts.Path,
		Watch:            cfg.Prompts.Watch,
		DebounceInterval: cfg.Prompts.DebounceInterval,
	})
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	defer promptManager.Close()
	go func() {
		if err := promptManager.Watch(ctx); err != nil {
			slog.Warn("prompt template watcher stopped", "error", err)
		}
	}()
	fmt.Printf("✓ Prompt templates loaded (%d templates)\n", len(promptManager.Names()))

	// Usage auditing (if enabled)
	var store usage.Store
	var rec *recorder.Recorder
	if cfg.Usage.Enabled {
		slog.Info("initializing usage auditing", "backend", cfg.Usage.Backend)

		var err error
		switch cfg.Usage.Backend {
		case "sqlite", "":
			store, err = storage.NewSQLiteStore(&storage.SQLiteConfig{
				Path:        cfg.Usage.SQLite.Path,
				BusyTimeout: cfg.Usage.SQLite.BusyTimeout,
			})
			if err != nil {
				return cli.NewCommandError("run", fmt.Errorf("failed to open usage store: %w", err))
			}
		case "memory":
			store = storage.NewMemoryStore()
		default:
			return fmt.Errorf("unsupported usage backend: %s", cfg.Usage.Backend)
		}
		defer store.Close()

		rec = recorder.NewRecorder(store, &recorder.Config{
			Enabled:      true,
			BufferSize:   cfg.Usage.Recorder.BufferSize,
			DrainTimeout: cfg.Usage.Recorder.DrainTimeout,
		}, collector.Usage())
		defer rec.Close()

		pruner := retention.NewPruner(store, &retention.Config{
			RetentionDays: cfg.Usage.Retention.Days,
			PruneSchedule: cfg.Usage.Retention.PruneSchedule,
		}, collector.Usage())
		if err := pruner.Start(ctx); err != nil {
			slog.Warn("failed to start retention scheduler", "error", err)
		} else {
			defer pruner.Stop()
			if next := pruner.NextPruning(); next != nil {
				slog.Debug("usage retention scheduler started", "next_pruning", next)
			}
		}

		fmt.Println("✓ Usage store initialized")
	}

	// Response pipeline
	pipeline := processing.NewPipeline(&cfg.Chunking, &cfg.Usage)

	// IRC client
	client, err := irc.New(irc.Options{
		Config:  &cfg.IRC,
		Metrics: collector.IRC(),
		Logger:  logger,
	})
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}

	// Dispatcher wires admission, prompts, the provider, and chunking
	// behind the IRC message handler.
	botOpts := bot.Options{
		Config:    cfg,
		Enforcer:  enforcer,
		Formatter: promptManager,
		Completer: provider,
		Pipeline:  pipeline,
		Transport: client,
		Metrics:   collector,
		Tracer:    tracer,
		Logger:    logger,
	}
	if rec != nil {
		botOpts.Auditor = rec
	}
	dispatcher, err := bot.New(botOpts)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	client.SetHandler(dispatcher.Handler(ctx))

	// Health checks and the ops server
	checker := health.NewFromConfig(&cfg.Health)
	checker.RegisterCheck(health.ComponentIRC, health.BoolCheck(client.Connected, "irc connection down"))
	checker.RegisterCheck(health.ComponentProvider, health.BoolCheck(provider.IsHealthy, "provider unhealthy"))
	if store != nil {
		checker.RegisterCheck(health.ComponentStore, store.Ping)
	}

	ops := server.New(server.Options{
		Metrics:   &cfg.Metrics,
		Health:    &cfg.Health,
		Collector: collector,
		Checker:   checker,
		Logger:    logger,
		Version:   Version,
		Commit:    GitCommit,
		BuildTime: BuildDate,
	})
	if err := ops.Start(); err != nil {
		return cli.NewCommandError("run", fmt.Errorf("ops server failed to start: %w", err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ops.Shutdown(shutdownCtx); err != nil {
			slog.Warn("ops server shutdown failed", "error", err)
		}
	}()

	provider.StartHealthChecker(ctx)

	if cfg.Metrics.Enabled || cfg.Health.Enabled {
		fmt.Printf("✓ Ops server listening on %s\n", ops.Addr())
		if cfg.Metrics.Enabled {
			fmt.Printf("✓ Metrics endpoint: http://%s%s\n", ops.Addr(), cfg.Metrics.Path)
		}
		if cfg.Health.Enabled {
			fmt.Printf("✓ Health endpoints: http://%s%s http://%s%s\n",
				ops.Addr(), cfg.Health.LivenessPath, ops.Addr(), cfg.Health.ReadinessPath)
		}
	}

	fmt.Println()
	fmt.Printf("✓ Connecting to %s:%d as %s\n", cfg.IRC.Server, cfg.IRC.Port, cfg.IRC.Nick)
	fmt.Println("\nPress Ctrl+C to stop")

	// Run blocks until the shutdown signal cancels the context.
	runErr := client.Run(ctx)

	fmt.Println("\nShutting down...")

	// Let in-flight requests finish before the deferred teardown drains
	// the recorder and closes the store.
	dispatcher.Wait()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return cli.NewCommandError("run", runErr)
	}

	fmt.Println("✓ Bot stopped")
	return nil
}

func printBanner(cfg *config.Config) {
	fmt.Printf("Europa v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	slog.Debug("irc target",
		"server", cfg.IRC.Server,
		"port", cfg.IRC.Port,
		"channels", cfg.IRC.Channels,
	)
	if cfg.Usage.Enabled {
		slog.Debug("usage auditing enabled", "backend", cfg.Usage.Backend)
	}
	if cfg.Tracing.Enabled {
		slog.Debug("tracing enabled", "endpoint", cfg.Tracing.Endpoint)
	}
}
