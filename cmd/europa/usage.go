package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"mercator-hq/europa/pkg/cli"
	"mercator-hq/europa/pkg/config"
	"mercator-hq/europa/pkg/usage"
	"mercator-hq/europa/pkg/usage/export"
	"mercator-hq/europa/pkg/usage/storage"
)

var usageFlags struct {
	backend   string
	timeRange string
	nick      string
	channel   string
	command   string
	outcome   string
	limit     int
	offset    int
	format    string
	output    string
	noHeader  bool
	pretty    bool
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Query the usage store",
	Long: `Query and export usage records for audit and cost review.

The usage command reads the store the bot writes to.

Subcommands:
  export  - Export usage records as CSV or JSON
  stats   - Summarize usage over a time range

Examples:
  # Export February as CSV
  europa usage export --time-range "2026-02-01T00:00:00Z/2026-03-01T00:00:00Z"

  # One user's rejected requests as JSON
  europa usage export --nick alice --outcome rejected --format json

  # Usage summary
  europa usage stats`,
}

var usageExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export usage records",
	Long: `Export usage records with various filters.

Time Range Format:
  RFC3339 interval format: "start/end"
  Example: "2026-02-01T00:00:00Z/2026-03-01T00:00:00Z"

Examples:
  # Export a time range as CSV
  europa usage export --time-range "2026-02-01T00:00:00Z/2026-03-01T00:00:00Z"

  # Filter by nick and command
  europa usage export --nick alice --command code

  # Export to a JSON file
  europa usage export --format json --output usage.json`,
	RunE: exportUsage,
}

var usageStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize usage records",
	Long: `Summarize usage records: outcome and command breakdowns, token and
cost totals, and average completion latency.`,
	RunE: summarizeUsage,
}

func init() {
	rootCmd.AddCommand(usageCmd)
	usageCmd.AddCommand(usageExportCmd, usageStatsCmd)

	// Flags for export command
	usageExportCmd.Flags().StringVar(&usageFlags.backend, "backend", "", "backend: sqlite, memory (uses config if not specified)")
	usageExportCmd.Flags().StringVar(&usageFlags.timeRange, "time-range", "", "time range (RFC3339 interval: start/end)")
	usageExportCmd.Flags().StringVar(&usageFlags.nick, "nick", "", "filter by requesting nick")
	usageExportCmd.Flags().StringVar(&usageFlags.channel, "channel", "", "filter by channel")
	usageExportCmd.Flags().StringVar(&usageFlags.command, "command", "", "filter by command (ask, code, help)")
	usageExportCmd.Flags().StringVar(&usageFlags.outcome, "outcome", "", "filter by outcome (delivered, rejected, failed)")
	usageExportCmd.Flags().IntVar(&usageFlags.limit, "limit", 0, "max results (0 = no limit)")
	usageExportCmd.Flags().IntVar(&usageFlags.offset, "offset", 0, "pagination offset")
	usageExportCmd.Flags().StringVar(&usageFlags.format, "format", "csv", "output format: csv, json")
	usageExportCmd.Flags().StringVarP(&usageFlags.output, "output", "o", "", "output file (default: stdout)")
	usageExportCmd.Flags().BoolVar(&usageFlags.noHeader, "no-header", false, "omit the CSV header row")
	usageExportCmd.Flags().BoolVar(&usageFlags.pretty, "pretty", false, "indent JSON output")

	// Flags for stats command
	usageStatsCmd.Flags().StringVar(&usageFlags.backend, "backend", "", "backend: sqlite, memory")
	usageStatsCmd.Flags().StringVar(&usageFlags.timeRange, "time-range", "", "time range (RFC3339 interval)")
	usageStatsCmd.Flags().StringVar(&usageFlags.format, "format", "text", "output format: text, json")
	usageStatsCmd.Flags().StringVarP(&usageFlags.output, "output", "o", "", "output file (default: stdout)")
}

func exportUsage(cmd *cobra.Command, args []string) error {
	store, err := openUsageStore()
	if err != nil {
		return err
	}
	defer store.Close()

	query, err := buildUsageQuery()
	if err != nil {
		return err
	}
	query.Nick = usageFlags.nick
	query.Channel = usageFlags.channel
	query.Command = usageFlags.command
	query.Limit = usageFlags.limit
	query.Offset = usageFlags.offset

	switch usageFlags.outcome {
	case "", string(usage.OutcomeDelivered), string(usage.OutcomeRejected), string(usage.OutcomeFailed):
		query.Outcome = usage.Outcome(usageFlags.outcome)
	default:
		return fmt.Errorf("invalid outcome: %s (expected: delivered, rejected, failed)", usageFlags.outcome)
	}

	ctx := context.Background()
	spin := cli.NewSpinner(nil, "querying usage store")
	spin.Start()
	records, err := store.Query(ctx, query)
	spin.Stop()
	if err != nil {
		return cli.NewCommandError("usage", fmt.Errorf("query failed: %w", err))
	}

	output, closeOutput, err := openOutput()
	if err != nil {
		return err
	}
	defer closeOutput()

	var exporter usage.Exporter
	switch usageFlags.format {
	case "csv":
		exporter = export.NewCSVExporter(!usageFlags.noHeader)
	case "json":
		exporter = export.NewJSONExporter(usageFlags.pretty)
	default:
		return fmt.Errorf("unsupported format: %s (supported: csv, json)", usageFlags.format)
	}

	if err := exporter.Export(ctx, records, output); err != nil {
		return cli.NewCommandError("usage", fmt.Errorf("export failed: %w", err))
	}

	if usageFlags.output != "" {
		fmt.Printf("✓ Exported %d records to %s\n", len(records), usageFlags.output)
	}
	return nil
}

func summarizeUsage(cmd *cobra.Command, args []string) error {
	store, err := openUsageStore()
	if err != nil {
		return err
	}
	defer store.Close()

	query, err := buildUsageQuery()
	if err != nil {
		return err
	}

	ctx := context.Background()
	records, err := store.Query(ctx, query)
	if err != nil {
		return cli.NewCommandError("usage", fmt.Errorf("query failed: %w", err))
	}

	output, closeOutput, err := openOutput()
	if err != nil {
		return err
	}
	defer closeOutput()

	format, err := cli.ParseOutputFormat(usageFlags.format)
	if err != nil {
		return err
	}
	return cli.NewFormatter(format).FormatTo(output, export.Summarize(records))
}

// openUsageStore opens the store named by the --backend flag, falling
// back to the configured backend.
func openUsageStore() (usage.Store, error) {
	if err := config.Initialize(cfgFile); err != nil {
		return nil, cli.NewConfigError(cfgFile, err)
	}
	cfg := config.GetConfig()

	backend := usageFlags.backend
	if backend == "" {
		backend = cfg.Usage.Backend
	}

	switch backend {
	case "sqlite", "":
		store, err := storage.NewSQLiteStore(&storage.SQLiteConfig{
			Path:        cfg.Usage.SQLite.Path,
			BusyTimeout: cfg.Usage.SQLite.BusyTimeout,
		})
		if err != nil {
			return nil, cli.NewCommandError("usage", fmt.Errorf("failed to open usage store: %w", err))
		}
		return store, nil
	case "memory":
		// An empty store; useful only for exercising the exporters.
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s (supported: sqlite, memory)", backend)
	}
}

// buildUsageQuery parses the --time-range flag into a query.
func buildUsageQuery() (*usage.Query, error) {
	query := &usage.Query{}
	if usageFlags.timeRange == "" {
		return query, nil
	}

	parts := strings.Split(usageFlags.timeRange, "/")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid time range format (expected: start/end)")
	}

	startTime, err := time.Parse(time.RFC3339, parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	query.StartTime = &startTime

	endTime, err := time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid end time: %w", err)
	}
	query.EndTime = &endTime

	return query, nil
}

func openOutput() (*os.File, func(), error) {
	if usageFlags.output == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(usageFlags.output)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
