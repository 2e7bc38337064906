// Package export renders usage records for the CLI: CSV and JSON
// dumps plus an aggregated summary.
package export

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"mercator-hq/europa/pkg/usage"
)

// CSVExporter exports usage records to CSV format.
type CSVExporter struct {
	// IncludeHeader includes a header row with column names.
	IncludeHeader bool
}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter(includeHeader bool) *CSVExporter {
	return &CSVExporter{
		IncludeHeader: includeHeader,
	}
}

// Export writes usage records to w in CSV format, one row per record.
func (e *CSVExporter) Export(ctx context.Context, records []*usage.Record, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if e.IncludeHeader {
		if err := writer.Write(headerRow()); err != nil {
			return usage.NewExportError("csv", 0, err)
		}
	}

	for i, rec := range records {
		select {
		case <-ctx.Done():
			return usage.NewExportError("csv", i, ctx.Err())
		default:
		}

		if err := writer.Write(recordToRow(rec)); err != nil {
			return usage.NewExportError("csv", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return usage.NewExportError("csv", len(records), err)
	}

	return nil
}

// headerRow returns the CSV header row.
func headerRow() []string {
	return []string{
		"id", "timestamp",
		"nick", "channel", "command",
		"outcome", "deny_reason", "error_kind", "latency_ms",
		"model", "prompt_tokens", "completion_tokens", "tokens_estimated", "estimated_cost",
		"chunk_count", "prompt_hash", "prompt_length", "response_length",
	}
}

// recordToRow converts one usage record to a CSV row.
func recordToRow(rec *usage.Record) []string {
	return []string{
		rec.ID,
		rec.Timestamp.UTC().Format(time.RFC3339),
		rec.Nick,
		rec.Channel,
		rec.Command,
		string(rec.Outcome),
		rec.DenyReason,
		rec.ErrorKind,
		strconv.FormatInt(rec.Latency.Milliseconds(), 10),
		rec.Model,
		strconv.Itoa(rec.PromptTokens),
		strconv.Itoa(rec.CompletionTokens),
		strconv.FormatBool(rec.TokensEstimated),
		strconv.FormatFloat(rec.EstimatedCost, 'f', 6, 64),
		strconv.Itoa(rec.ChunkCount),
		rec.PromptHash,
		strconv.Itoa(rec.PromptLength),
		strconv.Itoa(rec.ResponseLength),
	}
}
