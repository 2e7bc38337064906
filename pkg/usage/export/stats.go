package export

import (
	"fmt"
	"io"
	"sort"
	"time"

	"mercator-hq/europa/pkg/usage"
)

// Stats is an aggregated summary of a set of usage records.
type Stats struct {
	// TotalRecords is the number of records summarized.
	TotalRecords int `json:"total_records"`

	// Delivered, Rejected, and Failed count records by outcome.
	Delivered int `json:"delivered"`
	Rejected  int `json:"rejected"`
	Failed    int `json:"failed"`

	// ByCommand counts records per command.
	ByCommand map[string]int `json:"by_command,omitempty"`

	// ByDenyReason counts rejected records per admission rule.
	ByDenyReason map[string]int `json:"by_deny_reason,omitempty"`

	// ByErrorKind counts failed records per error classification.
	ByErrorKind map[string]int `json:"by_error_kind,omitempty"`

	// UniqueNicks is the number of distinct requesting nicks.
	UniqueNicks int `json:"unique_nicks"`

	// PromptTokens and CompletionTokens are summed token counts.
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`

	// EstimatedRecords counts records whose token counts came from the
	// estimator rather than the provider.
	EstimatedRecords int `json:"estimated_records"`

	// TotalCost is the summed estimated cost in USD.
	TotalCost float64 `json:"total_cost"`

	// TotalChunks is the summed IRC line count of all replies.
	TotalChunks int64 `json:"total_chunks"`

	// AvgLatency is the mean latency over records that measured one.
	AvgLatency time.Duration `json:"avg_latency"`

	// FirstRecord and LastRecord bound the summarized period.
	FirstRecord time.Time `json:"first_record,omitempty"`
	LastRecord  time.Time `json:"last_record,omitempty"`
}

// Summarize aggregates usage records into summary statistics.
func Summarize(records []*usage.Record) *Stats {
	stats := &Stats{
		TotalRecords: len(records),
		ByCommand:    make(map[string]int),
		ByDenyReason: make(map[string]int),
		ByErrorKind:  make(map[string]int),
	}

	nicks := make(map[string]struct{})
	var latencySum time.Duration
	var latencyCount int

	for _, rec := range records {
		switch rec.Outcome {
		case usage.OutcomeDelivered:
			stats.Delivered++
		case usage.OutcomeRejected:
			stats.Rejected++
		case usage.OutcomeFailed:
			stats.Failed++
		}

		if rec.Command != "" {
			stats.ByCommand[rec.Command]++
		}
		if rec.DenyReason != "" {
			stats.ByDenyReason[rec.DenyReason]++
		}
		if rec.ErrorKind != "" {
			stats.ByErrorKind[rec.ErrorKind]++
		}

		nicks[rec.Nick] = struct{}{}

		stats.PromptTokens += int64(rec.PromptTokens)
		stats.CompletionTokens += int64(rec.CompletionTokens)
		if rec.TokensEstimated {
			stats.EstimatedRecords++
		}
		stats.TotalCost += rec.EstimatedCost
		stats.TotalChunks += int64(rec.ChunkCount)

		if rec.Latency > 0 {
			latencySum += rec.Latency
			latencyCount++
		}

		if stats.FirstRecord.IsZero() || rec.Timestamp.Before(stats.FirstRecord) {
			stats.FirstRecord = rec.Timestamp
		}
		if rec.Timestamp.After(stats.LastRecord) {
			stats.LastRecord = rec.Timestamp
		}
	}

	stats.UniqueNicks = len(nicks)
	if latencyCount > 0 {
		stats.AvgLatency = latencySum / time.Duration(latencyCount)
	}

	return stats
}

// WriteText renders the summary as a human-readable report.
func (s *Stats) WriteText(w io.Writer) error {
	fmt.Fprintln(w, "Usage Summary")
	fmt.Fprintln(w, "=============")

	if !s.FirstRecord.IsZero() {
		fmt.Fprintf(w, "Period: %s to %s\n",
			s.FirstRecord.UTC().Format(time.RFC3339),
			s.LastRecord.UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(w, "Total Requests: %d (delivered %d, rejected %d, failed %d)\n",
		s.TotalRecords, s.Delivered, s.Rejected, s.Failed)
	fmt.Fprintf(w, "Unique Nicks: %d\n", s.UniqueNicks)
	fmt.Fprintf(w, "Tokens: %d prompt, %d completion", s.PromptTokens, s.CompletionTokens)
	if s.EstimatedRecords > 0 {
		fmt.Fprintf(w, " (%d records estimated)", s.EstimatedRecords)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Estimated Cost: $%.4f\n", s.TotalCost)
	fmt.Fprintf(w, "Reply Lines: %d\n", s.TotalChunks)
	if s.AvgLatency > 0 {
		fmt.Fprintf(w, "Average Latency: %s\n", s.AvgLatency.Round(time.Millisecond))
	}

	writeBreakdown(w, "By Command:", s.ByCommand, s.TotalRecords)
	writeBreakdown(w, "Deny Reasons:", s.ByDenyReason, s.Rejected)
	writeBreakdown(w, "Error Kinds:", s.ByErrorKind, s.Failed)

	return nil
}

// writeBreakdown renders one count map as a sorted section with
// percentages. Empty maps render nothing.
func writeBreakdown(w io.Writer, title string, counts map[string]int, total int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	for _, k := range keys {
		count := counts[k]
		if total > 0 {
			pct := float64(count) / float64(total) * 100
			fmt.Fprintf(w, "  %s: %d (%.0f%%)\n", k, count, pct)
		} else {
			fmt.Fprintf(w, "  %s: %d\n", k, count)
		}
	}
}
