package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"mercator-hq/europa/pkg/usage"
)

func TestSummarize(t *testing.T) {
	ts := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	records := []*usage.Record{
		{Nick: "alice", Command: "ask", Outcome: usage.OutcomeDelivered, Timestamp: ts,
			PromptTokens: 40, CompletionTokens: 100, EstimatedCost: 0.0001, ChunkCount: 2,
			Latency: 1 * time.Second},
		{Nick: "alice", Command: "code", Outcome: usage.OutcomeDelivered, Timestamp: ts.Add(time.Minute),
			PromptTokens: 60, CompletionTokens: 200, TokensEstimated: true, EstimatedCost: 0.0002,
			ChunkCount: 5, Latency: 3 * time.Second},
		{Nick: "bob", Command: "ask", Outcome: usage.OutcomeRejected, Timestamp: ts.Add(2 * time.Minute),
			DenyReason: "cooldown"},
		{Nick: "carol", Command: "ask", Outcome: usage.OutcomeRejected, Timestamp: ts.Add(3 * time.Minute),
			DenyReason: "user_day"},
		{Nick: "dave", Command: "ask", Outcome: usage.OutcomeFailed, Timestamp: ts.Add(4 * time.Minute),
			ErrorKind: "timeout", Latency: 30 * time.Second},
	}

	stats := Summarize(records)

	if stats.TotalRecords != 5 {
		t.Errorf("expected 5 total records, got %d", stats.TotalRecords)
	}
	if stats.Delivered != 2 || stats.Rejected != 2 || stats.Failed != 1 {
		t.Errorf("expected 2/2/1 outcomes, got %d/%d/%d",
			stats.Delivered, stats.Rejected, stats.Failed)
	}
	if stats.ByCommand["ask"] != 4 || stats.ByCommand["code"] != 1 {
		t.Errorf("unexpected command breakdown: %v", stats.ByCommand)
	}
	if stats.ByDenyReason["cooldown"] != 1 || stats.ByDenyReason["user_day"] != 1 {
		t.Errorf("unexpected deny reason breakdown: %v", stats.ByDenyReason)
	}
	if stats.ByErrorKind["timeout"] != 1 {
		t.Errorf("unexpected error kind breakdown: %v", stats.ByErrorKind)
	}
	if stats.UniqueNicks != 4 {
		t.Errorf("expected 4 unique nicks, got %d", stats.UniqueNicks)
	}
	if stats.PromptTokens != 100 || stats.CompletionTokens != 300 {
		t.Errorf("expected 100/300 tokens, got %d/%d",
			stats.PromptTokens, stats.CompletionTokens)
	}
	if stats.EstimatedRecords != 1 {
		t.Errorf("expected 1 estimated record, got %d", stats.EstimatedRecords)
	}
	if diff := stats.TotalCost - 0.0003; diff < -1e-12 || diff > 1e-12 {
		t.Errorf("expected cost 0.0003, got %f", stats.TotalCost)
	}
	if stats.TotalChunks != 7 {
		t.Errorf("expected 7 chunks, got %d", stats.TotalChunks)
	}

	// Mean over the three records that measured a latency.
	wantLatency := (1*time.Second + 3*time.Second + 30*time.Second) / 3
	if stats.AvgLatency != wantLatency {
		t.Errorf("expected avg latency %v, got %v", wantLatency, stats.AvgLatency)
	}

	if !stats.FirstRecord.Equal(ts) {
		t.Errorf("expected first record at %v, got %v", ts, stats.FirstRecord)
	}
	if !stats.LastRecord.Equal(ts.Add(4 * time.Minute)) {
		t.Errorf("expected last record at %v, got %v", ts.Add(4*time.Minute), stats.LastRecord)
	}
}

func TestSummarize_Empty(t *testing.T) {
	stats := Summarize(nil)

	if stats.TotalRecords != 0 {
		t.Errorf("expected 0 records, got %d", stats.TotalRecords)
	}
	if stats.AvgLatency != 0 {
		t.Errorf("expected zero latency, got %v", stats.AvgLatency)
	}
	if !stats.FirstRecord.IsZero() {
		t.Errorf("expected zero first-record time, got %v", stats.FirstRecord)
	}
}

func TestStats_WriteText(t *testing.T) {
	stats := Summarize(sampleRecords())

	var buf bytes.Buffer
	if err := stats.WriteText(&buf); err != nil {
		t.Fatalf("WriteText() failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Usage Summary",
		"Total Requests: 3 (delivered 1, rejected 1, failed 1)",
		"Unique Nicks: 3",
		"By Command:",
		"ask: 2",
		"Deny Reasons:",
		"cooldown: 1 (100%)",
		"Error Kinds:",
		"timeout: 1 (100%)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestStats_WriteText_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Summarize(nil).WriteText(&buf); err != nil {
		t.Fatalf("WriteText() failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Total Requests: 0") {
		t.Errorf("expected zero-count summary, got:\n%s", out)
	}
	if strings.Contains(out, "Period:") {
		t.Errorf("expected no period line without records, got:\n%s", out)
	}
	if strings.Contains(out, "By Command:") {
		t.Errorf("expected no breakdown sections without records, got:\n%s", out)
	}
}

func BenchmarkSummarize(b *testing.B) {
	records := make([]*usage.Record, 0, 1000)
	base := sampleRecords()
	for i := 0; i < 1000; i++ {
		records = append(records, base[i%len(base)])
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Summarize(records)
	}
}
