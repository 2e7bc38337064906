package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mercator-hq/europa/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Helper function to create test config
func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:       true,
		ListenAddress: "127.0.0.1:0",
		Path:          "/metrics",
	}
}

// TestCollector_NewCollector tests collector creation
func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector == nil {
		t.Fatal("Expected non-nil collector")
	}
	if collector.config != cfg {
		t.Error("Collector config not set correctly")
	}
	if collector.registry != registry {
		t.Error("Collector registry not set correctly")
	}
}

// TestCollector_NilRegistry tests that a nil registry gets a fresh one
func TestCollector_NilRegistry(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	if collector.Registry() == nil {
		t.Fatal("Expected collector to create its own registry")
	}
}

// TestCollector_RecordRequest tests request recording
func TestCollector_RecordRequest(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	tests := []struct {
		name     string
		command  string
		status   string
		duration time.Duration
	}{
		{
			name:     "completed ask",
			command:  "ask",
			status:   "completed",
			duration: 1200 * time.Millisecond,
		},
		{
			name:     "rejected code",
			command:  "code",
			status:   "rejected",
			duration: 2 * time.Millisecond,
		},
		{
			name:     "failed ask",
			command:  "ask",
			status:   "failed",
			duration: 30 * time.Second,
		},
		{
			name:     "completed help",
			command:  "help",
			status:   "completed",
			duration: 5 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector.RecordRequest(tt.command, tt.status, tt.duration)

			// Verify request counter was incremented
			count := testutil.ToFloat64(collector.requestMetrics.requestsTotal.WithLabelValues(tt.command, tt.status))
			if count < 1 {
				t.Errorf("Expected request counter >= 1, got %f", count)
			}
		})
	}
}

// TestCollector_RecordChunks tests chunk histogram recording
func TestCollector_RecordChunks(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordChunks("ask", 3)
	collector.RecordChunks("ask", 7)
	collector.RecordChunks("code", 12)

	// Zero chunks should not be observed
	collector.RecordChunks("ask", 0)

	count := testutil.CollectAndCount(collector.requestMetrics.responseChunks)
	if count != 2 { // one series per command
		t.Errorf("Expected 2 chunk series, got %d", count)
	}
}

// TestCollector_ProviderMetrics tests provider metric recording
func TestCollector_ProviderMetrics(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	// Test health update
	t.Run("update health", func(t *testing.T) {
		collector.UpdateProviderHealth("mistral", true)
		health := testutil.ToFloat64(collector.providerMetrics.healthy.WithLabelValues("mistral"))
		if health != 1.0 {
			t.Errorf("Expected health=1.0, got %f", health)
		}

		collector.UpdateProviderHealth("mistral", false)
		health = testutil.ToFloat64(collector.providerMetrics.healthy.WithLabelValues("mistral"))
		if health != 0.0 {
			t.Errorf("Expected health=0.0, got %f", health)
		}
	})

	// Test call recording
	t.Run("record call", func(t *testing.T) {
		collector.RecordProviderCall("mistral", "mistral-tiny", "success", 950*time.Millisecond)
		count := testutil.ToFloat64(collector.providerMetrics.requests.WithLabelValues("mistral", "mistral-tiny", "success"))
		if count < 1 {
			t.Errorf("Expected call count >= 1, got %f", count)
		}
	})

	// Test error recording
	t.Run("record error", func(t *testing.T) {
		collector.RecordProviderError("mistral", "timeout")
		count := testutil.ToFloat64(collector.providerMetrics.errors.WithLabelValues("mistral", "timeout"))
		if count < 1 {
			t.Errorf("Expected error count >= 1, got %f", count)
		}
	})

	// Test token recording
	t.Run("record tokens", func(t *testing.T) {
		collector.RecordTokens("mistral", "mistral-tiny", 120, 280)

		prompt := testutil.ToFloat64(collector.providerMetrics.tokens.WithLabelValues("mistral", "mistral-tiny", "prompt"))
		if prompt != 120 {
			t.Errorf("Expected prompt tokens=120, got %f", prompt)
		}

		completion := testutil.ToFloat64(collector.providerMetrics.tokens.WithLabelValues("mistral", "mistral-tiny", "completion"))
		if completion != 280 {
			t.Errorf("Expected completion tokens=280, got %f", completion)
		}
	})

	// Zero token counts should not create series
	t.Run("zero tokens skipped", func(t *testing.T) {
		before := testutil.CollectAndCount(collector.providerMetrics.tokens)
		collector.RecordTokens("mistral", "mistral-small", 0, 0)
		after := testutil.CollectAndCount(collector.providerMetrics.tokens)
		if after != before {
			t.Errorf("Expected no new token series, got %d -> %d", before, after)
		}
	})
}

// TestCollector_CostMetrics tests cost recording
func TestCollector_CostMetrics(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordCost("mistral", "mistral-tiny", 0.00012)
	collector.RecordCost("mistral", "mistral-tiny", 0.00034)

	total := testutil.ToFloat64(collector.costMetrics.costTotal.WithLabelValues("mistral", "mistral-tiny"))
	want := 0.00012 + 0.00034
	if diff := total - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected cost total %f, got %f", want, total)
	}

	// Non-positive costs are ignored
	collector.RecordCost("mistral", "mistral-tiny", 0)
	collector.RecordCost("mistral", "mistral-tiny", -0.5)

	total = testutil.ToFloat64(collector.costMetrics.costTotal.WithLabelValues("mistral", "mistral-tiny"))
	if diff := total - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Non-positive cost changed total: want %f, got %f", want, total)
	}
}

// TestCollector_IRCMetrics tests IRC connection metrics
func TestCollector_IRCMetrics(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	t.Run("connected gauge", func(t *testing.T) {
		collector.UpdateIRCConnected(true)
		if got := testutil.ToFloat64(collector.ircMetrics.connected); got != 1.0 {
			t.Errorf("Expected connected=1.0, got %f", got)
		}

		collector.UpdateIRCConnected(false)
		if got := testutil.ToFloat64(collector.ircMetrics.connected); got != 0.0 {
			t.Errorf("Expected connected=0.0, got %f", got)
		}
	})

	t.Run("reconnects", func(t *testing.T) {
		collector.RecordIRCReconnect()
		collector.RecordIRCReconnect()
		if got := testutil.ToFloat64(collector.ircMetrics.reconnects); got != 2.0 {
			t.Errorf("Expected reconnects=2, got %f", got)
		}
	})

	t.Run("messages by direction", func(t *testing.T) {
		collector.RecordIRCMessage("in")
		collector.RecordIRCMessage("in")
		collector.RecordIRCMessage("out")

		in := testutil.ToFloat64(collector.ircMetrics.messages.WithLabelValues("in"))
		if in != 2.0 {
			t.Errorf("Expected in=2, got %f", in)
		}
		out := testutil.ToFloat64(collector.ircMetrics.messages.WithLabelValues("out"))
		if out != 1.0 {
			t.Errorf("Expected out=1, got %f", out)
		}
	})

	t.Run("send queue depth", func(t *testing.T) {
		collector.UpdateIRCSendQueueDepth(5)
		if got := testutil.ToFloat64(collector.ircMetrics.sendQueueDepth); got != 5.0 {
			t.Errorf("Expected depth=5, got %f", got)
		}
	})
}

// TestCollector_UsageMetrics tests usage pipeline metrics
func TestCollector_UsageMetrics(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordUsageAccepted()
	collector.RecordUsageAccepted()
	collector.RecordUsageDropped()
	collector.RecordUsageWriteError()
	collector.RecordUsagePruned(42)

	if got := testutil.ToFloat64(collector.usageMetrics.records); got != 2.0 {
		t.Errorf("Expected records=2, got %f", got)
	}
	if got := testutil.ToFloat64(collector.usageMetrics.dropped); got != 1.0 {
		t.Errorf("Expected dropped=1, got %f", got)
	}
	if got := testutil.ToFloat64(collector.usageMetrics.writeErrors); got != 1.0 {
		t.Errorf("Expected write errors=1, got %f", got)
	}
	if got := testutil.ToFloat64(collector.usageMetrics.pruned); got != 42.0 {
		t.Errorf("Expected pruned=42, got %f", got)
	}

	// Non-positive prune counts are ignored
	collector.RecordUsagePruned(0)
	collector.RecordUsagePruned(-3)
	if got := testutil.ToFloat64(collector.usageMetrics.pruned); got != 42.0 {
		t.Errorf("Non-positive prune changed counter: got %f", got)
	}
}

// TestCollector_Disabled tests that a disabled collector records nothing
func TestCollector_Disabled(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: false}
	collector := NewCollector(cfg, prometheus.NewRegistry())

	collector.RecordRequest("ask", "completed", time.Second)
	collector.RecordChunks("ask", 3)
	collector.RecordProviderCall("mistral", "mistral-tiny", "success", time.Second)
	collector.RecordProviderError("mistral", "timeout")
	collector.RecordTokens("mistral", "mistral-tiny", 100, 200)
	collector.RecordCost("mistral", "mistral-tiny", 0.001)
	collector.UpdateProviderHealth("mistral", true)
	collector.UpdateIRCConnected(true)
	collector.RecordIRCReconnect()
	collector.RecordIRCMessage("in")
	collector.UpdateIRCSendQueueDepth(1)
	collector.RecordUsageAccepted()
	collector.RecordUsageDropped()
	collector.RecordUsageWriteError()
	collector.RecordUsagePruned(1)

	if got := testutil.ToFloat64(collector.requestMetrics.requestsTotal.WithLabelValues("ask", "completed")); got != 0 {
		t.Errorf("Disabled collector recorded request: %f", got)
	}
	if got := testutil.ToFloat64(collector.ircMetrics.reconnects); got != 0 {
		t.Errorf("Disabled collector recorded reconnect: %f", got)
	}
	if got := testutil.ToFloat64(collector.usageMetrics.records); got != 0 {
		t.Errorf("Disabled collector recorded usage: %f", got)
	}
}

// TestCollector_Handler tests the /metrics endpoint
func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordRequest("ask", "completed", time.Second)
	collector.UpdateIRCConnected(true)

	srv := httptest.NewServer(collector.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Reading scrape body failed: %v", err)
	}
	output := string(body)

	wantSeries := []string{
		"europa_requests_total",
		"europa_irc_connected",
	}
	for _, series := range wantSeries {
		if !strings.Contains(output, series) {
			t.Errorf("Expected series %q in scrape output", series)
		}
	}
}

// TestMetricNames verifies the europa_ prefix on every registered series
func TestMetricNames(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewCollector(testConfig(), registry)

	// Touch one child per vector so Gather sees them
	collector.RecordRequest("ask", "completed", time.Second)
	collector.RecordChunks("ask", 1)
	collector.RecordProviderCall("mistral", "mistral-tiny", "success", time.Second)
	collector.RecordProviderError("mistral", "timeout")
	collector.RecordTokens("mistral", "mistral-tiny", 1, 1)
	collector.RecordCost("mistral", "mistral-tiny", 0.001)
	collector.UpdateProviderHealth("mistral", true)
	collector.UpdateIRCConnected(true)
	collector.RecordIRCMessage("in")

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("No metric families gathered")
	}

	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "europa_") {
			t.Errorf("Metric %q missing europa_ prefix", mf.GetName())
		}
	}
}
