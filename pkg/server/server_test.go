package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mercator-hq/europa/pkg/config"
	"mercator-hq/europa/pkg/telemetry/health"
	"mercator-hq/europa/pkg/telemetry/logging"
	"mercator-hq/europa/pkg/telemetry/metrics"
)

func testOptions(t *testing.T) Options {
	t.Helper()

	metricsCfg := &config.MetricsConfig{
		Enabled:       true,
		ListenAddress: "127.0.0.1:0",
		Path:          "/metrics",
	}
	healthCfg := &config.HealthConfig{
		Enabled:       true,
		LivenessPath:  "/healthz",
		ReadinessPath: "/readyz",
		CheckTimeout:  time.Second,
	}

	logger, err := logging.New(logging.Config{Level: "error", Writer: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	return Options{
		Metrics:   metricsCfg,
		Health:    healthCfg,
		Collector: metrics.NewCollector(metricsCfg, nil),
		Checker:   health.NewFromConfig(healthCfg),
		Logger:    logger,
		Version:   "test",
		Commit:    "none",
		BuildTime: "unknown",
	}
}

// TestServer_StartAndServe starts a real listener and exercises every route.
func TestServer_StartAndServe(t *testing.T) {
	srv := New(testOptions(t))

	if err := srv.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer func() { _ = srv.Shutdown(context.Background()) }()

	if !srv.IsRunning() {
		t.Fatal("expected server to be running")
	}

	addr := srv.Addr()
	if addr == "" {
		t.Fatal("expected non-empty bound address")
	}

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/metrics", http.StatusOK, "europa_irc_connected"},
		{"/healthz", http.StatusOK, `"status":"ok"`},
		{"/readyz", http.StatusOK, `"status":"ready"`},
		{"/version", http.StatusOK, `"version":"test"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(fmt.Sprintf("http://%s%s", addr, tt.path))
			if err != nil {
				t.Fatalf("GET %s error: %v", tt.path, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("GET %s: expected status %d, got %d", tt.path, tt.wantStatus, resp.StatusCode)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("failed to read body: %v", err)
			}
			if !strings.Contains(string(body), tt.wantBody) {
				t.Errorf("GET %s: expected body to contain %q", tt.path, tt.wantBody)
			}
		})
	}
}

// TestServer_StartTwice verifies double Start fails.
func TestServer_StartTwice(t *testing.T) {
	srv := New(testOptions(t))

	if err := srv.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer func() { _ = srv.Shutdown(context.Background()) }()

	if err := srv.Start(); err == nil {
		t.Error("expected error starting a running server")
	}
}

// TestServer_Disabled verifies Start is a no-op with both surfaces disabled.
func TestServer_Disabled(t *testing.T) {
	opts := testOptions(t)
	opts.Metrics.Enabled = false
	opts.Health.Enabled = false

	srv := New(opts)

	if err := srv.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	if srv.IsRunning() {
		t.Error("expected server not to be running")
	}
	if srv.Addr() != "" {
		t.Errorf("expected empty address, got %q", srv.Addr())
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error: %v", err)
	}
}

// TestServer_MetricsOnly verifies probe routes vanish when health is disabled.
func TestServer_MetricsOnly(t *testing.T) {
	opts := testOptions(t)
	opts.Health.Enabled = false

	srv := New(opts)
	handler := srv.Handler()

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/metrics", http.StatusOK},
		{"/healthz", http.StatusNotFound},
		{"/readyz", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

// TestServer_ReadinessDegraded verifies a failing component turns /readyz 503.
func TestServer_ReadinessDegraded(t *testing.T) {
	opts := testOptions(t)
	opts.Checker.RegisterCheck(health.ComponentIRC,
		health.BoolCheck(func() bool { return false }, "not connected"))

	srv := New(opts)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not connected") {
		t.Error("expected degraded body to name the failing component")
	}
}

// TestServer_ShutdownIdempotent verifies repeated Shutdown calls are safe.
func TestServer_ShutdownIdempotent(t *testing.T) {
	srv := New(testOptions(t))

	if err := srv.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		t.Errorf("first Shutdown() error: %v", err)
	}
	if err := srv.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown() error: %v", err)
	}

	if srv.IsRunning() {
		t.Error("expected server to be stopped")
	}
}
