package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"mercator-hq/europa/pkg/config"
	"mercator-hq/europa/pkg/telemetry/health"
	"mercator-hq/europa/pkg/telemetry/logging"
	"mercator-hq/europa/pkg/telemetry/metrics"
)

// Options configures the ops server.
type Options struct {
	// Metrics is the metrics config section; the listener address and
	// scrape path come from here.
	Metrics *config.MetricsConfig

	// Health is the health config section; probe paths come from here.
	Health *config.HealthConfig

	// Collector supplies the metrics scrape handler.
	Collector *metrics.Collector

	// Checker supplies the probe handlers.
	Checker *health.Checker

	// Logger receives server lifecycle events.
	Logger *logging.Logger

	// Build information served at /version.
	Version   string
	Commit    string
	BuildTime string
}

// Server is the operational HTTP server. It exposes Prometheus metrics and
// health probes on a loopback listener, separate from the IRC connection
// that carries user traffic. User requests never touch this listener.
type Server struct {
	opts         Options
	logger       *logging.Logger
	httpServer   *http.Server
	listener     net.Listener
	mu           sync.RWMutex
	isRunning    bool
	shutdownOnce sync.Once
}

// New creates an ops server from the given options.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger, _ = logging.New(logging.Config{}) // zero config cannot fail
	}

	return &Server{
		opts:   opts,
		logger: logger.Component("ops"),
	}
}

// Start binds the listener and begins serving in the background. It returns
// immediately; bind failures surface here rather than asynchronously. When
// both metrics and health are disabled, Start is a no-op.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("ops server is already running")
	}

	if !s.metricsEnabled() && !s.healthEnabled() {
		s.mu.Unlock()
		s.logger.Info("ops server disabled")
		return nil
	}

	addr := config.DefaultMetricsListenAddress
	if s.opts.Metrics != nil && s.opts.Metrics.ListenAddress != "" {
		addr = s.opts.Metrics.ListenAddress
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("ops server listen on %s: %w", addr, err)
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.buildHandler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	s.isRunning = true
	s.mu.Unlock()

	go func() {
		s.logger.Info("ops server listening",
			"address", listener.Addr().String(),
			"metrics", s.metricsEnabled(),
			"health", s.healthEnabled(),
		)

		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("ops server error", "error", err)
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
	}()

	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight scrapes up to
// the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		srv := s.httpServer
		running := s.isRunning
		s.mu.Unlock()

		if !running || srv == nil {
			return
		}

		s.logger.Info("stopping ops server")

		if err := srv.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("ops server shutdown: %w", err)
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
	})

	return shutdownErr
}

// buildHandler mounts the enabled surfaces on a fresh mux.
func (s *Server) buildHandler() http.Handler {
	mux := http.NewServeMux()

	if s.metricsEnabled() {
		path := s.opts.Metrics.Path
		if path == "" {
			path = config.DefaultMetricsPath
		}
		mux.Handle(path, s.opts.Collector.Handler())
	}

	if s.healthEnabled() {
		health.RegisterRoutes(mux, s.opts.Checker, s.opts.Health,
			s.opts.Version, s.opts.Commit, s.opts.BuildTime)
	}

	return mux
}

func (s *Server) metricsEnabled() bool {
	return s.opts.Metrics != nil && s.opts.Metrics.Enabled && s.opts.Collector != nil
}

func (s *Server) healthEnabled() bool {
	return s.opts.Health != nil && s.opts.Health.Enabled && s.opts.Checker != nil
}

// IsRunning returns true if the server is listening.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Addr returns the bound listener address, or "" when not listening. With a
// ":0" listen address this is the only way to learn the assigned port.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listener == nil || !s.isRunning {
		return ""
	}
	return s.listener.Addr().String()
}

// Handler returns the configured HTTP handler without starting a listener.
func (s *Server) Handler() http.Handler {
	return s.buildHandler()
}
