package health

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"mercator-hq/europa/pkg/config"
)

// VersionInfo is the /version response body.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// LivenessHandler answers that the process is alive. It always reports ok;
// a process too wedged to run the handler fails the probe by not answering.
func (c *Checker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeProbe(w, r, http.StatusOK, Report{
			Status:    StatusOK,
			Timestamp: time.Now(),
		})
	}
}

// ReadinessHandler runs every registered component check and answers 503
// while any of them fails, so an orchestrator stops routing during an IRC
// reconnect window or a store outage.
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := c.CheckReadiness(r.Context())

		code := http.StatusOK
		if report.Status != StatusReady {
			code = http.StatusServiceUnavailable
		}
		writeProbe(w, r, code, report)
	}
}

// VersionHandler serves the build information stamped into the binary.
func VersionHandler(version, commit, buildTime string) http.HandlerFunc {
	info := VersionInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeProbe(w, r, http.StatusOK, info)
	}
}

// writeProbe writes a JSON probe response. Probes accept GET and HEAD only;
// HEAD gets status and headers without a body.
func writeProbe(w http.ResponseWriter, r *http.Request, code int, body any) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

// RegisterRoutes mounts the probe endpoints on mux at the configured paths,
// plus build information at /version. A nil config gets /healthz and
// /readyz.
func RegisterRoutes(mux *http.ServeMux, checker *Checker, cfg *config.HealthConfig, version, commit, buildTime string) {
	livenessPath := "/healthz"
	readinessPath := "/readyz"
	if cfg != nil && cfg.LivenessPath != "" {
		livenessPath = cfg.LivenessPath
	}
	if cfg != nil && cfg.ReadinessPath != "" {
		readinessPath = cfg.ReadinessPath
	}

	mux.HandleFunc(livenessPath, checker.LivenessHandler())
	mux.HandleFunc(readinessPath, checker.ReadinessHandler())
	mux.HandleFunc("/version", VersionHandler(version, commit, buildTime))
}
