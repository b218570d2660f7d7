package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/scanprof/zenos/pkg/metrics"
)

// StatsProvider reports roster and session counters for GET /stats.
type StatsProvider interface {
	GetStats() map[string]any
}

// StatusHandler serves the operational routes: health with Prometheus
// metrics, and the stats snapshot.
type StatusHandler struct {
	stats   StatsProvider
	metrics http.Handler
}

// NewStatusHandler creates a status handler reading from stats.
func NewStatusHandler(stats StatsProvider) *StatusHandler {
	return &StatusHandler{
		stats:   stats,
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz. A live process answers with its
// Prometheus exposition.
func (h *StatusHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}

// HandleStats handles GET /stats.
func (h *StatusHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.GetStats())
}
