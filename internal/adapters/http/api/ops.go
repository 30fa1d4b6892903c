// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/siuwai/hehun/pkg/metrics"
)

// StatsProvider exposes the service's runtime counters: queue depth,
// pool size, worker state and cache hit rates.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// handleStats serves GET /stats with a snapshot of the matching
// service's runtime counters.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(s.stats.GetStats())
}

// handleHealth serves /healthz as a Prometheus exposition over the
// service registry; a scrape doubles as a liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}).ServeHTTP(w, r)
}
