// Package healthprobe provides liveness and readiness HTTP handlers.
// Liveness only says the process is up; readiness is gated on the first
// completed scan cycle, so load balancers don't route to an instance
// whose API would serve empty snapshots.
package healthprobe

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// HealthChecker tracks process uptime and the readiness flag.
type HealthChecker struct {
	startTime time.Time
	ready     atomic.Bool
}

// New creates a checker that starts not ready.
func New() *HealthChecker {
	return &HealthChecker{startTime: time.Now()}
}

// SetReady flips the readiness flag. The application sets it true once the
// first scan cycle has completed and back to false on shutdown.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// HealthResponse is the JSON body of both probe endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Message string `json:"message,omitempty"`
}

// Health handles liveness checks. It returns 200 for as long as the process
// can serve HTTP at all.
func (h *HealthChecker) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.respond(w, http.StatusOK, HealthResponse{
			Status: "healthy",
			Uptime: time.Since(h.startTime).String(),
		})
	}
}

// Ready handles readiness checks: 200 once the first scan cycle has
// completed, 503 before that and after shutdown begins.
func (h *HealthChecker) Ready() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.ready.Load() {
			h.respond(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  "not_ready",
				Message: "first scan cycle has not completed",
			})
			return
		}

		h.respond(w, http.StatusOK, HealthResponse{
			Status: "ready",
			Uptime: time.Since(h.startTime).String(),
		})
	}
}

func (h *HealthChecker) respond(w http.ResponseWriter, code int, resp HealthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
