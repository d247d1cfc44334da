// Package rest serves the plain HTTP endpoints next to the WebSocket
// endpoint: liveness, readiness, and a component health report.
package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

type sessionCounter interface {
	Count() int
}

type aggregationStatus interface {
	LastRun() (time.Time, error)
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	db          dbPinger
	sessions    sessionCounter
	aggregation aggregationStatus
	version     string
}

// NewHealthHandler creates a HealthHandler. aggregation is nil when the
// daily scheduler is disabled.
func NewHealthHandler(db dbPinger, sessions sessionCounter, aggregation aggregationStatus, version string) *HealthHandler {
	return &HealthHandler{db: db, sessions: sessions, aggregation: aggregation, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string     `json:"status"`
	Latency string     `json:"latency,omitempty"`
	Detail  string     `json:"detail,omitempty"`
	LastRun *time.Time `json:"lastRun,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe. Pings DB: 200 if OK, 503 if not.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check. Only the database decides the overall
// status; a failed aggregation run is reported as degraded.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	components := make(map[string]CompStatus, 3)
	overallStatus := "ok"

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		components["database"] = CompStatus{Status: "down"}
		overallStatus = "down"
	} else {
		components["database"] = CompStatus{Status: "ok", Latency: time.Since(start).String()}
	}

	if h.sessions != nil {
		components["websocket"] = CompStatus{
			Status: "ok",
			Detail: strconv.Itoa(h.sessions.Count()) + " open sessions",
		}
	}

	if h.aggregation != nil {
		components["aggregation"] = aggregationComponent(h.aggregation)
	}

	status := http.StatusOK
	if overallStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overallStatus,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func aggregationComponent(a aggregationStatus) CompStatus {
	at, err := a.LastRun()
	switch {
	case at.IsZero():
		return CompStatus{Status: "pending"}
	case err != nil:
		return CompStatus{Status: "degraded", Detail: err.Error(), LastRun: &at}
	default:
		return CompStatus{Status: "ok", LastRun: &at}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
