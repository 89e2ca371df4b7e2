// Package handler serves liveness/readiness for load balancers and CI.
package handler

import (
	"encoding/json"
	"net/http"
)

// Pinger reports whether the backing store is reachable (e.g. *sql.DB).
type Pinger interface {
	Ping() error
}

// Handler serves GET /health.
type Handler struct {
	pinger Pinger
}

// NewHandler returns a health handler. pinger may be nil; then the DB check is skipped.
func NewHandler(pinger Pinger) *Handler {
	return &Handler{pinger: pinger}
}

// Health reports liveness plus store readiness. 200 when healthy, 503 when
// the store ping fails.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{"status": "ok"}
	status := http.StatusOK

	if h.pinger != nil {
		if err := h.pinger.Ping(); err != nil {
			body["status"] = "degraded"
			body["store"] = "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			body["store"] = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
