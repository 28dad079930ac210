package handlers

import (
	"context"
	"log"
	"net/http"
)

// StorePinger reports whether the backing trip store is reachable.
// *sql.DB satisfies it.
type StorePinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports liveness, degraded to 503 when the store is down.
type HealthHandler struct {
	Store StorePinger
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.Store != nil {
		if err := h.Store.PingContext(r.Context()); err != nil {
			log.Printf("health check: store unreachable: %v", err)
			writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
