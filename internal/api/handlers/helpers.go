package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeDomainError maps the planner's sentinel errors onto HTTP statuses so
// every handler reports them the same way. Invalid input surfaces its own
// message; anything unclassified is logged and hidden behind a 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "trip not found")
	default:
		log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
