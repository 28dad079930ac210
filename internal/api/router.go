package api

import (
	"net/http"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/api/handlers"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/metrics"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/ports"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/publisher"
)

// Deps carries the concrete adapters the API needs. Optional fields
// (Metrics, Publisher) may be nil.
type Deps struct {
	Geocoder ports.Geocoder
	Routes   ports.RouteProvider
	Repo     ports.TripRepository
	Rules    domain.HOSRules

	Metrics   *metrics.Collector
	Publisher *publisher.NatsPublisher

	// Store backs the health check; nil skips the readiness ping.
	Store handlers.StorePinger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{
		Geocoder:  deps.Geocoder,
		Routes:    deps.Routes,
		Repo:      deps.Repo,
		Rules:     deps.Rules,
		Metrics:   deps.Metrics,
		Publisher: deps.Publisher,
	}
	tripsHandler := &handlers.TripsHandler{Repo: deps.Repo}
	healthHandler := &handlers.HealthHandler{Store: deps.Store}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/plan-trip", planHandler.PlanTrip)
	mux.HandleFunc("/trips", tripsHandler.List)
	mux.HandleFunc("/trips/", tripsHandler.Get)
	if deps.Metrics != nil {
		mux.Handle("/metrics", deps.Metrics.Handler())
	}

	return requestIDMiddleware(loggingMiddleware(mux))
}
