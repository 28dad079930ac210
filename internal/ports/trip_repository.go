package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
)

// Port: a boundary for persisting planned trips and reading them back.
type TripRepository interface {
	// Store a computed plan (trip record plus its itinerary stops).
	SaveTripPlan(ctx context.Context, plan *domain.TripPlan) error
	// Retrieve all stored trips, newest first.
	ListTrips(ctx context.Context) ([]domain.Trip, error)
	// Retrieve one trip and its stops. Returns domain.ErrNotFound when absent.
	GetTrip(ctx context.Context, id uuid.UUID) (domain.Trip, []domain.Stop, error)
}
