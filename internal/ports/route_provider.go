package ports

import (
	"context"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
)

// RouteResult is a resolved driving route between two coordinates.
// DurationHours is always strictly positive, even for near-zero distance;
// adapters must guarantee this before the result reaches the simulator.
type RouteResult struct {
	DistanceKm    float64
	DurationHours float64
	Geometry      []domain.Coordinates

	// Estimated marks results produced by the deterministic straight-line
	// fallback rather than the live routing service.
	Estimated bool
}

// Contract for resolving a driving route between two points.
type RouteProvider interface {
	// Return distance, duration, and path geometry for one leg.
	GetRoute(ctx context.Context, origin, destination domain.Coordinates) (RouteResult, error)
}
