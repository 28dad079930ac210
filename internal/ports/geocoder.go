package ports

import (
	"context"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
)

// Contract for resolving a location name to coordinates.
// The simulation core never geocodes directly; callers resolve all
// coordinates up front and handle provider failure themselves.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (domain.Coordinates, error)
}
