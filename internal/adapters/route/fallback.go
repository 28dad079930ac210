package route

import (
	"context"
	"log"
	"math"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/ports"
)

// minDurationHours keeps resolved durations strictly positive even for
// zero-distance legs (pickup == dropoff).
const minDurationHours = 0.01

const earthRadiusKm = 6371

// FallbackMetrics is the optional counter surface for provider degradation.
type FallbackMetrics interface {
	ProviderFallbackInc()
}

// FallbackRouteProvider wraps a live route provider with the deterministic
// straight-line estimate mandated at the simulator boundary: the simulator
// must always receive a resolved leg, never an error or a null.
//
// Results produced by the fallback are marked Estimated so callers can label
// the plan as degraded rather than suppress the distinction.
type FallbackRouteProvider struct {
	Primary     ports.RouteProvider
	AvgSpeedKmh float64
	Metrics     FallbackMetrics
}

func NewFallbackRouteProvider(primary ports.RouteProvider, avgSpeedKmh float64, m FallbackMetrics) *FallbackRouteProvider {
	if avgSpeedKmh <= 0 {
		avgSpeedKmh = domain.DefaultHOSRules().AvgSpeedKmh
	}
	return &FallbackRouteProvider{Primary: primary, AvgSpeedKmh: avgSpeedKmh, Metrics: m}
}

func (f *FallbackRouteProvider) GetRoute(
	ctx context.Context,
	origin, destination domain.Coordinates,
) (ports.RouteResult, error) {
	if f.Primary != nil {
		result, err := f.Primary.GetRoute(ctx, origin, destination)
		if err == nil {
			if result.DurationHours <= 0 {
				result.DurationHours = math.Max(result.DistanceKm/f.AvgSpeedKmh, minDurationHours)
			}
			return result, nil
		}
		log.Printf("route provider failed, using straight-line estimate: %v", err)
		if f.Metrics != nil {
			f.Metrics.ProviderFallbackInc()
		}
	}
	return StraightLineRoute(origin, destination, f.AvgSpeedKmh), nil
}

// StraightLineRoute estimates a leg as the great-circle distance at an
// assumed average speed, with interpolated geometry roughly every 50 km.
func StraightLineRoute(origin, destination domain.Coordinates, avgSpeedKmh float64) ports.RouteResult {
	distanceKm := GreatCircleKm(origin, destination)

	points := int(distanceKm / 50)
	if points < 10 {
		points = 10
	}
	geometry := make([]domain.Coordinates, 0, points+1)
	for i := 0; i <= points; i++ {
		fraction := float64(i) / float64(points)
		geometry = append(geometry, domain.Coordinates{
			Lon: origin.Lon + (destination.Lon-origin.Lon)*fraction,
			Lat: origin.Lat + (destination.Lat-origin.Lat)*fraction,
		})
	}

	return ports.RouteResult{
		DistanceKm:    distanceKm,
		DurationHours: math.Max(distanceKm/avgSpeedKmh, minDurationHours),
		Geometry:      geometry,
		Estimated:     true,
	}
}

// GreatCircleKm returns the haversine distance between two coordinates.
func GreatCircleKm(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}
