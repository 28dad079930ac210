package route

import (
	"context"
	"fmt"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/ports"
)

// MockLeg is one canned route for the mock provider.
type MockLeg struct {
	Origin      domain.Coordinates
	Destination domain.Coordinates
	Result      ports.RouteResult
}

// MockRouteProvider serves canned routes keyed by origin/destination pair.
type MockRouteProvider struct {
	m     map[string]ports.RouteResult
	Calls int
}

func NewMockRouteProvider(legs []MockLeg) *MockRouteProvider {
	m := make(map[string]ports.RouteResult, len(legs))
	for _, l := range legs {
		m[LegKey(l.Origin, l.Destination)] = l.Result
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) GetRoute(ctx context.Context, origin, destination domain.Coordinates) (ports.RouteResult, error) {
	p.Calls++
	r, ok := p.m[LegKey(origin, destination)]
	if !ok {
		return ports.RouteResult{}, fmt.Errorf("missing mock route %s", LegKey(origin, destination))
	}
	return r, nil
}

// MockGeocoder serves canned coordinates keyed by location name.
type MockGeocoder struct {
	Coords map[string]domain.Coordinates
	Err    error
}

func (g *MockGeocoder) Geocode(ctx context.Context, location string) (domain.Coordinates, error) {
	if g.Err != nil {
		return domain.Coordinates{}, g.Err
	}
	c, ok := g.Coords[location]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("missing mock coordinates for %q", location)
	}
	return c, nil
}
