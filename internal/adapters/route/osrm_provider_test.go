package route

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/ports"
)

// memoryRouteCache is a map-backed RouteCache for tests.
type memoryRouteCache struct {
	m    map[string]ports.RouteResult
	puts int
}

func (c *memoryRouteCache) Get(_ context.Context, key string) (ports.RouteResult, bool, error) {
	r, ok := c.m[key]
	return r, ok, nil
}

func (c *memoryRouteCache) Put(_ context.Context, key string, r ports.RouteResult) error {
	if c.m == nil {
		c.m = map[string]ports.RouteResult{}
	}
	c.m[key] = r
	c.puts++
	return nil
}

const osrmOkBody = `{
	"code": "Ok",
	"routes": [{
		"distance": 422000,
		"duration": 18000,
		"geometry": {"coordinates": [[-87.6298, 41.8781], [-90.1994, 38.6270]]}
	}]
}`

func TestOSRMGetRouteParsesAndCaches(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if q := r.URL.Query().Get("geometries"); q != "geojson" {
			t.Errorf("geometries = %q, want geojson", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(osrmOkBody))
	}))
	defer srv.Close()

	cache := &memoryRouteCache{}
	provider := NewOSRMRouteProvider(srv.URL, cache)

	a := domain.Coordinates{Lon: -87.6298, Lat: 41.8781}
	b := domain.Coordinates{Lon: -90.1994, Lat: 38.6270}

	r, err := provider.GetRoute(context.Background(), a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.DistanceKm != 422 {
		t.Fatalf("distance = %v km, want 422", r.DistanceKm)
	}
	if r.DurationHours != 5 {
		t.Fatalf("duration = %v h, want 5", r.DurationHours)
	}
	if len(r.Geometry) != 2 {
		t.Fatalf("geometry length = %d, want 2", len(r.Geometry))
	}
	if cache.puts != 1 {
		t.Fatalf("cache puts = %d, want 1", cache.puts)
	}

	// Second call must be served from the cache.
	if _, err := provider.GetRoute(context.Background(), a, b); err != nil {
		t.Fatalf("cached call: %v", err)
	}
	if requests != 1 {
		t.Fatalf("server saw %d requests, want 1", requests)
	}
}

func TestOSRMGetRouteErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code": "NoRoute", "message": "no route between points"}`))
	}))
	defer srv.Close()

	provider := NewOSRMRouteProvider(srv.URL, nil)
	a := domain.Coordinates{Lon: 0, Lat: 0}
	b := domain.Coordinates{Lon: 1, Lat: 0}

	if _, err := provider.GetRoute(context.Background(), a, b); err == nil {
		t.Fatal("expected an error for a non-Ok OSRM code")
	}
}

func TestOSRMGetRouteRejectsBadCoordinates(t *testing.T) {
	provider := NewOSRMRouteProvider("http://unused.invalid", nil)

	bad := domain.Coordinates{Lon: 500, Lat: 0}
	if _, err := provider.GetRoute(context.Background(), bad, domain.Coordinates{}); err == nil {
		t.Fatal("expected an error for out-of-range coordinates")
	}
}
