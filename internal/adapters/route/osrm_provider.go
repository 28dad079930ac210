package route

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/platform/obs"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/ports"
)

// RouteCache is a persistent cache of resolved routes keyed by LegKey.
// Implementations live in adapters/cache (SQLite, Postgres, Redis).
type RouteCache interface {
	Get(ctx context.Context, key string) (ports.RouteResult, bool, error)
	Put(ctx context.Context, key string, r ports.RouteResult) error
}

// GeocodeCache is a persistent cache of resolved coordinates keyed by the
// normalized location name.
type GeocodeCache interface {
	Get(ctx context.Context, location string) (domain.Coordinates, bool, error)
	Put(ctx context.Context, location string, c domain.Coordinates) error
}

// LegKey builds a stable cache key for an origin/destination pair.
// Coordinates are rounded to ~1 meter so repeated geocodes of the same
// place hit the same entry.
func LegKey(origin, destination domain.Coordinates) string {
	return fmt.Sprintf("%.5f,%.5f|%.5f,%.5f", origin.Lon, origin.Lat, destination.Lon, destination.Lat)
}

// OSRMRouteProvider implements RouteProvider against an OSRM server
// (router.project-osrm.org by default, no API key needed).
//
// It coordinates persistent route caching and external calls with
// retry/backoff. The provider is safe for concurrent use.
type OSRMRouteProvider struct {
	session *http.Client
	baseURL string
	cache   RouteCache
}

func NewOSRMRouteProvider(baseURL string, cache RouteCache) *OSRMRouteProvider {
	if baseURL == "" {
		baseURL = "https://router.project-osrm.org"
	}
	return &OSRMRouteProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		cache:   cache,
	}
}

type osrmRouteResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"routes"`
}

// GetRoute resolves one driving leg between two coordinates.
func (o *OSRMRouteProvider) GetRoute(
	ctx context.Context,
	origin, destination domain.Coordinates,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "osrm.GetRoute")(&err)

	if !origin.Valid() || !destination.Valid() {
		return ports.RouteResult{}, errors.New("get OSRM route: coordinates out of range")
	}

	key := LegKey(origin, destination)
	if o.cache != nil {
		cached, ok, err := o.cache.Get(ctx, key)
		if err != nil {
			return ports.RouteResult{}, fmt.Errorf("OSRM route cache read: %w", err)
		}
		if ok {
			return cached, nil
		}
	}

	endpoint := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f",
		o.baseURL, origin.Lon, origin.Lat, destination.Lon, destination.Lat)

	resp, err := doWithRetry(ctx, o.session, func() (*http.Request, error) {
		req, err := newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("overview", "full")
		q.Set("geometries", "geojson")
		q.Set("steps", "false")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("OSRM route request: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode OSRM route response: %w", err)
	}

	if decoded.Code != "Ok" {
		return ports.RouteResult{}, fmt.Errorf("OSRM routing error: %s", decoded.Message)
	}
	if len(decoded.Routes) == 0 {
		return ports.RouteResult{}, errors.New("OSRM returned no routes")
	}

	r := decoded.Routes[0]
	geometry := make([]domain.Coordinates, 0, len(r.Geometry.Coordinates))
	for _, c := range r.Geometry.Coordinates {
		if len(c) != 2 {
			return ports.RouteResult{}, errors.New("OSRM returned malformed geometry point")
		}
		geometry = append(geometry, domain.Coordinates{Lon: c[0], Lat: c[1]})
	}

	result := ports.RouteResult{
		DistanceKm:    r.Distance / 1000,
		DurationHours: r.Duration / 3600,
		Geometry:      geometry,
	}
	// A zero duration would divide the simulator by zero downstream.
	if result.DurationHours <= 0 {
		result.DurationHours = minDurationHours
	}

	if o.cache != nil {
		if err := o.cache.Put(ctx, key, result); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return result, nil
}
