package route

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/platform/obs"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/ports"
)

// NominatimGeocoder resolves location names via the OpenStreetMap Nominatim
// search endpoint, with persistent geocode caching. Nominatim requires an
// identifying User-Agent on every request.
type NominatimGeocoder struct {
	session   *http.Client
	baseURL   string
	userAgent string
	cache     GeocodeCache
}

func NewNominatimGeocoder(baseURL string, cache GeocodeCache) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	return &NominatimGeocoder{
		session:   &http.Client{Timeout: 10 * time.Second},
		baseURL:   baseURL,
		userAgent: "eld-trip-planner/1.0",
		cache:     cache,
	}
}

// normalizeLocation ensures consistent cache keys by collapsing whitespace.
func normalizeLocation(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (n *NominatimGeocoder) Geocode(ctx context.Context, location string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	norm := normalizeLocation(location)
	if norm == "" {
		return domain.Coordinates{}, errors.New("geocode: location must be non-empty")
	}

	if n.cache != nil {
		cached, ok, err := n.cache.Get(ctx, norm)
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("geocode cache read: %w", err)
		}
		if ok {
			return cached, nil
		}
	}

	endpoint := n.baseURL + "/search"
	resp, err := doWithRetry(ctx, n.session, func() (*http.Request, error) {
		req, err := newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", n.userAgent)
		q := req.URL.Query()
		q.Set("q", norm)
		q.Set("format", "json")
		q.Set("limit", "1")
		q.Set("countrycodes", "us")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	var decoded []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(decoded) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q", location)
	}

	lat, err := strconv.ParseFloat(decoded[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse geocode latitude for %q: %w", location, err)
	}
	lon, err := strconv.ParseFloat(decoded[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse geocode longitude for %q: %w", location, err)
	}

	coords := domain.Coordinates{Lon: lon, Lat: lat}
	if !coords.Valid() {
		return domain.Coordinates{}, fmt.Errorf("geocode %q returned coordinates out of range", location)
	}

	if n.cache != nil {
		if err := n.cache.Put(ctx, norm, coords); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return coords, nil
}

// FallbackGeocoder wraps a live geocoder with the static lookup mandated at
// the simulator boundary: well-known freight hubs resolve from a built-in
// table, anything else falls back to the contiguous-US centroid. It never
// returns an error, so callers can always proceed with a degraded plan.
type FallbackGeocoder struct {
	Primary ports.Geocoder
}

// Geographic center of the contiguous United States.
var defaultCentroid = domain.Coordinates{Lon: -98.5795, Lat: 39.8283}

var staticCities = map[string]domain.Coordinates{
	"new york":    {Lon: -74.0060, Lat: 40.7128},
	"chicago":     {Lon: -87.6298, Lat: 41.8781},
	"los angeles": {Lon: -118.2437, Lat: 34.0522},
	"houston":     {Lon: -95.3698, Lat: 29.7604},
	"phoenix":     {Lon: -112.0740, Lat: 33.4484},
	"dallas":      {Lon: -96.7970, Lat: 32.7767},
	"denver":      {Lon: -104.9903, Lat: 39.7392},
	"atlanta":     {Lon: -84.3880, Lat: 33.7490},
	"seattle":     {Lon: -122.3321, Lat: 47.6062},
	"miami":       {Lon: -80.1918, Lat: 25.7617},
	"st. louis":   {Lon: -90.1994, Lat: 38.6270},
	"memphis":     {Lon: -90.0490, Lat: 35.1495},
	"kansas city": {Lon: -94.5786, Lat: 39.0997},
	"columbus":    {Lon: -82.9988, Lat: 39.9612},
	"laredo":      {Lon: -99.5076, Lat: 27.5306},
}

func NewFallbackGeocoder(primary ports.Geocoder) *FallbackGeocoder {
	return &FallbackGeocoder{Primary: primary}
}

func (f *FallbackGeocoder) Geocode(ctx context.Context, location string) (domain.Coordinates, error) {
	if f.Primary != nil {
		coords, err := f.Primary.Geocode(ctx, location)
		if err == nil {
			return coords, nil
		}
		log.Printf("geocoder failed for %q, using static lookup: %v", location, err)
	}
	return StaticLookup(location), nil
}

// StaticLookup resolves a location from the built-in city table, matching on
// the part before the first comma ("Chicago, IL" -> "chicago"). Unknown
// locations resolve to the US centroid so planning can still proceed.
func StaticLookup(location string) domain.Coordinates {
	norm := strings.ToLower(normalizeLocation(location))
	if c, ok := staticCities[norm]; ok {
		return c
	}
	if city, _, found := strings.Cut(norm, ","); found {
		if c, ok := staticCities[strings.TrimSpace(city)]; ok {
			return c
		}
	}
	return defaultCentroid
}
