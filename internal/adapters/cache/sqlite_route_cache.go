package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/ports"
)

// SQLite backed cache for resolved route legs. Keys are expected to be
// consistent (route.LegKey output) by the caller.
type SqliteRouteCache struct {
	DB *sql.DB
}

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db}
}

// Fetch one cached leg by key.
func (s *SqliteRouteCache) Get(ctx context.Context, key string) (ports.RouteResult, bool, error) {
	if s.DB == nil {
		return ports.RouteResult{}, false, errors.New("route cache: db is nil")
	}
	if key == "" {
		return ports.RouteResult{}, false, errors.New("get route cache: key must not be empty")
	}

	q := `
	SELECT distance_km, duration_hours, geometry
	FROM route_cache
	WHERE leg_key = ?;
	`

	var (
		distanceKm    float64
		durationHours float64
		geometryJSON  string
	)
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&distanceKm, &durationHours, &geometryJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	var geometry []domain.Coordinates
	if geometryJSON != "" {
		if err := json.Unmarshal([]byte(geometryJSON), &geometry); err != nil {
			return ports.RouteResult{}, false, fmt.Errorf("get route cache: decode geometry: %w", err)
		}
	}

	return ports.RouteResult{
		DistanceKm:    distanceKm,
		DurationHours: durationHours,
		Geometry:      geometry,
	}, true, nil
}

// Store one resolved leg. Estimated results are never cached; the next
// attempt should retry the live provider.
func (s *SqliteRouteCache) Put(ctx context.Context, key string, r ports.RouteResult) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}
	if r.Estimated {
		return nil
	}

	geometryJSON, err := json.Marshal(r.Geometry)
	if err != nil {
		return fmt.Errorf("insert route cache: encode geometry: %w", err)
	}

	q := `
	INSERT OR REPLACE INTO route_cache (leg_key, distance_km, duration_hours, geometry)
	VALUES (?, ?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, q, key, r.DistanceKm, r.DurationHours, string(geometryJSON)); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}
	return nil
}
