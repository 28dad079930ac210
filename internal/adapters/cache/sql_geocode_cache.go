package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/platform/obs"
)

// SQLGeocodeCache is a Postgres-backed cache mapping location names to
// coordinates.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch cached coordinates for one location name.
func (s *SQLGeocodeCache) Get(ctx context.Context, location string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	location = strings.TrimSpace(location)
	if location == "" {
		return domain.Coordinates{}, false, errors.New("get geocode cache: location must not be empty")
	}

	q := `
	SELECT lon, lat
	FROM geocode_cache
	WHERE location = $1;
	`

	var c domain.Coordinates
	err = s.DB.QueryRowContext(ctx, q, location).Scan(&c.Lon, &c.Lat)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return c, true, nil
}

// Store resolved coordinates for one location name.
func (s *SQLGeocodeCache) Put(ctx context.Context, location string, c domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	location = strings.TrimSpace(location)
	if location == "" {
		return errors.New("insert geocode cache: location must not be empty")
	}

	q := `
	INSERT INTO geocode_cache (location, lon, lat)
	VALUES ($1, $2, $3)
	ON CONFLICT (location) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat;
	`
	if _, err := s.DB.ExecContext(ctx, q, location, c.Lon, c.Lat); err != nil {
		return fmt.Errorf("insert geocode cache location=%q: %w", location, err)
	}
	return nil
}
