package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the database schema. The statements are portable between
// SQLite and Postgres so the same init path serves both stores.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		current_location TEXT NOT NULL,
		pickup_location TEXT NOT NULL,
		dropoff_location TEXT NOT NULL,
		current_cycle_used REAL NOT NULL,
		total_distance_km REAL NOT NULL,
		total_duration_hours REAL NOT NULL,
		degraded INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);
	`

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		trip_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		stop_type TEXT NOT NULL,
		location TEXT NOT NULL,
		distance_km REAL NOT NULL,
		hours_from_start REAL NOT NULL,
		stop_duration REAL NOT NULL,
		day INTEGER NOT NULL,
		driving_since_break REAL NOT NULL,
		driving_today REAL NOT NULL,
		duty_today REAL NOT NULL,
		PRIMARY KEY (trip_id, seq)
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
		leg_key TEXT PRIMARY KEY,
		distance_km REAL NOT NULL,
		duration_hours REAL NOT NULL,
		geometry TEXT NOT NULL
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		location TEXT PRIMARY KEY,
		lon REAL NOT NULL,
		lat REAL NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trips_created_at
	ON trips(created_at);
	`

	statements := []string{
		createTripsQuery,
		createStopsQuery,
		createRouteCacheQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
