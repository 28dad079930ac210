package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/platform/obs"
)

// SQLite-backed implementation of the TripRepository port. Trip IDs are
// stored as text and timestamps as RFC3339 so the schema stays portable.
type SqliteTripRepository struct{ DB *sql.DB }

func NewSqliteTripRepository(db *sql.DB) *SqliteTripRepository {
	return &SqliteTripRepository{DB: db}
}

// Store the trip record and its itinerary stops in one transaction.
func (s *SqliteTripRepository) SaveTripPlan(ctx context.Context, plan *domain.TripPlan) (err error) {
	defer obs.Time(ctx, "repo.SaveTripPlan")(&err)

	if s.DB == nil {
		return errors.New("sqlite trip repository: DB is nil")
	}
	if plan == nil {
		return errors.New("save trip plan: plan is nil")
	}
	if plan.ID == uuid.Nil {
		return errors.New("save trip plan: plan ID is unset")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save trip plan: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertTrip := `
	INSERT INTO trips (
		id,
		current_location,
		pickup_location,
		dropoff_location,
		current_cycle_used,
		total_distance_km,
		total_duration_hours,
		degraded,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	degraded := 0
	if plan.Degraded {
		degraded = 1
	}
	_, err = tx.ExecContext(ctx, insertTrip,
		plan.ID.String(),
		plan.CurrentLocation,
		plan.PickupLocation,
		plan.DropoffLocation,
		plan.CurrentCycleUsed,
		plan.TotalDistanceKm,
		plan.TotalDurationHours,
		degraded,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save trip plan: insert trip id=%s: %w", plan.ID, err)
	}

	insertStop := `
	INSERT INTO stops (
		trip_id,
		seq,
		stop_type,
		location,
		distance_km,
		hours_from_start,
		stop_duration,
		day,
		driving_since_break,
		driving_today,
		duty_today
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.PrepareContext(ctx, insertStop)
	if err != nil {
		return fmt.Errorf("save trip plan: prepare stop insert: %w", err)
	}
	defer stmt.Close()

	for i, stop := range plan.Stops {
		_, err := stmt.ExecContext(ctx,
			plan.ID.String(),
			i,
			string(stop.Type),
			stop.Location,
			stop.DistanceKm,
			stop.HoursFromStart,
			stop.StopDuration,
			stop.Day,
			stop.Clocks.DrivingSinceBreak,
			stop.Clocks.DrivingToday,
			stop.Clocks.DutyToday,
		)
		if err != nil {
			return fmt.Errorf("save trip plan: insert stop seq=%d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save trip plan: commit tx: %w", err)
	}

	return nil
}

// Return all stored trips, newest first.
func (s *SqliteTripRepository) ListTrips(ctx context.Context) (_ []domain.Trip, err error) {
	defer obs.Time(ctx, "repo.ListTrips")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
	}

	query := `
	SELECT
		id,
		current_location,
		pickup_location,
		dropoff_location,
		current_cycle_used,
		total_distance_km,
		total_duration_hours,
		degraded,
		created_at
	FROM trips
	ORDER BY created_at DESC;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]domain.Trip, 0, 64)
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("list trips: %w", err)
		}
		trips = append(trips, trip)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}

// Return one trip and its stops, or domain.ErrNotFound.
func (s *SqliteTripRepository) GetTrip(ctx context.Context, id uuid.UUID) (_ domain.Trip, _ []domain.Stop, err error) {
	defer obs.Time(ctx, "repo.GetTrip")(&err)

	if s.DB == nil {
		return domain.Trip{}, nil, errors.New("sqlite trip repository: DB is nil")
	}

	tripQuery := `
	SELECT
		id,
		current_location,
		pickup_location,
		dropoff_location,
		current_cycle_used,
		total_distance_km,
		total_duration_hours,
		degraded,
		created_at
	FROM trips
	WHERE id = ?;
	`
	row := s.DB.QueryRowContext(ctx, tripQuery, id.String())
	trip, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Trip{}, nil, fmt.Errorf("get trip %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("get trip %s: %w", id, err)
	}

	stopsQuery := `
	SELECT
		stop_type,
		location,
		distance_km,
		hours_from_start,
		stop_duration,
		day,
		driving_since_break,
		driving_today,
		duty_today
	FROM stops
	WHERE trip_id = ?
	ORDER BY seq;
	`
	rows, err := s.DB.QueryContext(ctx, stopsQuery, id.String())
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("get trip %s: query stops table: %w", id, err)
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0, 16)
	for rows.Next() {
		var stop domain.Stop
		var stopType string
		err := rows.Scan(
			&stopType,
			&stop.Location,
			&stop.DistanceKm,
			&stop.HoursFromStart,
			&stop.StopDuration,
			&stop.Day,
			&stop.Clocks.DrivingSinceBreak,
			&stop.Clocks.DrivingToday,
			&stop.Clocks.DutyToday,
		)
		if err != nil {
			return domain.Trip{}, nil, fmt.Errorf("get trip %s: scan stop row: %w", id, err)
		}
		stop.Type = domain.StopType(stopType)
		stops = append(stops, stop)
	}
	if err := rows.Err(); err != nil {
		return domain.Trip{}, nil, fmt.Errorf("get trip %s: stop row iteration: %w", id, err)
	}

	return trip, stops, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (domain.Trip, error) {
	var (
		trip      domain.Trip
		rawID     string
		degraded  int
		createdAt string
	)
	err := row.Scan(
		&rawID,
		&trip.CurrentLocation,
		&trip.PickupLocation,
		&trip.DropoffLocation,
		&trip.CurrentCycleUsed,
		&trip.TotalDistanceKm,
		&trip.TotalDurationHours,
		&degraded,
		&createdAt,
	)
	if err != nil {
		return domain.Trip{}, err
	}

	trip.ID, err = uuid.Parse(rawID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("parse trip id %q: %w", rawID, err)
	}
	trip.Degraded = degraded != 0
	trip.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("parse trip created_at %q: %w", createdAt, err)
	}

	return trip, nil
}
