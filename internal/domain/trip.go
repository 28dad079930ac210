package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripLeg is one directed route segment between two named waypoints.
// It is immutable input produced by the route provider (or its fallback).
type TripLeg struct {
	Origin        string
	Destination   string
	DistanceKm    float64
	DurationHours float64
}

// Trip is the persisted record of a planning request and its totals.
type Trip struct {
	ID                 uuid.UUID
	CurrentLocation    string
	PickupLocation     string
	DropoffLocation    string
	CurrentCycleUsed   float64
	TotalDistanceKm    float64
	TotalDurationHours float64
	Degraded           bool
	CreatedAt          time.Time
}

// TripPlan is the full output of planning one trip: the ordered itinerary,
// the per-day duty schedules, and the route geometry for rendering.
// It is immutable planning data and contains no side effects.
type TripPlan struct {
	ID               uuid.UUID
	CurrentLocation  string
	PickupLocation   string
	DropoffLocation  string
	CurrentCycleUsed float64

	Legs  []TripLeg
	Stops []Stop
	Days  []DailySchedule

	TotalDistanceKm    float64
	TotalDurationHours float64
	Geometry           []Coordinates

	// Degraded marks plans computed from straight-line estimates after a
	// route provider failure. Callers should label such results as estimated.
	Degraded bool
}
