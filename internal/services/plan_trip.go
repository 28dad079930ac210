// Package services contains the Hours-of-Service planning engine: a pure,
// deterministic simulation that turns resolved route legs into a
// regulation-compliant itinerary and per-day duty schedules.
//
// The engine holds no shared mutable state. Each run is a function of its
// explicit inputs, so independent trips may be planned concurrently; within
// one trip the legs are strictly sequential because each leg's starting
// clocks depend on the prior leg's final state.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/ports"
)

// PlanTripRequest carries the four user inputs for one planning run.
type PlanTripRequest struct {
	CurrentLocation  string
	PickupLocation   string
	DropoffLocation  string
	CurrentCycleUsed float64
}

// Validate rejects requests the simulator cannot act on.
func (r PlanTripRequest) Validate() error {
	for _, loc := range []struct{ name, value string }{
		{"current_location", r.CurrentLocation},
		{"pickup_location", r.PickupLocation},
		{"dropoff_location", r.DropoffLocation},
	} {
		if strings.TrimSpace(loc.value) == "" {
			return fmt.Errorf("%w: %s must be non-empty", domain.ErrInvalidInput, loc.name)
		}
	}
	if r.CurrentCycleUsed < 0 {
		return fmt.Errorf("%w: current_cycle_used must be non-negative, got %v",
			domain.ErrInvalidInput, r.CurrentCycleUsed)
	}
	return nil
}

// PlanTrip geocodes the three waypoints, resolves both legs through the
// route provider, and runs the HOS simulation end to end: itinerary, day
// assignment, daily schedule synthesis, and cycle accounting.
//
// The provider is expected to have already applied its own fallback; an
// error from it aborts planning rather than reaching the simulator as a
// missing value.
func PlanTrip(
	ctx context.Context,
	req PlanTripRequest,
	geocoder ports.Geocoder,
	routes ports.RouteProvider,
	rules domain.HOSRules,
) (*domain.TripPlan, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	current, err := geocodeValid(ctx, geocoder, req.CurrentLocation)
	if err != nil {
		return nil, fmt.Errorf("plan trip: current location: %w", err)
	}
	pickup, err := geocodeValid(ctx, geocoder, req.PickupLocation)
	if err != nil {
		return nil, fmt.Errorf("plan trip: pickup location: %w", err)
	}
	dropoff, err := geocodeValid(ctx, geocoder, req.DropoffLocation)
	if err != nil {
		return nil, fmt.Errorf("plan trip: dropoff location: %w", err)
	}

	toPickup, err := routes.GetRoute(ctx, current, pickup)
	if err != nil {
		return nil, fmt.Errorf("plan trip: route %q -> %q: %w", req.CurrentLocation, req.PickupLocation, err)
	}
	toDropoff, err := routes.GetRoute(ctx, pickup, dropoff)
	if err != nil {
		return nil, fmt.Errorf("plan trip: route %q -> %q: %w", req.PickupLocation, req.DropoffLocation, err)
	}

	legs := []domain.TripLeg{
		{
			Origin:        req.CurrentLocation,
			Destination:   req.PickupLocation,
			DistanceKm:    toPickup.DistanceKm,
			DurationHours: toPickup.DurationHours,
		},
		{
			Origin:        req.PickupLocation,
			Destination:   req.DropoffLocation,
			DistanceKm:    toDropoff.DistanceKm,
			DurationHours: toDropoff.DurationHours,
		},
	}
	for _, leg := range legs {
		if leg.DurationHours <= 0 {
			return nil, fmt.Errorf("%w: leg %q -> %q resolved with non-positive duration %v",
				domain.ErrInvalidInput, leg.Origin, leg.Destination, leg.DurationHours)
		}
	}

	stops, _, err := BuildItinerary(legs[0], legs[1], rules)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	frags, err := AssignDays(stops)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}
	// Stamp each stop with the day its first fragment lands on.
	for _, f := range frags {
		if f.FragmentIndex == 0 {
			stops[f.StopIndex].Day = f.Day
		}
	}

	days, err := BuildDailySchedules(frags, rules)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}
	days = ApplyCycle(days, req.CurrentCycleUsed, rules)

	geometry := make([]domain.Coordinates, 0, len(toPickup.Geometry)+len(toDropoff.Geometry))
	geometry = append(geometry, toPickup.Geometry...)
	geometry = append(geometry, toDropoff.Geometry...)

	return &domain.TripPlan{
		ID:               uuid.New(),
		CurrentLocation:  req.CurrentLocation,
		PickupLocation:   req.PickupLocation,
		DropoffLocation:  req.DropoffLocation,
		CurrentCycleUsed: req.CurrentCycleUsed,
		Legs:             legs,
		Stops:            stops,
		Days:             days,
		TotalDistanceKm:  toPickup.DistanceKm + toDropoff.DistanceKm,
		// Driving time only; stop time shows up in the daily schedules.
		TotalDurationHours: toPickup.DurationHours + toDropoff.DurationHours,
		Geometry:           geometry,
		Degraded:           toPickup.Estimated || toDropoff.Estimated,
	}, nil
}

func geocodeValid(ctx context.Context, geocoder ports.Geocoder, location string) (domain.Coordinates, error) {
	coords, err := geocoder.Geocode(ctx, location)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", location, err)
	}
	if !coords.Valid() {
		return domain.Coordinates{}, fmt.Errorf("%w: geocode %q returned malformed coordinates (%v, %v)",
			domain.ErrInvalidInput, location, coords.Lon, coords.Lat)
	}
	return coords, nil
}
