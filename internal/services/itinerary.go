package services

import (
	"fmt"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
)

// BuildItinerary concatenates the per-leg stop lists into one ordered
// itinerary bracketed by START, PICKUP, and DROPOFF:
//
//	START -> (deadhead leg) -> PICKUP -> (loaded leg) -> DROPOFF
//
// Clock state threads across the pickup boundary, so cumulative distance and
// hours are exactly additive across legs. Fuel tracking arms at the pickup:
// the first fuel checkpoint sits one interval past the pickup odometer.
func BuildItinerary(toPickup, toDropoff domain.TripLeg, rules domain.HOSRules) ([]domain.Stop, domain.SimulationState, error) {
	if err := rules.Validate(); err != nil {
		return nil, domain.SimulationState{}, fmt.Errorf("build itinerary: %w", err)
	}

	var state domain.SimulationState
	stops := []domain.Stop{{
		Type:     domain.StopStart,
		Location: toPickup.Origin,
		Clocks:   state.Snapshot(),
	}}

	legStops, state, err := SimulateLeg(toPickup, state, rules)
	if err != nil {
		return nil, state, fmt.Errorf("build itinerary: leg to pickup: %w", err)
	}
	stops = append(stops, legStops...)

	// Pickup is on-duty time with the vehicle stationary.
	stops = append(stops, domain.Stop{
		Type:           domain.StopPickup,
		Location:       toPickup.Destination,
		DistanceKm:     state.DistanceKm,
		HoursFromStart: state.Hours,
		StopDuration:   rules.PickupHours,
		Clocks:         state.Snapshot(),
	})
	state.DutyToday += rules.PickupHours
	state.Hours += rules.PickupHours
	state.FuelTracking = true
	state.NextFuelKm = state.DistanceKm + rules.FuelIntervalKm

	legStops, state, err = SimulateLeg(toDropoff, state, rules)
	if err != nil {
		return nil, state, fmt.Errorf("build itinerary: leg to dropoff: %w", err)
	}
	stops = append(stops, legStops...)

	stops = append(stops, domain.Stop{
		Type:           domain.StopDropoff,
		Location:       toDropoff.Destination,
		DistanceKm:     state.DistanceKm,
		HoursFromStart: state.Hours,
		StopDuration:   rules.DropoffHours,
		Clocks:         state.Snapshot(),
	})
	state.DutyToday += rules.DropoffHours
	state.Hours += rules.DropoffHours

	for i := 1; i < len(stops); i++ {
		if stops[i].HoursFromStart < stops[i-1].HoursFromStart-timeEps {
			return nil, state, fmt.Errorf("%w: itinerary out of order: stop %d (%s) at %.4f precedes stop %d (%s) at %.4f",
				domain.ErrInvariant, i, stops[i].Type, stops[i].HoursFromStart,
				i-1, stops[i-1].Type, stops[i-1].HoursFromStart)
		}
	}

	return stops, state, nil
}
