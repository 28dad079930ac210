package services

import (
	"fmt"
	"math"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
)

// timeEps guards float comparisons on the simulation clocks.
const timeEps = 1e-9

// distEps guards float comparisons on cumulative distance.
const distEps = 1e-6

// SimulateLeg steps through one leg of known distance and duration, starting
// from the given clock state, and emits every regulation-mandated stop along
// the way. The returned state seeds the next leg.
//
// The leg is advanced in chunks of at most rules.MaxChunkHours. Each chunk is
// additionally capped by the time remaining until the nearest trigger (break
// clock, daily driving clock, daily duty window, fuel checkpoint), so clocks
// reset at the exact threshold-crossing instant and the driving clocks never
// overshoot their limits before the mandated stop is emitted.
//
// Trigger priority when several fire at the same instant:
//  1. driving since break >= BreakAfterHours   -> REST
//  2. cumulative distance >= next fuel checkpoint -> FUEL
//  3. daily driving or duty limit reached      -> OVERNIGHT
func SimulateLeg(leg domain.TripLeg, state domain.SimulationState, rules domain.HOSRules) ([]domain.Stop, domain.SimulationState, error) {
	if err := rules.Validate(); err != nil {
		return nil, state, fmt.Errorf("simulate leg: %w", err)
	}
	if leg.DurationHours <= 0 {
		return nil, state, fmt.Errorf("%w: leg %q -> %q: duration must be positive, got %v",
			domain.ErrInvalidInput, leg.Origin, leg.Destination, leg.DurationHours)
	}
	if leg.DistanceKm < 0 {
		return nil, state, fmt.Errorf("%w: leg %q -> %q: distance must be non-negative, got %v",
			domain.ErrInvalidInput, leg.Origin, leg.Destination, leg.DistanceKm)
	}

	// speed is 0 for a zero-distance leg; the duration still simulates.
	speed := leg.DistanceKm / leg.DurationHours

	var stops []domain.Stop
	emit := func(t domain.StopType, location string, duration float64) {
		stops = append(stops, domain.Stop{
			Type:           t,
			Location:       location,
			DistanceKm:     state.DistanceKm,
			HoursFromStart: state.Hours,
			StopDuration:   duration,
			Clocks:         state.Snapshot(),
		})
	}

	remaining := leg.DurationHours
	for remaining > timeEps {
		step := math.Min(rules.MaxChunkHours, remaining)
		step = capToTrigger(step, rules.BreakAfterHours-state.DrivingSinceBreak)
		step = capToTrigger(step, rules.MaxDrivingHours-state.DrivingToday)
		step = capToTrigger(step, rules.MaxDutyHours-state.DutyToday)
		if state.FuelTracking && speed > 0 {
			step = capToTrigger(step, (state.NextFuelKm-state.DistanceKm)/speed)
		}

		if step > 0 {
			state.DrivingSinceBreak += step
			state.DrivingToday += step
			state.DutyToday += step
			state.Hours += step
			state.DistanceKm += step * speed
			remaining -= step
		}

		emitted := len(stops)
		switch {
		case state.DrivingSinceBreak >= rules.BreakAfterHours-timeEps:
			state.RestBreaks++
			emit(domain.StopRest, fmt.Sprintf("30-min Break after %.0f hours", state.Hours), rules.RestBreakHours)
			state.DrivingSinceBreak = 0
			state.DutyToday += rules.RestBreakHours
			state.Hours += rules.RestBreakHours

		case state.FuelTracking && state.DistanceKm >= state.NextFuelKm-distEps:
			state.FuelStops++
			emit(domain.StopFuel, fmt.Sprintf("Fuel Stop %d", state.FuelStops), rules.FuelStopHours)
			state.DutyToday += rules.FuelStopHours
			state.Hours += rules.FuelStopHours
			state.NextFuelKm += rules.FuelIntervalKm

		case state.DrivingToday >= rules.MaxDrivingHours-timeEps || state.DutyToday >= rules.MaxDutyHours-timeEps:
			state.Overnights++
			emit(domain.StopOvernight, fmt.Sprintf("Overnight Rest Day %d", state.Overnights), rules.MinRestHours)
			state.DrivingSinceBreak = 0
			state.DrivingToday = 0
			state.DutyToday = 0
			state.Hours += rules.MinRestHours
		}

		// A zero-length step must emit a stop, otherwise no clock can advance
		// and the loop would spin forever. That would be an accounting bug.
		if step <= timeEps && len(stops) == emitted {
			return nil, state, fmt.Errorf("%w: simulation stalled %.4f hours before end of leg %q -> %q",
				domain.ErrInvariant, remaining, leg.Origin, leg.Destination)
		}
	}

	return stops, state, nil
}

// capToTrigger shrinks a chunk so it cannot step past an armed trigger.
func capToTrigger(step, until float64) float64 {
	if until >= step {
		return step
	}
	if until < 0 {
		return 0
	}
	return until
}
