package domain

// SimulationState carries the duty clocks and cumulative counters through a
// chunked simulation. It is a pure value: simulation steps return a new
// state rather than mutating a shared one, so identical inputs always
// reproduce identical itineraries.
type SimulationState struct {
	DrivingSinceBreak float64 // resets only when a REST stop is emitted
	DrivingToday      float64 // resets only on OVERNIGHT
	DutyToday         float64 // resets only on OVERNIGHT

	DistanceKm float64 // cumulative driving distance since trip start
	Hours      float64 // cumulative elapsed hours since trip start

	// Fuel tracking is armed at the pickup stop; deadhead mileage before
	// pickup does not count toward the first fuel checkpoint.
	FuelTracking bool
	NextFuelKm   float64

	// Per-type counters used to label emitted stops.
	RestBreaks int
	FuelStops  int
	Overnights int
}

// Snapshot captures the current duty clocks for attachment to a Stop.
func (s SimulationState) Snapshot() ClockSnapshot {
	return ClockSnapshot{
		DrivingSinceBreak: s.DrivingSinceBreak,
		DrivingToday:      s.DrivingToday,
		DutyToday:         s.DutyToday,
	}
}
