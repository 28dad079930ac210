package domain

// StopType is the closed set of stop kinds the simulator can emit.
type StopType string

const (
	StopStart     StopType = "START"
	StopPickup    StopType = "PICKUP"
	StopDropoff   StopType = "DROPOFF"
	StopFuel      StopType = "FUEL"
	StopRest      StopType = "REST"
	StopOvernight StopType = "OVERNIGHT"
)

// Valid reports whether t is one of the known stop types.
func (t StopType) Valid() bool {
	switch t {
	case StopStart, StopPickup, StopDropoff, StopFuel, StopRest, StopOvernight:
		return true
	}
	return false
}

// ClockSnapshot records the duty clocks at the moment a stop was emitted,
// before the stop's own effects were applied.
type ClockSnapshot struct {
	DrivingSinceBreak float64
	DrivingToday      float64
	DutyToday         float64
}

// Stop is one entry in a trip itinerary: a mandated or scheduled halt at a
// cumulative distance and time from trip start. Stops are immutable once
// emitted and ordered by HoursFromStart.
type Stop struct {
	Type           StopType
	Location       string
	DistanceKm     float64 // cumulative driving distance at the stop
	HoursFromStart float64 // cumulative elapsed hours when the stop begins
	StopDuration   float64 // hours spent at the stop; 0 for START

	// Day is the 1-based calendar day on which the stop begins. It is
	// assigned during day projection and zero before that.
	Day int

	Clocks ClockSnapshot
}

// DayBoundStop is a Stop's projection onto a single calendar day.
// A stop whose interval crosses midnight is split into one DayBoundStop
// per day touched; fragment durations sum to the original StopDuration.
type DayBoundStop struct {
	Day           int     // 1-based calendar day of the trip
	StartInDay    float64 // hour within the day, [0,24)
	EndInDay      float64 // hour within the day, (0,24]
	DurationInDay float64

	// Back-reference to the source stop.
	StopIndex        int
	FragmentIndex    int
	OriginalDuration float64
	Type             StopType
	Location         string
}
