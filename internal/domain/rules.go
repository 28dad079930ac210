package domain

import "fmt"

// HOSRules is the immutable regulatory configuration for one simulation run.
// Defaults follow the FMCSA property-carrying driver limits; tests and
// alternate jurisdictions may pass tighter values.
type HOSRules struct {
	MaxDrivingHours float64 // daily driving limit
	MaxDutyHours    float64 // daily on-duty window
	MinRestHours    float64 // overnight rest length
	BreakAfterHours float64 // driving hours before a mandatory break
	CycleLimitHours float64 // rolling duty-cycle limit

	FuelIntervalKm float64

	PickupHours    float64
	DropoffHours   float64
	FuelStopHours  float64
	RestBreakHours float64

	AvgSpeedKmh   float64 // used only for straight-line duration estimates
	MaxChunkHours float64 // simulation step ceiling
}

// DefaultHOSRules returns the FMCSA default rule set.
func DefaultHOSRules() HOSRules {
	return HOSRules{
		MaxDrivingHours: 11,
		MaxDutyHours:    14,
		MinRestHours:    10,
		BreakAfterHours: 8,
		CycleLimitHours: 70,
		FuelIntervalKm:  1600,
		PickupHours:     1,
		DropoffHours:    1,
		FuelStopHours:   0.5,
		RestBreakHours:  0.5,
		AvgSpeedKmh:     80,
		MaxChunkHours:   0.5,
	}
}

// Validate rejects rule sets that would stall or corrupt the simulation.
func (r HOSRules) Validate() error {
	type bound struct {
		name  string
		value float64
	}
	positive := []bound{
		{"max_driving_hours", r.MaxDrivingHours},
		{"max_duty_hours", r.MaxDutyHours},
		{"min_rest_hours", r.MinRestHours},
		{"break_after_hours", r.BreakAfterHours},
		{"cycle_limit_hours", r.CycleLimitHours},
		{"fuel_interval_km", r.FuelIntervalKm},
		{"fuel_stop_hours", r.FuelStopHours},
		{"rest_break_hours", r.RestBreakHours},
		{"avg_speed_kmh", r.AvgSpeedKmh},
		{"max_chunk_hours", r.MaxChunkHours},
	}
	for _, b := range positive {
		if b.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidInput, b.name, b.value)
		}
	}
	if r.PickupHours < 0 || r.DropoffHours < 0 {
		return fmt.Errorf("%w: pickup/dropoff hours must be non-negative", ErrInvalidInput)
	}
	if r.MaxDutyHours < r.MaxDrivingHours {
		return fmt.Errorf("%w: max_duty_hours %v is below max_driving_hours %v",
			ErrInvalidInput, r.MaxDutyHours, r.MaxDrivingHours)
	}
	return nil
}
