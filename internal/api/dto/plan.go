package dto

// PlanTripRequest carries the four planning inputs.
type PlanTripRequest struct {
	CurrentLocation  string  `json:"current_location"`
	PickupLocation   string  `json:"pickup_location"`
	DropoffLocation  string  `json:"dropoff_location"`
	CurrentCycleUsed float64 `json:"current_cycle_used"`
}

type StopResponse struct {
	Type           string  `json:"type"`
	Location       string  `json:"location"`
	DistanceKm     float64 `json:"distance_km"`
	HoursFromStart float64 `json:"hours_from_start"`
	DurationHours  float64 `json:"duration_hours"`
	Day            int     `json:"day"`
}

type SegmentResponse struct {
	Status    string  `json:"status"`
	StartHour float64 `json:"start_hour"`
	EndHour   float64 `json:"end_hour"`
	Remark    string  `json:"remark,omitempty"`
}

type DailyLogResponse struct {
	Day                   int               `json:"day"`
	Segments              []SegmentResponse `json:"segments"`
	DrivingHours          float64           `json:"driving_hours"`
	OnDutyHours           float64           `json:"on_duty_hours"`
	OffDutyHours          float64           `json:"off_duty_hours"`
	SleeperHours          float64           `json:"sleeper_hours"`
	CycleUsed             float64           `json:"cycle_used"`
	Requires34HourRestart bool              `json:"requires_34_hour_restart"`
}

type PlanTripResponse struct {
	TripID             string             `json:"trip_id"`
	TotalDistanceKm    float64            `json:"total_distance_km"`
	TotalDurationHours float64            `json:"total_duration_hours"`
	Degraded           bool               `json:"degraded"`
	Stops              []StopResponse     `json:"stops"`
	DailyLogs          []DailyLogResponse `json:"daily_logs"`
	RouteCoordinates   [][]float64        `json:"route_coordinates"`
}
