package dto

import "time"

type TripResponse struct {
	TripID             string    `json:"trip_id"`
	CurrentLocation    string    `json:"current_location"`
	PickupLocation     string    `json:"pickup_location"`
	DropoffLocation    string    `json:"dropoff_location"`
	CurrentCycleUsed   float64   `json:"current_cycle_used"`
	TotalDistanceKm    float64   `json:"total_distance_km"`
	TotalDurationHours float64   `json:"total_duration_hours"`
	Degraded           bool      `json:"degraded"`
	CreatedAt          time.Time `json:"created_at"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}

type TripDetailResponse struct {
	Trip  TripResponse   `json:"trip"`
	Stops []StopResponse `json:"stops"`
}
