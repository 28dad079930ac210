// Package publisher emits planned-trip events for downstream consumers
// (billing, driver apps). Publishing is optional and best-effort: a failed
// publish is logged, never surfaced to the API caller.
package publisher

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
)

const subjectTripPlanned = "trips.planned"

// TripPlannedMessage is the wire payload for a planned trip.
type TripPlannedMessage struct {
	TripID             string    `json:"trip_id"`
	CurrentLocation    string    `json:"current_location"`
	PickupLocation     string    `json:"pickup_location"`
	DropoffLocation    string    `json:"dropoff_location"`
	TotalDistanceKm    float64   `json:"total_distance_km"`
	TotalDurationHours float64   `json:"total_duration_hours"`
	Days               int       `json:"days"`
	Degraded           bool      `json:"degraded"`
	PlannedAt          time.Time `json:"planned_at"`
}

// NatsPublisher publishes trip events to a NATS subject. A nil publisher is
// safe to call; Publish becomes a no-op.
type NatsPublisher struct {
	conn *nats.Conn
}

func Connect(url string) (*NatsPublisher, error) {
	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("publisher: connect to NATS %q: %w", url, err)
	}
	return &NatsPublisher{conn: conn}, nil
}

func (p *NatsPublisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	_ = p.conn.Drain()
}

// Publish emits one trips.planned event for the given plan.
func (p *NatsPublisher) Publish(plan *domain.TripPlan) {
	if p == nil || p.conn == nil {
		return
	}

	msg := TripPlannedMessage{
		TripID:             plan.ID.String(),
		CurrentLocation:    plan.CurrentLocation,
		PickupLocation:     plan.PickupLocation,
		DropoffLocation:    plan.DropoffLocation,
		TotalDistanceKm:    plan.TotalDistanceKm,
		TotalDurationHours: plan.TotalDurationHours,
		Days:               len(plan.Days),
		Degraded:           plan.Degraded,
		PlannedAt:          time.Now().UTC(),
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		log.Printf("publish trip event: encode: %v", err)
		return
	}
	if err := p.conn.Publish(subjectTripPlanned, raw); err != nil {
		log.Printf("publish trip event: %v", err)
	}
}
