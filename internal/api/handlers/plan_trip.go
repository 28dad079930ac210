package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/api/dto"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/metrics"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/ports"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/publisher"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/services"
)

// PlanHandler orchestrates one full planning run: geocoding, routing,
// simulation, persistence, and the optional event publish.
type PlanHandler struct {
	Geocoder ports.Geocoder
	Routes   ports.RouteProvider
	Repo     ports.TripRepository
	Rules    domain.HOSRules

	Metrics   *metrics.Collector
	Publisher *publisher.NatsPublisher
}

func (h *PlanHandler) PlanTrip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanTripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	svcReq := services.PlanTripRequest{
		CurrentLocation:  req.CurrentLocation,
		PickupLocation:   req.PickupLocation,
		DropoffLocation:  req.DropoffLocation,
		CurrentCycleUsed: req.CurrentCycleUsed,
	}

	start := time.Now()
	plan, err := services.PlanTrip(r.Context(), svcReq, h.Geocoder, h.Routes, h.Rules)
	if err != nil {
		h.Metrics.PlanFailureInc()
		writeDomainError(w, r, err)
		return
	}
	h.Metrics.ObservePlanDuration(time.Since(start).Seconds())
	h.Metrics.TripPlannedInc()
	for _, s := range plan.Stops {
		h.Metrics.StopEmitted(string(s.Type))
	}

	if h.Repo != nil {
		if err := h.Repo.SaveTripPlan(r.Context(), plan); err != nil {
			writeDomainError(w, r, err)
			return
		}
	}

	h.Publisher.Publish(plan)

	writeJSON(w, r, http.StatusOK, planToResponse(plan))
}

func planToResponse(plan *domain.TripPlan) dto.PlanTripResponse {
	stops := make([]dto.StopResponse, 0, len(plan.Stops))
	for _, s := range plan.Stops {
		stops = append(stops, dto.StopResponse{
			Type:           string(s.Type),
			Location:       s.Location,
			DistanceKm:     s.DistanceKm,
			HoursFromStart: s.HoursFromStart,
			DurationHours:  s.StopDuration,
			Day:            s.Day,
		})
	}

	days := make([]dto.DailyLogResponse, 0, len(plan.Days))
	for _, d := range plan.Days {
		segments := make([]dto.SegmentResponse, 0, len(d.Segments))
		for _, seg := range d.Segments {
			segments = append(segments, dto.SegmentResponse{
				Status:    string(seg.Status),
				StartHour: seg.StartHour,
				EndHour:   seg.EndHour,
				Remark:    seg.Remark,
			})
		}
		days = append(days, dto.DailyLogResponse{
			Day:                   d.Day,
			Segments:              segments,
			DrivingHours:          d.DrivingHours,
			OnDutyHours:           d.OnDutyHours,
			OffDutyHours:          d.OffDutyHours,
			SleeperHours:          d.SleeperHours,
			CycleUsed:             d.CycleUsed,
			Requires34HourRestart: d.Requires34HourRestart,
		})
	}

	coords := make([][]float64, 0, len(plan.Geometry))
	for _, c := range plan.Geometry {
		coords = append(coords, c.CoordsToList())
	}

	return dto.PlanTripResponse{
		TripID:             plan.ID.String(),
		TotalDistanceKm:    plan.TotalDistanceKm,
		TotalDurationHours: plan.TotalDurationHours,
		Degraded:           plan.Degraded,
		Stops:              stops,
		DailyLogs:          days,
		RouteCoordinates:   coords,
	}
}
