package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/api/dto"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/ports"
)

// TripsHandler exposes read-only access to stored trips.
type TripsHandler struct {
	Repo ports.TripRepository
}

func (h *TripsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	trips, err := h.Repo.ListTrips(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, tripToResponse(t))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get serves one trip by id from the /trips/{id} path.
func (h *TripsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/trips/")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid trip id")
		return
	}

	trip, stops, err := h.Repo.GetTrip(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.TripDetailResponse{
		Trip:  tripToResponse(trip),
		Stops: make([]dto.StopResponse, 0, len(stops)),
	}
	for _, s := range stops {
		res.Stops = append(res.Stops, dto.StopResponse{
			Type:           string(s.Type),
			Location:       s.Location,
			DistanceKm:     s.DistanceKm,
			HoursFromStart: s.HoursFromStart,
			DurationHours:  s.StopDuration,
			Day:            s.Day,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func tripToResponse(t domain.Trip) dto.TripResponse {
	return dto.TripResponse{
		TripID:             t.ID.String(),
		CurrentLocation:    t.CurrentLocation,
		PickupLocation:     t.PickupLocation,
		DropoffLocation:    t.DropoffLocation,
		CurrentCycleUsed:   t.CurrentCycleUsed,
		TotalDistanceKm:    t.TotalDistanceKm,
		TotalDurationHours: t.TotalDurationHours,
		Degraded:           t.Degraded,
		CreatedAt:          t.CreatedAt,
	}
}
