package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/adapters/repositories"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/adapters/route"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/api/dto"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/metrics"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/platform/db"
	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/ports"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	// In-memory SQLite is per-connection; pin the pool to one.
	store.SetMaxOpenConns(1)
	require.NoError(t, repositories.InitSchema(store))

	chicago := domain.Coordinates{Lon: -87.6298, Lat: 41.8781}
	stLouis := domain.Coordinates{Lon: -90.1994, Lat: 38.6270}
	dallas := domain.Coordinates{Lon: -96.7970, Lat: 32.7767}

	geocoder := &route.MockGeocoder{Coords: map[string]domain.Coordinates{
		"Chicago":   chicago,
		"St. Louis": stLouis,
		"Dallas":    dallas,
	}}
	routes := route.NewMockRouteProvider([]route.MockLeg{
		{Origin: chicago, Destination: stLouis, Result: ports.RouteResult{DistanceKm: 480, DurationHours: 6}},
		{Origin: stLouis, Destination: dallas, Result: ports.RouteResult{DistanceKm: 1000, DurationHours: 12.5}},
	})

	return NewRouter(Deps{
		Geocoder: geocoder,
		Routes:   routes,
		Repo:     repositories.NewSqliteTripRepository(store),
		Rules:    domain.DefaultHOSRules(),
		Metrics:  metrics.NewCollector(),
		Store:    store,
	})
}

func TestPlanTripEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"current_location": "Chicago",
		"pickup_location": "St. Louis",
		"dropoff_location": "Dallas",
		"current_cycle_used": 10
	}`
	req := httptest.NewRequest(http.MethodPost, "/plan-trip", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.PlanTripResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.TripID)
	require.InDelta(t, 1480, res.TotalDistanceKm, 1e-6)
	require.False(t, res.Degraded)
	require.NotEmpty(t, res.Stops)
	require.Equal(t, "START", res.Stops[0].Type)
	require.Equal(t, 1, res.Stops[0].Day)
	require.Equal(t, 2, res.Stops[len(res.Stops)-1].Day)
	require.NotEmpty(t, res.DailyLogs)
	for _, day := range res.DailyLogs {
		require.NotEmpty(t, day.Segments)
		require.InDelta(t, 0, day.Segments[0].StartHour, 1e-6)
		require.InDelta(t, 24, day.Segments[len(day.Segments)-1].EndHour, 1e-6)
	}

	// The planned trip must be retrievable afterward.
	getReq := httptest.NewRequest(http.MethodGet, "/trips/"+res.TripID, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)

	require.Equal(t, http.StatusOK, getRec.Code, getRec.Body.String())
	var detail dto.TripDetailResponse
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &detail))
	require.Equal(t, res.TripID, detail.Trip.TripID)
	require.Len(t, detail.Stops, len(res.Stops))
}

func TestPlanTripEndpointBadRequest(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"unknown field", `{"current_location": "Chicago", "bogus": 1}`},
		{"blank location", `{"current_location": "", "pickup_location": "St. Louis", "dropoff_location": "Dallas"}`},
		{"negative cycle", `{"current_location": "Chicago", "pickup_location": "St. Louis", "dropoff_location": "Dallas", "current_cycle_used": -2}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/plan-trip", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestTripsEndpointNotFound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/trips/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	bad := httptest.NewRequest(http.MethodGet, "/trips/not-a-uuid", nil)
	badRec := httptest.NewRecorder()
	router.ServeHTTP(badRec, bad)
	require.Equal(t, http.StatusBadRequest, badRec.Code)
}

func TestListTripsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res dto.ListTripsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Empty(t, res.Trips)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthEndpointDegraded(t *testing.T) {
	store, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	router := NewRouter(Deps{
		Geocoder: &route.MockGeocoder{},
		Routes:   route.NewMockRouteProvider(nil),
		Rules:    domain.DefaultHOSRules(),
		Store:    store,
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.JSONEq(t, `{"status":"degraded"}`, rec.Body.String())
}

func TestRequestIDPropagates(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "test-req-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, "test-req-1", rec.Header().Get("X-Request-ID"))
}
