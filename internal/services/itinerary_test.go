package services

import (
	"testing"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
)

func TestBuildItineraryOrderAndBrackets(t *testing.T) {
	toPickup := domain.TripLeg{Origin: "Chicago", Destination: "St. Louis", DistanceKm: 160, DurationHours: 2}
	toDropoff := domain.TripLeg{Origin: "St. Louis", Destination: "Dallas", DistanceKm: 1600, DurationHours: 20}

	stops, state, err := BuildItinerary(toPickup, toDropoff, domain.DefaultHOSRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stops[0].Type != domain.StopStart {
		t.Fatalf("first stop = %s, want START", stops[0].Type)
	}
	if stops[0].Location != "Chicago" {
		t.Fatalf("start location = %q, want Chicago", stops[0].Location)
	}
	if stops[0].StopDuration != 0 {
		t.Fatalf("start duration = %v, want 0", stops[0].StopDuration)
	}
	if stops[len(stops)-1].Type != domain.StopDropoff {
		t.Fatalf("last stop = %s, want DROPOFF", stops[len(stops)-1].Type)
	}

	for i := 1; i < len(stops); i++ {
		if stops[i].HoursFromStart < stops[i-1].HoursFromStart {
			t.Fatalf("itinerary out of order at %d: %v after %v",
				i, stops[i].HoursFromStart, stops[i-1].HoursFromStart)
		}
	}

	approx(t, "total distance", state.DistanceKm, 1760)
}

func TestBuildItineraryPickupArmsFuel(t *testing.T) {
	// Deadhead mileage must not count toward the first fuel checkpoint:
	// with a 160 km deadhead, the checkpoint sits at 1760 km, reached 100 km
	// before the dropoff.
	toPickup := domain.TripLeg{Origin: "A", Destination: "B", DistanceKm: 160, DurationHours: 2}
	toDropoff := domain.TripLeg{Origin: "B", Destination: "C", DistanceKm: 1700, DurationHours: 21.25}

	stops, _, err := BuildItinerary(toPickup, toDropoff, domain.DefaultHOSRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var fuel *domain.Stop
	for i := range stops {
		if stops[i].Type == domain.StopFuel {
			if fuel != nil {
				t.Fatalf("expected one fuel stop, got another at %d", i)
			}
			fuel = &stops[i]
		}
	}
	if fuel == nil {
		t.Fatal("expected a fuel stop")
	}
	approx(t, "fuel stop odometer", fuel.DistanceKm, 1760)
}

func TestBuildItineraryCountsByType(t *testing.T) {
	toPickup := domain.TripLeg{Origin: "A", Destination: "B", DistanceKm: 160, DurationHours: 2}
	toDropoff := domain.TripLeg{Origin: "B", Destination: "C", DistanceKm: 1600, DurationHours: 20}

	stops, state, err := BuildItinerary(toPickup, toDropoff, domain.DefaultHOSRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counts := map[domain.StopType]int{}
	for _, s := range stops {
		counts[s.Type]++
	}
	want := map[domain.StopType]int{
		domain.StopStart:     1,
		domain.StopPickup:    1,
		domain.StopDropoff:   1,
		domain.StopRest:      2,
		domain.StopOvernight: 1,
		domain.StopFuel:      1,
	}
	for typ, n := range want {
		if counts[typ] != n {
			t.Fatalf("%s count = %d, want %d (stops: %+v)", typ, counts[typ], n, stops)
		}
	}

	// 22h driving + 1h pickup + two 0.5h breaks + 0.5h fuel + 10h overnight,
	// plus the 1h dropoff applied after the final stop.
	approx(t, "final elapsed hours", state.Hours, 35.5)
}
