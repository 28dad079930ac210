package domain

import (
	"errors"
	"testing"
)

func TestDefaultHOSRulesValidate(t *testing.T) {
	if err := DefaultHOSRules().Validate(); err != nil {
		t.Fatalf("default rules must validate: %v", err)
	}
}

func TestHOSRulesValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*HOSRules)
	}{
		{"zero chunk", func(r *HOSRules) { r.MaxChunkHours = 0 }},
		{"negative speed", func(r *HOSRules) { r.AvgSpeedKmh = -1 }},
		{"zero fuel interval", func(r *HOSRules) { r.FuelIntervalKm = 0 }},
		{"negative pickup", func(r *HOSRules) { r.PickupHours = -1 }},
		{"duty below driving", func(r *HOSRules) { r.MaxDutyHours = 5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := DefaultHOSRules()
			tc.mutate(&r)
			if err := r.Validate(); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestStopTypeValid(t *testing.T) {
	for _, typ := range []StopType{StopStart, StopPickup, StopDropoff, StopFuel, StopRest, StopOvernight} {
		if !typ.Valid() {
			t.Fatalf("%s should be valid", typ)
		}
	}
	if StopType("LUNCH").Valid() {
		t.Fatal("unknown stop type should be invalid")
	}
}

func TestCoordinatesValid(t *testing.T) {
	if !(Coordinates{Lon: -98.5795, Lat: 39.8283}).Valid() {
		t.Fatal("US centroid should be valid")
	}
	if (Coordinates{Lon: 181, Lat: 0}).Valid() {
		t.Fatal("longitude out of range should be invalid")
	}
	if (Coordinates{Lon: 0, Lat: -91}).Valid() {
		t.Fatal("latitude out of range should be invalid")
	}
}
