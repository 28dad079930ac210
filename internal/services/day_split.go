package services

import (
	"fmt"
	"math"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
)

const hoursPerDay = 24.0

// DayWindow is one day-bounded slice of a time interval.
type DayWindow struct {
	Day           int // 1-based calendar day
	StartInDay    float64
	EndInDay      float64
	DurationInDay float64
}

// ClipToDays splits the interval [startHours, startHours+durationHours) into
// windows that do not cross a 24-hour boundary. It is a pure numeric
// function with no knowledge of stop semantics.
//
// A zero-length interval yields exactly one zero-length window. Window
// durations always sum to durationHours.
func ClipToDays(startHours, durationHours float64) ([]DayWindow, error) {
	if startHours < 0 {
		return nil, fmt.Errorf("%w: interval start must be non-negative, got %v", domain.ErrInvalidInput, startHours)
	}
	if durationHours < 0 {
		return nil, fmt.Errorf("%w: interval duration must be non-negative, got %v", domain.ErrInvalidInput, durationHours)
	}

	day := int(math.Floor(startHours/hoursPerDay)) + 1
	inDay := startHours - hoursPerDay*float64(day-1)

	// Durations at or below the clock epsilon would fall through the loop
	// and yield no windows at all; treat them like an instant so the
	// one-window guarantee and the duration sum both hold.
	if durationHours <= timeEps {
		return []DayWindow{{
			Day:           day,
			StartInDay:    inDay,
			EndInDay:      inDay + durationHours,
			DurationInDay: durationHours,
		}}, nil
	}

	var out []DayWindow
	remaining := durationHours
	for remaining > timeEps {
		take := math.Min(hoursPerDay-inDay, remaining)
		out = append(out, DayWindow{
			Day:           day,
			StartInDay:    inDay,
			EndInDay:      inDay + take,
			DurationInDay: take,
		})
		remaining -= take
		day++
		inDay = 0
	}

	return out, nil
}

// AssignDays projects every stop in the itinerary onto calendar days,
// splitting any stop whose interval straddles midnight into day-bounded
// fragments with a back-reference to the source stop.
func AssignDays(stops []domain.Stop) ([]domain.DayBoundStop, error) {
	var out []domain.DayBoundStop
	for i, s := range stops {
		windows, err := ClipToDays(s.HoursFromStart, s.StopDuration)
		if err != nil {
			return nil, fmt.Errorf("assign days: stop %d (%s): %w", i, s.Type, err)
		}
		for fi, w := range windows {
			out = append(out, domain.DayBoundStop{
				Day:              w.Day,
				StartInDay:       w.StartInDay,
				EndInDay:         w.EndInDay,
				DurationInDay:    w.DurationInDay,
				StopIndex:        i,
				FragmentIndex:    fi,
				OriginalDuration: s.StopDuration,
				Type:             s.Type,
				Location:         s.Location,
			})
		}
	}
	return out, nil
}
