package services

import (
	"errors"
	"math"
	"testing"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
)

func TestClipToDaysWithinOneDay(t *testing.T) {
	windows, err := ClipToDays(30, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	w := windows[0]
	if w.Day != 2 {
		t.Fatalf("day = %d, want 2", w.Day)
	}
	approx(t, "start in day", w.StartInDay, 6)
	approx(t, "end in day", w.EndInDay, 11)
}

func TestClipToDaysCrossesMidnight(t *testing.T) {
	windows, err := ClipToDays(22, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}

	approx(t, "day 1 start", windows[0].StartInDay, 22)
	approx(t, "day 1 end", windows[0].EndInDay, 24)
	if windows[1].Day != 2 {
		t.Fatalf("second window day = %d, want 2", windows[1].Day)
	}
	approx(t, "day 2 start", windows[1].StartInDay, 0)
	approx(t, "day 2 end", windows[1].EndInDay, 3)
}

func TestClipToDaysDurationsSumExactly(t *testing.T) {
	cases := []struct{ start, duration float64 }{
		{0, 10},
		{23.75, 0.5},
		{10, 50}, // spans three days
		{47.9, 0.2},
	}
	for _, c := range cases {
		windows, err := ClipToDays(c.start, c.duration)
		if err != nil {
			t.Fatalf("ClipToDays(%v, %v): %v", c.start, c.duration, err)
		}
		sum := 0.0
		for _, w := range windows {
			sum += w.DurationInDay
		}
		if math.Abs(sum-c.duration) > testTol {
			t.Fatalf("ClipToDays(%v, %v): fragments sum to %v", c.start, c.duration, sum)
		}
	}
}

func TestClipToDaysZeroDuration(t *testing.T) {
	windows, err := ClipToDays(24, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	// An instant at an exact midnight belongs to the later day.
	if windows[0].Day != 2 {
		t.Fatalf("day = %d, want 2", windows[0].Day)
	}
	approx(t, "start", windows[0].StartInDay, 0)
	approx(t, "end", windows[0].EndInDay, 0)
}

func TestClipToDaysSubEpsilonDuration(t *testing.T) {
	// A positive duration below the clock epsilon must still produce its
	// single window, with the duration preserved exactly.
	windows, err := ClipToDays(5, 1e-12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	w := windows[0]
	if w.Day != 1 {
		t.Fatalf("day = %d, want 1", w.Day)
	}
	if w.DurationInDay != 1e-12 {
		t.Fatalf("duration = %v, want 1e-12", w.DurationInDay)
	}
	if w.EndInDay-w.StartInDay != w.DurationInDay {
		t.Fatalf("window bounds [%v,%v] do not span the duration", w.StartInDay, w.EndInDay)
	}
}

func TestClipToDaysRejectsNegative(t *testing.T) {
	if _, err := ClipToDays(-1, 5); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("negative start: got %v, want ErrInvalidInput", err)
	}
	if _, err := ClipToDays(1, -5); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("negative duration: got %v, want ErrInvalidInput", err)
	}
}

func TestAssignDaysBackReferences(t *testing.T) {
	stops := []domain.Stop{
		{Type: domain.StopStart, Location: "A"},
		{Type: domain.StopOvernight, Location: "Overnight Rest Day 1", HoursFromStart: 20, StopDuration: 10},
	}

	frags, err := AssignDays(stops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// START yields one zero-length fragment; the overnight splits in two.
	if len(frags) != 3 {
		t.Fatalf("expected 3 fragments, got %d", len(frags))
	}

	if frags[0].StopIndex != 0 || frags[0].DurationInDay != 0 {
		t.Fatalf("unexpected START fragment: %+v", frags[0])
	}

	first, second := frags[1], frags[2]
	if first.StopIndex != 1 || second.StopIndex != 1 {
		t.Fatalf("overnight fragments should reference stop 1: %+v %+v", first, second)
	}
	if first.FragmentIndex != 0 || second.FragmentIndex != 1 {
		t.Fatalf("fragment indices = %d, %d", first.FragmentIndex, second.FragmentIndex)
	}
	approx(t, "fragment sum", first.DurationInDay+second.DurationInDay, 10)
	if second.Day != 2 || second.StartInDay != 0 {
		t.Fatalf("carried fragment should open day 2: %+v", second)
	}
}
