package services

import (
	"errors"
	"testing"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
)

func checkContiguous(t *testing.T, days []domain.DailySchedule) {
	t.Helper()
	for _, d := range days {
		if len(d.Segments) == 0 {
			t.Fatalf("day %d has no segments", d.Day)
		}
		approx(t, "day start", d.Segments[0].StartHour, 0)
		approx(t, "day end", d.Segments[len(d.Segments)-1].EndHour, 24)
		for i := 1; i < len(d.Segments); i++ {
			approx(t, "contiguity", d.Segments[i].StartHour, d.Segments[i-1].EndHour)
		}
	}
}

func TestBuildDailySchedulesSingleDay(t *testing.T) {
	frags := []domain.DayBoundStop{
		{Day: 1, StartInDay: 2, EndInDay: 2, Type: domain.StopStart, Location: "Chicago"},
		{Day: 1, StartInDay: 4, EndInDay: 5, DurationInDay: 1, Type: domain.StopPickup, Location: "St. Louis"},
		{Day: 1, StartInDay: 8, EndInDay: 9, DurationInDay: 1, Type: domain.StopDropoff, Location: "Memphis"},
	}

	days, err := BuildDailySchedules(frags, domain.DefaultHOSRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	checkContiguous(t, days)

	d := days[0]
	want := []struct {
		status domain.DutyStatus
		start  float64
		end    float64
	}{
		{domain.StatusOffDuty, 0, 2},
		{domain.StatusDriving, 2, 4},
		{domain.StatusOnDuty, 4, 5},
		{domain.StatusDriving, 5, 8},
		{domain.StatusOnDuty, 8, 9},
		{domain.StatusOffDuty, 9, 24},
	}
	if len(d.Segments) != len(want) {
		t.Fatalf("expected %d segments, got %d: %+v", len(want), len(d.Segments), d.Segments)
	}
	for i, w := range want {
		seg := d.Segments[i]
		if seg.Status != w.status {
			t.Fatalf("segment %d status = %s, want %s", i, seg.Status, w.status)
		}
		approx(t, "segment start", seg.StartHour, w.start)
		approx(t, "segment end", seg.EndHour, w.end)
	}

	if d.Segments[len(d.Segments)-1].Remark != "Trip complete" {
		t.Fatalf("final remark = %q", d.Segments[len(d.Segments)-1].Remark)
	}
	approx(t, "driving hours", d.DrivingHours, 5)
	approx(t, "on duty hours", d.OnDutyHours, 2)
	approx(t, "off duty hours", d.OffDutyHours, 17)
}

func TestBuildDailySchedulesCarriedOvernight(t *testing.T) {
	// An overnight that straddles midnight carries into day 2, which must
	// open with the sleeper-berth fragment rather than a default rest block.
	frags := []domain.DayBoundStop{
		{Day: 1, StartInDay: 0, EndInDay: 0, Type: domain.StopStart, Location: "A"},
		{Day: 1, StartInDay: 20, EndInDay: 24, DurationInDay: 4, Type: domain.StopOvernight, Location: "Overnight Rest Day 1"},
		{Day: 2, StartInDay: 0, EndInDay: 6, DurationInDay: 6, Type: domain.StopOvernight, Location: "Overnight Rest Day 1"},
		{Day: 2, StartInDay: 8, EndInDay: 9, DurationInDay: 1, Type: domain.StopDropoff, Location: "B"},
	}

	days, err := BuildDailySchedules(frags, domain.DefaultHOSRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	checkContiguous(t, days)

	day2 := days[1]
	first := day2.Segments[0]
	if first.Status != domain.StatusSleeperBerth {
		t.Fatalf("day 2 opens with %s, want SB", first.Status)
	}
	approx(t, "carried sleeper end", first.EndHour, 6)
	if first.Remark != "Overnight Rest Day 1" {
		t.Fatalf("day 2 remark = %q, want the overnight location", first.Remark)
	}
	approx(t, "day 2 sleeper hours", day2.SleeperHours, 6)

	// Day 1 sleeper block covers the pre-midnight fragment.
	day1 := days[0]
	last := day1.Segments[len(day1.Segments)-1]
	if last.Status != domain.StatusSleeperBerth {
		t.Fatalf("day 1 closes with %s, want SB", last.Status)
	}
	approx(t, "day 1 sleeper hours", day1.SleeperHours, 4)
}

func TestBuildDailySchedulesDefaultRestLead(t *testing.T) {
	// A later day with no carried overnight opens with a default rest block
	// clipped to the first fragment.
	frags := []domain.DayBoundStop{
		{Day: 1, StartInDay: 0, EndInDay: 0, Type: domain.StopStart, Location: "A"},
		{Day: 2, StartInDay: 2, EndInDay: 2.5, DurationInDay: 0.5, Type: domain.StopRest, Location: "30-min Break after 26 hours"},
	}

	days, err := BuildDailySchedules(frags, domain.DefaultHOSRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkContiguous(t, days)

	day2 := days[1]
	first := day2.Segments[0]
	if first.Status != domain.StatusSleeperBerth {
		t.Fatalf("day 2 opens with %s, want SB", first.Status)
	}
	approx(t, "clipped rest lead", first.EndHour, 2)
}

func TestBuildDailySchedulesFinalDayEndsOffDuty(t *testing.T) {
	frags := []domain.DayBoundStop{
		{Day: 1, StartInDay: 0, EndInDay: 0, Type: domain.StopStart, Location: "A"},
		{Day: 1, StartInDay: 23, EndInDay: 24, DurationInDay: 1, Type: domain.StopOvernight, Location: "Overnight Rest Day 1"},
		{Day: 2, StartInDay: 0, EndInDay: 9, DurationInDay: 9, Type: domain.StopOvernight, Location: "Overnight Rest Day 1"},
		{Day: 2, StartInDay: 10, EndInDay: 11, DurationInDay: 1, Type: domain.StopDropoff, Location: "B"},
	}

	days, err := BuildDailySchedules(frags, domain.DefaultHOSRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkContiguous(t, days)

	last := days[len(days)-1]
	final := last.Segments[len(last.Segments)-1]
	if final.Status != domain.StatusOffDuty {
		t.Fatalf("final segment = %s, want OFF", final.Status)
	}
	approx(t, "final segment end", final.EndHour, 24)

	// Intermediate day fills with driving, not off-duty.
	day1 := days[0]
	fill := day1.Segments[len(day1.Segments)-1]
	if fill.Status != domain.StatusSleeperBerth {
		t.Fatalf("day 1 last segment = %s, want SB (overnight to midnight)", fill.Status)
	}
}

func TestBuildDailySchedulesOverlapIsInvariantViolation(t *testing.T) {
	frags := []domain.DayBoundStop{
		{Day: 1, StartInDay: 2, EndInDay: 4, DurationInDay: 2, Type: domain.StopPickup, Location: "A"},
		{Day: 1, StartInDay: 3, EndInDay: 5, DurationInDay: 2, Type: domain.StopDropoff, Location: "B"},
	}

	_, err := BuildDailySchedules(frags, domain.DefaultHOSRules())
	if !errors.Is(err, domain.ErrInvariant) {
		t.Fatalf("got %v, want ErrInvariant", err)
	}
}

func TestBuildDailySchedulesEmptyInput(t *testing.T) {
	_, err := BuildDailySchedules(nil, domain.DefaultHOSRules())
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}
