package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"
)

// statusForStop is the fixed mapping from stop kinds to log duty statuses.
// Stationary regulated stops are on-duty-not-driving; overnights go to the
// sleeper berth.
func statusForStop(t domain.StopType) domain.DutyStatus {
	if t == domain.StopOvernight {
		return domain.StatusSleeperBerth
	}
	return domain.StatusOnDuty
}

// BuildDailySchedules converts day-bound stop fragments into one gap-free
// 24-hour duty-status timeline per calendar day of the trip.
//
// Day 1 leads OFF_DUTY until the first fragment begins. Later days lead with
// the carried-over overnight fragment when one reaches hour 0; otherwise a
// default sleeper-berth block of MinRestHours opens the day, clipped to the
// first fragment. Uncovered gaps between fragments are DRIVING. After the
// last fragment the day fills with DRIVING, except the trip's final day,
// which closes OFF_DUTY.
func BuildDailySchedules(frags []domain.DayBoundStop, rules domain.HOSRules) ([]domain.DailySchedule, error) {
	if len(frags) == 0 {
		return nil, fmt.Errorf("%w: no stop fragments to schedule", domain.ErrInvalidInput)
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("build daily schedules: %w", err)
	}

	lastDay := 0
	byDay := make(map[int][]domain.DayBoundStop)
	for _, f := range frags {
		byDay[f.Day] = append(byDay[f.Day], f)
		if f.Day > lastDay {
			lastDay = f.Day
		}
	}

	out := make([]domain.DailySchedule, 0, lastDay)
	for day := 1; day <= lastDay; day++ {
		dayFrags := byDay[day]
		sort.SliceStable(dayFrags, func(i, j int) bool {
			return dayFrags[i].StartInDay < dayFrags[j].StartInDay
		})

		sched, err := buildDay(day, lastDay, dayFrags, rules)
		if err != nil {
			return nil, err
		}
		out = append(out, sched)
	}

	return out, nil
}

func buildDay(day, lastDay int, dayFrags []domain.DayBoundStop, rules domain.HOSRules) (domain.DailySchedule, error) {
	var segs []domain.DutySegment
	cursor := 0.0

	firstStart := hoursPerDay
	if len(dayFrags) > 0 {
		firstStart = dayFrags[0].StartInDay
	}

	if day == 1 {
		if firstStart > timeEps {
			segs = append(segs, domain.DutySegment{
				Status:    domain.StatusOffDuty,
				StartHour: 0,
				EndHour:   firstStart,
				Remark:    "Off duty before trip start",
			})
			cursor = firstStart
		}
	} else {
		carried := len(dayFrags) > 0 &&
			dayFrags[0].Type == domain.StopOvernight &&
			dayFrags[0].StartInDay <= timeEps
		if !carried {
			sbEnd := math.Min(rules.MinRestHours, firstStart)
			if sbEnd > timeEps {
				segs = append(segs, domain.DutySegment{
					Status:    domain.StatusSleeperBerth,
					StartHour: 0,
					EndHour:   sbEnd,
					Remark:    "10-hr reset completed",
				})
				cursor = sbEnd
			}
		}
	}

	for _, f := range dayFrags {
		if f.StartInDay < cursor-timeEps {
			return domain.DailySchedule{}, fmt.Errorf("%w: day %d: %s fragment starts at %.4f inside segment ending %.4f",
				domain.ErrInvariant, day, f.Type, f.StartInDay, cursor)
		}
		if f.StartInDay > cursor+timeEps {
			// The vehicle is in motion between stops.
			segs = append(segs, domain.DutySegment{
				Status:    domain.StatusDriving,
				StartHour: cursor,
				EndHour:   f.StartInDay,
				Remark:    "En route",
			})
			cursor = f.StartInDay
		}
		if f.DurationInDay <= timeEps {
			// Zero-length markers (START) occupy no log time.
			continue
		}
		segs = append(segs, domain.DutySegment{
			Status:    statusForStop(f.Type),
			StartHour: cursor,
			EndHour:   f.EndInDay,
			Remark:    f.Location,
		})
		cursor = f.EndInDay
	}

	if cursor < hoursPerDay-timeEps {
		if day == lastDay {
			segs = append(segs, domain.DutySegment{
				Status:    domain.StatusOffDuty,
				StartHour: cursor,
				EndHour:   hoursPerDay,
				Remark:    "Trip complete",
			})
		} else {
			segs = append(segs, domain.DutySegment{
				Status:    domain.StatusDriving,
				StartHour: cursor,
				EndHour:   hoursPerDay,
				Remark:    "Driving until end of day",
			})
		}
	} else if len(segs) > 0 {
		// Snap float residue so the day spans exactly [0,24).
		segs[len(segs)-1].EndHour = hoursPerDay
	}

	sched := domain.DailySchedule{Day: day, Segments: segs}
	for _, s := range segs {
		switch s.Status {
		case domain.StatusDriving:
			sched.DrivingHours += s.Hours()
		case domain.StatusOnDuty:
			sched.OnDutyHours += s.Hours()
		case domain.StatusOffDuty:
			sched.OffDutyHours += s.Hours()
		case domain.StatusSleeperBerth:
			sched.SleeperHours += s.Hours()
		}
	}

	if err := validateSchedule(sched); err != nil {
		return domain.DailySchedule{}, err
	}
	return sched, nil
}

// validateSchedule enforces the contiguity contract: segments cover [0,24)
// exactly, in order, with no gaps, overlaps, or negative lengths. A failure
// here is an implementation bug, never bad user input.
func validateSchedule(s domain.DailySchedule) error {
	const tol = 1e-6
	if len(s.Segments) == 0 {
		return fmt.Errorf("%w: day %d has no segments", domain.ErrInvariant, s.Day)
	}
	if math.Abs(s.Segments[0].StartHour) > tol {
		return fmt.Errorf("%w: day %d starts at %.6f, want 0", domain.ErrInvariant, s.Day, s.Segments[0].StartHour)
	}
	last := s.Segments[len(s.Segments)-1]
	if math.Abs(last.EndHour-hoursPerDay) > tol {
		return fmt.Errorf("%w: day %d ends at %.6f, want 24", domain.ErrInvariant, s.Day, last.EndHour)
	}
	for i, seg := range s.Segments {
		if seg.Hours() < -tol {
			return fmt.Errorf("%w: day %d segment %d (%s) has negative length %.6f",
				domain.ErrInvariant, s.Day, i, seg.Status, seg.Hours())
		}
		if !seg.Status.Valid() {
			return fmt.Errorf("%w: day %d segment %d has unknown status %q", domain.ErrInvariant, s.Day, i, seg.Status)
		}
		if i > 0 && math.Abs(seg.StartHour-s.Segments[i-1].EndHour) > tol {
			return fmt.Errorf("%w: day %d gap between segment %d ending %.6f and segment %d starting %.6f",
				domain.ErrInvariant, s.Day, i-1, s.Segments[i-1].EndHour, i, seg.StartHour)
		}
	}
	return nil
}
