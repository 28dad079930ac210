package services

import "github.com/Zekariyas-Teshager/eld-trip-planner/internal/domain"

// ApplyCycle accumulates each day's on-duty total (driving plus
// on-duty-not-driving) into the rolling duty-cycle figure, starting from the
// hours already used when the trip begins.
//
// A driver's day moves through driving and stationary on-duty stops into the
// sleeper berth when a daily limit trips, and ends off duty on the final day;
// only the driving and on-duty portions count against the cycle. Days at or
// past the cycle limit are flagged for a 34-hour restart. The flag is
// advisory: the planner never inserts the restart itself.
func ApplyCycle(days []domain.DailySchedule, currentCycleUsed float64, rules domain.HOSRules) []domain.DailySchedule {
	cycle := currentCycleUsed
	out := make([]domain.DailySchedule, len(days))
	for i, d := range days {
		cycle += d.OnDutyTotal()
		d.CycleUsed = cycle
		d.Requires34HourRestart = cycle >= rules.CycleLimitHours
		out[i] = d
	}
	return out
}
