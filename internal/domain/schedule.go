package domain

// DutyStatus is the closed set of FMCSA duty-status codes used on driver logs.
type DutyStatus string

const (
	StatusOffDuty      DutyStatus = "OFF"
	StatusSleeperBerth DutyStatus = "SB"
	StatusDriving      DutyStatus = "D"
	StatusOnDuty       DutyStatus = "ON" // on duty, not driving
)

// Valid reports whether s is one of the known duty statuses.
func (s DutyStatus) Valid() bool {
	switch s {
	case StatusOffDuty, StatusSleeperBerth, StatusDriving, StatusOnDuty:
		return true
	}
	return false
}

// DutySegment is one contiguous block of a daily duty-status timeline.
type DutySegment struct {
	Status    DutyStatus
	StartHour float64 // hour within the day, [0,24)
	EndHour   float64 // hour within the day, (0,24]
	Remark    string
}

// Hours returns the segment length in hours.
func (s DutySegment) Hours() float64 { return s.EndHour - s.StartHour }

// DailySchedule is the synthesized duty-status timeline for one calendar day.
// Segments are contiguous, non-overlapping, and span exactly [0,24).
type DailySchedule struct {
	Day      int
	Segments []DutySegment

	DrivingHours float64
	OnDutyHours  float64 // on duty, not driving
	OffDutyHours float64
	SleeperHours float64

	// CycleUsed is the rolling duty-cycle total after this day.
	CycleUsed float64
	// Requires34HourRestart is advisory: the planner flags cycle exhaustion
	// but never inserts the restart itself.
	Requires34HourRestart bool
}

// OnDutyTotal returns the hours that count against the duty cycle:
// driving plus on-duty-not-driving.
func (d DailySchedule) OnDutyTotal() float64 {
	return d.DrivingHours + d.OnDutyHours
}
