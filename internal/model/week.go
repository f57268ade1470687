package model

// Shift is the coarse grouping of periods within a day.
type Shift string

const (
	ShiftMorning   Shift = "morning"   // periods 1-5
	ShiftAfternoon Shift = "afternoon" // periods 6-9
	ShiftEvening   Shift = "evening"   // periods 10-12
)

// Shifts lists the shift buckets in day order.
var Shifts = []Shift{ShiftMorning, ShiftAfternoon, ShiftEvening}

// ShiftForPeriod maps a period number onto its shift bucket using the fixed
// institutional partition. Out-of-range periods fall into the nearest bucket
// so that anomalous rows remain placed rather than lost.
func ShiftForPeriod(p int) Shift {
	switch {
	case p <= 5:
		return ShiftMorning
	case p <= 9:
		return ShiftAfternoon
	default:
		return ShiftEvening
	}
}

// DaysOfWeek is the fixed weekday order of a WeekSchedule. All iteration over
// a week's days goes through this slice so that output is deterministic.
var DaysOfWeek = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// ViDaysOfWeek holds the Vietnamese weekday labels used by the source export,
// index-aligned with DaysOfWeek.
var ViDaysOfWeek = []string{
	"Thứ 2", "Thứ 3", "Thứ 4", "Thứ 5", "Thứ 6", "Thứ 7", "Chủ nhật",
}

// WeekdayIndex resolves an English or Vietnamese weekday label to its index
// in DaysOfWeek, returning -1 for anything unrecognized.
func WeekdayIndex(label string) int {
	for i, d := range DaysOfWeek {
		if label == d {
			return i
		}
	}
	for i, d := range ViDaysOfWeek {
		if label == d {
			return i
		}
	}
	return -1
}
