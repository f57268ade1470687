// Package ics projects one week of the schedule into absolute-dated calendar
// events and serializes them as an iCalendar stream.
package ics

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	appLog "tkbcal/internal/log"
	"tkbcal/internal/model"
)

// ErrMalformedDate is returned when a week's date-range string lacks a
// parsable dd/mm/yyyy token, so none of its sessions can be dated.
var ErrMalformedDate = errors.New("week date range has no dd/mm/yyyy date")

var dateRe = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)

// periodStart maps period numbers 1-12 to their institution-wide clock start,
// in minutes from midnight. The table is authoritative.
var periodStart = map[int]int{
	1:  7*60 + 0,
	2:  7*60 + 55,
	3:  8*60 + 50,
	4:  9*60 + 45,
	5:  10*60 + 40,
	6:  13*60 + 30,
	7:  14*60 + 25,
	8:  15*60 + 20,
	9:  16*60 + 15,
	10: 17*60 + 10,
	11: 18*60 + 0,
	12: 18*60 + 50,
}

// Event is one projected calendar event. Times are local wall-clock values;
// no timezone conversion is performed.
type Event struct {
	UID         string
	Summary     string
	Location    string
	Description string
	Start       time.Time
	End         time.Time
}

// WeekStart extracts the week's real-world start date (its Monday) from the
// first dd/mm/yyyy substring of the date-range string.
func WeekStart(week *model.WeekSchedule) (time.Time, error) {
	m := dateRe.FindStringSubmatch(week.DateRange)
	if m == nil {
		return time.Time{}, fmt.Errorf("week %d (%q): %w", week.WeekNumber, week.DateRange, ErrMalformedDate)
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

// ProjectWeek converts one week's sessions into calendar events, honoring
// user type overrides: the event duration after the last period's start is
// 45 minutes for lectures and 60 for practicals. Pure: re-derivable
// byte-for-byte from (week, overrides).
//
// A week without a parsable start date yields no events and ErrMalformedDate.
// Sessions whose periods fall outside the clock table are skipped.
func ProjectWeek(week *model.WeekSchedule, overrides map[string]model.CourseType) ([]Event, error) {
	start, err := WeekStart(week)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0)
	for idx, dayName := range model.DaysOfWeek {
		date := start.AddDate(0, 0, idx)
		for seq, s := range week.Day(dayName).Sessions() {
			ev, ok := projectSession(s, date, seq, overrides)
			if !ok {
				appLog.Warn("session has no projectable period, skipping",
					"week", week.WeekNumber, "code", s.CourseCode, "slot", s.TimeSlot)
				continue
			}
			events = append(events, ev)
		}
	}
	return events, nil
}

func projectSession(s model.CourseSession, date time.Time, seq int, overrides map[string]model.CourseType) (Event, bool) {
	startMin, ok := periodStart[s.StartPeriod]
	if !ok {
		return Event{}, false
	}
	lastMin, ok := periodStart[s.EndPeriod]
	if !ok {
		lastMin = startMin
	}

	effective := model.EffectiveType(s.CourseCode, s.Type, overrides)
	endMin := lastMin + int(effective.PeriodDuration().Minutes())

	ev := Event{
		// seq is the session's position within its day, keeping UIDs unique
		// even when one code is double-booked into the same slot.
		UID:      fmt.Sprintf("%s-%s-%d.%d@tkbcal", s.CourseCode, date.Format("20060102"), s.StartPeriod, seq),
		Summary:  fmt.Sprintf("%s (%s)", s.CourseName, effective),
		Location: s.Room,
		// Real newlines; the serializer escapes them for the wire format.
		Description: fmt.Sprintf("GV: %s\nLớp: %s\nTiết: %s\nNhóm: %s",
			s.Teacher, s.ClassName, s.TimeSlot, s.Group),
		Start: date.Add(time.Duration(startMin) * time.Minute),
		End:   date.Add(time.Duration(endMin) * time.Minute),
	}
	return ev, true
}
