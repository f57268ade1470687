package ics

import (
	ical "github.com/arran4/golang-ical"

	"tkbcal/internal/model"
)

const prodID = "-//tkbcal//Timetable//VN"

// dtLayout renders floating local date-times (no Z suffix, no offset).
const dtLayout = "20060102T150405"

// BuildWeekCalendar projects one week and serializes it as an iCalendar
// payload, one VEVENT per session.
func BuildWeekCalendar(week *model.WeekSchedule, overrides map[string]model.CourseType) (string, error) {
	events, err := ProjectWeek(week, overrides)
	if err != nil {
		return "", err
	}
	return Serialize(events), nil
}

// Serialize renders projected events into a VCALENDAR stream.
func Serialize(events []Event) string {
	cal := ical.NewCalendar()
	cal.SetVersion("2.0")
	cal.SetProductId(prodID)
	cal.SetCalscale("GREGORIAN")

	for _, ev := range events {
		ve := cal.AddEvent(ev.UID)
		ve.SetProperty(ical.ComponentPropertySummary, ev.Summary)
		if ev.Location != "" {
			ve.SetProperty(ical.ComponentPropertyLocation, ev.Location)
		}
		ve.SetProperty(ical.ComponentPropertyDescription, ev.Description)
		// Set raw floating values; the library's time helpers would append a
		// UTC "Z" suffix.
		ve.SetProperty(ical.ComponentPropertyDtStart, ev.Start.Format(dtLayout))
		ve.SetProperty(ical.ComponentPropertyDtEnd, ev.End.Format(dtLayout))
	}

	return cal.Serialize()
}
