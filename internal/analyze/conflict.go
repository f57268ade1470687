// Package analyze derives conflict annotations and workload metrics from a
// populated schedule document.
package analyze

import (
	appLog "tkbcal/internal/log"
	"tkbcal/internal/model"
)

// AnnotateConflicts marks every session that clashes with another session on
// the same day: same teacher, same period range, different room. Flags are
// recomputed from scratch, so re-running on an annotated document yields the
// same result. The per-day scan is quadratic, which is fine at realistic
// daily session counts.
//
// The check only inspects one direction per session, but since every session
// takes the s1 role once, the relation comes out symmetric: if A clashes with
// B then both end up flagged.
func AnnotateConflicts(doc *model.ScheduleDocument) {
	flagged := 0

	for wi := range doc.Weeks {
		w := &doc.Weeks[wi]
		for _, dayName := range model.DaysOfWeek {
			day := w.Day(dayName)

			buckets := []*[]model.CourseSession{&day.Morning, &day.Afternoon, &day.Evening}

			// Flatten the day across shifts; conflicts can span buckets only
			// in malformed data, but the contract compares the whole day.
			var all []*model.CourseSession
			for _, b := range buckets {
				for i := range *b {
					(*b)[i].HasConflict = false
					all = append(all, &(*b)[i])
				}
			}

			for _, s1 := range all {
				for _, s2 := range all {
					if s1 == s2 {
						continue
					}
					if s1.Teacher == s2.Teacher && s1.TimeSlot == s2.TimeSlot && s1.Room != s2.Room {
						s1.HasConflict = true
						flagged++
						break
					}
				}
			}
		}
	}

	if flagged > 0 {
		appLog.Warn("schedule conflicts detected", "sessions", flagged)
	}
}
