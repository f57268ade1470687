package analyze

import (
	"sort"

	"tkbcal/internal/model"
)

// CalculateMetrics produces the analytics snapshot for a document in a single
// pass over all weeks, days, shifts and sessions. It never mutates the
// document and is cheap enough to recompute on every document or override
// change. "Sessions" counts session rows everywhere (not non-empty shift
// buckets); overrides only influence the per-type distribution, which uses
// the effective course type.
func CalculateMetrics(doc *model.ScheduleDocument, overrides map[string]model.CourseType) model.Metrics {
	m := model.Metrics{
		TotalWeeks:       len(doc.Weeks),
		HoursByDay:       make(map[string]int, len(model.DaysOfWeek)),
		HoursByWeek:      make(map[int]int, len(doc.Weeks)),
		TypeDistribution: map[model.CourseType]int{model.CourseLT: 0, model.CourseTH: 0},
		ShiftStats: map[model.Shift]model.ShiftStat{
			model.ShiftMorning:   {},
			model.ShiftAfternoon: {},
			model.ShiftEvening:   {},
		},
		BusiestDay:  model.DayTotal{Day: model.DaysOfWeek[0]},
		BusiestWeek: model.WeekTotal{Week: 1},
	}
	for _, d := range model.DaysOfWeek {
		m.HoursByDay[d] = 0
	}

	roomPeriods := make(map[string]int)
	var roomOrder []string

	for wi := range doc.Weeks {
		w := &doc.Weeks[wi]
		weekTotal := 0

		for _, dayName := range model.DaysOfWeek {
			day := w.Day(dayName)
			for _, shift := range model.Shifts {
				bucket := *day.Bucket(shift)
				if len(bucket) == 0 {
					continue
				}

				stat := m.ShiftStats[shift]
				stat.Sessions += len(bucket)
				m.TotalSessions += len(bucket)

				for _, s := range bucket {
					stat.Hours += s.PeriodCount
					m.TotalHours += s.PeriodCount
					m.HoursByDay[dayName] += s.PeriodCount
					weekTotal += s.PeriodCount

					effective := model.EffectiveType(s.CourseCode, s.Type, overrides)
					m.TypeDistribution[effective] += s.PeriodCount

					if _, seen := roomPeriods[s.Room]; !seen {
						roomOrder = append(roomOrder, s.Room)
					}
					roomPeriods[s.Room] += s.PeriodCount
				}

				m.ShiftStats[shift] = stat
			}
		}

		m.HoursByWeek[w.WeekNumber] = weekTotal
	}

	// Strict > comparisons in fixed iteration order: the first weekday/week
	// reaching the maximum wins ties.
	for _, d := range model.DaysOfWeek {
		if m.HoursByDay[d] > m.BusiestDay.Hours {
			m.BusiestDay = model.DayTotal{Day: d, Hours: m.HoursByDay[d]}
		}
	}
	for wi := range doc.Weeks {
		wn := doc.Weeks[wi].WeekNumber
		if m.HoursByWeek[wn] > m.BusiestWeek.Hours {
			m.BusiestWeek = model.WeekTotal{Week: wn, Hours: m.HoursByWeek[wn]}
		}
	}

	// Distinct subjects: course-group codes collapsed to their prefix.
	subjects := make(map[string]struct{}, len(doc.AllCourses))
	for _, c := range doc.AllCourses {
		subjects[model.SubjectPrefix(c.Code)] = struct{}{}
	}
	m.TotalCourses = len(subjects)
	m.TotalGroups = len(doc.AllCourses)
	m.TotalRooms = len(roomPeriods)

	// Room ranking: periods descending, encounter order on ties.
	top := make([]model.RoomStat, 0, len(roomOrder))
	for _, room := range roomOrder {
		top = append(top, model.RoomStat{Room: room, Periods: roomPeriods[room]})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Periods > top[j].Periods
	})
	if len(top) > 10 {
		top = top[:10]
	}
	m.TopRooms = top

	return m
}
