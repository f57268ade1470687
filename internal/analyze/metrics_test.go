package analyze

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tkbcal/internal/model"
)

// twoWeekDoc: week 1 has Monday 1-4 (LT) and Monday 6-9 (TH); week 2 has
// Tuesday 1-4 (LT). 12 periods, 3 session rows in total.
func twoWeekDoc() *model.ScheduleDocument {
	doc := &model.ScheduleDocument{
		Weeks: []model.WeekSchedule{
			{WeekNumber: 1, DateRange: "Từ ngày: 12/01/2026 đến ngày 18/01/2026"},
			{WeekNumber: 2, DateRange: "Từ ngày: 19/01/2026 đến ngày 25/01/2026"},
		},
		AllCourses: []model.AggregatedCourse{
			{Code: "MHCĐO1052-LT.005", TotalPeriods: 8, TotalSessions: 2},
			{Code: "MHCĐO1052-TH.005", TotalPeriods: 4, TotalSessions: 1},
		},
	}
	for wi := range doc.Weeks {
		for _, name := range model.DaysOfWeek {
			doc.Weeks[wi].Day(name)
		}
	}

	w1 := &doc.Weeks[0]
	w1.Days["Monday"].Morning = append(w1.Days["Monday"].Morning,
		session("MHCĐO1052-LT.005", "GV A", "1-4", ".B.102"))
	w1.Days["Monday"].Afternoon = append(w1.Days["Monday"].Afternoon,
		session("MHCĐO1052-TH.005", "GV A", "6-9", ".B.201"))

	w2 := &doc.Weeks[1]
	w2.Days["Tuesday"].Morning = append(w2.Days["Tuesday"].Morning,
		session("MHCĐO1052-LT.005", "GV A", "1-4", ".B.102"))

	return doc
}

func TestCalculateMetricsConservation(t *testing.T) {
	doc := twoWeekDoc()
	m := CalculateMetrics(doc, nil)

	assert.Equal(t, 2, m.TotalWeeks)
	assert.Equal(t, 12, m.TotalHours)
	assert.Equal(t, 3, m.TotalSessions)

	dailySum := 0
	for _, d := range model.DaysOfWeek {
		dailySum += m.HoursByDay[d]
	}
	assert.Equal(t, m.TotalHours, dailySum, "hoursByDay sums to totalHours")

	weeklySum := 0
	for _, h := range m.HoursByWeek {
		weeklySum += h
	}
	assert.Equal(t, m.TotalHours, weeklySum, "hoursByWeek sums to totalHours")

	shiftSum := 0
	for _, st := range m.ShiftStats {
		shiftSum += st.Hours
	}
	assert.Equal(t, m.TotalHours, shiftSum, "shift hours sum to totalHours")
}

func TestCalculateMetricsBreakdowns(t *testing.T) {
	doc := twoWeekDoc()
	m := CalculateMetrics(doc, nil)

	assert.Equal(t, 8, m.HoursByDay["Monday"])
	assert.Equal(t, 4, m.HoursByDay["Tuesday"])
	assert.Equal(t, 0, m.HoursByDay["Sunday"])
	assert.Equal(t, 8, m.HoursByWeek[1])
	assert.Equal(t, 4, m.HoursByWeek[2])

	assert.Equal(t, model.ShiftStat{Hours: 8, Sessions: 2}, m.ShiftStats[model.ShiftMorning])
	assert.Equal(t, model.ShiftStat{Hours: 4, Sessions: 1}, m.ShiftStats[model.ShiftAfternoon])
	assert.Equal(t, model.ShiftStat{}, m.ShiftStats[model.ShiftEvening])

	assert.Equal(t, 8, m.TypeDistribution[model.CourseLT])
	assert.Equal(t, 4, m.TypeDistribution[model.CourseTH])

	assert.Equal(t, model.DayTotal{Day: "Monday", Hours: 8}, m.BusiestDay)
	assert.Equal(t, model.WeekTotal{Week: 1, Hours: 8}, m.BusiestWeek)
}

func TestCalculateMetricsTieBreaks(t *testing.T) {
	// Monday and Tuesday both carry 4 periods; weeks 1 and 2 both carry 4.
	doc := &model.ScheduleDocument{
		Weeks: []model.WeekSchedule{
			{WeekNumber: 1},
			{WeekNumber: 2},
		},
	}
	for wi := range doc.Weeks {
		for _, name := range model.DaysOfWeek {
			doc.Weeks[wi].Day(name)
		}
	}
	doc.Weeks[0].Days["Tuesday"].Morning = append(doc.Weeks[0].Days["Tuesday"].Morning,
		session("A-LT.001", "GV A", "1-4", ".B.102"))
	doc.Weeks[1].Days["Monday"].Morning = append(doc.Weeks[1].Days["Monday"].Morning,
		session("A-LT.001", "GV A", "1-4", ".B.102"))

	m := CalculateMetrics(doc, nil)

	assert.Equal(t, "Monday", m.BusiestDay.Day, "first weekday in fixed order wins ties")
	assert.Equal(t, 1, m.BusiestWeek.Week, "first week wins ties")
}

func TestCalculateMetricsSubjectCollapsing(t *testing.T) {
	doc := docWithMonday(
		session("MHCĐO1052-LT.005", "GV A", "1-4", ".B.102"),
		session("MHCĐO1052-LT.006", "GV A", "6-9", ".B.102"),
	)
	doc.AllCourses = []model.AggregatedCourse{
		{Code: "MHCĐO1052-LT.005"},
		{Code: "MHCĐO1052-LT.006"},
	}

	m := CalculateMetrics(doc, nil)
	assert.Equal(t, 1, m.TotalCourses, "both codes collapse to MHCĐO1052-LT")
	assert.Equal(t, 2, m.TotalGroups)
}

func TestCalculateMetricsOverridesAffectTypeDistribution(t *testing.T) {
	doc := docWithMonday(session("A-LT.001", "GV A", "1-4", ".B.102"))

	m := CalculateMetrics(doc, nil)
	require.Equal(t, 4, m.TypeDistribution[model.CourseLT])

	m = CalculateMetrics(doc, map[string]model.CourseType{"A-LT.001": model.CourseTH})
	assert.Equal(t, 0, m.TypeDistribution[model.CourseLT])
	assert.Equal(t, 4, m.TypeDistribution[model.CourseTH])
}

func TestCalculateMetricsTopRooms(t *testing.T) {
	var sessions []model.CourseSession
	// Twelve distinct rooms. Room 0 gets an extra session; the rest tie and
	// must keep encounter order, truncated to ten.
	for i := 0; i < 12; i++ {
		sessions = append(sessions, session("A-LT.001", "GV A", "1-2", fmt.Sprintf(".R.%03d", i)))
	}
	sessions = append(sessions, session("A-LT.001", "GV A", "3-4", ".R.000"))

	doc := docWithMonday(sessions...)
	m := CalculateMetrics(doc, nil)

	assert.Equal(t, 12, m.TotalRooms)
	require.Len(t, m.TopRooms, 10)
	assert.Equal(t, model.RoomStat{Room: ".R.000", Periods: 4}, m.TopRooms[0])
	for i := 1; i < 10; i++ {
		assert.Equal(t, fmt.Sprintf(".R.%03d", i), m.TopRooms[i].Room, "ties keep encounter order")
		assert.Equal(t, 2, m.TopRooms[i].Periods)
	}
}
