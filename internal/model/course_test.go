package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInferCourseType(t *testing.T) {
	cases := []struct {
		code string
		want CourseType
	}{
		{"MHCĐO1052-LT.005", CourseLT},
		{"MHCĐO1052-TH.002", CourseTH},
		{"MHX1041-LTTH.001", CourseLT},
		{"MHCĐO1052", CourseTH},
		{"", CourseTH},
		{"ABC-", CourseTH},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, InferCourseType(c.code), "code %q", c.code)
	}
}

func TestSubjectPrefix(t *testing.T) {
	assert.Equal(t, "MHCĐO1052-LT", SubjectPrefix("MHCĐO1052-LT.005"))
	assert.Equal(t, "MHCĐO1052-LT", SubjectPrefix("MHCĐO1052-LT.006"))
	assert.Equal(t, "MHX1041", SubjectPrefix("MHX1041"))
}

func TestPeriodDuration(t *testing.T) {
	assert.Equal(t, 45*time.Minute, CourseLT.PeriodDuration())
	assert.Equal(t, 60*time.Minute, CourseTH.PeriodDuration())
}

func TestShiftForPeriod(t *testing.T) {
	assert.Equal(t, ShiftMorning, ShiftForPeriod(1))
	assert.Equal(t, ShiftMorning, ShiftForPeriod(5))
	assert.Equal(t, ShiftAfternoon, ShiftForPeriod(6))
	assert.Equal(t, ShiftAfternoon, ShiftForPeriod(9))
	assert.Equal(t, ShiftEvening, ShiftForPeriod(10))
	assert.Equal(t, ShiftEvening, ShiftForPeriod(12))
}

func TestWeekdayIndex(t *testing.T) {
	assert.Equal(t, 0, WeekdayIndex("Monday"))
	assert.Equal(t, 0, WeekdayIndex("Thứ 2"))
	assert.Equal(t, 6, WeekdayIndex("Chủ nhật"))
	assert.Equal(t, 6, WeekdayIndex("Sunday"))
	assert.Equal(t, -1, WeekdayIndex("Thứ 9"))
}

func TestEffectiveType(t *testing.T) {
	overrides := map[string]CourseType{
		"A-LT.001": CourseTH,
		"B-TH.001": CourseType("bogus"),
	}

	t.Run("override wins when valid", func(t *testing.T) {
		assert.Equal(t, CourseTH, EffectiveType("A-LT.001", CourseLT, overrides))
	})
	t.Run("invalid override is ignored", func(t *testing.T) {
		assert.Equal(t, CourseTH, EffectiveType("B-TH.001", CourseTH, overrides))
	})
	t.Run("missing override falls back to inferred", func(t *testing.T) {
		assert.Equal(t, CourseLT, EffectiveType("C-LT.001", CourseLT, overrides))
	})
}

func TestDayScheduleSessions(t *testing.T) {
	d := DaySchedule{
		Morning:   []CourseSession{{CourseCode: "a"}},
		Afternoon: []CourseSession{{CourseCode: "b"}, {CourseCode: "c"}},
		Evening:   []CourseSession{{CourseCode: "d"}},
	}
	var got []string
	for _, s := range d.Sessions() {
		got = append(got, s.CourseCode)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}
