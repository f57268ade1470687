package model

// Metrics is the derived analytics snapshot. It has no independent lifecycle:
// it is a pure function of (document, overrides) and is recomputed whenever
// either changes, never mutated in place and never persisted.
type Metrics struct {
	TotalWeeks    int `json:"totalWeeks"`
	TotalHours    int `json:"totalHours"`
	TotalSessions int `json:"totalSessions"`
	// TotalCourses counts distinct subject prefixes, not course-group codes.
	TotalCourses int `json:"totalCourses"`
	TotalGroups  int `json:"totalGroups"`
	TotalRooms   int `json:"totalRooms"`

	BusiestDay  DayTotal  `json:"busiestDay"`
	BusiestWeek WeekTotal `json:"busiestWeek"`

	HoursByDay       map[string]int      `json:"hoursByDay"`
	HoursByWeek      map[int]int         `json:"hoursByWeek"`
	TypeDistribution map[CourseType]int  `json:"typeDistribution"`
	ShiftStats       map[Shift]ShiftStat `json:"shiftStats"`

	// TopRooms ranks at most ten rooms by accumulated periods, descending;
	// ties keep encounter order.
	TopRooms []RoomStat `json:"topRooms"`
}

// DayTotal is a weekday with its accumulated period count.
type DayTotal struct {
	Day   string `json:"day"`
	Hours int    `json:"hours"`
}

// WeekTotal is a week number with its accumulated period count.
type WeekTotal struct {
	Week  int `json:"week"`
	Hours int `json:"hours"`
}

// ShiftStat accumulates one shift bucket's period and session-row totals.
type ShiftStat struct {
	Hours    int `json:"hours"`
	Sessions int `json:"sessions"`
}

// RoomStat is one room's accumulated period count.
type RoomStat struct {
	Room    string `json:"room"`
	Periods int    `json:"periods"`
}
