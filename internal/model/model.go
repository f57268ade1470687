package model

// ScheduleDocument is the canonical in-memory form of one teacher's weekly
// teaching schedule for a semester. It is produced atomically by a single
// ingestion call and is thereafter either replaced wholesale (new upload) or
// shallow-patched (Overrides updated). There is no incremental update path.
type ScheduleDocument struct {
	Metadata   Metadata           `json:"metadata"`
	Weeks      []WeekSchedule     `json:"weeks"`
	AllCourses []AggregatedCourse `json:"allCourses"`

	// Overrides maps a course-group code to a user-chosen course type that
	// replaces the inferred one. The engine treats it as opaque pass-through
	// data; only analytics and calendar projection consult it.
	Overrides map[string]CourseType `json:"overrides,omitempty"`
}

// Metadata carries document-level information extracted from the export
// header. ExtractedDate is an RFC3339 timestamp string so that documents
// round-trip through JSON without precision surprises.
type Metadata struct {
	Teacher       string `json:"teacher"`
	Semester      string `json:"semester"`
	AcademicYear  string `json:"academicYear"`
	ExtractedDate string `json:"extractedDate"`
}

// WeekSchedule is one calendar week of the schedule. WeekNumber is 1-based
// and matches the week's position in ScheduleDocument.Weeks. DateRange is the
// human-readable range from the export; its first dd/mm/yyyy substring is the
// authoritative start-of-week date used by calendar projection.
type WeekSchedule struct {
	WeekNumber int                     `json:"weekNumber"`
	DateRange  string                  `json:"dateRange"`
	Days       map[string]*DaySchedule `json:"days"`
}

// DaySchedule holds one weekday's sessions, bucketed by shift. A bucket may
// be empty; session order within a bucket is ingestion append order.
type DaySchedule struct {
	Morning   []CourseSession `json:"morning"`
	Afternoon []CourseSession `json:"afternoon"`
	Evening   []CourseSession `json:"evening"`
}

// CourseSession is one atomic teaching event. Immutable once produced by
// ingestion except for HasConflict, which only the conflict detector sets.
type CourseSession struct {
	CourseCode  string     `json:"courseCode"`
	CourseName  string     `json:"courseName"`
	Group       string     `json:"group"`
	ClassName   string     `json:"className"`
	TimeSlot    string     `json:"timeSlot"`
	StartPeriod int        `json:"startPeriod"`
	EndPeriod   int        `json:"endPeriod"`
	PeriodCount int        `json:"periodCount"`
	Room        string     `json:"room"`
	Teacher     string     `json:"teacher"`
	ActualHours float64    `json:"actualHours"`
	Type        CourseType `json:"type"`
	DayOfWeek   string     `json:"dayOfWeek"`
	SessionTime Shift      `json:"sessionTime"`
	HasConflict bool       `json:"hasConflict,omitempty"`
}

// AggregatedCourse is the per-course-group rollup: one entry per distinct
// course-group code observed anywhere in the document. Groups, Classes and
// Types preserve first-seen order and suppress duplicates.
type AggregatedCourse struct {
	Code          string       `json:"code"`
	Name          string       `json:"name"`
	TotalPeriods  int          `json:"totalPeriods"`
	TotalSessions int          `json:"totalSessions"`
	Groups        []string     `json:"groups"`
	Classes       []string     `json:"classes"`
	Types         []CourseType `json:"types"`
}

// Course returns the aggregate entry for the given course-group code, or nil
// if the code never occurs in the document.
func (d *ScheduleDocument) Course(code string) *AggregatedCourse {
	for i := range d.AllCourses {
		if d.AllCourses[i].Code == code {
			return &d.AllCourses[i]
		}
	}
	return nil
}

// EffectiveType resolves the course type to use for a code: the user override
// when present and valid, otherwise the inferred type.
func EffectiveType(code string, inferred CourseType, overrides map[string]CourseType) CourseType {
	if t, ok := overrides[code]; ok && t.Valid() {
		return t
	}
	return inferred
}

// Day returns the schedule for the given weekday name, creating an empty one
// if the week does not carry it yet.
func (w *WeekSchedule) Day(name string) *DaySchedule {
	if w.Days == nil {
		w.Days = make(map[string]*DaySchedule, len(DaysOfWeek))
	}
	d, ok := w.Days[name]
	if !ok {
		d = &DaySchedule{
			Morning:   []CourseSession{},
			Afternoon: []CourseSession{},
			Evening:   []CourseSession{},
		}
		w.Days[name] = d
	}
	return d
}

// Bucket returns the session slice for the given shift. Unknown shifts map to
// the morning bucket so malformed rows stay visible instead of vanishing.
func (d *DaySchedule) Bucket(s Shift) *[]CourseSession {
	switch s {
	case ShiftAfternoon:
		return &d.Afternoon
	case ShiftEvening:
		return &d.Evening
	default:
		return &d.Morning
	}
}

// Sessions returns the day's sessions flattened in shift order
// (morning, afternoon, evening), preserving bucket-internal order.
func (d *DaySchedule) Sessions() []CourseSession {
	out := make([]CourseSession, 0, len(d.Morning)+len(d.Afternoon)+len(d.Evening))
	out = append(out, d.Morning...)
	out = append(out, d.Afternoon...)
	out = append(out, d.Evening...)
	return out
}
