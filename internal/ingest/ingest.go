// Package ingest turns a raw schedule export (institutional HTML or a
// previously exported JSON backup) into the canonical schedule document.
package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	appLog "tkbcal/internal/log"
	"tkbcal/internal/model"
)

// ErrUnrecognizedFormat is returned when the input matches neither accepted
// shape (canonical JSON backup, institutional HTML export) or yields zero
// weeks. No partial document is ever returned alongside it.
var ErrUnrecognizedFormat = errors.New("input is not a recognized schedule export")

// Parse ingests raw input text and produces a canonical schedule document.
//
// The input shape is decided by a structural probe, not prefix sniffing:
// valid JSON must carry a non-empty "weeks" array and a "metadata" object and
// is then passed through (with derived session fields filled in); everything
// else is handed to the HTML parser. Identical input bytes always yield a
// structurally identical document.
func Parse(data []byte) (*model.ScheduleDocument, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty input: %w", ErrUnrecognizedFormat)
	}

	if json.Valid(trimmed) {
		doc, err := parseJSON(trimmed)
		if err != nil {
			return nil, err
		}
		appLog.Info("ingested JSON backup",
			"weeks", len(doc.Weeks),
			"courses", len(doc.AllCourses),
		)
		return doc, nil
	}

	doc, err := ParseHTML(trimmed)
	if err != nil {
		return nil, err
	}
	appLog.Info("ingested HTML export",
		"weeks", len(doc.Weeks),
		"courses", len(doc.AllCourses),
	)
	return doc, nil
}

// parseJSON validates and normalizes a previously exported backup document.
func parseJSON(data []byte) (*model.ScheduleDocument, error) {
	// Structural probe before the full decode: a backup must carry at least
	// one week and a metadata object.
	var probe struct {
		Metadata json.RawMessage   `json:"metadata"`
		Weeks    []json.RawMessage `json:"weeks"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("json probe: %w", ErrUnrecognizedFormat)
	}
	if len(probe.Metadata) == 0 || len(probe.Weeks) == 0 {
		return nil, fmt.Errorf("json document lacks weeks or metadata: %w", ErrUnrecognizedFormat)
	}

	var doc model.ScheduleDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("json decode: %w", ErrUnrecognizedFormat)
	}

	normalizeDocument(&doc)
	if len(doc.AllCourses) == 0 {
		rebuildAggregates(&doc)
	}
	return &doc, nil
}

// normalizeDocument fills derived session fields that older backups (or the
// original exporter) may omit. It only ever writes empty/zero fields, so the
// pass is idempotent and leaves this engine's own exports untouched.
func normalizeDocument(doc *model.ScheduleDocument) {
	for wi := range doc.Weeks {
		w := &doc.Weeks[wi]
		if w.WeekNumber == 0 {
			w.WeekNumber = wi + 1
		}
		for _, dayName := range model.DaysOfWeek {
			day := w.Day(dayName)
			for _, shift := range model.Shifts {
				bucket := day.Bucket(shift)
				for si := range *bucket {
					normalizeSession(&(*bucket)[si], dayName, shift)
				}
			}
		}
	}
}

func normalizeSession(s *model.CourseSession, dayName string, shift model.Shift) {
	if s.StartPeriod == 0 && s.TimeSlot != "" {
		if start, end, ok := ParsePeriodRange(s.TimeSlot); ok {
			s.StartPeriod = start
			s.EndPeriod = end
		}
	}
	if s.EndPeriod < s.StartPeriod {
		s.EndPeriod = s.StartPeriod
	}
	if s.TimeSlot == "" && s.StartPeriod > 0 {
		s.TimeSlot = FormatPeriodRange(s.StartPeriod, s.EndPeriod)
	}
	if s.PeriodCount == 0 && s.StartPeriod > 0 {
		s.PeriodCount = s.EndPeriod - s.StartPeriod + 1
	}
	if !s.Type.Valid() {
		s.Type = model.InferCourseType(s.CourseCode)
	}
	if s.SessionTime != model.ShiftMorning && s.SessionTime != model.ShiftAfternoon && s.SessionTime != model.ShiftEvening {
		s.SessionTime = shift
	}
	if s.DayOfWeek == "" {
		s.DayOfWeek = dayName
	}
}

// rebuildAggregates reconstructs the per-course-group rollup table from the
// week grid. Used when a foreign backup omits allCourses entirely.
func rebuildAggregates(doc *model.ScheduleDocument) {
	doc.AllCourses = nil
	for wi := range doc.Weeks {
		w := &doc.Weeks[wi]
		for _, dayName := range model.DaysOfWeek {
			for _, s := range w.Day(dayName).Sessions() {
				observeCourse(doc, s)
			}
		}
	}
}

// observeCourse folds one session into the aggregate table: the first
// occurrence of a code creates the entry, later occurrences accumulate totals
// and extend the group/class/type sets without duplication.
func observeCourse(doc *model.ScheduleDocument, s model.CourseSession) {
	agg := doc.Course(s.CourseCode)
	if agg == nil {
		doc.AllCourses = append(doc.AllCourses, model.AggregatedCourse{
			Code:    s.CourseCode,
			Name:    s.CourseName,
			Groups:  []string{},
			Classes: []string{},
			Types:   []model.CourseType{},
		})
		agg = &doc.AllCourses[len(doc.AllCourses)-1]
	}
	agg.TotalPeriods += s.PeriodCount
	agg.TotalSessions++
	agg.Groups = appendUnique(agg.Groups, s.Group)
	agg.Classes = appendUnique(agg.Classes, s.ClassName)
	if !containsType(agg.Types, s.Type) {
		agg.Types = append(agg.Types, s.Type)
	}
}

func appendUnique(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, e := range list {
		if e == v {
			return list
		}
	}
	return append(list, v)
}

func containsType(list []model.CourseType, t model.CourseType) bool {
	for _, e := range list {
		if e == t {
			return true
		}
	}
	return false
}

// ParsePeriodRange parses a period-range token such as "1-4", "6 - 7" or a
// bare "3" into its inclusive bounds.
func ParsePeriodRange(token string) (start, end int, ok bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, 0, false
	}

	// En dash shows up in some exports.
	token = strings.ReplaceAll(token, "–", "-")

	parts := strings.SplitN(token, "-", 2)
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || start <= 0 {
		return 0, 0, false
	}
	end = start
	if len(parts) == 2 {
		end, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || end < start {
			return 0, 0, false
		}
	}
	return start, end, true
}

// FormatPeriodRange renders inclusive bounds back into the canonical
// display token.
func FormatPeriodRange(start, end int) string {
	if end <= start {
		return strconv.Itoa(start)
	}
	return strconv.Itoa(start) + "-" + strconv.Itoa(end)
}
