package ingest

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	appLog "tkbcal/internal/log"
	"tkbcal/internal/model"
)

// The export is semi-structured: free header text (teacher, semester,
// academic year), then one <table> per week. The week's caption (or the
// nearest preceding heading text) carries "Tuần <n>" plus the date range;
// each data row is weekday, period range, course-group code, course name,
// group label, class label, room, teacher.
var (
	weekHeaderRe = regexp.MustCompile(`(?:Tuần|Week)\s*(\d+)`)
	teacherRe    = regexp.MustCompile(`Giảng viên\s*:\s*([^:]+?)\s*(?:Học kỳ|Năm học|$)`)
	semesterRe   = regexp.MustCompile(`Học kỳ\s*:?\s*([0-9IVX]+)`)
	yearRe       = regexp.MustCompile(`Năm học\s*:?\s*(\d{4}\s*-\s*\d{4})`)
)

// ParseHTML parses the institutional HTML export into a canonical document.
// Per-row anomalies (unknown weekday, unparsable period token) are logged and
// skipped; only a document with zero weeks is treated as a format error.
func ParseHTML(data []byte) (*model.ScheduleDocument, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("html parse: %w", ErrUnrecognizedFormat)
	}

	p := &htmlParser{doc: &model.ScheduleDocument{
		Weeks:      []model.WeekSchedule{},
		AllCourses: []model.AggregatedCourse{},
	}}
	p.walk(root)

	if len(p.doc.Weeks) == 0 {
		return nil, fmt.Errorf("no week tables found in HTML export: %w", ErrUnrecognizedFormat)
	}

	p.doc.Metadata.ExtractedDate = time.Now().UTC().Format(time.RFC3339)
	return p.doc, nil
}

type htmlParser struct {
	doc *model.ScheduleDocument

	// pending accumulates heading text between tables; it becomes the next
	// table's date-range header when the table has no caption of its own.
	pending     strings.Builder
	havePending bool
}

func (p *htmlParser) walk(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "table" {
		p.parseWeekTable(n)
		p.pending.Reset()
		p.havePending = false
		return
	}

	if n.Type == html.TextNode {
		t := collapse(n.Data)
		if t != "" {
			p.scanMetadata(t)
			if weekHeaderRe.MatchString(t) {
				p.pending.Reset()
				p.pending.WriteString(t)
				p.havePending = true
			} else if p.havePending {
				p.pending.WriteString(" ")
				p.pending.WriteString(t)
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

func (p *htmlParser) scanMetadata(t string) {
	if p.doc.Metadata.Teacher == "" {
		if m := teacherRe.FindStringSubmatch(t); m != nil {
			p.doc.Metadata.Teacher = strings.TrimSpace(m[1])
		}
	}
	if p.doc.Metadata.Semester == "" {
		if m := semesterRe.FindStringSubmatch(t); m != nil {
			p.doc.Metadata.Semester = m[1]
		}
	}
	if p.doc.Metadata.AcademicYear == "" {
		if m := yearRe.FindStringSubmatch(t); m != nil {
			p.doc.Metadata.AcademicYear = collapse(m[1])
		}
	}
}

// parseWeekTable turns one <table> into a WeekSchedule. Tables without a
// recognizable week header are layout noise and are skipped entirely.
func (p *htmlParser) parseWeekTable(table *html.Node) {
	header := collapse(captionText(table))
	if !weekHeaderRe.MatchString(header) {
		if !p.havePending {
			return
		}
		header = p.pending.String()
	}

	p.doc.Weeks = append(p.doc.Weeks, model.WeekSchedule{
		// Weeks are numbered by source position, not by the header label, so
		// the sequence stays contiguous even when labels are off.
		WeekNumber: len(p.doc.Weeks) + 1,
		DateRange:  header,
	})
	w := &p.doc.Weeks[len(p.doc.Weeks)-1]
	for _, name := range model.DaysOfWeek {
		w.Day(name)
	}

	for _, tr := range findAll(table, "tr") {
		p.parseRow(w, tr)
	}
}

// parseRow maps one table row onto a CourseSession. Rows failing the weekday
// or period-token checks are skipped; missing trailing cells become empty
// sentinels so one bad cell never aborts the rest of the export.
func (p *htmlParser) parseRow(w *model.WeekSchedule, tr *html.Node) {
	var cells []string
	for _, td := range findAll(tr, "td") {
		cells = append(cells, collapse(nodeText(td)))
	}
	if len(cells) == 0 {
		// Header row (<th>) or spacer.
		return
	}

	cell := func(i int) string {
		if i < len(cells) {
			return cells[i]
		}
		return ""
	}

	dayIdx := model.WeekdayIndex(cell(0))
	if dayIdx < 0 {
		appLog.Debug("skipping row with unknown weekday", "week", w.WeekNumber, "cell", cell(0))
		return
	}
	start, end, ok := ParsePeriodRange(cell(1))
	if !ok {
		appLog.Debug("skipping row with unparsable periods", "week", w.WeekNumber, "cell", cell(1))
		return
	}

	code := cell(2)
	courseType := model.InferCourseType(code)
	teacher := cell(7)
	if teacher == "" {
		// Single-teacher exports often omit the column.
		teacher = p.doc.Metadata.Teacher
	}

	dayName := model.DaysOfWeek[dayIdx]
	shift := model.ShiftForPeriod(start)
	count := end - start + 1

	s := model.CourseSession{
		CourseCode:  code,
		CourseName:  cell(3),
		Group:       cell(4),
		ClassName:   cell(5),
		TimeSlot:    FormatPeriodRange(start, end),
		StartPeriod: start,
		EndPeriod:   end,
		PeriodCount: count,
		Room:        cell(6),
		Teacher:     teacher,
		ActualHours: float64(count) * courseType.PeriodDuration().Minutes() / 60,
		Type:        courseType,
		DayOfWeek:   dayName,
		SessionTime: shift,
	}

	bucket := w.Day(dayName).Bucket(shift)
	*bucket = append(*bucket, s)
	observeCourse(p.doc, s)
}

// captionText returns the text of the table's <caption>, if any.
func captionText(table *html.Node) string {
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "caption" {
			return nodeText(c)
		}
	}
	return ""
}

// findAll collects descendant elements with the given tag in document order.
func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var rec func(*html.Node)
	rec = func(m *html.Node) {
		if m.Type == html.ElementNode && m.Data == tag {
			out = append(out, m)
			return
		}
		for c := m.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rec(c)
	}
	return out
}

// nodeText concatenates all text beneath n.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(m *html.Node) {
		if m.Type == html.TextNode {
			b.WriteString(m.Data)
			b.WriteString(" ")
		}
		for c := m.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return b.String()
}

// collapse trims and squashes runs of whitespace into single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
