// Package sheet exports the per-course-group rollup as spreadsheet rows.
package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tkbcal/internal/model"
)

// utf8BOM keeps common spreadsheet readers from mis-decoding the
// Vietnamese header and course names.
const utf8BOM = "\uFEFF"

var header = []string{"Mã môn", "Tên môn", "Lớp", "Nhóm", "Loại hình", "Tổng tiết", "Tổng buổi"}

// WriteCourses writes one CSV row per aggregated course in document order,
// prefixed with a UTF-8 byte-order mark. The type column carries the
// effective course type (override if present, else inferred from the code).
func WriteCourses(w io.Writer, doc *model.ScheduleDocument, overrides map[string]model.CourseType) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, c := range doc.AllCourses {
		effective := model.EffectiveType(c.Code, model.InferCourseType(c.Code), overrides)
		row := []string{
			c.Code,
			c.Name,
			strings.Join(c.Classes, ", "),
			strings.Join(c.Groups, ", "),
			string(effective),
			strconv.Itoa(c.TotalPeriods),
			strconv.Itoa(c.TotalSessions),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
