package model

import (
	"strings"
	"time"
)

// CourseType distinguishes lecture groups from practical/integrated groups.
// The two variants carry different realized period durations.
type CourseType string

const (
	// CourseLT is a lecture group; one period lasts 45 minutes.
	CourseLT CourseType = "LT"
	// CourseTH is a practical/integrated group; one period lasts 60 minutes.
	CourseTH CourseType = "TH"
)

// Valid reports whether t is one of the two known course types.
func (t CourseType) Valid() bool {
	return t == CourseLT || t == CourseTH
}

// PeriodDuration is the realized clock length of one period of this type.
func (t CourseType) PeriodDuration() time.Duration {
	if t == CourseLT {
		return 45 * time.Minute
	}
	return 60 * time.Minute
}

// InferCourseType derives the course type from a course-group code. The
// segment after the last '-' is the type token; a token containing "LT"
// selects lecture, anything else defaults to practical.
//
//	MHCĐO1052-LT.005 -> LT
//	MHCĐO1052-TH.002 -> TH
//	MHCĐO1052        -> TH
func InferCourseType(code string) CourseType {
	idx := strings.LastIndex(code, "-")
	if idx < 0 || idx+1 >= len(code) {
		return CourseTH
	}
	if strings.Contains(code[idx+1:], "LT") {
		return CourseLT
	}
	return CourseTH
}

// SubjectPrefix collapses a course-group code to its parent subject: the code
// truncated at its last '.' group-suffix delimiter, or unchanged when no
// delimiter is present. Multiple codes may share one prefix.
func SubjectPrefix(code string) string {
	if idx := strings.LastIndex(code, "."); idx >= 0 {
		return code[:idx]
	}
	return code
}
