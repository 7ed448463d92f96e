package database

import (
	"errors"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Constraint identifiers, one per uniqueness rule in the schema.
const (
	ConstraintStudentEmail            = "students_email"
	ConstraintCourseCode              = "courses_code"
	ConstraintEnrollmentStudentCourse = "enrollments_student_course"
)

// UniqueViolation reports a violated uniqueness constraint by identifier
// rather than by driver message text.
type UniqueViolation struct {
	Constraint string
}

// Error implements the error interface.
func (e *UniqueViolation) Error() string {
	return "unique constraint violated: " + e.Constraint
}

// TranslateUnique converts a driver-level unique-constraint failure into a
// *UniqueViolation carrying the given constraint identifier. Any other error
// is returned unchanged. Callers name the constraint because each write
// statement touches exactly one uniqueness rule.
func TranslateUnique(err error, constraint string) error {
	if err == nil {
		return nil
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return &UniqueViolation{Constraint: constraint}
		}
	}
	return err
}

// IsUniqueViolation reports whether err is a UniqueViolation, optionally for
// one specific constraint (empty matches any).
func IsUniqueViolation(err error, constraint string) bool {
	var uv *UniqueViolation
	if !errors.As(err, &uv) {
		return false
	}
	return constraint == "" || uv.Constraint == constraint
}
