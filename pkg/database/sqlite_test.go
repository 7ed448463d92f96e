package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteCreatesSchema(t *testing.T) {
	db, err := NewSQLite(Config{Path: filepath.Join(t.TempDir(), "college.db")})
	require.NoError(t, err)
	defer db.Close()

	var tables []string
	err = db.Select(&tables, "SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	require.NoError(t, err)
	assert.Contains(t, tables, "students")
	assert.Contains(t, tables, "courses")
	assert.Contains(t, tables, "enrollments")
}

func TestNewSQLiteIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "college.db")

	db, err := NewSQLite(Config{Path: path})
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO students (name, email) VALUES ('Ann', 'ann@x.com')")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening must keep existing rows intact.
	db, err = NewSQLite(Config{Path: path})
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM students"))
	assert.Equal(t, 1, count)
}

func TestTranslateUnique(t *testing.T) {
	db, err := NewSQLite(Config{Path: filepath.Join(t.TempDir(), "college.db")})
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("INSERT INTO students (name, email) VALUES ('Ann', 'ann@x.com')")
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO students (name, email) VALUES ('Other', 'ann@x.com')")
	require.Error(t, err)

	translated := TranslateUnique(err, ConstraintStudentEmail)
	assert.True(t, IsUniqueViolation(translated, ConstraintStudentEmail))
	assert.False(t, IsUniqueViolation(translated, ConstraintCourseCode))
}

func TestTranslateUniquePassesThroughOtherErrors(t *testing.T) {
	db, err := NewSQLite(Config{Path: filepath.Join(t.TempDir(), "college.db")})
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("INSERT INTO students (name) VALUES ('no email')")
	require.Error(t, err)

	translated := TranslateUnique(err, ConstraintStudentEmail)
	assert.False(t, IsUniqueViolation(translated, ""))
}

func TestEnrollmentPairConstraint(t *testing.T) {
	db, err := NewSQLite(Config{Path: filepath.Join(t.TempDir(), "college.db")})
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("INSERT INTO enrollments (student_id, course_id, enrollment_date) VALUES (1, 1, '2024-01-15')")
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO enrollments (student_id, course_id, enrollment_date) VALUES (1, 1, '2024-02-01')")
	translated := TranslateUnique(err, ConstraintEnrollmentStudentCourse)
	require.True(t, IsUniqueViolation(translated, ConstraintEnrollmentStudentCourse))

	// A different course for the same student is fine.
	_, err = db.Exec("INSERT INTO enrollments (student_id, course_id, enrollment_date) VALUES (1, 2, '2024-02-01')")
	require.NoError(t, err)
}
