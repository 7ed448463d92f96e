package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/college-enrollments-api/internal/models"
	"github.com/noah-isme/college-enrollments-api/pkg/database"
)

// EnrollmentRepository handles persistence of enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// EnrollmentFilter narrows List to one student and/or one course. Zero values
// match everything.
type EnrollmentFilter struct {
	StudentID int64
	CourseID  int64
}

// List returns raw enrollment rows matching the filter. Joining with student
// and course data happens in the service layer.
func (r *EnrollmentRepository) List(ctx context.Context, filter EnrollmentFilter) ([]models.Enrollment, error) {
	query := "SELECT id, student_id, course_id, enrollment_date, grade FROM enrollments"
	var conditions []string
	var args []interface{}

	if filter.StudentID != 0 {
		conditions = append(conditions, "student_id = ?")
		args = append(args, filter.StudentID)
	}
	if filter.CourseID != 0 {
		conditions = append(conditions, "course_id = ?")
		args = append(args, filter.CourseID)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	enrollments := []models.Enrollment{}
	if err := r.db.SelectContext(ctx, &enrollments, query, args...); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// FindByID returns an enrollment by its ID.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	const query = `SELECT id, student_id, course_id, enrollment_date, grade FROM enrollments WHERE id = ?`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// Create persists a new enrollment and fills in the generated ID. A duplicate
// (student, course) pair surfaces as *database.UniqueViolation, which is also
// the arbiter for two concurrent inserts racing past the service-level check.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	const query = `INSERT INTO enrollments (student_id, course_id, enrollment_date, grade) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, enrollment.StudentID, enrollment.CourseID, enrollment.EnrollmentDate, enrollment.Grade)
	if err != nil {
		return database.TranslateUnique(err, database.ConstraintEnrollmentStudentCourse)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	enrollment.ID = id
	return nil
}

// UpdateGrade sets or clears the grade for an enrollment.
func (r *EnrollmentRepository) UpdateGrade(ctx context.Context, id int64, grade *string) error {
	const query = `UPDATE enrollments SET grade = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, grade, id); err != nil {
		return fmt.Errorf("update enrollment grade: %w", err)
	}
	return nil
}

// Delete removes an enrollment row.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM enrollments WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return nil
}

// DeleteByStudentAndCourse removes the enrollment for a specific pair.
func (r *EnrollmentRepository) DeleteByStudentAndCourse(ctx context.Context, studentID, courseID int64) error {
	const query = `DELETE FROM enrollments WHERE student_id = ? AND course_id = ?`
	if _, err := r.db.ExecContext(ctx, query, studentID, courseID); err != nil {
		return fmt.Errorf("delete enrollment by pair: %w", err)
	}
	return nil
}

// Count returns the number of enrollment rows.
func (r *EnrollmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM enrollments"); err != nil {
		return 0, fmt.Errorf("count enrollments: %w", err)
	}
	return count, nil
}
