package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/college-enrollments-api/internal/models"
	"github.com/noah-isme/college-enrollments-api/pkg/database"
)

// CourseRepository manages persistence for course records.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns all courses ordered by code.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT id, name, code, credits FROM courses ORDER BY code, id`
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// FindByID fetches a course by ID.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	const query = `SELECT id, name, code, credits FROM courses WHERE id = ?`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// FindByCode fetches a course by its (already uppercased) code.
func (r *CourseRepository) FindByCode(ctx context.Context, code string) (*models.Course, error) {
	const query = `SELECT id, name, code, credits FROM courses WHERE code = ?`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, code); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a new course and fills in the generated ID. A duplicate code
// surfaces as *database.UniqueViolation.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	const query = `INSERT INTO courses (name, code, credits) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, course.Name, course.Code, course.Credits)
	if err != nil {
		return database.TranslateUnique(err, database.ConstraintCourseCode)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	course.ID = id
	return nil
}

// Update modifies an existing course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	const query = `UPDATE courses SET name = ?, code = ?, credits = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, course.Name, course.Code, course.Credits, course.ID); err != nil {
		return database.TranslateUnique(err, database.ConstraintCourseCode)
	}
	return nil
}

// Delete removes a course row. Enrollments referencing it are left behind.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM courses WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}

// Count returns the number of course rows.
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM courses"); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return count, nil
}
