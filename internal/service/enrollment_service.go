package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-enrollments-api/internal/models"
	"github.com/noah-isme/college-enrollments-api/internal/repository"
	"github.com/noah-isme/college-enrollments-api/pkg/database"
	appErrors "github.com/noah-isme/college-enrollments-api/pkg/errors"
)

type enrollmentRepository interface {
	List(ctx context.Context, filter repository.EnrollmentFilter) ([]models.Enrollment, error)
	FindByID(ctx context.Context, id int64) (*models.Enrollment, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	UpdateGrade(ctx context.Context, id int64, grade *string) error
	Delete(ctx context.Context, id int64) error
	DeleteByStudentAndCourse(ctx context.Context, studentID, courseID int64) error
	Count(ctx context.Context) (int64, error)
}

type studentReader interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
}

type courseReader interface {
	List(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
}

// EnrollRequest describes the enrollment creation payload.
type EnrollRequest struct {
	StudentID      int64   `json:"studentId" validate:"required"`
	CourseID       int64   `json:"courseId" validate:"required"`
	EnrollmentDate string  `json:"enrollmentDate" validate:"required,datetime=2006-01-02"`
	Grade          *string `json:"grade"`
}

// GradeRequest describes the grade-only update payload. A nil or blank grade
// clears the stored value.
type GradeRequest struct {
	Grade *string `json:"grade"`
}

// normalizeGrade trims the grade; blank becomes nil, clearing the stored
// value. The grade text itself is stored verbatim.
func normalizeGrade(grade *string) *string {
	if grade == nil {
		return nil
	}
	g := strings.TrimSpace(*grade)
	if g == "" {
		return nil
	}
	return &g
}

// EnrollmentService is the consistency layer for enrollments: existence
// pre-checks on both references, pair uniqueness, and the application-level
// join that produces EnrollmentDetail views.
type EnrollmentService struct {
	repo      enrollmentRepository
	students  studentReader
	courses   courseReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, students studentReader, courses courseReader, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, students: students, courses: courses, validator: validate, logger: logger}
}

func detailOf(enrollment *models.Enrollment, student *models.Student, course *models.Course) *models.EnrollmentDetail {
	return &models.EnrollmentDetail{
		ID:             enrollment.ID,
		StudentID:      student.ID,
		StudentName:    student.Name,
		StudentEmail:   student.Email,
		CourseID:       course.ID,
		CourseName:     course.Name,
		CourseCode:     course.Code,
		Credits:        course.Credits,
		EnrollmentDate: enrollment.EnrollmentDate,
		Grade:          enrollment.Grade,
	}
}

// Enroll registers a student in a course. Both references must exist; a
// duplicate (student, course) pair is a conflict. The returned detail is
// assembled from the rows already fetched for the existence checks, so no
// second lookup is needed.
func (s *EnrollmentService) Enroll(ctx context.Context, req EnrollRequest) (*models.EnrollmentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "studentId, courseId and enrollmentDate (YYYY-MM-DD) are required")
	}

	student, err := s.students.FindByID(ctx, req.StudentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	enrollment := &models.Enrollment{
		StudentID:      req.StudentID,
		CourseID:       req.CourseID,
		EnrollmentDate: req.EnrollmentDate,
		Grade:          normalizeGrade(req.Grade),
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		if database.IsUniqueViolation(err, database.ConstraintEnrollmentStudentCourse) {
			msg := fmt.Sprintf("%s is already enrolled in %s", student.Name, course.Code)
			return nil, appErrors.Clone(appErrors.ErrConflict, msg)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment")
	}

	return detailOf(enrollment, student, course), nil
}

// Get returns the joined detail for one enrollment. A dangling reference is
// reported as not found, mirroring the list behavior.
func (s *EnrollmentService) Get(ctx context.Context, id int64) (*models.EnrollmentDetail, error) {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Enrollment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	return s.join(ctx, enrollment)
}

// UpdateGrade updates only the grade, then re-joins with the current student
// and course rows for the response.
func (s *EnrollmentService) UpdateGrade(ctx context.Context, id int64, req GradeRequest) (*models.EnrollmentDetail, error) {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Enrollment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}

	grade := normalizeGrade(req.Grade)
	if err := s.repo.UpdateGrade(ctx, id, grade); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update grade")
	}
	enrollment.Grade = grade

	return s.join(ctx, enrollment)
}

// Delete removes an enrollment.
func (s *EnrollmentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "Enrollment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete enrollment")
	}
	return nil
}

// ListDetails performs the application-level join: all enrollments, all
// students and all courses are loaded, id-keyed maps are built, and each
// enrollment is resolved through both maps. Enrollments whose student or
// course no longer exists are silently dropped. The result is sorted
// ascending by student name, then course code, case-sensitive.
func (s *EnrollmentService) ListDetails(ctx context.Context, filter repository.EnrollmentFilter) ([]models.EnrollmentDetail, error) {
	enrollments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}

	studentByID := make(map[int64]models.Student, len(students))
	for _, student := range students {
		studentByID[student.ID] = student
	}
	courseByID := make(map[int64]models.Course, len(courses))
	for _, course := range courses {
		courseByID[course.ID] = course
	}

	details := make([]models.EnrollmentDetail, 0, len(enrollments))
	for i := range enrollments {
		enrollment := enrollments[i]
		student, ok := studentByID[enrollment.StudentID]
		if !ok {
			continue
		}
		course, ok := courseByID[enrollment.CourseID]
		if !ok {
			continue
		}
		details = append(details, *detailOf(&enrollment, &student, &course))
	}

	sort.Slice(details, func(i, j int) bool {
		if details[i].StudentName != details[j].StudentName {
			return details[i].StudentName < details[j].StudentName
		}
		return details[i].CourseCode < details[j].CourseCode
	})

	return details, nil
}

// Unenroll removes the enrollment for a specific student and course pair.
func (s *EnrollmentService) Unenroll(ctx context.Context, studentID, courseID int64) error {
	if err := s.repo.DeleteByStudentAndCourse(ctx, studentID, courseID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete enrollment")
	}
	return nil
}

func (s *EnrollmentService) join(ctx context.Context, enrollment *models.Enrollment) (*models.EnrollmentDetail, error) {
	student, err := s.students.FindByID(ctx, enrollment.StudentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Student or course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	course, err := s.courses.FindByID(ctx, enrollment.CourseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Student or course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return detailOf(enrollment, student, course), nil
}
