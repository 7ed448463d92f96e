package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-enrollments-api/internal/models"
	"github.com/noah-isme/college-enrollments-api/pkg/database"
	appErrors "github.com/noah-isme/college-enrollments-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	FindByCode(ctx context.Context, code string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// CourseRequest holds the payload for creating or updating a course.
type CourseRequest struct {
	Name    string `json:"name" validate:"required"`
	Code    string `json:"code" validate:"required"`
	Credits int64  `json:"credits" validate:"required"`
}

func (r *CourseRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
}

// CourseService enforces course consistency rules: trimmed name, trimmed and
// uppercased code, unique code, credits within the configured bound.
type CourseService struct {
	repo       courseRepository
	maxCredits int64
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewCourseService constructs the course service. maxCredits caps the
// accepted credits value; the minimum is always 1.
func NewCourseService(repo courseRepository, maxCredits int64, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if maxCredits < 1 {
		maxCredits = 6
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, maxCredits: maxCredits, validator: validate, logger: logger}
}

func (s *CourseService) validate(req CourseRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "name, code and credits are required")
	}
	if req.Credits < 1 || req.Credits > s.maxCredits {
		msg := fmt.Sprintf("credits must be between 1 and %d", s.maxCredits)
		return appErrors.Clone(appErrors.ErrValidation, msg)
	}
	return nil
}

// List returns all courses.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// Get returns a single course.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// Create registers a new course with a unique uppercased code.
func (s *CourseService) Create(ctx context.Context, req CourseRequest) (*models.Course, error) {
	req.normalize()
	if err := s.validate(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByCode(ctx, req.Code); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "Course code already exists")
	} else if err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course code")
	}

	course := &models.Course{Name: req.Name, Code: req.Code, Credits: req.Credits}
	if err := s.repo.Create(ctx, course); err != nil {
		if database.IsUniqueViolation(err, database.ConstraintCourseCode) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "Course code already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return course, nil
}

// Update modifies a course, rejecting a code already owned by a different
// course.
func (s *CourseService) Update(ctx context.Context, id int64, req CourseRequest) (*models.Course, error) {
	req.normalize()
	if err := s.validate(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	if owner, err := s.repo.FindByCode(ctx, req.Code); err == nil {
		if owner.ID != id {
			return nil, appErrors.Clone(appErrors.ErrConflict, "Course code already exists")
		}
	} else if err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course code")
	}

	course := &models.Course{ID: id, Name: req.Name, Code: req.Code, Credits: req.Credits}
	if err := s.repo.Update(ctx, course); err != nil {
		if database.IsUniqueViolation(err, database.ConstraintCourseCode) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "Course code already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	return course, nil
}

// Delete removes a course. Enrollments referencing it are left dangling.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "Course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	return nil
}
