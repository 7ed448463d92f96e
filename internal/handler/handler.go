package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-enrollments-api/internal/models"
	"github.com/noah-isme/college-enrollments-api/internal/repository"
	"github.com/noah-isme/college-enrollments-api/internal/service"
	appErrors "github.com/noah-isme/college-enrollments-api/pkg/errors"
	"github.com/noah-isme/college-enrollments-api/pkg/response"
)

// The handler layer depends on these interfaces rather than the concrete
// services so that the in-process services and the remote HTTP client in
// pkg/client are interchangeable backends, selected at composition time.

// StudentDirectory is the student backend contract.
type StudentDirectory interface {
	List(ctx context.Context) ([]models.Student, error)
	Get(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, req service.StudentRequest) (*models.Student, error)
	Update(ctx context.Context, id int64, req service.StudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
}

// CourseCatalog is the course backend contract.
type CourseCatalog interface {
	List(ctx context.Context) ([]models.Course, error)
	Get(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, req service.CourseRequest) (*models.Course, error)
	Update(ctx context.Context, id int64, req service.CourseRequest) (*models.Course, error)
	Delete(ctx context.Context, id int64) error
}

// EnrollmentRegistry is the enrollment backend contract.
type EnrollmentRegistry interface {
	ListDetails(ctx context.Context, filter repository.EnrollmentFilter) ([]models.EnrollmentDetail, error)
	Get(ctx context.Context, id int64) (*models.EnrollmentDetail, error)
	Enroll(ctx context.Context, req service.EnrollRequest) (*models.EnrollmentDetail, error)
	UpdateGrade(ctx context.Context, id int64, req service.GradeRequest) (*models.EnrollmentDetail, error)
	Delete(ctx context.Context, id int64) error
	Unenroll(ctx context.Context, studentID, courseID int64) error
}

// StatsProvider reports table counts.
type StatsProvider interface {
	Stats(ctx context.Context) (*models.Stats, error)
}

// pathID parses the {id} path parameter, writing a 400 with the given message
// on failure.
func pathID(c *gin.Context, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, message))
		return 0, false
	}
	return id, true
}
