package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-enrollments-api/internal/repository"
	"github.com/noah-isme/college-enrollments-api/internal/service"
	appErrors "github.com/noah-isme/college-enrollments-api/pkg/errors"
	"github.com/noah-isme/college-enrollments-api/pkg/response"
)

// EnrollmentHandler exposes enrollment endpoints. All reads return the joined
// detail view, never the raw row.
type EnrollmentHandler struct {
	enrollments EnrollmentRegistry
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments EnrollmentRegistry) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// List returns enrollment details, optionally filtered by the studentId and
// courseId query parameters.
func (h *EnrollmentHandler) List(c *gin.Context) {
	var filter repository.EnrollmentFilter
	if raw := c.Query("studentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Invalid student ID"))
			return
		}
		filter.StudentID = id
	}
	if raw := c.Query("courseId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Invalid course ID"))
			return
		}
		filter.CourseID = id
	}

	details, err := h.enrollments.ListDetails(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details)
}

// Get returns one enrollment detail by ID.
func (h *EnrollmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "Invalid enrollment ID")
	if !ok {
		return
	}
	detail, err := h.enrollments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// Create enrolls a student in a course.
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var req service.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	detail, err := h.enrollments.Enroll(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, detail)
}

// UpdateGrade replaces the grade on an enrollment.
func (h *EnrollmentHandler) UpdateGrade(c *gin.Context) {
	id, ok := pathID(c, "Invalid enrollment ID")
	if !ok {
		return
	}
	var req service.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	detail, err := h.enrollments.UpdateGrade(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// Unenroll removes the enrollment for a student and course pair. Both query
// parameters are required; deleting an absent pair is a no-op.
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Query("studentId"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Invalid student ID"))
		return
	}
	courseID, err := strconv.ParseInt(c.Query("courseId"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Invalid course ID"))
		return
	}
	if err := h.enrollments.Unenroll(c.Request.Context(), studentID, courseID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete removes an enrollment.
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "Invalid enrollment ID")
	if !ok {
		return
	}
	if err := h.enrollments.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
