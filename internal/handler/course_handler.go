package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-enrollments-api/internal/service"
	appErrors "github.com/noah-isme/college-enrollments-api/pkg/errors"
	"github.com/noah-isme/college-enrollments-api/pkg/response"
)

// CourseHandler exposes course endpoints.
type CourseHandler struct {
	courses CourseCatalog
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(courses CourseCatalog) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List returns all courses.
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courses.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses)
}

// Get returns one course by ID.
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "Invalid course ID")
	if !ok {
		return
	}
	course, err := h.courses.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Create registers a new course.
func (h *CourseHandler) Create(c *gin.Context) {
	var req service.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.courses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Update modifies an existing course.
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "Invalid course ID")
	if !ok {
		return
	}
	var req service.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.courses.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Delete removes a course.
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "Invalid course ID")
	if !ok {
		return
	}
	if err := h.courses.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
