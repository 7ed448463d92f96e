package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-enrollments-api/internal/service"
	appErrors "github.com/noah-isme/college-enrollments-api/pkg/errors"
	"github.com/noah-isme/college-enrollments-api/pkg/response"
)

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students StudentDirectory
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students StudentDirectory) *StudentHandler {
	return &StudentHandler{students: students}
}

// List returns all students.
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Get returns one student by ID.
func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "Invalid student ID")
	if !ok {
		return
	}
	student, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Create registers a new student.
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update modifies an existing student.
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "Invalid student ID")
	if !ok {
		return
	}
	var req service.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Delete removes a student.
func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "Invalid student ID")
	if !ok {
		return
	}
	if err := h.students.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
