package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-enrollments-api/internal/models"
	"github.com/noah-isme/college-enrollments-api/internal/service"
	appErrors "github.com/noah-isme/college-enrollments-api/pkg/errors"
	"github.com/noah-isme/college-enrollments-api/pkg/response"
)

type courseBackendMock struct {
	listResp   []models.Course
	getResp    *models.Course
	getErr     error
	createResp *models.Course
	createErr  error
	updateResp *models.Course
	updateErr  error
	deleteErr  error
}

func (m *courseBackendMock) List(ctx context.Context) ([]models.Course, error) {
	return m.listResp, nil
}

func (m *courseBackendMock) Get(ctx context.Context, id int64) (*models.Course, error) {
	return m.getResp, m.getErr
}

func (m *courseBackendMock) Create(ctx context.Context, req service.CourseRequest) (*models.Course, error) {
	return m.createResp, m.createErr
}

func (m *courseBackendMock) Update(ctx context.Context, id int64, req service.CourseRequest) (*models.Course, error) {
	return m.updateResp, m.updateErr
}

func (m *courseBackendMock) Delete(ctx context.Context, id int64) error {
	return m.deleteErr
}

type statsBackendMock struct {
	resp *models.Stats
	err  error
}

func (m *statsBackendMock) Stats(ctx context.Context) (*models.Stats, error) {
	return m.resp, m.err
}

func newTestRouter(courses *courseBackendMock, stats *statsBackendMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(r, "/api", Backends{
		Students:    NewStudentHandler(&studentBackendMock{}),
		Courses:     NewCourseHandler(courses),
		Enrollments: NewEnrollmentHandler(&enrollmentBackendMock{}),
		Stats:       NewStatsHandler(stats),
	})
	return r
}

func TestRouterRootAndHealth(t *testing.T) {
	r := newTestRouter(&courseBackendMock{}, &statsBackendMock{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "College Enrollments API is running!", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRouterCourseLifecycleWiring(t *testing.T) {
	course := &models.Course{ID: 2, Name: "Algo", Code: "CS201", Credits: 4}
	mock := &courseBackendMock{
		listResp:   []models.Course{*course},
		getResp:    course,
		createResp: course,
	}
	r := newTestRouter(mock, &statsBackendMock{})

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"name":"Algo","code":"cs201","credits":4}`)
	req := httptest.NewRequest(http.MethodPost, "/api/courses", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/courses/2", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Course
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "CS201", got.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/courses/2", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouterCourseNotFoundBody(t *testing.T) {
	mock := &courseBackendMock{getErr: appErrors.Clone(appErrors.ErrNotFound, "Course not found")}
	r := newTestRouter(mock, &statsBackendMock{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/courses/42", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Course not found", body.Message)
}

func TestRouterStats(t *testing.T) {
	stats := &statsBackendMock{resp: &models.Stats{Students: 2, Courses: 3, Enrollments: 4}}
	r := newTestRouter(&courseBackendMock{}, stats)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(4), got.Enrollments)
}

func TestRouterNoMetricsWhenDisabled(t *testing.T) {
	r := newTestRouter(&courseBackendMock{}, &statsBackendMock{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
