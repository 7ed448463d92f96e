// Package client is a typed HTTP client for the enrollments API. Its
// sub-clients satisfy the same backend contracts as the in-process services,
// so callers can swap a remote API in behind the handler layer or use it
// directly from tooling.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/college-enrollments-api/internal/models"
	"github.com/noah-isme/college-enrollments-api/internal/repository"
	"github.com/noah-isme/college-enrollments-api/internal/service"
	appErrors "github.com/noah-isme/college-enrollments-api/pkg/errors"
)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAPIPrefix overrides the default /api prefix.
func WithAPIPrefix(prefix string) Option {
	return func(c *Client) { c.prefix = prefix }
}

// Client talks to a remote enrollments API.
type Client struct {
	baseURL    string
	prefix     string
	httpClient *http.Client
}

// New constructs a Client for the given base URL, e.g. "http://localhost:8081".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		prefix:     "/api",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Students returns the student sub-client.
func (c *Client) Students() *Students { return &Students{c: c} }

// Courses returns the course sub-client.
func (c *Client) Courses() *Courses { return &Courses{c: c} }

// Enrollments returns the enrollment sub-client.
func (c *Client) Enrollments() *Enrollments { return &Enrollments{c: c} }

// Stats returns current record counts.
func (c *Client) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	if err := c.do(ctx, http.MethodGet, "/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// do performs one API call. A non-2xx response is decoded into the wire error
// body and surfaced as a typed error carrying the remote status and message.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode request")
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+c.prefix+path, body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return remoteError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode response")
	}
	return nil
}

func remoteError(resp *http.Response) error {
	var wire struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err := json.Unmarshal(raw, &wire); err != nil || wire.Message == "" {
		wire.Message = fmt.Sprintf("unexpected status %d", resp.StatusCode)
	}

	var base *appErrors.Error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		base = appErrors.ErrValidation
	case http.StatusNotFound:
		base = appErrors.ErrNotFound
	case http.StatusConflict:
		base = appErrors.ErrConflict
	default:
		base = appErrors.ErrInternal
	}
	clone := appErrors.Clone(base, wire.Message)
	clone.Status = resp.StatusCode
	return clone
}

// Students operates on /students.
type Students struct {
	c *Client
}

func (s *Students) List(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := s.c.do(ctx, http.MethodGet, "/students", nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (s *Students) Get(ctx context.Context, id int64) (*models.Student, error) {
	var student models.Student
	if err := s.c.do(ctx, http.MethodGet, fmt.Sprintf("/students/%d", id), nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *Students) Create(ctx context.Context, req service.StudentRequest) (*models.Student, error) {
	var student models.Student
	if err := s.c.do(ctx, http.MethodPost, "/students", req, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *Students) Update(ctx context.Context, id int64, req service.StudentRequest) (*models.Student, error) {
	var student models.Student
	if err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("/students/%d", id), req, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *Students) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/students/%d", id), nil, nil)
}

// Courses operates on /courses.
type Courses struct {
	c *Client
}

func (s *Courses) List(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := s.c.do(ctx, http.MethodGet, "/courses", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (s *Courses) Get(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	if err := s.c.do(ctx, http.MethodGet, fmt.Sprintf("/courses/%d", id), nil, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *Courses) Create(ctx context.Context, req service.CourseRequest) (*models.Course, error) {
	var course models.Course
	if err := s.c.do(ctx, http.MethodPost, "/courses", req, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *Courses) Update(ctx context.Context, id int64, req service.CourseRequest) (*models.Course, error) {
	var course models.Course
	if err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("/courses/%d", id), req, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *Courses) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/courses/%d", id), nil, nil)
}

// Enrollments operates on /enrollments.
type Enrollments struct {
	c *Client
}

func (s *Enrollments) ListDetails(ctx context.Context, filter repository.EnrollmentFilter) ([]models.EnrollmentDetail, error) {
	query := url.Values{}
	if filter.StudentID != 0 {
		query.Set("studentId", strconv.FormatInt(filter.StudentID, 10))
	}
	if filter.CourseID != 0 {
		query.Set("courseId", strconv.FormatInt(filter.CourseID, 10))
	}
	path := "/enrollments"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var details []models.EnrollmentDetail
	if err := s.c.do(ctx, http.MethodGet, path, nil, &details); err != nil {
		return nil, err
	}
	return details, nil
}

func (s *Enrollments) Get(ctx context.Context, id int64) (*models.EnrollmentDetail, error) {
	var detail models.EnrollmentDetail
	if err := s.c.do(ctx, http.MethodGet, fmt.Sprintf("/enrollments/%d", id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *Enrollments) Enroll(ctx context.Context, req service.EnrollRequest) (*models.EnrollmentDetail, error) {
	var detail models.EnrollmentDetail
	if err := s.c.do(ctx, http.MethodPost, "/enrollments", req, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *Enrollments) UpdateGrade(ctx context.Context, id int64, req service.GradeRequest) (*models.EnrollmentDetail, error) {
	var detail models.EnrollmentDetail
	if err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("/enrollments/%d", id), req, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *Enrollments) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/enrollments/%d", id), nil, nil)
}

func (s *Enrollments) Unenroll(ctx context.Context, studentID, courseID int64) error {
	query := url.Values{}
	query.Set("studentId", strconv.FormatInt(studentID, 10))
	query.Set("courseId", strconv.FormatInt(courseID, 10))
	return s.c.do(ctx, http.MethodDelete, "/enrollments?"+query.Encode(), nil, nil)
}
