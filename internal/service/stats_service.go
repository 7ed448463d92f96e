package service

import (
	"context"

	"github.com/noah-isme/college-enrollments-api/internal/models"
	appErrors "github.com/noah-isme/college-enrollments-api/pkg/errors"
)

type rowCounter interface {
	Count(ctx context.Context) (int64, error)
}

// StatsService reports row counts per table.
type StatsService struct {
	students    rowCounter
	courses     rowCounter
	enrollments rowCounter
}

// NewStatsService constructs StatsService.
func NewStatsService(students, courses, enrollments rowCounter) *StatsService {
	return &StatsService{students: students, courses: courses, enrollments: enrollments}
}

// Stats returns the current counts.
func (s *StatsService) Stats(ctx context.Context) (*models.Stats, error) {
	students, err := s.students.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count students")
	}
	courses, err := s.courses.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count courses")
	}
	enrollments, err := s.enrollments.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count enrollments")
	}
	return &models.Stats{Students: students, Courses: courses, Enrollments: enrollments}, nil
}
