package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-enrollments-api/internal/models"
)

func TestCourseRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "code", "credits"}).
		AddRow(1, "Intro to CS", "CS101", 3).
		AddRow(2, "Algorithms", "CS201", 4)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, code, credits FROM courses ORDER BY code, id")).
		WillReturnRows(rows)

	courses, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	require.Equal(t, "CS101", courses[0].Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryFindByCode(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "code", "credits"}).
		AddRow(1, "Intro to CS", "CS101", 3)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, code, credits FROM courses WHERE code = ?")).
		WithArgs("CS101").
		WillReturnRows(rows)

	course, err := repo.FindByCode(context.Background(), "CS101")
	require.NoError(t, err)
	require.Equal(t, int64(1), course.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryFindByCodeNoRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, code, credits FROM courses WHERE code = ?")).
		WithArgs("NOPE").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByCode(context.Background(), "NOPE")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO courses (name, code, credits) VALUES (?, ?, ?)")).
		WithArgs("Intro to CS", "CS101", int64(3)).
		WillReturnResult(sqlmock.NewResult(5, 1))

	course := &models.Course{Name: "Intro to CS", Code: "CS101", Credits: 3}
	require.NoError(t, repo.Create(context.Background(), course))
	require.Equal(t, int64(5), course.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses WHERE id = ?")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 5))
	require.NoError(t, mock.ExpectationsWereMet())
}
