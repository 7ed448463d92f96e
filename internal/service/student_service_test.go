package service

import (
	"context"
	"database/sql"
	"net/http"
	"sort"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/college-enrollments-api/internal/models"
	appErrors "github.com/noah-isme/college-enrollments-api/pkg/errors"
)

type studentRepoStub struct {
	students  map[int64]models.Student
	nextID    int64
	createErr error
	updateErr error
}

func newStudentRepoStub(seed ...models.Student) *studentRepoStub {
	stub := &studentRepoStub{students: map[int64]models.Student{}}
	for _, s := range seed {
		stub.students[s.ID] = s
		if s.ID > stub.nextID {
			stub.nextID = s.ID
		}
	}
	return stub
}

func (m *studentRepoStub) List(ctx context.Context) ([]models.Student, error) {
	list := make([]models.Student, 0, len(m.students))
	for _, s := range m.students {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (m *studentRepoStub) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *studentRepoStub) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	for _, s := range m.students {
		if s.Email == email {
			s := s
			return &s, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *studentRepoStub) Create(ctx context.Context, student *models.Student) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	student.ID = m.nextID
	m.students[student.ID] = *student
	return nil
}

func (m *studentRepoStub) Update(ctx context.Context, student *models.Student) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.students[student.ID] = *student
	return nil
}

func (m *studentRepoStub) Delete(ctx context.Context, id int64) error {
	delete(m.students, id)
	return nil
}

func (m *studentRepoStub) Count(ctx context.Context) (int64, error) {
	return int64(len(m.students)), nil
}

func statusOf(err error) int {
	return appErrors.FromError(err).Status
}

func TestStudentServiceCreateAndGet(t *testing.T) {
	repo := newStudentRepoStub()
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	created, err := svc.Create(context.Background(), StudentRequest{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)
	assert.Equal(t, "ann@x.com", got.Email)
}

func TestStudentServiceCreateTrimsInputs(t *testing.T) {
	repo := newStudentRepoStub()
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	created, err := svc.Create(context.Background(), StudentRequest{Name: "  Ann  ", Email: " ann@x.com "})
	require.NoError(t, err)
	assert.Equal(t, "Ann", created.Name)
	assert.Equal(t, "ann@x.com", created.Email)
}

func TestStudentServiceCreateBlankAfterTrim(t *testing.T) {
	svc := NewStudentService(newStudentRepoStub(), validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), StudentRequest{Name: "   ", Email: "ann@x.com"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}

func TestStudentServiceCreateDuplicateEmail(t *testing.T) {
	repo := newStudentRepoStub(models.Student{ID: 1, Name: "Ann", Email: "ann@x.com"})
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), StudentRequest{Name: "Other", Email: "ann@x.com"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, statusOf(err))

	count, _ := repo.Count(context.Background())
	assert.Equal(t, int64(1), count, "no row added on conflict")
}

func TestStudentServiceUpdateEmailOwnedByOther(t *testing.T) {
	repo := newStudentRepoStub(
		models.Student{ID: 1, Name: "Ann", Email: "ann@x.com"},
		models.Student{ID: 2, Name: "Bob", Email: "bob@x.com"},
	)
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	_, err := svc.Update(context.Background(), 2, StudentRequest{Name: "Bob", Email: "ann@x.com"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, statusOf(err))
}

func TestStudentServiceUpdateKeepOwnEmail(t *testing.T) {
	repo := newStudentRepoStub(models.Student{ID: 1, Name: "Ann", Email: "ann@x.com"})
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	updated, err := svc.Update(context.Background(), 1, StudentRequest{Name: "Ann B", Email: "ann@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ann B", updated.Name)
}

func TestStudentServiceUpdateNotFound(t *testing.T) {
	svc := NewStudentService(newStudentRepoStub(), validator.New(), zap.NewNop())

	_, err := svc.Update(context.Background(), 42, StudentRequest{Name: "Ann", Email: "ann@x.com"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestStudentServiceDeleteTwice(t *testing.T) {
	repo := newStudentRepoStub(models.Student{ID: 1, Name: "Ann", Email: "ann@x.com"})
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), 1))

	err := svc.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}
