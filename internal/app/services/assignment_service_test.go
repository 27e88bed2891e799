package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talha/internhub/internal/app/models"
	"github.com/talha/internhub/internal/app/repositories"
	"github.com/talha/internhub/internal/pkg/apperrors"
)

type fakeAssignmentStore struct {
	assignments map[int64]*models.InternshipAssignment
}

func (f *fakeAssignmentStore) GetByID(_ context.Context, id int64) (*models.InternshipAssignment, error) {
	if a, ok := f.assignments[id]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAssignmentNotFound
}

func (f *fakeAssignmentStore) List(_ context.Context, filter repositories.AssignmentFilter, offset uint64, limit int) ([]*models.InternshipAssignment, int64, error) {
	var out []*models.InternshipAssignment
	for _, a := range f.assignments {
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if filter.StudentID != nil && a.StudentID != *filter.StudentID {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAssignmentStore) UpdateStatus(_ context.Context, id int64, status models.AssignmentStatus) error {
	a, ok := f.assignments[id]
	if !ok {
		return apperrors.ErrAssignmentNotFound
	}
	if !a.Status.CanTransitionTo(status) {
		return apperrors.ErrInvalidStatusChange
	}
	a.Status = status
	return nil
}

func (f *fakeAssignmentStore) SetDates(_ context.Context, id int64, start, end *time.Time) error {
	a, ok := f.assignments[id]
	if !ok {
		return apperrors.ErrAssignmentNotFound
	}
	a.StartDate = start
	a.EndDate = end
	return nil
}

func newAssignmentFixture() (*AssignmentService, *fakeAssignmentStore) {
	teacherID := int64(2)
	store := &fakeAssignmentStore{assignments: map[int64]*models.InternshipAssignment{
		30: {ID: 30, StudentID: 1, TeacherID: &teacherID, Status: models.StatusPending},
		31: {ID: 31, StudentID: 1, Status: models.StatusActive},
	}}
	users := &fakeUsers{users: map[int64]*models.User{
		1: {ID: 1, Role: models.RoleStudent, FirstName: "Selin"},
		2: {ID: 2, Role: models.RoleTeacher, FirstName: "Murat"},
	}}
	return &AssignmentService{assignmentRepo: store, userRepo: users}, store
}

func TestAssignmentGetByIDEnrichesRelations(t *testing.T) {
	svc, _ := newAssignmentFixture()

	a, err := svc.GetByID(context.Background(), 30)
	require.NoError(t, err)
	require.NotNil(t, a.Student)
	assert.Equal(t, "Selin", a.Student.FirstName)
	require.NotNil(t, a.Teacher)
	assert.Equal(t, "Murat", a.Teacher.FirstName)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
}

func TestAssignmentUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("legal transition is applied", func(t *testing.T) {
		svc, store := newAssignmentFixture()

		require.NoError(t, svc.UpdateStatus(ctx, 30, models.StatusActive))
		assert.Equal(t, models.StatusActive, store.assignments[30].Status)
	})

	t.Run("unknown status is rejected before hitting storage", func(t *testing.T) {
		svc, store := newAssignmentFixture()

		err := svc.UpdateStatus(ctx, 30, models.AssignmentStatus("DONE"))
		assert.ErrorIs(t, err, apperrors.ErrInvalidStatusChange)
		assert.Equal(t, models.StatusPending, store.assignments[30].Status)
	})

	t.Run("illegal transition is rejected", func(t *testing.T) {
		svc, _ := newAssignmentFixture()

		err := svc.UpdateStatus(ctx, 30, models.StatusCompleted)
		assert.ErrorIs(t, err, apperrors.ErrInvalidStatusChange)
	})
}

func TestAssignmentSetDates(t *testing.T) {
	ctx := context.Background()
	svc, store := newAssignmentFixture()

	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, 0)

	require.NoError(t, svc.SetDates(ctx, 31, &start, &end))
	assert.Equal(t, &start, store.assignments[31].StartDate)

	err := svc.SetDates(ctx, 31, &end, &start)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
