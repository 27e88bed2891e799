package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talha/internhub/internal/app/models"
	"github.com/talha/internhub/internal/app/models/dto"
	"github.com/talha/internhub/internal/pkg/apperrors"
)

type fakeEvaluations struct {
	evals  map[int64]*models.Evaluation
	nextID int64
}

func (f *fakeEvaluations) Create(_ context.Context, eval *models.Evaluation) error {
	for _, e := range f.evals {
		if e.AssignmentID == eval.AssignmentID && e.EvaluatorID == eval.EvaluatorID {
			return apperrors.ErrEvaluationAlreadyExists
		}
	}
	f.nextID++
	eval.ID = f.nextID
	f.evals[eval.ID] = eval
	return nil
}

func (f *fakeEvaluations) Update(_ context.Context, eval *models.Evaluation) error {
	if _, ok := f.evals[eval.ID]; !ok {
		return apperrors.ErrEvaluationNotFound
	}
	f.evals[eval.ID] = eval
	return nil
}

func (f *fakeEvaluations) GetByID(_ context.Context, id int64) (*models.Evaluation, error) {
	if e, ok := f.evals[id]; ok {
		return e, nil
	}
	return nil, apperrors.ErrEvaluationNotFound
}

func (f *fakeEvaluations) ListByAssignment(_ context.Context, assignmentID int64) ([]*models.Evaluation, error) {
	var out []*models.Evaluation
	for _, e := range f.evals {
		if e.AssignmentID == assignmentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEvaluations) AverageScore(_ context.Context, assignmentID int64) (*float64, error) {
	var sum, n int
	for _, e := range f.evals {
		if e.AssignmentID == assignmentID {
			sum += e.Score
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := float64(sum) / float64(n)
	return &avg, nil
}

func (f *fakeEvaluations) Delete(_ context.Context, id int64) error {
	if _, ok := f.evals[id]; !ok {
		return apperrors.ErrEvaluationNotFound
	}
	delete(f.evals, id)
	return nil
}

type fakeAssignmentReader struct {
	assignments map[int64]*models.InternshipAssignment
}

func (f *fakeAssignmentReader) GetByID(_ context.Context, id int64) (*models.InternshipAssignment, error) {
	if a, ok := f.assignments[id]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAssignmentNotFound
}

func newEvaluationFixture() (*EvaluationService, *fakeEvaluations, *fakeAssignmentReader) {
	users := &fakeUsers{users: map[int64]*models.User{
		1: {ID: 1, Role: models.RoleStudent},
		2: {ID: 2, Role: models.RoleTeacher},
		4: {ID: 4, Role: models.RoleSupervisor},
	}}
	assignments := &fakeAssignmentReader{assignments: map[int64]*models.InternshipAssignment{
		30: {ID: 30, StudentID: 1, Status: models.StatusActive},
		31: {ID: 31, StudentID: 1, Status: models.StatusPending},
	}}
	evals := &fakeEvaluations{evals: map[int64]*models.Evaluation{}}

	svc := &EvaluationService{evalRepo: evals, assignmentRepo: assignments, userRepo: users}
	return svc, evals, assignments
}

func TestEvaluationCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("teacher scores an active assignment", func(t *testing.T) {
		svc, _, _ := newEvaluationFixture()

		eval, err := svc.Create(ctx, 30, 2, &dto.CreateEvaluationRequest{Score: 85})
		require.NoError(t, err)
		assert.Equal(t, 85, eval.Score)
		assert.Equal(t, int64(2), eval.EvaluatorID)
	})

	t.Run("supervisor may also evaluate", func(t *testing.T) {
		svc, _, _ := newEvaluationFixture()

		_, err := svc.Create(ctx, 30, 4, &dto.CreateEvaluationRequest{Score: 70})
		require.NoError(t, err)
	})

	t.Run("students may not evaluate", func(t *testing.T) {
		svc, _, _ := newEvaluationFixture()

		_, err := svc.Create(ctx, 30, 1, &dto.CreateEvaluationRequest{Score: 100})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
	})

	t.Run("pending assignments cannot be evaluated", func(t *testing.T) {
		svc, _, _ := newEvaluationFixture()

		_, err := svc.Create(ctx, 31, 2, &dto.CreateEvaluationRequest{Score: 50})
		assert.ErrorIs(t, err, apperrors.ErrAssignmentNotActive)
	})

	t.Run("one evaluation per evaluator per assignment", func(t *testing.T) {
		svc, _, _ := newEvaluationFixture()

		_, err := svc.Create(ctx, 30, 2, &dto.CreateEvaluationRequest{Score: 85})
		require.NoError(t, err)

		_, err = svc.Create(ctx, 30, 2, &dto.CreateEvaluationRequest{Score: 90})
		assert.ErrorIs(t, err, apperrors.ErrEvaluationAlreadyExists)
	})
}

func TestEvaluationOwnership(t *testing.T) {
	ctx := context.Background()
	newScore := 40

	t.Run("only the author may update", func(t *testing.T) {
		svc, _, _ := newEvaluationFixture()
		eval, err := svc.Create(ctx, 30, 2, &dto.CreateEvaluationRequest{Score: 85})
		require.NoError(t, err)

		_, err = svc.Update(ctx, eval.ID, 4, &dto.UpdateEvaluationRequest{Score: &newScore})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

		updated, err := svc.Update(ctx, eval.ID, 2, &dto.UpdateEvaluationRequest{Score: &newScore})
		require.NoError(t, err)
		assert.Equal(t, 40, updated.Score)
	})

	t.Run("only the author may delete", func(t *testing.T) {
		svc, _, _ := newEvaluationFixture()
		eval, err := svc.Create(ctx, 30, 2, &dto.CreateEvaluationRequest{Score: 85})
		require.NoError(t, err)

		assert.ErrorIs(t, svc.Delete(ctx, eval.ID, 4), apperrors.ErrPermissionDenied)
		assert.NoError(t, svc.Delete(ctx, eval.ID, 2))
	})
}

func TestEvaluationAverageScore(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newEvaluationFixture()

	avg, err := svc.AverageScore(ctx, 30)
	require.NoError(t, err)
	assert.Nil(t, avg)

	_, err = svc.Create(ctx, 30, 2, &dto.CreateEvaluationRequest{Score: 80})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 30, 4, &dto.CreateEvaluationRequest{Score: 90})
	require.NoError(t, err)

	avg, err = svc.AverageScore(ctx, 30)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.InDelta(t, 85.0, *avg, 0.001)
}
