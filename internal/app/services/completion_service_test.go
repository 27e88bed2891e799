package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talha/internhub/internal/app/models"
	"github.com/talha/internhub/internal/app/models/dto"
	"github.com/talha/internhub/internal/pkg/apperrors"
)

type fakeCompletions struct {
	requests map[int64]*models.CompletionRequest
	nextID   int64
}

func (f *fakeCompletions) Create(_ context.Context, req *models.CompletionRequest) error {
	for _, r := range f.requests {
		if r.AssignmentID == req.AssignmentID && r.Decision == models.CompletionPending {
			return apperrors.ErrCompletionAlreadyRequested
		}
	}
	f.nextID++
	req.ID = f.nextID
	req.Decision = models.CompletionPending
	f.requests[req.ID] = req
	return nil
}

func (f *fakeCompletions) GetByID(_ context.Context, id int64) (*models.CompletionRequest, error) {
	if r, ok := f.requests[id]; ok {
		return r, nil
	}
	return nil, apperrors.ErrCompletionRequestNotFound
}

func (f *fakeCompletions) ListPending(_ context.Context, offset uint64, limit int) ([]*models.CompletionRequest, int64, error) {
	var out []*models.CompletionRequest
	for _, r := range f.requests {
		if r.Decision == models.CompletionPending {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCompletions) ListByAssignment(_ context.Context, assignmentID int64) ([]*models.CompletionRequest, error) {
	var out []*models.CompletionRequest
	for _, r := range f.requests {
		if r.AssignmentID == assignmentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCompletions) Decide(_ context.Context, id, deciderID int64, decision models.CompletionDecision, note *string) error {
	r, ok := f.requests[id]
	if !ok {
		return apperrors.ErrCompletionRequestNotFound
	}
	if r.Decision != models.CompletionPending {
		return apperrors.ErrCompletionAlreadyDecided
	}
	now := time.Now()
	r.Decision = decision
	r.DecidedBy = &deciderID
	r.DecidedAt = &now
	if note != nil {
		r.Note = note
	}
	return nil
}

func newCompletionFixture() (*CompletionService, *fakeCompletions) {
	users := &fakeUsers{users: map[int64]*models.User{
		1: {ID: 1, Role: models.RoleStudent},
		2: {ID: 2, Role: models.RoleTeacher},
		4: {ID: 4, Role: models.RoleSupervisor},
		5: {ID: 5, Role: models.RoleAdmin},
	}}
	completions := &fakeCompletions{requests: map[int64]*models.CompletionRequest{}}
	svc := &CompletionService{completionRepo: completions, userRepo: users}
	return svc, completions
}

func TestCompletionRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("student opens a pending request", func(t *testing.T) {
		svc, _ := newCompletionFixture()

		req, err := svc.Request(ctx, 30, 1, &dto.CreateCompletionRequestRequest{})
		require.NoError(t, err)
		assert.Equal(t, models.CompletionPending, req.Decision)
		assert.Equal(t, int64(30), req.AssignmentID)
	})

	t.Run("only students may request completion", func(t *testing.T) {
		svc, _ := newCompletionFixture()

		_, err := svc.Request(ctx, 30, 2, &dto.CreateCompletionRequestRequest{})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
	})

	t.Run("a second pending request is rejected", func(t *testing.T) {
		svc, _ := newCompletionFixture()

		_, err := svc.Request(ctx, 30, 1, &dto.CreateCompletionRequestRequest{})
		require.NoError(t, err)

		_, err = svc.Request(ctx, 30, 1, &dto.CreateCompletionRequestRequest{})
		assert.ErrorIs(t, err, apperrors.ErrCompletionAlreadyRequested)
	})
}

func TestCompletionDecide(t *testing.T) {
	ctx := context.Background()

	open := func(t *testing.T, svc *CompletionService) *models.CompletionRequest {
		req, err := svc.Request(ctx, 30, 1, &dto.CreateCompletionRequestRequest{})
		require.NoError(t, err)
		return req
	}

	t.Run("supervisor approves", func(t *testing.T) {
		svc, completions := newCompletionFixture()
		req := open(t, svc)

		err := svc.Decide(ctx, req.ID, 4, &dto.DecideCompletionRequest{Approve: true})
		require.NoError(t, err)

		decided := completions.requests[req.ID]
		assert.Equal(t, models.CompletionApproved, decided.Decision)
		require.NotNil(t, decided.DecidedBy)
		assert.Equal(t, int64(4), *decided.DecidedBy)
		assert.NotNil(t, decided.DecidedAt)
	})

	t.Run("admin rejects with a note", func(t *testing.T) {
		svc, completions := newCompletionFixture()
		req := open(t, svc)
		note := "missing final report"

		err := svc.Decide(ctx, req.ID, 5, &dto.DecideCompletionRequest{Approve: false, Note: &note})
		require.NoError(t, err)

		decided := completions.requests[req.ID]
		assert.Equal(t, models.CompletionRejected, decided.Decision)
		require.NotNil(t, decided.Note)
		assert.Equal(t, note, *decided.Note)
	})

	t.Run("teachers and students may not decide", func(t *testing.T) {
		svc, _ := newCompletionFixture()
		req := open(t, svc)

		assert.ErrorIs(t, svc.Decide(ctx, req.ID, 2, &dto.DecideCompletionRequest{Approve: true}), apperrors.ErrPermissionDenied)
		assert.ErrorIs(t, svc.Decide(ctx, req.ID, 1, &dto.DecideCompletionRequest{Approve: true}), apperrors.ErrPermissionDenied)
	})

	t.Run("a decided request stays decided", func(t *testing.T) {
		svc, _ := newCompletionFixture()
		req := open(t, svc)

		require.NoError(t, svc.Decide(ctx, req.ID, 4, &dto.DecideCompletionRequest{Approve: false}))
		err := svc.Decide(ctx, req.ID, 4, &dto.DecideCompletionRequest{Approve: true})
		assert.ErrorIs(t, err, apperrors.ErrCompletionAlreadyDecided)
	})
}
