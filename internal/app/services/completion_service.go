package services

import (
	"context"

	"github.com/talha/internhub/internal/app/models"
	"github.com/talha/internhub/internal/app/models/dto"
	"github.com/talha/internhub/internal/app/repositories"
	"github.com/talha/internhub/internal/pkg/apperrors"
	"github.com/talha/internhub/internal/pkg/logger"
)

type completionStore interface {
	Create(ctx context.Context, req *models.CompletionRequest) error
	GetByID(ctx context.Context, id int64) (*models.CompletionRequest, error)
	ListPending(ctx context.Context, offset uint64, limit int) ([]*models.CompletionRequest, int64, error)
	ListByAssignment(ctx context.Context, assignmentID int64) ([]*models.CompletionRequest, error)
	Decide(ctx context.Context, id, deciderID int64, decision models.CompletionDecision, note *string) error
}

// CompletionService handles the student-initiated completion flow.
type CompletionService struct {
	completionRepo completionStore
	userRepo       userReader
}

// NewCompletionService creates a new completion service instance
func NewCompletionService(completionRepo *repositories.CompletionRepository, userRepo *repositories.UserRepository) *CompletionService {
	return &CompletionService{
		completionRepo: completionRepo,
		userRepo:       userRepo,
	}
}

// Request opens a completion request for the student's active assignment.
func (s *CompletionService) Request(ctx context.Context, assignmentID, studentID int64, req *dto.CreateCompletionRequestRequest) (*models.CompletionRequest, error) {
	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.Role != models.RoleStudent {
		return nil, apperrors.ErrInvalidRole
	}

	request := &models.CompletionRequest{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Note:         req.Note,
	}
	if err := s.completionRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	logger.Info().Int64("assignmentId", assignmentID).Int64("studentId", studentID).
		Msg("Completion requested")
	return request, nil
}

// GetByID retrieves a completion request.
func (s *CompletionService) GetByID(ctx context.Context, id int64) (*models.CompletionRequest, error) {
	return s.completionRepo.GetByID(ctx, id)
}

// ListPending retrieves undecided completion requests for supervisor review.
func (s *CompletionService) ListPending(ctx context.Context, offset uint64, limit int) ([]*models.CompletionRequest, int64, error) {
	return s.completionRepo.ListPending(ctx, offset, limit)
}

// ListByAssignment retrieves the completion history of an assignment.
func (s *CompletionService) ListByAssignment(ctx context.Context, assignmentID int64) ([]*models.CompletionRequest, error) {
	return s.completionRepo.ListByAssignment(ctx, assignmentID)
}

// Decide records a supervisor's approval or rejection. Approval also moves
// the assignment to completed.
func (s *CompletionService) Decide(ctx context.Context, id, deciderID int64, req *dto.DecideCompletionRequest) error {
	decider, err := s.userRepo.GetByID(ctx, deciderID)
	if err != nil {
		return err
	}
	if decider.Role != models.RoleSupervisor && decider.Role != models.RoleAdmin {
		return apperrors.ErrPermissionDenied
	}

	decision := models.CompletionRejected
	if req.Approve {
		decision = models.CompletionApproved
	}

	if err := s.completionRepo.Decide(ctx, id, deciderID, decision, req.Note); err != nil {
		return err
	}

	logger.Info().Int64("completionRequestId", id).Str("decision", string(decision)).
		Msg("Completion request decided")
	return nil
}
