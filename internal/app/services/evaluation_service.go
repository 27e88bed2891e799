package services

import (
	"context"

	"github.com/talha/internhub/internal/app/models"
	"github.com/talha/internhub/internal/app/models/dto"
	"github.com/talha/internhub/internal/app/repositories"
	"github.com/talha/internhub/internal/pkg/apperrors"
)

type evaluationStore interface {
	Create(ctx context.Context, eval *models.Evaluation) error
	Update(ctx context.Context, eval *models.Evaluation) error
	GetByID(ctx context.Context, id int64) (*models.Evaluation, error)
	ListByAssignment(ctx context.Context, assignmentID int64) ([]*models.Evaluation, error)
	AverageScore(ctx context.Context, assignmentID int64) (*float64, error)
	Delete(ctx context.Context, id int64) error
}

type assignmentReader interface {
	GetByID(ctx context.Context, id int64) (*models.InternshipAssignment, error)
}

// EvaluationService handles mentor and supervisor evaluations of assignments.
type EvaluationService struct {
	evalRepo       evaluationStore
	assignmentRepo assignmentReader
	userRepo       userReader
}

// NewEvaluationService creates a new evaluation service instance
func NewEvaluationService(evalRepo *repositories.EvaluationRepository, assignmentRepo *repositories.AssignmentRepository, userRepo *repositories.UserRepository) *EvaluationService {
	return &EvaluationService{
		evalRepo:       evalRepo,
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
	}
}

// Create records an evaluator's score for an assignment. Only teachers and
// supervisors may evaluate, and not while the assignment is still pending.
func (s *EvaluationService) Create(ctx context.Context, assignmentID, evaluatorID int64, req *dto.CreateEvaluationRequest) (*models.Evaluation, error) {
	evaluator, err := s.userRepo.GetByID(ctx, evaluatorID)
	if err != nil {
		return nil, err
	}
	if evaluator.Role != models.RoleTeacher && evaluator.Role != models.RoleSupervisor {
		return nil, apperrors.ErrInvalidRole
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.Status == models.StatusPending {
		return nil, apperrors.ErrAssignmentNotActive
	}

	eval := &models.Evaluation{
		AssignmentID: assignmentID,
		EvaluatorID:  evaluatorID,
		Score:        req.Score,
		Comments:     req.Comments,
	}
	if err := s.evalRepo.Create(ctx, eval); err != nil {
		return nil, err
	}
	return eval, nil
}

// Update revises an evaluator's own evaluation.
func (s *EvaluationService) Update(ctx context.Context, id, evaluatorID int64, req *dto.UpdateEvaluationRequest) (*models.Evaluation, error) {
	eval, err := s.evalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if eval.EvaluatorID != evaluatorID {
		return nil, apperrors.ErrPermissionDenied
	}

	if req.Score != nil {
		eval.Score = *req.Score
	}
	if req.Comments != nil {
		eval.Comments = req.Comments
	}

	if err := s.evalRepo.Update(ctx, eval); err != nil {
		return nil, err
	}
	return eval, nil
}

// ListByAssignment retrieves all evaluations of an assignment.
func (s *EvaluationService) ListByAssignment(ctx context.Context, assignmentID int64) ([]*models.Evaluation, error) {
	if _, err := s.assignmentRepo.GetByID(ctx, assignmentID); err != nil {
		return nil, err
	}
	return s.evalRepo.ListByAssignment(ctx, assignmentID)
}

// AverageScore returns the mean score of an assignment's evaluations.
func (s *EvaluationService) AverageScore(ctx context.Context, assignmentID int64) (*float64, error) {
	return s.evalRepo.AverageScore(ctx, assignmentID)
}

// Delete removes an evaluation. Only the evaluator may delete their own.
func (s *EvaluationService) Delete(ctx context.Context, id, evaluatorID int64) error {
	eval, err := s.evalRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if eval.EvaluatorID != evaluatorID {
		return apperrors.ErrPermissionDenied
	}
	return s.evalRepo.Delete(ctx, id)
}
