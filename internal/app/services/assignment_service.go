package services

import (
	"context"
	"time"

	"github.com/talha/internhub/internal/app/models"
	"github.com/talha/internhub/internal/app/repositories"
	"github.com/talha/internhub/internal/pkg/apperrors"
	"github.com/talha/internhub/internal/pkg/logger"
)

type assignmentStore interface {
	GetByID(ctx context.Context, id int64) (*models.InternshipAssignment, error)
	List(ctx context.Context, filter repositories.AssignmentFilter, offset uint64, limit int) ([]*models.InternshipAssignment, int64, error)
	UpdateStatus(ctx context.Context, id int64, status models.AssignmentStatus) error
	SetDates(ctx context.Context, id int64, start, end *time.Time) error
}

// AssignmentService handles assignment reads and the status machine.
type AssignmentService struct {
	assignmentRepo assignmentStore
	userRepo       userReader
}

// NewAssignmentService creates a new assignment service instance
func NewAssignmentService(assignmentRepo *repositories.AssignmentRepository, userRepo *repositories.UserRepository) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
	}
}

// GetByID retrieves an assignment with its related records attached.
func (s *AssignmentService) GetByID(ctx context.Context, id int64) (*models.InternshipAssignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if student, err := s.userRepo.GetByID(ctx, assignment.StudentID); err == nil {
		assignment.Student = student
	}
	if assignment.TeacherID != nil {
		if teacher, err := s.userRepo.GetByID(ctx, *assignment.TeacherID); err == nil {
			assignment.Teacher = teacher
		}
	}
	return assignment, nil
}

// List retrieves assignments matching the filter with pagination.
func (s *AssignmentService) List(ctx context.Context, filter repositories.AssignmentFilter, offset uint64, limit int) ([]*models.InternshipAssignment, int64, error) {
	return s.assignmentRepo.List(ctx, filter, offset, limit)
}

// UpdateStatus transitions an assignment through the status machine.
func (s *AssignmentService) UpdateStatus(ctx context.Context, id int64, status models.AssignmentStatus) error {
	if !status.Valid() {
		return apperrors.ErrInvalidStatusChange
	}
	if err := s.assignmentRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	logger.Info().Int64("assignmentId", id).Str("status", string(status)).
		Msg("Assignment status changed")
	return nil
}

// SetDates updates the internship start and end dates.
func (s *AssignmentService) SetDates(ctx context.Context, id int64, start, end *time.Time) error {
	if start != nil && end != nil && !end.After(*start) {
		return apperrors.NewBadRequestError("end date must be after start date")
	}
	return s.assignmentRepo.SetDates(ctx, id, start, end)
}
