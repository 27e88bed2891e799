package services

import (
	"context"
	"fmt"

	"github.com/talha/internhub/internal/app/models"
	"github.com/talha/internhub/internal/app/models/dto"
	"github.com/talha/internhub/internal/app/repositories"
	"github.com/talha/internhub/internal/pkg/apperrors"
	"github.com/talha/internhub/internal/pkg/logger"
)

// AcademicYearService handles academic year operations
type AcademicYearService struct {
	yearRepo *repositories.AcademicYearRepository
}

// NewAcademicYearService creates a new academic year service instance
func NewAcademicYearService(yearRepo *repositories.AcademicYearRepository) *AcademicYearService {
	return &AcademicYearService{yearRepo: yearRepo}
}

func validateYearDates(year *models.AcademicYear) error {
	if !year.EndDate.After(year.StartDate) {
		return apperrors.NewBadRequestError("end date must be after start date")
	}
	if !year.RegistrationEnd.After(year.RegistrationStart) {
		return apperrors.NewBadRequestError("registration end must be after registration start")
	}
	if !year.Semester.Valid() {
		return apperrors.NewBadRequestError(fmt.Sprintf("invalid semester: %s", year.Semester))
	}
	return nil
}

// Create creates a new academic year (inactive by default).
func (s *AcademicYearService) Create(ctx context.Context, req *dto.CreateAcademicYearRequest) (*models.AcademicYear, error) {
	year := &models.AcademicYear{
		Year:              req.Year,
		Semester:          models.Semester(req.Semester),
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		RegistrationStart: req.RegistrationStart,
		RegistrationEnd:   req.RegistrationEnd,
	}
	if err := validateYearDates(year); err != nil {
		return nil, err
	}

	if err := s.yearRepo.Create(ctx, year); err != nil {
		return nil, err
	}

	logger.Info().Str("year", year.Year).Str("semester", string(year.Semester)).
		Msg("Academic year created")
	return year, nil
}

// GetByID retrieves an academic year.
func (s *AcademicYearService) GetByID(ctx context.Context, id int64) (*models.AcademicYear, error) {
	return s.yearRepo.GetByID(ctx, id)
}

// GetAll retrieves all academic years.
func (s *AcademicYearService) GetAll(ctx context.Context) ([]*models.AcademicYear, error) {
	return s.yearRepo.GetAll(ctx)
}

// GetActive retrieves the currently active academic year.
func (s *AcademicYearService) GetActive(ctx context.Context) (*models.AcademicYear, error) {
	return s.yearRepo.GetActive(ctx)
}

// Activate marks a year active and deactivates the others.
func (s *AcademicYearService) Activate(ctx context.Context, id int64) error {
	if err := s.yearRepo.Activate(ctx, id); err != nil {
		return err
	}
	logger.Info().Int64("academicYearId", id).Msg("Academic year activated")
	return nil
}

// Update applies the non-nil fields of the request to the academic year.
func (s *AcademicYearService) Update(ctx context.Context, id int64, req *dto.UpdateAcademicYearRequest) (*models.AcademicYear, error) {
	year, err := s.yearRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Year != nil {
		year.Year = *req.Year
	}
	if req.Semester != nil {
		year.Semester = models.Semester(*req.Semester)
	}
	if req.StartDate != nil {
		year.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		year.EndDate = *req.EndDate
	}
	if req.RegistrationStart != nil {
		year.RegistrationStart = *req.RegistrationStart
	}
	if req.RegistrationEnd != nil {
		year.RegistrationEnd = *req.RegistrationEnd
	}
	if err := validateYearDates(year); err != nil {
		return nil, err
	}

	if err := s.yearRepo.Update(ctx, year); err != nil {
		return nil, err
	}
	return year, nil
}

// Delete removes an academic year.
func (s *AcademicYearService) Delete(ctx context.Context, id int64) error {
	return s.yearRepo.Delete(ctx, id)
}
