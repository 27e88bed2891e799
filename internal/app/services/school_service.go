package services

import (
	"context"
	"strings"

	"github.com/talha/internhub/internal/app/models"
	"github.com/talha/internhub/internal/app/models/dto"
	"github.com/talha/internhub/internal/app/repositories"
	"github.com/talha/internhub/internal/pkg/apperrors"
	"github.com/talha/internhub/internal/pkg/logger"
)

// SchoolService handles school and quota operations
type SchoolService struct {
	schoolRepo *repositories.SchoolRepository
	quotaRepo  *repositories.QuotaRepository
	yearRepo   *repositories.AcademicYearRepository
}

// NewSchoolService creates a new school service instance
func NewSchoolService(schoolRepo *repositories.SchoolRepository, quotaRepo *repositories.QuotaRepository, yearRepo *repositories.AcademicYearRepository) *SchoolService {
	return &SchoolService{
		schoolRepo: schoolRepo,
		quotaRepo:  quotaRepo,
		yearRepo:   yearRepo,
	}
}

// CreateSchool creates a new school.
func (s *SchoolService) CreateSchool(ctx context.Context, req *dto.CreateSchoolRequest) (*models.School, error) {
	school := &models.School{
		Code:    strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:    strings.TrimSpace(req.Name),
		Address: req.Address,
		Phone:   req.Phone,
	}
	if err := s.schoolRepo.Create(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

// GetSchool retrieves a school by ID.
func (s *SchoolService) GetSchool(ctx context.Context, id int64) (*models.School, error) {
	return s.schoolRepo.GetByID(ctx, id)
}

// GetAllSchools retrieves all schools.
func (s *SchoolService) GetAllSchools(ctx context.Context) ([]*models.School, error) {
	return s.schoolRepo.GetAll(ctx)
}

// UpdateSchool applies the non-nil fields of the request to the school.
func (s *SchoolService) UpdateSchool(ctx context.Context, id int64, req *dto.UpdateSchoolRequest) (*models.School, error) {
	school, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		school.Code = strings.ToUpper(strings.TrimSpace(*req.Code))
	}
	if req.Name != nil {
		school.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		school.Address = req.Address
	}
	if req.Phone != nil {
		school.Phone = req.Phone
	}

	if err := s.schoolRepo.Update(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

// DeleteSchool removes a school. Schools with enrollment history cannot be
// deleted.
func (s *SchoolService) DeleteSchool(ctx context.Context, id int64) error {
	hasData, err := s.schoolRepo.HasEnrollmentData(ctx, id)
	if err != nil {
		return err
	}
	if hasData {
		return apperrors.ErrSchoolHasRelations
	}
	return s.schoolRepo.Delete(ctx, id)
}

// UpsertQuota sets the capacity configuration of a school for a year.
func (s *SchoolService) UpsertQuota(ctx context.Context, schoolID int64, req *dto.UpsertQuotaRequest) (*models.SchoolQuota, error) {
	if _, err := s.schoolRepo.GetByID(ctx, schoolID); err != nil {
		return nil, err
	}
	if _, err := s.yearRepo.GetByID(ctx, req.AcademicYearID); err != nil {
		return nil, err
	}

	quota := &models.SchoolQuota{
		SchoolID:       schoolID,
		AcademicYearID: req.AcademicYearID,
		MaxStudents:    req.MaxStudents,
		MaxTeachers:    req.MaxTeachers,
		IsOpen:         true,
	}
	if req.IsOpen != nil {
		quota.IsOpen = *req.IsOpen
	}

	if err := s.quotaRepo.Upsert(ctx, quota); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("schoolId", schoolID).
		Int64("academicYearId", req.AcademicYearID).
		Int("maxStudents", req.MaxStudents).
		Msg("School quota configured")
	return quota, nil
}

// GetQuota retrieves the quota of a school for a year.
func (s *SchoolService) GetQuota(ctx context.Context, schoolID, yearID int64) (*models.SchoolQuota, error) {
	return s.quotaRepo.GetBySchoolYear(ctx, schoolID, yearID)
}

// SetQuotaOpen toggles whether a school accepts enrollments for a year.
func (s *SchoolService) SetQuotaOpen(ctx context.Context, schoolID, yearID int64, open bool) error {
	return s.quotaRepo.SetOpen(ctx, schoolID, yearID, open)
}

// GetAvailability summarizes the remaining capacity of every school for a year.
func (s *SchoolService) GetAvailability(ctx context.Context, yearID int64) ([]*dto.SchoolAvailability, error) {
	if _, err := s.yearRepo.GetByID(ctx, yearID); err != nil {
		return nil, err
	}
	return s.quotaRepo.GetAvailability(ctx, yearID)
}
