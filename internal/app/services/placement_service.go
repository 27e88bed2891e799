package services

import (
	"context"
	"time"

	"github.com/talha/internhub/internal/app/models"
	"github.com/talha/internhub/internal/app/models/dto"
	"github.com/talha/internhub/internal/app/repositories"
	"github.com/talha/internhub/internal/pkg/apperrors"
)

// defaultMentorCapacity is the per-teacher student limit applied when an
// assignment request does not set one.
const defaultMentorCapacity = 5

// Narrow views of the repositories the placement service orchestrates.
// Declared here so the invariant logic can be exercised against fakes.
type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type schoolReader interface {
	GetByID(ctx context.Context, id int64) (*models.School, error)
}

type yearReader interface {
	GetByID(ctx context.Context, id int64) (*models.AcademicYear, error)
	GetActive(ctx context.Context) (*models.AcademicYear, error)
}

type quotaReader interface {
	GetBySchoolYear(ctx context.Context, schoolID, yearID int64) (*models.SchoolQuota, error)
}

type teacherLinkStore interface {
	GetByID(ctx context.Context, id int64) (*models.SchoolTeacher, error)
	Exists(ctx context.Context, teacherID, schoolID, yearID int64) (bool, error)
	Assign(ctx context.Context, st *models.SchoolTeacher) (int64, error)
	Update(ctx context.Context, id int64, isPrimary *bool, maxStudents *int) error
	SetPrimary(ctx context.Context, id int64) error
	Remove(ctx context.Context, id int64) error
	FindBySchoolYear(ctx context.Context, schoolID, yearID int64) ([]*models.SchoolTeacher, error)
	FindAvailablePool(ctx context.Context, schoolID, yearID int64) ([]*models.User, error)
	GetTeacherStats(ctx context.Context, teacherID, yearID int64) (*models.TeacherStats, error)
}

type assignmentCreator interface {
	Create(ctx context.Context, a *models.InternshipAssignment) (int64, error)
}

// PlacementService orchestrates mentor teacher and student placement. Role
// and capacity invariants are pre-checked here for fast failures; the
// repositories re-verify them under row locks so concurrent requests cannot
// slip past.
type PlacementService struct {
	userRepo       userReader
	schoolRepo     schoolReader
	yearRepo       yearReader
	quotaRepo      quotaReader
	linkRepo       teacherLinkStore
	assignmentRepo assignmentCreator
}

// NewPlacementService creates a new placement service instance
func NewPlacementService(repos *repositories.Repositories) *PlacementService {
	return &PlacementService{
		userRepo:       repos.UserRepository,
		schoolRepo:     repos.SchoolRepository,
		yearRepo:       repos.AcademicYearRepository,
		quotaRepo:      repos.QuotaRepository,
		linkRepo:       repos.SchoolTeacherRepository,
		assignmentRepo: repos.AssignmentRepository,
	}
}

// AssignTeacher links a mentor teacher to a school for an academic year.
func (s *PlacementService) AssignTeacher(ctx context.Context, schoolID, yearID int64, req *dto.AssignTeacherRequest) (int64, error) {
	teacher, err := s.userRepo.GetByID(ctx, req.TeacherID)
	if err != nil {
		return 0, err
	}
	if teacher.Role != models.RoleTeacher {
		return 0, apperrors.ErrInvalidRole
	}

	if _, err := s.schoolRepo.GetByID(ctx, schoolID); err != nil {
		return 0, err
	}
	if _, err := s.yearRepo.GetByID(ctx, yearID); err != nil {
		return 0, err
	}

	exists, err := s.linkRepo.Exists(ctx, req.TeacherID, schoolID, yearID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, apperrors.ErrDuplicateAssignment
	}

	quota, err := s.quotaRepo.GetBySchoolYear(ctx, schoolID, yearID)
	if err != nil {
		return 0, err
	}
	if !quota.HasTeacherCapacity() {
		return 0, apperrors.ErrQuotaExceeded
	}

	st := &models.SchoolTeacher{
		TeacherID:      req.TeacherID,
		SchoolID:       schoolID,
		AcademicYearID: yearID,
		IsPrimary:      req.IsPrimary,
		MaxStudents:    defaultMentorCapacity,
	}
	if req.MaxStudents != nil {
		st.MaxStudents = *req.MaxStudents
	}

	return s.linkRepo.Assign(ctx, st)
}

// UpdateTeacherLink changes the primary flag and/or student limit of a link.
func (s *PlacementService) UpdateTeacherLink(ctx context.Context, id int64, req *dto.UpdateSchoolTeacherRequest) (*models.SchoolTeacher, error) {
	if err := s.linkRepo.Update(ctx, id, req.IsPrimary, req.MaxStudents); err != nil {
		return nil, err
	}
	return s.linkRepo.GetByID(ctx, id)
}

// SetPrimaryTeacher designates the link as the school's primary teacher for
// its academic year.
func (s *PlacementService) SetPrimaryTeacher(ctx context.Context, id int64) error {
	return s.linkRepo.SetPrimary(ctx, id)
}

// RemoveTeacher removes a teacher's school link. Fails with
// ActiveDependentsError while active assignments reference the teacher.
func (s *PlacementService) RemoveTeacher(ctx context.Context, id int64) error {
	return s.linkRepo.Remove(ctx, id)
}

// ListSchoolTeachers lists the teachers of a school for a year, primary first.
func (s *PlacementService) ListSchoolTeachers(ctx context.Context, schoolID, yearID int64) ([]*models.SchoolTeacher, error) {
	if _, err := s.schoolRepo.GetByID(ctx, schoolID); err != nil {
		return nil, err
	}
	return s.linkRepo.FindBySchoolYear(ctx, schoolID, yearID)
}

// ListAvailableTeacherPool lists teacher-role users not yet linked to the
// (school, year) pair.
func (s *PlacementService) ListAvailableTeacherPool(ctx context.Context, schoolID, yearID int64) ([]*models.User, error) {
	if _, err := s.schoolRepo.GetByID(ctx, schoolID); err != nil {
		return nil, err
	}
	return s.linkRepo.FindAvailablePool(ctx, schoolID, yearID)
}

// GetTeacherStats aggregates a teacher's assignment counts for a year.
func (s *PlacementService) GetTeacherStats(ctx context.Context, teacherID, yearID int64) (*models.TeacherStats, error) {
	teacher, err := s.userRepo.GetByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if teacher.Role != models.RoleTeacher {
		return nil, apperrors.ErrInvalidRole
	}
	return s.linkRepo.GetTeacherStats(ctx, teacherID, yearID)
}

// AssignStudent places a student at a school for an academic year. When the
// request does not pin a mentor teacher the least-loaded linked teacher with
// remaining capacity is selected.
func (s *PlacementService) AssignStudent(ctx context.Context, schoolID, yearID int64, req *dto.AssignStudentRequest) (int64, error) {
	student, err := s.userRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return 0, err
	}
	if student.Role != models.RoleStudent {
		return 0, apperrors.ErrInvalidRole
	}

	if _, err := s.schoolRepo.GetByID(ctx, schoolID); err != nil {
		return 0, err
	}
	if _, err := s.yearRepo.GetByID(ctx, yearID); err != nil {
		return 0, err
	}

	quota, err := s.quotaRepo.GetBySchoolYear(ctx, schoolID, yearID)
	if err != nil {
		return 0, err
	}
	if !quota.IsOpen {
		return 0, apperrors.ErrQuotaClosed
	}
	if !quota.HasStudentCapacity() {
		return 0, apperrors.ErrQuotaExceeded
	}

	assignment := &models.InternshipAssignment{
		StudentID:      req.StudentID,
		SchoolID:       schoolID,
		AcademicYearID: yearID,
		TeacherID:      req.TeacherID,
		Status:         models.StatusPending,
		Notes:          req.Notes,
	}

	if assignment.TeacherID == nil {
		// Fast fail only. The teacher reference stays nil so the repository
		// makes the actual selection under a row lock; a concurrent
		// enrollment cannot race a pick made out here.
		if err := s.ensureAvailableTeacher(ctx, schoolID, yearID); err != nil {
			return 0, err
		}
	} else {
		teacher, err := s.userRepo.GetByID(ctx, *assignment.TeacherID)
		if err != nil {
			return 0, err
		}
		if teacher.Role != models.RoleTeacher {
			return 0, apperrors.ErrInvalidRole
		}
	}

	return s.assignmentRepo.Create(ctx, assignment)
}

// EnrollSelf places the calling student during the active academic year's
// registration window.
func (s *PlacementService) EnrollSelf(ctx context.Context, studentID, schoolID int64, teacherID *int64, notes *string) (int64, error) {
	year, err := s.yearRepo.GetActive(ctx)
	if err != nil {
		return 0, err
	}
	if !year.RegistrationOpenAt(time.Now()) {
		return 0, apperrors.ErrRegistrationClosed
	}

	return s.AssignStudent(ctx, schoolID, year.ID, &dto.AssignStudentRequest{
		StudentID: studentID,
		TeacherID: teacherID,
		Notes:     notes,
	})
}

// ensureAvailableTeacher fails fast when no linked teacher has remaining
// capacity. Selection itself happens in the repository, inside the placement
// transaction.
func (s *PlacementService) ensureAvailableTeacher(ctx context.Context, schoolID, yearID int64) error {
	links, err := s.linkRepo.FindBySchoolYear(ctx, schoolID, yearID)
	if err != nil {
		return err
	}
	for _, link := range links {
		if link.HasCapacity() {
			return nil
		}
	}
	return apperrors.ErrNoAvailableTeacher
}
