package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talha/internhub/internal/app/models"
	"github.com/talha/internhub/internal/app/models/dto"
	"github.com/talha/internhub/internal/pkg/apperrors"
)

// In-memory fakes for the narrow repository views the placement service
// depends on. SQL-level behavior (row locks, counter updates) is out of scope
// here; these cover the orchestration and invariant pre-checks.

type fakeUsers struct {
	users map[int64]*models.User
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

type fakeSchools struct {
	schools map[int64]*models.School
}

func (f *fakeSchools) GetByID(_ context.Context, id int64) (*models.School, error) {
	if s, ok := f.schools[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrSchoolNotFound
}

type fakeYears struct {
	years  map[int64]*models.AcademicYear
	active *models.AcademicYear
}

func (f *fakeYears) GetByID(_ context.Context, id int64) (*models.AcademicYear, error) {
	if y, ok := f.years[id]; ok {
		return y, nil
	}
	return nil, apperrors.ErrAcademicYearNotFound
}

func (f *fakeYears) GetActive(_ context.Context) (*models.AcademicYear, error) {
	if f.active == nil {
		return nil, apperrors.ErrNoActiveAcademicYear
	}
	return f.active, nil
}

type quotaKey struct{ schoolID, yearID int64 }

type fakeQuotas struct {
	quotas map[quotaKey]*models.SchoolQuota
}

func (f *fakeQuotas) GetBySchoolYear(_ context.Context, schoolID, yearID int64) (*models.SchoolQuota, error) {
	if q, ok := f.quotas[quotaKey{schoolID, yearID}]; ok {
		return q, nil
	}
	return nil, apperrors.ErrQuotaNotFound
}

type fakeLinks struct {
	links     []*models.SchoolTeacher
	pool      []*models.User
	stats     *models.TeacherStats
	assigned  []*models.SchoolTeacher
	removeErr error
	nextID    int64
}

func (f *fakeLinks) GetByID(_ context.Context, id int64) (*models.SchoolTeacher, error) {
	for _, l := range f.links {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, apperrors.ErrTeacherLinkNotFound
}

func (f *fakeLinks) Exists(_ context.Context, teacherID, schoolID, yearID int64) (bool, error) {
	for _, l := range f.links {
		if l.TeacherID == teacherID && l.SchoolID == schoolID && l.AcademicYearID == yearID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLinks) Assign(_ context.Context, st *models.SchoolTeacher) (int64, error) {
	f.nextID++
	st.ID = f.nextID
	f.assigned = append(f.assigned, st)
	f.links = append(f.links, st)
	return st.ID, nil
}

func (f *fakeLinks) Update(_ context.Context, id int64, isPrimary *bool, maxStudents *int) error {
	for _, l := range f.links {
		if l.ID == id {
			if isPrimary != nil {
				l.IsPrimary = *isPrimary
			}
			if maxStudents != nil {
				l.MaxStudents = *maxStudents
			}
			return nil
		}
	}
	return apperrors.ErrTeacherLinkNotFound
}

func (f *fakeLinks) SetPrimary(_ context.Context, id int64) error {
	for _, l := range f.links {
		l.IsPrimary = l.ID == id
	}
	return nil
}

func (f *fakeLinks) Remove(_ context.Context, id int64) error {
	return f.removeErr
}

func (f *fakeLinks) FindBySchoolYear(_ context.Context, schoolID, yearID int64) ([]*models.SchoolTeacher, error) {
	var out []*models.SchoolTeacher
	for _, l := range f.links {
		if l.SchoolID == schoolID && l.AcademicYearID == yearID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLinks) FindAvailablePool(_ context.Context, schoolID, yearID int64) ([]*models.User, error) {
	return f.pool, nil
}

func (f *fakeLinks) GetTeacherStats(_ context.Context, teacherID, yearID int64) (*models.TeacherStats, error) {
	return f.stats, nil
}

type fakeAssignments struct {
	created []*models.InternshipAssignment
	err     error
	nextID  int64
}

func (f *fakeAssignments) Create(_ context.Context, a *models.InternshipAssignment) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	a.ID = f.nextID
	f.created = append(f.created, a)
	return a.ID, nil
}

// newPlacementFixture wires a service against fakes pre-populated with one
// school, one academic year with an open registration window and a handful of
// users.
func newPlacementFixture() (*PlacementService, *fakeUsers, *fakeQuotas, *fakeLinks, *fakeAssignments) {
	now := time.Now()
	users := &fakeUsers{users: map[int64]*models.User{
		1: {ID: 1, Role: models.RoleStudent, FirstName: "Selin"},
		2: {ID: 2, Role: models.RoleTeacher, FirstName: "Murat"},
		3: {ID: 3, Role: models.RoleTeacher, FirstName: "Elif"},
		4: {ID: 4, Role: models.RoleSupervisor, FirstName: "Kerem"},
	}}
	schools := &fakeSchools{schools: map[int64]*models.School{
		10: {ID: 10, Code: "IST-034"},
	}}
	years := &fakeYears{
		years: map[int64]*models.AcademicYear{
			20: {
				ID:                20,
				Year:              "2025-2026",
				Semester:          models.SemesterFall,
				RegistrationStart: now.Add(-24 * time.Hour),
				RegistrationEnd:   now.Add(24 * time.Hour),
				IsActive:          true,
			},
		},
	}
	years.active = years.years[20]
	quotas := &fakeQuotas{quotas: map[quotaKey]*models.SchoolQuota{
		{10, 20}: {SchoolID: 10, AcademicYearID: 20, MaxStudents: 10, MaxTeachers: 2, IsOpen: true},
	}}
	links := &fakeLinks{nextID: 100}
	assignments := &fakeAssignments{nextID: 1000}

	svc := &PlacementService{
		userRepo:       users,
		schoolRepo:     schools,
		yearRepo:       years,
		quotaRepo:      quotas,
		linkRepo:       links,
		assignmentRepo: assignments,
	}
	return svc, users, quotas, links, assignments
}

func TestAssignTeacher(t *testing.T) {
	ctx := context.Background()

	t.Run("links a teacher with the default student limit", func(t *testing.T) {
		svc, _, _, links, _ := newPlacementFixture()

		id, err := svc.AssignTeacher(ctx, 10, 20, &dto.AssignTeacherRequest{TeacherID: 2, IsPrimary: true})
		require.NoError(t, err)
		assert.NotZero(t, id)

		require.Len(t, links.assigned, 1)
		assert.Equal(t, defaultMentorCapacity, links.assigned[0].MaxStudents)
		assert.True(t, links.assigned[0].IsPrimary)
	})

	t.Run("honors an explicit student limit", func(t *testing.T) {
		svc, _, _, links, _ := newPlacementFixture()
		limit := 8

		_, err := svc.AssignTeacher(ctx, 10, 20, &dto.AssignTeacherRequest{TeacherID: 2, MaxStudents: &limit})
		require.NoError(t, err)
		assert.Equal(t, 8, links.assigned[0].MaxStudents)
	})

	t.Run("rejects users without the teacher role", func(t *testing.T) {
		svc, _, _, _, _ := newPlacementFixture()

		_, err := svc.AssignTeacher(ctx, 10, 20, &dto.AssignTeacherRequest{TeacherID: 1})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRole)

		_, err = svc.AssignTeacher(ctx, 10, 20, &dto.AssignTeacherRequest{TeacherID: 4})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
	})

	t.Run("rejects a duplicate link for the same school and year", func(t *testing.T) {
		svc, _, _, _, _ := newPlacementFixture()

		_, err := svc.AssignTeacher(ctx, 10, 20, &dto.AssignTeacherRequest{TeacherID: 2})
		require.NoError(t, err)

		_, err = svc.AssignTeacher(ctx, 10, 20, &dto.AssignTeacherRequest{TeacherID: 2})
		assert.ErrorIs(t, err, apperrors.ErrDuplicateAssignment)
	})

	t.Run("rejects when the teacher quota is exhausted", func(t *testing.T) {
		svc, _, quotas, _, _ := newPlacementFixture()
		quotas.quotas[quotaKey{10, 20}].CurrentTeachers = 2

		_, err := svc.AssignTeacher(ctx, 10, 20, &dto.AssignTeacherRequest{TeacherID: 2})
		assert.ErrorIs(t, err, apperrors.ErrQuotaExceeded)
	})

	t.Run("rejects unknown schools and years", func(t *testing.T) {
		svc, _, _, _, _ := newPlacementFixture()

		_, err := svc.AssignTeacher(ctx, 99, 20, &dto.AssignTeacherRequest{TeacherID: 2})
		assert.ErrorIs(t, err, apperrors.ErrSchoolNotFound)

		_, err = svc.AssignTeacher(ctx, 10, 99, &dto.AssignTeacherRequest{TeacherID: 2})
		assert.ErrorIs(t, err, apperrors.ErrAcademicYearNotFound)
	})
}

func TestAssignStudent(t *testing.T) {
	ctx := context.Background()

	linkTeachers := func(links *fakeLinks, entries ...*models.SchoolTeacher) {
		for i, e := range entries {
			e.ID = int64(200 + i)
			e.SchoolID = 10
			e.AcademicYearID = 20
			links.links = append(links.links, e)
		}
	}

	t.Run("creates a pending assignment with a pinned teacher", func(t *testing.T) {
		svc, _, _, _, assignments := newPlacementFixture()
		teacherID := int64(2)

		id, err := svc.AssignStudent(ctx, 10, 20, &dto.AssignStudentRequest{StudentID: 1, TeacherID: &teacherID})
		require.NoError(t, err)
		assert.NotZero(t, id)

		require.Len(t, assignments.created, 1)
		created := assignments.created[0]
		assert.Equal(t, models.StatusPending, created.Status)
		assert.Equal(t, int64(1), created.StudentID)
		require.NotNil(t, created.TeacherID)
		assert.Equal(t, teacherID, *created.TeacherID)
	})

	t.Run("rejects users without the student role", func(t *testing.T) {
		svc, _, _, _, _ := newPlacementFixture()

		_, err := svc.AssignStudent(ctx, 10, 20, &dto.AssignStudentRequest{StudentID: 2})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
	})

	t.Run("rejects a pinned user who is not a teacher", func(t *testing.T) {
		svc, _, _, _, _ := newPlacementFixture()
		supervisorID := int64(4)

		_, err := svc.AssignStudent(ctx, 10, 20, &dto.AssignStudentRequest{StudentID: 1, TeacherID: &supervisorID})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
	})

	t.Run("rejects when the school is closed for enrollment", func(t *testing.T) {
		svc, _, quotas, _, _ := newPlacementFixture()
		quotas.quotas[quotaKey{10, 20}].IsOpen = false

		_, err := svc.AssignStudent(ctx, 10, 20, &dto.AssignStudentRequest{StudentID: 1})
		assert.ErrorIs(t, err, apperrors.ErrQuotaClosed)
	})

	t.Run("rejects when the student quota is exhausted", func(t *testing.T) {
		svc, _, quotas, _, _ := newPlacementFixture()
		quotas.quotas[quotaKey{10, 20}].CurrentStudents = 10

		_, err := svc.AssignStudent(ctx, 10, 20, &dto.AssignStudentRequest{StudentID: 1})
		assert.ErrorIs(t, err, apperrors.ErrQuotaExceeded)
	})

	t.Run("leaves mentor selection to the repository when none is pinned", func(t *testing.T) {
		svc, _, _, links, assignments := newPlacementFixture()
		linkTeachers(links,
			&models.SchoolTeacher{TeacherID: 2, MaxStudents: 5, CurrentStudents: 4},
			&models.SchoolTeacher{TeacherID: 3, MaxStudents: 5, CurrentStudents: 1},
		)

		_, err := svc.AssignStudent(ctx, 10, 20, &dto.AssignStudentRequest{StudentID: 1})
		require.NoError(t, err)

		// The teacher reference must reach the repository unset, so the
		// locked least-loaded query makes the pick inside the placement
		// transaction rather than a stale read out here.
		require.Len(t, assignments.created, 1)
		assert.Nil(t, assignments.created[0].TeacherID)
	})

	t.Run("fails when every teacher is at capacity", func(t *testing.T) {
		svc, _, _, links, _ := newPlacementFixture()
		linkTeachers(links,
			&models.SchoolTeacher{TeacherID: 2, MaxStudents: 1, CurrentStudents: 1},
		)

		_, err := svc.AssignStudent(ctx, 10, 20, &dto.AssignStudentRequest{StudentID: 1})
		assert.ErrorIs(t, err, apperrors.ErrNoAvailableTeacher)
	})

	t.Run("fails when no teacher is linked at all", func(t *testing.T) {
		svc, _, _, _, _ := newPlacementFixture()

		_, err := svc.AssignStudent(ctx, 10, 20, &dto.AssignStudentRequest{StudentID: 1})
		assert.ErrorIs(t, err, apperrors.ErrNoAvailableTeacher)
	})
}

func TestEnrollSelf(t *testing.T) {
	ctx := context.Background()

	t.Run("enrolls during the registration window", func(t *testing.T) {
		svc, _, _, links, assignments := newPlacementFixture()
		links.links = append(links.links, &models.SchoolTeacher{
			ID: 200, TeacherID: 2, SchoolID: 10, AcademicYearID: 20, MaxStudents: 5,
		})

		id, err := svc.EnrollSelf(ctx, 1, 10, nil, nil)
		require.NoError(t, err)
		assert.NotZero(t, id)
		assert.Equal(t, int64(20), assignments.created[0].AcademicYearID)
	})

	t.Run("rejects outside the registration window", func(t *testing.T) {
		svc, _, _, _, _ := newPlacementFixture()
		yearRepo := svc.yearRepo.(*fakeYears)
		yearRepo.active.RegistrationEnd = time.Now().Add(-time.Hour)

		_, err := svc.EnrollSelf(ctx, 1, 10, nil, nil)
		assert.ErrorIs(t, err, apperrors.ErrRegistrationClosed)
	})

	t.Run("fails without an active academic year", func(t *testing.T) {
		svc, _, _, _, _ := newPlacementFixture()
		svc.yearRepo.(*fakeYears).active = nil

		_, err := svc.EnrollSelf(ctx, 1, 10, nil, nil)
		assert.ErrorIs(t, err, apperrors.ErrNoActiveAcademicYear)
	})
}

func TestRemoveTeacherActiveDependents(t *testing.T) {
	svc, _, _, links, _ := newPlacementFixture()
	links.removeErr = apperrors.NewActiveDependentsError(3)

	err := svc.RemoveTeacher(context.Background(), 200)
	require.Error(t, err)

	var dependents *apperrors.ActiveDependentsError
	require.True(t, errors.As(err, &dependents))
	assert.Equal(t, 3, dependents.Count)
	assert.Contains(t, err.Error(), "3 active students")
}

func TestGetTeacherStats(t *testing.T) {
	ctx := context.Background()
	svc, _, _, links, _ := newPlacementFixture()
	links.stats = &models.TeacherStats{TeacherID: 2, AcademicYearID: 20, TotalAssignments: 4, ActiveStudents: 2, CompletedStudents: 2}

	stats, err := svc.GetTeacherStats(ctx, 2, 20)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalAssignments)
	assert.GreaterOrEqual(t, stats.TotalAssignments, stats.ActiveStudents+stats.CompletedStudents)

	_, err = svc.GetTeacherStats(ctx, 1, 20)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
}
