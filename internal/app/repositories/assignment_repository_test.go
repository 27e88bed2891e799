package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talha/internhub/internal/app/models"
)

func lockedAssignmentRow(teacherID *int64, status models.AssignmentStatus) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "student_id", "school_id", "academic_year_id", "teacher_id", "status",
		"enrollment_date", "start_date", "end_date", "notes", "created_at", "updated_at",
	}).AddRow(int64(500), int64(1), int64(10), int64(20), teacherID, status,
		now, nil, nil, nil, now, now)
}

func mentorPickRows(linkID, teacherID int64) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "teacher_id"}).AddRow(linkID, teacherID)
}

// An unpinned placement must pick its mentor with the locked least-loaded
// query inside the transaction, not from a read made before it.
func TestAssignmentRepositoryCreatePicksMentorUnderLock(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewAssignmentRepository(mock)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM school_quotas\s+WHERE school_id = \$1 AND academic_year_id = \$2\s+FOR UPDATE`).
		WithArgs(int64(10), int64(20)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "school_id", "academic_year_id", "max_students", "current_students",
			"max_teachers", "current_teachers", "is_open",
		}).AddRow(int64(1), int64(10), int64(20), 10, 3, 2, 1, true))
	mock.ExpectQuery(`ORDER BY current_students ASC, is_primary DESC, id ASC`).
		WithArgs(int64(10), int64(20)).
		WillReturnRows(mentorPickRows(200, 3))
	mock.ExpectQuery(`INSERT INTO internship_assignments`).
		WithArgs(int64(1), int64(10), int64(20), pgxmock.AnyArg(), models.StatusPending, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "enrollment_date", "created_at", "updated_at"}).
			AddRow(int64(500), now, now, now))
	mock.ExpectExec(`UPDATE school_quotas SET current_students`).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE school_teachers SET current_students`).
		WithArgs(int64(200)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	a := &models.InternshipAssignment{
		StudentID:      1,
		SchoolID:       10,
		AcademicYearID: 20,
		Status:         models.StatusPending,
	}
	id, err := repo.Create(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, int64(500), id)
	require.NotNil(t, a.TeacherID)
	assert.Equal(t, int64(3), *a.TeacherID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Activating an assignment whose mentor was removed re-matches a teacher with
// the same locked least-loaded query and bumps the new mentor's load, all
// inside the status transaction.
func TestAssignmentRepositoryActivateRematchesDetachedMentor(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewAssignmentRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM internship_assignments WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(500)).
		WillReturnRows(lockedAssignmentRow(nil, models.StatusPending))
	mock.ExpectQuery(`ORDER BY current_students ASC, is_primary DESC, id ASC`).
		WithArgs(int64(10), int64(20)).
		WillReturnRows(mentorPickRows(200, 3))
	mock.ExpectExec(`UPDATE internship_assignments SET teacher_id`).
		WithArgs(int64(500), int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE school_teachers SET current_students`).
		WithArgs(int64(200)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE internship_assignments SET status`).
		WithArgs(int64(500), models.StatusActive, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdateStatus(context.Background(), 500, models.StatusActive))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Activation with a mentor still attached is a plain status flip.
func TestAssignmentRepositoryActivateKeepsAssignedMentor(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewAssignmentRepository(mock)

	teacherID := int64(2)
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM internship_assignments WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(500)).
		WillReturnRows(lockedAssignmentRow(&teacherID, models.StatusPending))
	mock.ExpectExec(`UPDATE internship_assignments SET status`).
		WithArgs(int64(500), models.StatusActive, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdateStatus(context.Background(), 500, models.StatusActive))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Cancelling releases the school slot and the mentor's load.
func TestAssignmentRepositoryCancelReleasesCapacity(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewAssignmentRepository(mock)

	teacherID := int64(2)
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM internship_assignments WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(500)).
		WillReturnRows(lockedAssignmentRow(&teacherID, models.StatusActive))
	mock.ExpectExec(`UPDATE internship_assignments SET status`).
		WithArgs(int64(500), models.StatusCancelled, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE school_quotas SET current_students = GREATEST`).
		WithArgs(int64(10), int64(20)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE school_teachers SET current_students = GREATEST`).
		WithArgs(int64(2), int64(10), int64(20)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdateStatus(context.Background(), 500, models.StatusCancelled))
	assert.NoError(t, mock.ExpectationsWereMet())
}
