package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talha/internhub/internal/app/models"
	"github.com/talha/internhub/internal/pkg/apperrors"
)

func lockedSchoolTeacherRow(id int64, isPrimary bool) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "teacher_id", "school_id", "academic_year_id", "is_primary",
		"max_students", "current_students", "created_at",
	}).AddRow(id, int64(3), int64(10), int64(20), isPrimary, 5, 1, time.Now())
}

// Promoting a link must clear the previous primary before setting the new
// one, inside one transaction, so the one-primary invariant never breaks.
func TestSchoolTeacherRepositorySetPrimaryClearsPreviousFirst(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewSchoolTeacherRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM school_teachers\s+WHERE id = \$1\s+FOR UPDATE`).
		WithArgs(int64(201)).
		WillReturnRows(lockedSchoolTeacherRow(201, false))
	mock.ExpectExec(`SET is_primary = FALSE\s+WHERE school_id = \$1 AND academic_year_id = \$2 AND is_primary`).
		WithArgs(int64(10), int64(20)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`SET is_primary = TRUE WHERE id = \$1`).
		WithArgs(int64(201)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SetPrimary(context.Background(), 201))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The Update path runs the same clear-then-set sequence when it flips a
// non-primary link to primary.
func TestSchoolTeacherRepositoryUpdateToPrimaryClearsPrevious(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewSchoolTeacherRepository(mock)

	isPrimary := true
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM school_teachers\s+WHERE id = \$1\s+FOR UPDATE`).
		WithArgs(int64(201)).
		WillReturnRows(lockedSchoolTeacherRow(201, false))
	mock.ExpectExec(`SET is_primary = FALSE\s+WHERE school_id = \$1 AND academic_year_id = \$2 AND is_primary`).
		WithArgs(int64(10), int64(20)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE school_teachers SET is_primary = \$1 WHERE id = \$2`).
		WithArgs(true, int64(201)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), 201, &isPrimary, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolTeacherRepositorySetPrimaryNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewSchoolTeacherRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM school_teachers\s+WHERE id = \$1\s+FOR UPDATE`).
		WithArgs(int64(999)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err = repo.SetPrimary(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrTeacherLinkNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The available pool query excludes teachers already linked to the
// (school, year) pair with an anti-join on school_teachers.
func TestSchoolTeacherRepositoryAvailablePoolExcludesLinked(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewSchoolTeacherRepository(mock)

	now := time.Now()
	mock.ExpectQuery(`WHERE u\.role = 'TEACHER'[\s\S]+NOT EXISTS \([\s\S]+st\.school_id = \$1 AND st\.academic_year_id = \$2`).
		WithArgs(int64(10), int64(20)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "email", "password", "first_name", "last_name", "phone", "role", "is_active",
			"student_code", "faculty", "major", "last_login_at", "created_at", "updated_at",
		}).AddRow(int64(5), "elif.demir@school.edu.tr", "", "Elif", "Demir", nil,
			models.RoleTeacher, true, nil, nil, nil, nil, now, now))

	users, err := repo.FindAvailablePool(context.Background(), 10, 20)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Elif", users[0].FirstName)
	assert.Equal(t, models.RoleTeacher, users[0].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Removing a link with active supervised assignments is refused with the
// dependent count; nothing past the count query runs.
func TestSchoolTeacherRepositoryRemoveBlockedByActiveDependents(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewSchoolTeacherRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM school_teachers\s+WHERE id = \$1\s+FOR UPDATE`).
		WithArgs(int64(201)).
		WillReturnRows(lockedSchoolTeacherRow(201, false))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM internship_assignments`).
		WithArgs(int64(3), int64(10), int64(20)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	err = repo.Remove(context.Background(), 201)
	var dependents *apperrors.ActiveDependentsError
	require.ErrorAs(t, err, &dependents)
	assert.Equal(t, 2, dependents.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
