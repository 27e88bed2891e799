package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/talha/internhub/internal/app/models"
	"github.com/talha/internhub/internal/db"
	"github.com/talha/internhub/internal/pkg/apperrors"
	"github.com/talha/internhub/internal/pkg/dberrors"
	"github.com/talha/internhub/internal/pkg/logger"
)

// SchoolTeacherRepository handles mentor teacher placement operations.
// Every multi-statement write runs inside a transaction with the quota row
// locked, so capacity counters and the primary-teacher designation stay
// consistent under concurrent requests.
type SchoolTeacherRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewSchoolTeacherRepository creates a new SchoolTeacherRepository
func NewSchoolTeacherRepository(pool db.Querier) *SchoolTeacherRepository {
	return &SchoolTeacherRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const schoolTeacherColumns = "id, teacher_id, school_id, academic_year_id, is_primary, " +
	"max_students, current_students, created_at"

func scanSchoolTeacher(row pgx.Row) (*models.SchoolTeacher, error) {
	var st models.SchoolTeacher
	err := row.Scan(
		&st.ID, &st.TeacherID, &st.SchoolID, &st.AcademicYearID,
		&st.IsPrimary, &st.MaxStudents, &st.CurrentStudents, &st.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// GetByID retrieves a school teacher link by ID
func (r *SchoolTeacherRepository) GetByID(ctx context.Context, id int64) (*models.SchoolTeacher, error) {
	sql, args, err := r.sb.Select(schoolTeacherColumns).
		From("school_teachers").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get school teacher query: %w", err)
	}

	st, err := scanSchoolTeacher(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherLinkNotFound
		}
		return nil, fmt.Errorf("error retrieving school teacher: %w", err)
	}
	return st, nil
}

// Exists checks whether the teacher is already linked to the (school, year) pair.
func (r *SchoolTeacherRepository) Exists(ctx context.Context, teacherID, schoolID, yearID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM school_teachers
			WHERE teacher_id = $1 AND school_id = $2 AND academic_year_id = $3)`,
		teacherID, schoolID, yearID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking school teacher existence: %w", err)
	}
	return exists, nil
}

// Assign links a teacher to a school for a year. Inside one transaction it
// locks the quota row, verifies teacher capacity, clears the previous primary
// when the new link is primary, inserts the row and bumps the counter.
func (r *SchoolTeacherRepository) Assign(ctx context.Context, st *models.SchoolTeacher) (int64, error) {
	var id int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		quota, err := lockQuota(ctx, tx, st.SchoolID, st.AcademicYearID)
		if err != nil {
			return err
		}
		if !quota.HasTeacherCapacity() {
			return apperrors.ErrQuotaExceeded
		}

		if st.IsPrimary {
			if _, err := tx.Exec(ctx, `
				UPDATE school_teachers SET is_primary = FALSE
				WHERE school_id = $1 AND academic_year_id = $2 AND is_primary`,
				st.SchoolID, st.AcademicYearID); err != nil {
				return fmt.Errorf("error clearing primary teacher: %w", err)
			}
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO school_teachers (teacher_id, school_id, academic_year_id, is_primary, max_students)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at`,
			st.TeacherID, st.SchoolID, st.AcademicYearID, st.IsPrimary, st.MaxStudents,
		).Scan(&st.ID, &st.CreatedAt)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "school_teachers_teacher_school_year_key") {
				return apperrors.ErrDuplicateAssignment
			}
			return fmt.Errorf("error inserting school teacher: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			UPDATE school_quotas SET current_teachers = current_teachers + 1
			WHERE id = $1`, quota.ID); err != nil {
			return fmt.Errorf("error incrementing teacher counter: %w", err)
		}

		id = st.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info().
		Int64("teacherId", st.TeacherID).
		Int64("schoolId", st.SchoolID).
		Int64("academicYearId", st.AcademicYearID).
		Msg("Teacher assigned to school")
	return id, nil
}

// Update changes the is_primary flag and/or max_students of a link. Setting
// is_primary runs the clear-then-set sequence inside the transaction.
func (r *SchoolTeacherRepository) Update(ctx context.Context, id int64, isPrimary *bool, maxStudents *int) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		st, err := lockSchoolTeacher(ctx, tx, id)
		if err != nil {
			return err
		}

		if isPrimary != nil && *isPrimary && !st.IsPrimary {
			if _, err := tx.Exec(ctx, `
				UPDATE school_teachers SET is_primary = FALSE
				WHERE school_id = $1 AND academic_year_id = $2 AND is_primary`,
				st.SchoolID, st.AcademicYearID); err != nil {
				return fmt.Errorf("error clearing primary teacher: %w", err)
			}
		}

		update := r.sb.Update("school_teachers").Where(squirrel.Eq{"id": id})
		if isPrimary != nil {
			update = update.Set("is_primary", *isPrimary)
		}
		if maxStudents != nil {
			update = update.Set("max_students", *maxStudents)
		}
		if isPrimary == nil && maxStudents == nil {
			return nil
		}

		sql, args, err := update.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update school teacher query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error updating school teacher: %w", err)
		}
		return nil
	})
}

// SetPrimary designates the link as the primary teacher of its (school, year),
// clearing the previous primary in the same transaction.
func (r *SchoolTeacherRepository) SetPrimary(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		st, err := lockSchoolTeacher(ctx, tx, id)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			UPDATE school_teachers SET is_primary = FALSE
			WHERE school_id = $1 AND academic_year_id = $2 AND is_primary`,
			st.SchoolID, st.AcademicYearID); err != nil {
			return fmt.Errorf("error clearing primary teacher: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			UPDATE school_teachers SET is_primary = TRUE WHERE id = $1`, id); err != nil {
			return fmt.Errorf("error setting primary teacher: %w", err)
		}
		return nil
	})
}

// CountActiveDependents counts active assignments supervised by the linked
// teacher at the link's school and year.
func (r *SchoolTeacherRepository) CountActiveDependents(ctx context.Context, st *models.SchoolTeacher) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM internship_assignments
		WHERE teacher_id = $1 AND school_id = $2 AND academic_year_id = $3 AND status = 'ACTIVE'`,
		st.TeacherID, st.SchoolID, st.AcademicYearID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting active dependents: %w", err)
	}
	return count, nil
}

// Remove deletes a teacher's school link. Inside the transaction the active
// dependent count is re-checked under lock; pending assignments lose their
// teacher reference, and the quota counter is decremented.
func (r *SchoolTeacherRepository) Remove(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		st, err := lockSchoolTeacher(ctx, tx, id)
		if err != nil {
			return err
		}

		var active int
		if err := tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM internship_assignments
			WHERE teacher_id = $1 AND school_id = $2 AND academic_year_id = $3 AND status = 'ACTIVE'`,
			st.TeacherID, st.SchoolID, st.AcademicYearID).Scan(&active); err != nil {
			return fmt.Errorf("error counting active dependents: %w", err)
		}
		if active > 0 {
			return apperrors.NewActiveDependentsError(active)
		}

		// Pending applications stay valid but need a new mentor later.
		if _, err := tx.Exec(ctx, `
			UPDATE internship_assignments SET teacher_id = NULL
			WHERE teacher_id = $1 AND school_id = $2 AND academic_year_id = $3 AND status = 'PENDING'`,
			st.TeacherID, st.SchoolID, st.AcademicYearID); err != nil {
			return fmt.Errorf("error detaching pending assignments: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM school_teachers WHERE id = $1`, id); err != nil {
			return fmt.Errorf("error deleting school teacher: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			UPDATE school_quotas SET current_teachers = GREATEST(current_teachers - 1, 0)
			WHERE school_id = $1 AND academic_year_id = $2`,
			st.SchoolID, st.AcademicYearID); err != nil {
			return fmt.Errorf("error decrementing teacher counter: %w", err)
		}
		return nil
	})
}

// lockSchoolTeacher reads a school teacher row inside tx with a row-level lock.
func lockSchoolTeacher(ctx context.Context, tx pgx.Tx, id int64) (*models.SchoolTeacher, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+schoolTeacherColumns+`
		FROM school_teachers
		WHERE id = $1
		FOR UPDATE`, id)

	st, err := scanSchoolTeacher(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherLinkNotFound
		}
		return nil, fmt.Errorf("error locking school teacher: %w", err)
	}
	return st, nil
}

// FindBySchoolYear returns the teachers linked to a school for a year with
// their user details, primary teacher first, then by name.
func (r *SchoolTeacherRepository) FindBySchoolYear(ctx context.Context, schoolID, yearID int64) ([]*models.SchoolTeacher, error) {
	sql, args, err := r.sb.Select(
		"st.id", "st.teacher_id", "st.school_id", "st.academic_year_id",
		"st.is_primary", "st.max_students", "st.current_students", "st.created_at",
		"u.first_name", "u.last_name", "u.email",
	).
		From("school_teachers st").
		Join("users u ON st.teacher_id = u.id").
		Where(squirrel.Eq{"st.school_id": schoolID, "st.academic_year_id": yearID}).
		OrderBy("st.is_primary DESC", "u.last_name", "u.first_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find teachers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying school teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*models.SchoolTeacher
	for rows.Next() {
		st := &models.SchoolTeacher{Teacher: &models.User{}}
		if err := rows.Scan(
			&st.ID, &st.TeacherID, &st.SchoolID, &st.AcademicYearID,
			&st.IsPrimary, &st.MaxStudents, &st.CurrentStudents, &st.CreatedAt,
			&st.Teacher.FirstName, &st.Teacher.LastName, &st.Teacher.Email); err != nil {
			return nil, fmt.Errorf("error scanning school teacher: %w", err)
		}
		st.Teacher.ID = st.TeacherID
		teachers = append(teachers, st)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return teachers, nil
}

// FindAvailablePool returns teacher-role users not yet linked to the
// (school, year) pair.
func (r *SchoolTeacherRepository) FindAvailablePool(ctx context.Context, schoolID, yearID int64) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users u
		WHERE u.role = 'TEACHER'
		  AND u.is_active
		  AND NOT EXISTS (
			SELECT 1 FROM school_teachers st
			WHERE st.teacher_id = u.id AND st.school_id = $1 AND st.academic_year_id = $2)
		ORDER BY u.last_name, u.first_name`,
		schoolID, yearID)
	if err != nil {
		return nil, fmt.Errorf("error querying available teacher pool: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning teacher: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// GetTeacherStats aggregates a teacher's assignment counts across the schools
// the teacher mentors in the given academic year.
func (r *SchoolTeacherRepository) GetTeacherStats(ctx context.Context, teacherID, yearID int64) (*models.TeacherStats, error) {
	stats := &models.TeacherStats{TeacherID: teacherID, AcademicYearID: yearID}
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(ia.id),
		       COUNT(ia.id) FILTER (WHERE ia.status = 'ACTIVE'),
		       COUNT(ia.id) FILTER (WHERE ia.status = 'COMPLETED')
		FROM school_teachers st
		LEFT JOIN internship_assignments ia
		       ON ia.teacher_id = st.teacher_id
		      AND ia.school_id = st.school_id
		      AND ia.academic_year_id = st.academic_year_id
		WHERE st.teacher_id = $1 AND st.academic_year_id = $2`,
		teacherID, yearID).Scan(
		&stats.TotalAssignments, &stats.ActiveStudents, &stats.CompletedStudents)
	if err != nil {
		return nil, fmt.Errorf("error aggregating teacher stats: %w", err)
	}
	return stats, nil
}
