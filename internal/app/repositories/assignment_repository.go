package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/talha/internhub/internal/app/models"
	"github.com/talha/internhub/internal/db"
	"github.com/talha/internhub/internal/pkg/apperrors"
	"github.com/talha/internhub/internal/pkg/dberrors"
	"github.com/talha/internhub/internal/pkg/logger"
)

// AssignmentRepository handles internship assignment database operations
type AssignmentRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(pool db.Querier) *AssignmentRepository {
	return &AssignmentRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const assignmentColumns = "id, student_id, school_id, academic_year_id, teacher_id, status, " +
	"enrollment_date, start_date, end_date, notes, created_at, updated_at"

func scanAssignment(row pgx.Row) (*models.InternshipAssignment, error) {
	var a models.InternshipAssignment
	err := row.Scan(
		&a.ID, &a.StudentID, &a.SchoolID, &a.AcademicYearID, &a.TeacherID, &a.Status,
		&a.EnrollmentDate, &a.StartDate, &a.EndDate, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create places a student at a school for an academic year. Inside one
// transaction it locks the quota row, verifies the school is open and has
// capacity, resolves the mentor teacher (locking the teacher row, picking the
// least-loaded one when none was requested), inserts the assignment and bumps
// both counters.
func (r *AssignmentRepository) Create(ctx context.Context, a *models.InternshipAssignment) (int64, error) {
	var id int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		quota, err := lockQuota(ctx, tx, a.SchoolID, a.AcademicYearID)
		if err != nil {
			return err
		}
		if !quota.IsOpen {
			return apperrors.ErrQuotaClosed
		}
		if quota.CurrentStudents >= quota.MaxStudents {
			return apperrors.ErrQuotaExceeded
		}

		teacherLinkID, err := r.resolveTeacher(ctx, tx, a)
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO internship_assignments
				(student_id, school_id, academic_year_id, teacher_id, status, notes)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, enrollment_date, created_at, updated_at`,
			a.StudentID, a.SchoolID, a.AcademicYearID, a.TeacherID, a.Status, a.Notes,
		).Scan(&a.ID, &a.EnrollmentDate, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "internship_assignments_student_year_key") {
				return apperrors.ErrStudentAlreadyEnrolled
			}
			return fmt.Errorf("error inserting assignment: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			UPDATE school_quotas SET current_students = current_students + 1
			WHERE id = $1`, quota.ID); err != nil {
			return fmt.Errorf("error incrementing student counter: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			UPDATE school_teachers SET current_students = current_students + 1
			WHERE id = $1`, teacherLinkID); err != nil {
			return fmt.Errorf("error incrementing teacher load: %w", err)
		}

		id = a.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info().
		Int64("studentId", a.StudentID).
		Int64("schoolId", a.SchoolID).
		Int64("academicYearId", a.AcademicYearID).
		Msg("Student assigned to school")
	return id, nil
}

// resolveTeacher locks and validates the requested mentor teacher link, or
// picks the least-loaded one with remaining capacity and writes the chosen
// teacher back onto the assignment. Returns the locked school_teachers row id.
func (r *AssignmentRepository) resolveTeacher(ctx context.Context, tx pgx.Tx, a *models.InternshipAssignment) (int64, error) {
	if a.TeacherID != nil {
		var linkID int64
		var current, max int
		err := tx.QueryRow(ctx, `
			SELECT id, current_students, max_students FROM school_teachers
			WHERE teacher_id = $1 AND school_id = $2 AND academic_year_id = $3
			FOR UPDATE`,
			*a.TeacherID, a.SchoolID, a.AcademicYearID).Scan(&linkID, &current, &max)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, apperrors.ErrTeacherLinkNotFound
			}
			return 0, fmt.Errorf("error locking teacher link: %w", err)
		}
		if current >= max {
			return 0, apperrors.ErrTeacherAtCapacity
		}
		return linkID, nil
	}

	// Least loaded first; primary wins ties.
	var linkID, teacherID int64
	err := tx.QueryRow(ctx, `
		SELECT id, teacher_id FROM school_teachers
		WHERE school_id = $1 AND academic_year_id = $2 AND current_students < max_students
		ORDER BY current_students ASC, is_primary DESC, id ASC
		LIMIT 1
		FOR UPDATE`,
		a.SchoolID, a.AcademicYearID).Scan(&linkID, &teacherID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNoAvailableTeacher
		}
		return 0, fmt.Errorf("error selecting available teacher: %w", err)
	}
	a.TeacherID = &teacherID
	return linkID, nil
}

// GetByID retrieves an assignment with its student, teacher and school names.
func (r *AssignmentRepository) GetByID(ctx context.Context, id int64) (*models.InternshipAssignment, error) {
	a, err := scanAssignment(r.db.QueryRow(ctx, `
		SELECT `+assignmentColumns+` FROM internship_assignments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error retrieving assignment: %w", err)
	}
	return a, nil
}

// AssignmentFilter narrows List results.
type AssignmentFilter struct {
	StudentID      *int64
	TeacherID      *int64
	SchoolID       *int64
	AcademicYearID *int64
	Status         *models.AssignmentStatus
}

// List retrieves assignments matching the filter with pagination, newest first.
func (r *AssignmentRepository) List(ctx context.Context, filter AssignmentFilter, offset uint64, limit int) ([]*models.InternshipAssignment, int64, error) {
	where := squirrel.And{}
	if filter.StudentID != nil {
		where = append(where, squirrel.Eq{"student_id": *filter.StudentID})
	}
	if filter.TeacherID != nil {
		where = append(where, squirrel.Eq{"teacher_id": *filter.TeacherID})
	}
	if filter.SchoolID != nil {
		where = append(where, squirrel.Eq{"school_id": *filter.SchoolID})
	}
	if filter.AcademicYearID != nil {
		where = append(where, squirrel.Eq{"academic_year_id": *filter.AcademicYearID})
	}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": *filter.Status})
	}

	builder := r.sb.Select(assignmentColumns, "COUNT(*) OVER() AS total_count").
		From("internship_assignments").
		OrderBy("enrollment_date DESC", "id DESC").
		Offset(offset).
		Limit(uint64(limit))
	if len(where) > 0 {
		builder = builder.Where(where)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list assignments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.InternshipAssignment
	var total int64
	for rows.Next() {
		var a models.InternshipAssignment
		if err := rows.Scan(
			&a.ID, &a.StudentID, &a.SchoolID, &a.AcademicYearID, &a.TeacherID, &a.Status,
			&a.EnrollmentDate, &a.StartDate, &a.EndDate, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
			&total); err != nil {
			return nil, 0, fmt.Errorf("error scanning assignment: %w", err)
		}
		assignments = append(assignments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return assignments, total, nil
}

// UpdateStatus transitions an assignment. An activation re-matches a mentor
// under a row lock when the assignment lost its teacher (mentor removal
// detaches pending rows); a cancellation releases the school's and teacher's
// capacity in the same transaction; a completion keeps the slots counted for
// the year.
func (r *AssignmentRepository) UpdateStatus(ctx context.Context, id int64, status models.AssignmentStatus) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		a, err := scanAssignment(tx.QueryRow(ctx, `
			SELECT `+assignmentColumns+` FROM internship_assignments WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrAssignmentNotFound
			}
			return fmt.Errorf("error locking assignment: %w", err)
		}

		if !a.Status.CanTransitionTo(status) {
			return apperrors.ErrInvalidStatusChange
		}

		if status == models.StatusActive && a.TeacherID == nil {
			linkID, err := r.resolveTeacher(ctx, tx, a)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `
				UPDATE internship_assignments SET teacher_id = $2 WHERE id = $1`,
				id, *a.TeacherID); err != nil {
				return fmt.Errorf("error attaching mentor: %w", err)
			}
			if _, err := tx.Exec(ctx, `
				UPDATE school_teachers SET current_students = current_students + 1
				WHERE id = $1`, linkID); err != nil {
				return fmt.Errorf("error incrementing teacher load: %w", err)
			}
		}

		if _, err := tx.Exec(ctx, `
			UPDATE internship_assignments SET status = $2, updated_at = $3 WHERE id = $1`,
			id, status, time.Now()); err != nil {
			return fmt.Errorf("error updating assignment status: %w", err)
		}

		if status == models.StatusCancelled {
			if _, err := tx.Exec(ctx, `
				UPDATE school_quotas SET current_students = GREATEST(current_students - 1, 0)
				WHERE school_id = $1 AND academic_year_id = $2`,
				a.SchoolID, a.AcademicYearID); err != nil {
				return fmt.Errorf("error releasing school capacity: %w", err)
			}
			if a.TeacherID != nil {
				if _, err := tx.Exec(ctx, `
					UPDATE school_teachers SET current_students = GREATEST(current_students - 1, 0)
					WHERE teacher_id = $1 AND school_id = $2 AND academic_year_id = $3`,
					*a.TeacherID, a.SchoolID, a.AcademicYearID); err != nil {
					return fmt.Errorf("error releasing teacher capacity: %w", err)
				}
			}
		}
		return nil
	})
}

// SetDates updates the internship start/end dates.
func (r *AssignmentRepository) SetDates(ctx context.Context, id int64, start, end *time.Time) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE internship_assignments SET start_date = $2, end_date = $3, updated_at = NOW()
		WHERE id = $1`, id, start, end)
	if err != nil {
		return fmt.Errorf("error updating assignment dates: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}
