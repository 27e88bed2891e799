package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/talha/internhub/internal/app/models"
	"github.com/talha/internhub/internal/app/models/dto"
	"github.com/talha/internhub/internal/db"
	"github.com/talha/internhub/internal/pkg/apperrors"
)

const quotaColumns = "id, school_id, academic_year_id, max_students, current_students, " +
	"max_teachers, current_teachers, is_open"

// QuotaRepository handles school quota database operations
type QuotaRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewQuotaRepository creates a new QuotaRepository
func NewQuotaRepository(pool db.Querier) *QuotaRepository {
	return &QuotaRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanQuota(row pgx.Row) (*models.SchoolQuota, error) {
	var quota models.SchoolQuota
	err := row.Scan(
		&quota.ID, &quota.SchoolID, &quota.AcademicYearID,
		&quota.MaxStudents, &quota.CurrentStudents,
		&quota.MaxTeachers, &quota.CurrentTeachers, &quota.IsOpen,
	)
	if err != nil {
		return nil, err
	}
	return &quota, nil
}

// Upsert creates the quota row for (school, year) or updates its capacity
// configuration. Usage counters are never touched here; they move only with
// assignment writes.
func (r *QuotaRepository) Upsert(ctx context.Context, quota *models.SchoolQuota) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO school_quotas (school_id, academic_year_id, max_students, max_teachers, is_open)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT school_quotas_school_year_key
		DO UPDATE SET max_students = EXCLUDED.max_students,
		              max_teachers = EXCLUDED.max_teachers,
		              is_open = EXCLUDED.is_open
		RETURNING id, current_students, current_teachers`,
		quota.SchoolID, quota.AcademicYearID, quota.MaxStudents, quota.MaxTeachers, quota.IsOpen,
	).Scan(&quota.ID, &quota.CurrentStudents, &quota.CurrentTeachers)
	if err != nil {
		return fmt.Errorf("error upserting school quota: %w", err)
	}
	return nil
}

// GetBySchoolYear retrieves the quota for a (school, year) pair.
func (r *QuotaRepository) GetBySchoolYear(ctx context.Context, schoolID, yearID int64) (*models.SchoolQuota, error) {
	sql, args, err := r.sb.Select(quotaColumns).
		From("school_quotas").
		Where(squirrel.Eq{"school_id": schoolID, "academic_year_id": yearID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get quota query: %w", err)
	}

	quota, err := scanQuota(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuotaNotFound
		}
		return nil, fmt.Errorf("error retrieving school quota: %w", err)
	}
	return quota, nil
}

// lockQuota reads the quota row inside tx with a row-level lock. Callers use
// this to serialize capacity checks against concurrent assignment writes.
func lockQuota(ctx context.Context, tx pgx.Tx, schoolID, yearID int64) (*models.SchoolQuota, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+quotaColumns+`
		FROM school_quotas
		WHERE school_id = $1 AND academic_year_id = $2
		FOR UPDATE`,
		schoolID, yearID)

	quota, err := scanQuota(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuotaNotFound
		}
		return nil, fmt.Errorf("error locking school quota: %w", err)
	}
	return quota, nil
}

// SetOpen toggles whether a school accepts enrollments for a year.
func (r *QuotaRepository) SetOpen(ctx context.Context, schoolID, yearID int64, open bool) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE school_quotas SET is_open = $3
		WHERE school_id = $1 AND academic_year_id = $2`,
		schoolID, yearID, open)
	if err != nil {
		return fmt.Errorf("error toggling school quota: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuotaNotFound
	}
	return nil
}

// GetAvailability lists the remaining capacity of every school with a quota
// for the given academic year.
func (r *QuotaRepository) GetAvailability(ctx context.Context, yearID int64) ([]*dto.SchoolAvailability, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.code, s.name, s.address, s.phone, s.created_at, s.updated_at,
		       q.academic_year_id, q.max_students, q.current_students,
		       q.max_teachers, q.current_teachers, q.is_open
		FROM school_quotas q
		JOIN schools s ON s.id = q.school_id
		WHERE q.academic_year_id = $1
		ORDER BY s.name`,
		yearID)
	if err != nil {
		return nil, fmt.Errorf("error querying school availability: %w", err)
	}
	defer rows.Close()

	var result []*dto.SchoolAvailability
	for rows.Next() {
		var school models.School
		var avail dto.SchoolAvailability
		if err := rows.Scan(
			&school.ID, &school.Code, &school.Name, &school.Address, &school.Phone,
			&school.CreatedAt, &school.UpdatedAt,
			&avail.AcademicYearID, &avail.MaxStudents, &avail.CurrentStudents,
			&avail.MaxTeachers, &avail.CurrentTeachers, &avail.IsOpen); err != nil {
			return nil, fmt.Errorf("error scanning school availability: %w", err)
		}
		avail.School = &school
		avail.RemainingStudents = avail.MaxStudents - avail.CurrentStudents
		if avail.RemainingStudents < 0 {
			avail.RemainingStudents = 0
		}
		result = append(result, &avail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
