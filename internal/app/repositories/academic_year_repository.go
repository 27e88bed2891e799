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
)

const academicYearColumns = "id, year, semester, start_date, end_date, " +
	"registration_start, registration_end, is_active, created_at"

// AcademicYearRepository handles academic year database operations
type AcademicYearRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewAcademicYearRepository creates a new AcademicYearRepository
func NewAcademicYearRepository(pool db.Querier) *AcademicYearRepository {
	return &AcademicYearRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanAcademicYear(row pgx.Row) (*models.AcademicYear, error) {
	var year models.AcademicYear
	err := row.Scan(
		&year.ID, &year.Year, &year.Semester, &year.StartDate, &year.EndDate,
		&year.RegistrationStart, &year.RegistrationEnd, &year.IsActive, &year.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &year, nil
}

// Create creates a new academic year (inactive by default)
func (r *AcademicYearRepository) Create(ctx context.Context, year *models.AcademicYear) error {
	sql, args, err := r.sb.Insert("academic_years").
		Columns("year", "semester", "start_date", "end_date", "registration_start", "registration_end").
		Values(year.Year, year.Semester, year.StartDate, year.EndDate,
			year.RegistrationStart, year.RegistrationEnd).
		Suffix("RETURNING id, is_active, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create academic year query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&year.ID, &year.IsActive, &year.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "academic_years_year_semester_key") {
			return apperrors.ErrAcademicYearExists
		}
		return fmt.Errorf("error creating academic year: %w", err)
	}
	return nil
}

// GetByID retrieves an academic year by ID
func (r *AcademicYearRepository) GetByID(ctx context.Context, id int64) (*models.AcademicYear, error) {
	sql, args, err := r.sb.Select(academicYearColumns).
		From("academic_years").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get academic year query: %w", err)
	}

	year, err := scanAcademicYear(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAcademicYearNotFound
		}
		return nil, fmt.Errorf("error retrieving academic year: %w", err)
	}
	return year, nil
}

// GetAll retrieves all academic years, newest first
func (r *AcademicYearRepository) GetAll(ctx context.Context) ([]*models.AcademicYear, error) {
	sql, args, err := r.sb.Select(academicYearColumns).
		From("academic_years").
		OrderBy("start_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get academic years query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying academic years: %w", err)
	}
	defer rows.Close()

	var years []*models.AcademicYear
	for rows.Next() {
		year, err := scanAcademicYear(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning academic year: %w", err)
		}
		years = append(years, year)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return years, nil
}

// GetActive retrieves the currently active academic year.
func (r *AcademicYearRepository) GetActive(ctx context.Context) (*models.AcademicYear, error) {
	sql, args, err := r.sb.Select(academicYearColumns).
		From("academic_years").
		Where(squirrel.Eq{"is_active": true}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get active year query: %w", err)
	}

	year, err := scanAcademicYear(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoActiveAcademicYear
		}
		return nil, fmt.Errorf("error retrieving active academic year: %w", err)
	}
	return year, nil
}

// Activate marks the given year active and deactivates every other year in
// a single transaction, so at most one row is ever active.
func (r *AcademicYearRepository) Activate(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx,
			`UPDATE academic_years SET is_active = TRUE WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error activating academic year: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrAcademicYearNotFound
		}

		if _, err := tx.Exec(ctx,
			`UPDATE academic_years SET is_active = FALSE WHERE id != $1 AND is_active`, id); err != nil {
			return fmt.Errorf("error deactivating other academic years: %w", err)
		}
		return nil
	})
}

// Update updates the dates and labels of an academic year
func (r *AcademicYearRepository) Update(ctx context.Context, year *models.AcademicYear) error {
	sql, args, err := r.sb.Update("academic_years").
		Set("year", year.Year).
		Set("semester", year.Semester).
		Set("start_date", year.StartDate).
		Set("end_date", year.EndDate).
		Set("registration_start", year.RegistrationStart).
		Set("registration_end", year.RegistrationEnd).
		Where(squirrel.Eq{"id": year.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update academic year query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "academic_years_year_semester_key") {
			return apperrors.ErrAcademicYearExists
		}
		return fmt.Errorf("error updating academic year: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAcademicYearNotFound
	}
	return nil
}

// Delete deletes an academic year by ID
func (r *AcademicYearRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM academic_years WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting academic year: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAcademicYearNotFound
	}
	return nil
}
