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

// SchoolRepository handles school database operations
type SchoolRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewSchoolRepository creates a new SchoolRepository
func NewSchoolRepository(pool db.Querier) *SchoolRepository {
	return &SchoolRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new school
func (r *SchoolRepository) Create(ctx context.Context, school *models.School) error {
	sql, args, err := r.sb.Insert("schools").
		Columns("code", "name", "address", "phone").
		Values(school.Code, school.Name, school.Address, school.Phone).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create school query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&school.ID, &school.CreatedAt, &school.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "schools_code_key") {
			return apperrors.ErrSchoolAlreadyExists
		}
		logger.Error().Err(err).Str("code", school.Code).Msg("Error creating school")
		return fmt.Errorf("error creating school: %w", err)
	}
	return nil
}

// GetByID retrieves a school by ID
func (r *SchoolRepository) GetByID(ctx context.Context, id int64) (*models.School, error) {
	sql, args, err := r.sb.Select("id", "code", "name", "address", "phone", "created_at", "updated_at").
		From("schools").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get school query: %w", err)
	}

	var school models.School
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&school.ID, &school.Code, &school.Name, &school.Address, &school.Phone,
		&school.CreatedAt, &school.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSchoolNotFound
		}
		return nil, fmt.Errorf("error retrieving school: %w", err)
	}
	return &school, nil
}

// GetAll retrieves all schools ordered by name
func (r *SchoolRepository) GetAll(ctx context.Context) ([]*models.School, error) {
	sql, args, err := r.sb.Select("id", "code", "name", "address", "phone", "created_at", "updated_at").
		From("schools").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get schools query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying schools: %w", err)
	}
	defer rows.Close()

	var schools []*models.School
	for rows.Next() {
		var school models.School
		if err := rows.Scan(
			&school.ID, &school.Code, &school.Name, &school.Address, &school.Phone,
			&school.CreatedAt, &school.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning school: %w", err)
		}
		schools = append(schools, &school)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return schools, nil
}

// Update updates an existing school
func (r *SchoolRepository) Update(ctx context.Context, school *models.School) error {
	sql, args, err := r.sb.Update("schools").
		Set("code", school.Code).
		Set("name", school.Name).
		Set("address", school.Address).
		Set("phone", school.Phone).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": school.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update school query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "schools_code_key") {
			return apperrors.ErrSchoolAlreadyExists
		}
		return fmt.Errorf("error updating school: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSchoolNotFound
	}
	return nil
}

// HasEnrollmentData checks whether any assignment or teacher link references
// the school.
func (r *SchoolRepository) HasEnrollmentData(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM internship_assignments WHERE school_id = $1)
		    OR EXISTS(SELECT 1 FROM school_teachers WHERE school_id = $1)`,
		id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking school relations: %w", err)
	}
	return exists, nil
}

// Delete deletes a school by ID
func (r *SchoolRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM schools WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting school: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSchoolNotFound
	}
	return nil
}
