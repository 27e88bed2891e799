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
)

// EvaluationRepository handles evaluation database operations
type EvaluationRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewEvaluationRepository creates a new EvaluationRepository
func NewEvaluationRepository(pool db.Querier) *EvaluationRepository {
	return &EvaluationRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create stores a new evaluation for an assignment.
func (r *EvaluationRepository) Create(ctx context.Context, eval *models.Evaluation) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO evaluations (assignment_id, evaluator_id, score, comments)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		eval.AssignmentID, eval.EvaluatorID, eval.Score, eval.Comments,
	).Scan(&eval.ID, &eval.CreatedAt, &eval.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "evaluations_assignment_evaluator_key") {
			return apperrors.ErrEvaluationAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrAssignmentNotFound
		}
		return fmt.Errorf("error creating evaluation: %w", err)
	}
	return nil
}

// Update rewrites an evaluator's own score and comments.
func (r *EvaluationRepository) Update(ctx context.Context, eval *models.Evaluation) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE evaluations SET score = $3, comments = $4, updated_at = $5
		WHERE id = $1 AND evaluator_id = $2`,
		eval.ID, eval.EvaluatorID, eval.Score, eval.Comments, time.Now())
	if err != nil {
		return fmt.Errorf("error updating evaluation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEvaluationNotFound
	}
	return nil
}

// GetByID retrieves a single evaluation.
func (r *EvaluationRepository) GetByID(ctx context.Context, id int64) (*models.Evaluation, error) {
	var eval models.Evaluation
	err := r.db.QueryRow(ctx, `
		SELECT id, assignment_id, evaluator_id, score, comments, created_at, updated_at
		FROM evaluations WHERE id = $1`, id).Scan(
		&eval.ID, &eval.AssignmentID, &eval.EvaluatorID, &eval.Score, &eval.Comments,
		&eval.CreatedAt, &eval.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("error retrieving evaluation: %w", err)
	}
	return &eval, nil
}

// ListByAssignment retrieves every evaluation of an assignment together with
// the evaluator's identity, newest first.
func (r *EvaluationRepository) ListByAssignment(ctx context.Context, assignmentID int64) ([]*models.Evaluation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.assignment_id, e.evaluator_id, e.score, e.comments,
		       e.created_at, e.updated_at,
		       u.id, u.email, u.first_name, u.last_name, u.role
		FROM evaluations e
		JOIN users u ON u.id = e.evaluator_id
		WHERE e.assignment_id = $1
		ORDER BY e.created_at DESC`,
		assignmentID)
	if err != nil {
		return nil, fmt.Errorf("error querying evaluations: %w", err)
	}
	defer rows.Close()

	var evals []*models.Evaluation
	for rows.Next() {
		var eval models.Evaluation
		var evaluator models.User
		if err := rows.Scan(
			&eval.ID, &eval.AssignmentID, &eval.EvaluatorID, &eval.Score, &eval.Comments,
			&eval.CreatedAt, &eval.UpdatedAt,
			&evaluator.ID, &evaluator.Email, &evaluator.FirstName, &evaluator.LastName,
			&evaluator.Role); err != nil {
			return nil, fmt.Errorf("error scanning evaluation: %w", err)
		}
		eval.Evaluator = &evaluator
		evals = append(evals, &eval)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return evals, nil
}

// AverageScore returns the mean score of an assignment's evaluations, or nil
// when it has none.
func (r *EvaluationRepository) AverageScore(ctx context.Context, assignmentID int64) (*float64, error) {
	var avg *float64
	err := r.db.QueryRow(ctx, `
		SELECT AVG(score)::FLOAT8 FROM evaluations WHERE assignment_id = $1`,
		assignmentID).Scan(&avg)
	if err != nil {
		return nil, fmt.Errorf("error computing average score: %w", err)
	}
	return avg, nil
}

// Delete removes an evaluation.
func (r *EvaluationRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM evaluations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting evaluation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEvaluationNotFound
	}
	return nil
}
