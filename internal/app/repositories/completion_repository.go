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
)

const completionColumns = "id, assignment_id, student_id, decision, decided_by, decided_at, note, created_at"

// CompletionRepository handles completion request database operations
type CompletionRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewCompletionRepository creates a new CompletionRepository
func NewCompletionRepository(pool db.Querier) *CompletionRepository {
	return &CompletionRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCompletionRequest(row pgx.Row) (*models.CompletionRequest, error) {
	var req models.CompletionRequest
	err := row.Scan(
		&req.ID, &req.AssignmentID, &req.StudentID, &req.Decision,
		&req.DecidedBy, &req.DecidedAt, &req.Note, &req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create files a completion request for an active assignment. The assignment
// row is locked so a concurrent cancellation cannot slip between the status
// check and the insert.
func (r *CompletionRepository) Create(ctx context.Context, req *models.CompletionRequest) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var status models.AssignmentStatus
		var studentID int64
		err := tx.QueryRow(ctx, `
			SELECT status, student_id FROM internship_assignments
			WHERE id = $1 FOR UPDATE`,
			req.AssignmentID).Scan(&status, &studentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrAssignmentNotFound
			}
			return fmt.Errorf("error locking assignment: %w", err)
		}
		if status != models.StatusActive {
			return apperrors.ErrAssignmentNotActive
		}
		if studentID != req.StudentID {
			return apperrors.ErrAssignmentNotFound
		}

		var pending bool
		if err := tx.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM completion_requests
			WHERE assignment_id = $1 AND decision = 'PENDING')`,
			req.AssignmentID).Scan(&pending); err != nil {
			return fmt.Errorf("error checking pending requests: %w", err)
		}
		if pending {
			return apperrors.ErrCompletionAlreadyRequested
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO completion_requests (assignment_id, student_id, note)
			VALUES ($1, $2, $3)
			RETURNING id, decision, created_at`,
			req.AssignmentID, req.StudentID, req.Note,
		).Scan(&req.ID, &req.Decision, &req.CreatedAt)
		if err != nil {
			return fmt.Errorf("error creating completion request: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a completion request.
func (r *CompletionRepository) GetByID(ctx context.Context, id int64) (*models.CompletionRequest, error) {
	req, err := scanCompletionRequest(r.db.QueryRow(ctx, `
		SELECT `+completionColumns+` FROM completion_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompletionRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving completion request: %w", err)
	}
	return req, nil
}

// ListPending retrieves undecided completion requests, oldest first.
func (r *CompletionRepository) ListPending(ctx context.Context, offset uint64, limit int) ([]*models.CompletionRequest, int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+completionColumns+`, COUNT(*) OVER() AS total_count
		FROM completion_requests
		WHERE decision = 'PENDING'
		ORDER BY created_at ASC
		OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying completion requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.CompletionRequest
	var total int64
	for rows.Next() {
		var req models.CompletionRequest
		if err := rows.Scan(
			&req.ID, &req.AssignmentID, &req.StudentID, &req.Decision,
			&req.DecidedBy, &req.DecidedAt, &req.Note, &req.CreatedAt,
			&total); err != nil {
			return nil, 0, fmt.Errorf("error scanning completion request: %w", err)
		}
		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// ListByAssignment retrieves the completion history of an assignment.
func (r *CompletionRepository) ListByAssignment(ctx context.Context, assignmentID int64) ([]*models.CompletionRequest, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+completionColumns+` FROM completion_requests
		WHERE assignment_id = $1
		ORDER BY created_at DESC`,
		assignmentID)
	if err != nil {
		return nil, fmt.Errorf("error querying completion requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.CompletionRequest
	for rows.Next() {
		req, err := scanCompletionRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning completion request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

// Decide records a supervisor's decision. An approval also moves the
// assignment to COMPLETED within the same transaction, so the request and the
// assignment can never disagree.
func (r *CompletionRepository) Decide(ctx context.Context, id, deciderID int64, decision models.CompletionDecision, note *string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		req, err := scanCompletionRequest(tx.QueryRow(ctx, `
			SELECT `+completionColumns+` FROM completion_requests
			WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrCompletionRequestNotFound
			}
			return fmt.Errorf("error locking completion request: %w", err)
		}
		if req.Decision != models.CompletionPending {
			return apperrors.ErrCompletionAlreadyDecided
		}

		if _, err := tx.Exec(ctx, `
			UPDATE completion_requests
			SET decision = $2, decided_by = $3, decided_at = $4, note = COALESCE($5, note)
			WHERE id = $1`,
			id, decision, deciderID, time.Now(), note); err != nil {
			return fmt.Errorf("error deciding completion request: %w", err)
		}

		if decision != models.CompletionApproved {
			return nil
		}

		var status models.AssignmentStatus
		err = tx.QueryRow(ctx, `
			SELECT status FROM internship_assignments WHERE id = $1 FOR UPDATE`,
			req.AssignmentID).Scan(&status)
		if err != nil {
			return fmt.Errorf("error locking assignment: %w", err)
		}
		if !status.CanTransitionTo(models.StatusCompleted) {
			return apperrors.ErrInvalidStatusChange
		}

		if _, err := tx.Exec(ctx, `
			UPDATE internship_assignments SET status = $2, updated_at = $3
			WHERE id = $1`,
			req.AssignmentID, models.StatusCompleted, time.Now()); err != nil {
			return fmt.Errorf("error completing assignment: %w", err)
		}
		return nil
	})
}
