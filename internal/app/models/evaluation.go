package models

import "time"

// Evaluation is a mentor teacher's or supervisor's scoring of an internship
// assignment, based on the 'evaluations' table. One evaluation per evaluator
// per assignment.
type Evaluation struct {
	ID           int64     `json:"id" db:"id"`
	AssignmentID int64     `json:"assignmentId" db:"assignment_id"`
	EvaluatorID  int64     `json:"evaluatorId" db:"evaluator_id"`
	Score        int       `json:"score" db:"score"` // 0-100
	Comments     *string   `json:"comments,omitempty" db:"comments"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	Evaluator *User `json:"evaluator,omitempty"`
}

// CompletionRequest is a student's request to mark an active assignment as
// completed, decided by a supervisor, based on the 'completion_requests' table.
type CompletionRequest struct {
	ID           int64              `json:"id" db:"id"`
	AssignmentID int64              `json:"assignmentId" db:"assignment_id"`
	StudentID    int64              `json:"studentId" db:"student_id"`
	Decision     CompletionDecision `json:"decision" db:"decision"`
	DecidedBy    *int64             `json:"decidedBy,omitempty" db:"decided_by"`
	DecidedAt    *time.Time         `json:"decidedAt,omitempty" db:"decided_at"`
	Note         *string            `json:"note,omitempty" db:"note"`
	CreatedAt    time.Time          `json:"createdAt" db:"created_at"`
}
