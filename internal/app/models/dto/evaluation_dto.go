package dto

// CreateEvaluationRequest is the payload for scoring an assignment
type CreateEvaluationRequest struct {
	Score    int     `json:"score" binding:"min=0,max=100" validate:"min=0,max=100"`
	Comments *string `json:"comments,omitempty"`
}

// UpdateEvaluationRequest is the payload for revising an evaluation
type UpdateEvaluationRequest struct {
	Score    *int    `json:"score,omitempty" validate:"omitempty,min=0,max=100"`
	Comments *string `json:"comments,omitempty"`
}

// CreateCompletionRequestRequest opens a completion request for an assignment
type CreateCompletionRequestRequest struct {
	Note *string `json:"note,omitempty"`
}

// DecideCompletionRequest records a supervisor's decision
type DecideCompletionRequest struct {
	Approve bool    `json:"approve"`
	Note    *string `json:"note,omitempty"`
}
