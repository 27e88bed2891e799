package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talha/internhub/internal/app/models/dto"
	"github.com/talha/internhub/internal/app/services"
	"github.com/talha/internhub/internal/middleware"
)

// EvaluationController handles assignment evaluations
type EvaluationController struct {
	evaluationService *services.EvaluationService
}

// NewEvaluationController creates a new EvaluationController
func NewEvaluationController(evaluationService *services.EvaluationService) *EvaluationController {
	return &EvaluationController{evaluationService: evaluationService}
}

// Create records an evaluation for an assignment
// @Summary Evaluate an assignment
// @Description Records the authenticated teacher's or supervisor's score for an assignment
// @Tags evaluations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param request body dto.CreateEvaluationRequest true "Score and comments"
// @Success 201 {object} dto.APIResponse{data=models.Evaluation} "Evaluation created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data or assignment still pending"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 409 {object} dto.ErrorResponse "Already evaluated by this user"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{id}/evaluations [post]
func (c *EvaluationController) Create(ctx *gin.Context) {
	assignmentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return
	}

	var req dto.CreateEvaluationRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	eval, err := c.evaluationService.Create(ctx, assignmentID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(eval))
}

// ListByAssignment lists the evaluations of an assignment
// @Summary List assignment evaluations
// @Tags evaluations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Evaluation} "Evaluations retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid assignment ID"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{id}/evaluations [get]
func (c *EvaluationController) ListByAssignment(ctx *gin.Context) {
	assignmentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	evals, err := c.evaluationService.ListByAssignment(ctx, assignmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(evals))
}

// Update revises the authenticated evaluator's own evaluation
// @Summary Update an evaluation
// @Tags evaluations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Evaluation ID"
// @Param request body dto.UpdateEvaluationRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Evaluation} "Evaluation updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Not the evaluation's author"
// @Failure 404 {object} dto.ErrorResponse "Evaluation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /evaluations/{id} [put]
func (c *EvaluationController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return
	}

	var req dto.UpdateEvaluationRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	eval, err := c.evaluationService.Update(ctx, id, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(eval))
}

// Delete removes the authenticated evaluator's own evaluation
// @Summary Delete an evaluation
// @Tags evaluations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Evaluation ID"
// @Success 204 "Evaluation deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid evaluation ID"
// @Failure 403 {object} dto.ErrorResponse "Not the evaluation's author"
// @Failure 404 {object} dto.ErrorResponse "Evaluation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /evaluations/{id} [delete]
func (c *EvaluationController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return
	}

	if err := c.evaluationService.Delete(ctx, id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
