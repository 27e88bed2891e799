package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talha/internhub/internal/app/models/dto"
	"github.com/talha/internhub/internal/app/services"
	"github.com/talha/internhub/internal/middleware"
	"github.com/talha/internhub/internal/pkg/helpers"
)

// CompletionController handles the completion request flow
type CompletionController struct {
	completionService *services.CompletionService
}

// NewCompletionController creates a new CompletionController
func NewCompletionController(completionService *services.CompletionService) *CompletionController {
	return &CompletionController{completionService: completionService}
}

// Request opens a completion request for the student's assignment
// @Summary Request completion
// @Description Lets the authenticated student ask for their active assignment to be marked completed
// @Tags completion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param request body dto.CreateCompletionRequestRequest false "Optional note"
// @Success 201 {object} dto.APIResponse{data=models.CompletionRequest} "Completion requested"
// @Failure 400 {object} dto.ErrorResponse "Assignment not active or invalid data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 409 {object} dto.ErrorResponse "A pending request already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{id}/completion-requests [post]
func (c *CompletionController) Request(ctx *gin.Context) {
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

	var req dto.CreateCompletionRequestRequest
	if ctx.Request.ContentLength > 0 {
		if !middleware.BindAndValidate(ctx, &req) {
			return
		}
	}

	request, err := c.completionService.Request(ctx, assignmentID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(request))
}

// ListPending lists undecided completion requests
// @Summary List pending completion requests
// @Tags completion
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.CompletionRequest} "Requests retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /completion-requests/pending [get]
func (c *CompletionController) ListPending(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	requests, total, err := c.completionService.ListPending(ctx, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(requests,
		helpers.NewPaginationInfo(total, page, size)))
}

// ListByAssignment lists the completion history of an assignment
// @Summary List assignment completion requests
// @Tags completion
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=[]models.CompletionRequest} "Requests retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid assignment ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{id}/completion-requests [get]
func (c *CompletionController) ListByAssignment(ctx *gin.Context) {
	assignmentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	requests, err := c.completionService.ListByAssignment(ctx, assignmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

// Decide records a supervisor's decision on a completion request
// @Summary Decide a completion request
// @Description Approves or rejects the request; approval also marks the assignment completed
// @Tags completion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Completion request ID"
// @Param request body dto.DecideCompletionRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Decision recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Completion request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already decided"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /completion-requests/{id}/decision [put]
func (c *CompletionController) Decide(ctx *gin.Context) {
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

	var req dto.DecideCompletionRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	if err := c.completionService.Decide(ctx, id, userID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Decision recorded"}))
}
