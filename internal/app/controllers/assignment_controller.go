package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/talha/internhub/internal/app/models"
	"github.com/talha/internhub/internal/app/models/dto"
	"github.com/talha/internhub/internal/app/repositories"
	"github.com/talha/internhub/internal/app/services"
	"github.com/talha/internhub/internal/middleware"
	"github.com/talha/internhub/internal/pkg/helpers"
)

// AssignmentController handles assignment reads and status transitions
type AssignmentController struct {
	assignmentService *services.AssignmentService
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService *services.AssignmentService) *AssignmentController {
	return &AssignmentController{assignmentService: assignmentService}
}

// List lists assignments with filters and pagination
// @Summary List assignments
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param studentId query int false "Filter by student"
// @Param teacherId query int false "Filter by mentor teacher"
// @Param schoolId query int false "Filter by school"
// @Param academicYearId query int false "Filter by academic year"
// @Param status query string false "Filter by status" Enums(PENDING, ACTIVE, COMPLETED, CANCELLED)
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.InternshipAssignment} "Assignments retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments [get]
func (c *AssignmentController) List(ctx *gin.Context) {
	filter, ok := parseAssignmentFilter(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	assignments, total, err := c.assignmentService.List(ctx, filter, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(assignments,
		helpers.NewPaginationInfo(total, page, size)))
}

// GetByID retrieves an assignment with its related records
// @Summary Get assignment by ID
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=models.InternshipAssignment} "Assignment retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid assignment ID"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{id} [get]
func (c *AssignmentController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	assignment, err := c.assignmentService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(assignment))
}

// UpdateStatus transitions an assignment through the status machine
// @Summary Change assignment status
// @Description Applies a status transition; cancelling releases the school's and teacher's capacity
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param request body dto.UpdateAssignmentStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 409 {object} dto.ErrorResponse "Illegal status transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{id}/status [put]
func (c *AssignmentController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAssignmentStatusRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	if err := c.assignmentService.UpdateStatus(ctx, id, models.AssignmentStatus(req.Status)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Status updated"}))
}

func parseAssignmentFilter(ctx *gin.Context) (repositories.AssignmentFilter, bool) {
	var filter repositories.AssignmentFilter

	for name, target := range map[string]**int64{
		"studentId":      &filter.StudentID,
		"teacherId":      &filter.TeacherID,
		"schoolId":       &filter.SchoolID,
		"academicYearId": &filter.AcademicYearID,
	} {
		value := ctx.Query(name)
		if value == "" {
			continue
		}
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil || id <= 0 {
			detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
				WithField(name)
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
			return filter, false
		}
		*target = &id
	}

	if value := ctx.Query("status"); value != "" {
		status := models.AssignmentStatus(value)
		if !status.Valid() {
			detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status").
				WithField("status")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
			return filter, false
		}
		filter.Status = &status
	}
	return filter, true
}
