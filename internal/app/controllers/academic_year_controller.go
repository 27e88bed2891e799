package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talha/internhub/internal/app/models/dto"
	"github.com/talha/internhub/internal/app/services"
	"github.com/talha/internhub/internal/middleware"
)

// AcademicYearController handles academic year operations
type AcademicYearController struct {
	yearService *services.AcademicYearService
}

// NewAcademicYearController creates a new AcademicYearController
func NewAcademicYearController(yearService *services.AcademicYearService) *AcademicYearController {
	return &AcademicYearController{yearService: yearService}
}

// Create handles academic year creation
// @Summary Create an academic year
// @Tags academic-years
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAcademicYearRequest true "Academic year data"
// @Success 201 {object} dto.APIResponse{data=models.AcademicYear} "Academic year created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Year and semester already exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/academic-years [post]
func (c *AcademicYearController) Create(ctx *gin.Context) {
	var req dto.CreateAcademicYearRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	year, err := c.yearService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(year))
}

// GetAll lists all academic years
// @Summary List academic years
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.AcademicYear} "Academic years retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic-years [get]
func (c *AcademicYearController) GetAll(ctx *gin.Context) {
	years, err := c.yearService.GetAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(years))
}

// GetActive returns the currently active academic year
// @Summary Get active academic year
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.AcademicYear} "Active year retrieved"
// @Failure 404 {object} dto.ErrorResponse "No active academic year"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic-years/active [get]
func (c *AcademicYearController) GetActive(ctx *gin.Context) {
	year, err := c.yearService.GetActive(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(year))
}

// GetByID retrieves an academic year
// @Summary Get academic year by ID
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Success 200 {object} dto.APIResponse{data=models.AcademicYear} "Academic year retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid academic year ID"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /academic-years/{id} [get]
func (c *AcademicYearController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	year, err := c.yearService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(year))
}

// Activate marks an academic year active
// @Summary Activate an academic year
// @Description Marks the year active and deactivates every other year
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Academic year activated"
// @Failure 400 {object} dto.ErrorResponse "Invalid academic year ID"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/academic-years/{id}/activate [put]
func (c *AcademicYearController) Activate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.yearService.Activate(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Academic year activated"}))
}

// Update updates an academic year
// @Summary Update an academic year
// @Tags academic-years
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Param request body dto.UpdateAcademicYearRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.AcademicYear} "Academic year updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Failure 409 {object} dto.ErrorResponse "Year and semester already exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/academic-years/{id} [put]
func (c *AcademicYearController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAcademicYearRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	year, err := c.yearService.Update(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(year))
}

// Delete removes an academic year
// @Summary Delete an academic year
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Success 204 "Academic year deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid academic year ID"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/academic-years/{id} [delete]
func (c *AcademicYearController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.yearService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
