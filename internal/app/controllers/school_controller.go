package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/talha/internhub/internal/app/models/dto"
	"github.com/talha/internhub/internal/app/services"
	"github.com/talha/internhub/internal/middleware"
)

// SchoolController handles school and quota operations
type SchoolController struct {
	schoolService *services.SchoolService
}

// NewSchoolController creates a new SchoolController
func NewSchoolController(schoolService *services.SchoolService) *SchoolController {
	return &SchoolController{schoolService: schoolService}
}

// CreateSchool handles school creation
// @Summary Create a school
// @Tags schools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSchoolRequest true "School information"
// @Success 201 {object} dto.APIResponse{data=models.School} "School created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "School code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/schools [post]
func (c *SchoolController) CreateSchool(ctx *gin.Context) {
	var req dto.CreateSchoolRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	school, err := c.schoolService.CreateSchool(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(school))
}

// GetSchool retrieves a school by ID
// @Summary Get school by ID
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Param id path int true "School ID"
// @Success 200 {object} dto.APIResponse{data=models.School} "School retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid school ID"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schools/{id} [get]
func (c *SchoolController) GetSchool(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	school, err := c.schoolService.GetSchool(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(school))
}

// GetAllSchools lists all schools
// @Summary List schools
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.School} "Schools retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schools [get]
func (c *SchoolController) GetAllSchools(ctx *gin.Context) {
	schools, err := c.schoolService.GetAllSchools(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(schools))
}

// UpdateSchool updates an existing school
// @Summary Update a school
// @Tags schools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param schoolId path int true "School ID"
// @Param request body dto.UpdateSchoolRequest true "School fields to update"
// @Success 200 {object} dto.APIResponse{data=models.School} "School updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Failure 409 {object} dto.ErrorResponse "School code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/schools/{schoolId} [put]
func (c *SchoolController) UpdateSchool(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "schoolId")
	if !ok {
		return
	}

	var req dto.UpdateSchoolRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	school, err := c.schoolService.UpdateSchool(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(school))
}

// DeleteSchool deletes a school without enrollment history
// @Summary Delete a school
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Param schoolId path int true "School ID"
// @Success 204 "School deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid school ID"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Failure 409 {object} dto.ErrorResponse "School has enrollment data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/schools/{schoolId} [delete]
func (c *SchoolController) DeleteSchool(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "schoolId")
	if !ok {
		return
	}

	if err := c.schoolService.DeleteSchool(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// UpsertQuota sets the capacity configuration of a school for a year
// @Summary Configure school quota
// @Description Creates or updates the student/teacher capacity of a school for an academic year
// @Tags schools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param schoolId path int true "School ID"
// @Param request body dto.UpsertQuotaRequest true "Quota configuration"
// @Success 200 {object} dto.APIResponse{data=models.SchoolQuota} "Quota configured"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "School or academic year not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/schools/{schoolId}/quota [put]
func (c *SchoolController) UpsertQuota(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "schoolId")
	if !ok {
		return
	}

	var req dto.UpsertQuotaRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	quota, err := c.schoolService.UpsertQuota(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(quota))
}

// GetQuota retrieves a school's quota for a year
// @Summary Get school quota
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Param id path int true "School ID"
// @Param academicYearId query int true "Academic year ID"
// @Success 200 {object} dto.APIResponse{data=models.SchoolQuota} "Quota retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 404 {object} dto.ErrorResponse "Quota not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schools/{id}/quota [get]
func (c *SchoolController) GetQuota(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	yearID, ok := parseIDQuery(ctx, "academicYearId")
	if !ok {
		return
	}

	quota, err := c.schoolService.GetQuota(ctx, id, yearID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(quota))
}

// SetQuotaOpen opens or closes a school for enrollments
// @Summary Open or close enrollments
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Param schoolId path int true "School ID"
// @Param academicYearId query int true "Academic year ID"
// @Param open query bool true "Whether the school accepts enrollments"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Quota toggled"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 404 {object} dto.ErrorResponse "Quota not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/schools/{schoolId}/quota/open [put]
func (c *SchoolController) SetQuotaOpen(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "schoolId")
	if !ok {
		return
	}
	yearID, ok := parseIDQuery(ctx, "academicYearId")
	if !ok {
		return
	}

	open, err := strconv.ParseBool(ctx.Query("open"))
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid open parameter").
			WithDetails("open must be true or false").
			WithField("open")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	if err := c.schoolService.SetQuotaOpen(ctx, id, yearID, open); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Quota updated"}))
}

// GetAvailability summarizes remaining capacity of every school for a year
// @Summary School availability report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param academicYearId query int true "Academic year ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.SchoolAvailability} "Availability retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/school-availability [get]
func (c *SchoolController) GetAvailability(ctx *gin.Context) {
	yearID, ok := parseIDQuery(ctx, "academicYearId")
	if !ok {
		return
	}

	availability, err := c.schoolService.GetAvailability(ctx, yearID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(availability))
}
