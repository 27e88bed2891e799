package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talha/internhub/internal/app/models/dto"
	"github.com/talha/internhub/internal/app/services"
	"github.com/talha/internhub/internal/middleware"
)

// PlacementController handles mentor teacher and student placement
type PlacementController struct {
	placementService *services.PlacementService
}

// NewPlacementController creates a new PlacementController
func NewPlacementController(placementService *services.PlacementService) *PlacementController {
	return &PlacementController{placementService: placementService}
}

// ListSchoolTeachers lists a school's teachers for a year
// @Summary List school teachers
// @Description Lists the mentor teachers linked to a school for a year, primary teacher first
// @Tags placement
// @Produce json
// @Security BearerAuth
// @Param schoolId path int true "School ID"
// @Param academicYearId query int true "Academic year ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.SchoolTeacherResponse} "Teachers retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/schools/{schoolId}/teachers [get]
func (c *PlacementController) ListSchoolTeachers(ctx *gin.Context) {
	schoolID, ok := parseIDParam(ctx, "schoolId")
	if !ok {
		return
	}
	yearID, ok := parseIDQuery(ctx, "academicYearId")
	if !ok {
		return
	}

	teachers, err := c.placementService.ListSchoolTeachers(ctx, schoolID, yearID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.SchoolTeacherResponse, 0, len(teachers))
	for _, teacher := range teachers {
		responses = append(responses, dto.FromSchoolTeacher(teacher))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}

// AssignTeacher links a mentor teacher to a school
// @Summary Assign a teacher to a school
// @Description Links a teacher-role user to the school for an academic year, respecting teacher quota
// @Tags placement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param schoolId path int true "School ID"
// @Param academicYearId query int true "Academic year ID"
// @Param request body dto.AssignTeacherRequest true "Teacher assignment data"
// @Success 201 {object} dto.APIResponse{data=dto.AssignmentCreatedResponse} "Teacher assigned"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or user is not a teacher"
// @Failure 404 {object} dto.ErrorResponse "School, teacher or quota not found"
// @Failure 409 {object} dto.ErrorResponse "Teacher already assigned or quota exceeded"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/schools/{schoolId}/teachers [post]
func (c *PlacementController) AssignTeacher(ctx *gin.Context) {
	schoolID, ok := parseIDParam(ctx, "schoolId")
	if !ok {
		return
	}
	yearID, ok := parseIDQuery(ctx, "academicYearId")
	if !ok {
		return
	}

	var req dto.AssignTeacherRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	id, err := c.placementService.AssignTeacher(ctx, schoolID, yearID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.AssignmentCreatedResponse{ID: id}))
}

// ListAvailableTeacherPool lists teachers not yet linked to the school
// @Summary List assignable teachers
// @Description Lists teacher-role users not yet linked to the school for the year
// @Tags placement
// @Produce json
// @Security BearerAuth
// @Param schoolId path int true "School ID"
// @Param academicYearId query int true "Academic year ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.UserProfile} "Available teachers retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/schools/{schoolId}/teachers/available [get]
func (c *PlacementController) ListAvailableTeacherPool(ctx *gin.Context) {
	schoolID, ok := parseIDParam(ctx, "schoolId")
	if !ok {
		return
	}
	yearID, ok := parseIDQuery(ctx, "academicYearId")
	if !ok {
		return
	}

	teachers, err := c.placementService.ListAvailableTeacherPool(ctx, schoolID, yearID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	profiles := make([]dto.UserProfile, 0, len(teachers))
	for _, teacher := range teachers {
		profiles = append(profiles, services.ToUserProfile(teacher))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profiles))
}

// UpdateTeacherLink updates a teacher's school link
// @Summary Update a school teacher link
// @Description Changes the primary flag and/or student limit of a teacher's school link
// @Tags placement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "School teacher link ID"
// @Param request body dto.UpdateSchoolTeacherRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.SchoolTeacherResponse} "Link updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Link not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/school-teachers/{id} [put]
func (c *PlacementController) UpdateTeacherLink(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateSchoolTeacherRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	link, err := c.placementService.UpdateTeacherLink(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromSchoolTeacher(link)))
}

// SetPrimaryTeacher designates the school's primary teacher
// @Summary Set primary teacher
// @Description Makes the link the school's primary teacher for its year, demoting the previous one
// @Tags placement
// @Produce json
// @Security BearerAuth
// @Param id path int true "School teacher link ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Primary teacher set"
// @Failure 400 {object} dto.ErrorResponse "Invalid link ID"
// @Failure 404 {object} dto.ErrorResponse "Link not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/school-teachers/{id}/primary [put]
func (c *PlacementController) SetPrimaryTeacher(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.placementService.SetPrimaryTeacher(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Primary teacher updated"}))
}

// RemoveTeacher removes a teacher's school link
// @Summary Remove a teacher from a school
// @Description Removes the link unless active assignments still reference the teacher
// @Tags placement
// @Produce json
// @Security BearerAuth
// @Param id path int true "School teacher link ID"
// @Success 204 "Teacher removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid link ID"
// @Failure 404 {object} dto.ErrorResponse "Link not found"
// @Failure 409 {object} dto.ErrorResponse "Active students still under supervision"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/school-teachers/{id} [delete]
func (c *PlacementController) RemoveTeacher(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.placementService.RemoveTeacher(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AssignStudent places a student at a school
// @Summary Assign a student to a school
// @Description Places a student at the school for an academic year; picks the least-loaded mentor teacher when none is given
// @Tags placement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param schoolId path int true "School ID"
// @Param academicYearId query int true "Academic year ID"
// @Param request body dto.AssignStudentRequest true "Student assignment data"
// @Success 201 {object} dto.APIResponse{data=dto.AssignmentCreatedResponse} "Student assigned"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or user is not a student"
// @Failure 404 {object} dto.ErrorResponse "School, student or quota not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled, quota exceeded or no teacher available"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/schools/{schoolId}/students [post]
func (c *PlacementController) AssignStudent(ctx *gin.Context) {
	schoolID, ok := parseIDParam(ctx, "schoolId")
	if !ok {
		return
	}
	yearID, ok := parseIDQuery(ctx, "academicYearId")
	if !ok {
		return
	}

	var req dto.AssignStudentRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	id, err := c.placementService.AssignStudent(ctx, schoolID, yearID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.AssignmentCreatedResponse{ID: id}))
}

// EnrollSelf places the calling student during the registration window
// @Summary Enroll at a school
// @Description Enrolls the authenticated student at a school for the active academic year while registration is open
// @Tags placement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "School ID"
// @Param request body dto.EnrollRequest false "Optional mentor teacher and notes"
// @Success 201 {object} dto.APIResponse{data=dto.AssignmentCreatedResponse} "Enrolled"
// @Failure 400 {object} dto.ErrorResponse "Registration closed or invalid data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "School or quota not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled or quota exceeded"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schools/{id}/enroll [post]
func (c *PlacementController) EnrollSelf(ctx *gin.Context) {
	schoolID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return
	}

	var req dto.EnrollRequest
	if ctx.Request.ContentLength > 0 {
		if !middleware.BindAndValidate(ctx, &req) {
			return
		}
	}

	id, err := c.placementService.EnrollSelf(ctx, userID, schoolID, req.TeacherID, req.Notes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.AssignmentCreatedResponse{ID: id}))
}

// GetTeacherStats aggregates a teacher's assignment counts for a year
// @Summary Teacher statistics
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param teacherId path int true "Teacher user ID"
// @Param academicYearId query int true "Academic year ID"
// @Success 200 {object} dto.APIResponse{data=models.TeacherStats} "Stats retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters or user is not a teacher"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/teachers/{teacherId}/stats [get]
func (c *PlacementController) GetTeacherStats(ctx *gin.Context) {
	teacherID, ok := parseIDParam(ctx, "teacherId")
	if !ok {
		return
	}
	yearID, ok := parseIDQuery(ctx, "academicYearId")
	if !ok {
		return
	}

	stats, err := c.placementService.GetTeacherStats(ctx, teacherID, yearID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}
