package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/talha/internhub/internal/app/controllers"
	"github.com/talha/internhub/internal/app/models"
	"github.com/talha/internhub/internal/middleware"
)

// Controllers bundles every controller the router needs.
type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	School       *controllers.SchoolController
	AcademicYear *controllers.AcademicYearController
	Placement    *controllers.PlacementController
	Assignment   *controllers.AssignmentController
	Evaluation   *controllers.EvaluationController
	Completion   *controllers.CompletionController
}

// SetupRouter configures all application routes.
//
// The by-id school teacher routes live under /admin/school-teachers instead
// of /admin/schools/teachers because gin's route tree cannot mix a wildcard
// and a literal at the same path position.
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	admin := string(models.RoleAdmin)
	teacher := string(models.RoleTeacher)
	supervisor := string(models.RoleSupervisor)
	student := string(models.RoleStudent)

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register/student", c.Auth.RegisterStudent)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", c.Auth.Logout)

		users := authenticated.Group("/users")
		{
			users.GET("/me", c.User.GetProfile)
			users.PUT("/me", c.User.UpdateProfile)
		}

		schools := authenticated.Group("/schools")
		{
			schools.GET("", c.School.GetAllSchools)
			schools.GET("/:id", c.School.GetSchool)
			schools.GET("/:id/quota", c.School.GetQuota)

			schoolsStudent := schools.Group("")
			schoolsStudent.Use(authMiddleware.RoleRequired(student))
			{
				// :id is the school here; gin requires one wildcard name per position
				schoolsStudent.POST("/:id/enroll", c.Placement.EnrollSelf)
			}
		}

		years := authenticated.Group("/academic-years")
		{
			years.GET("", c.AcademicYear.GetAll)
			years.GET("/active", c.AcademicYear.GetActive)
			years.GET("/:id", c.AcademicYear.GetByID)
		}

		assignments := authenticated.Group("/assignments")
		{
			assignments.GET("", c.Assignment.List)
			assignments.GET("/:id", c.Assignment.GetByID)
			assignments.GET("/:id/evaluations", c.Evaluation.ListByAssignment)
			assignments.GET("/:id/completion-requests", c.Completion.ListByAssignment)

			assignmentsStaff := assignments.Group("")
			assignmentsStaff.Use(authMiddleware.RoleRequired(teacher, supervisor, admin))
			{
				assignmentsStaff.PUT("/:id/status", c.Assignment.UpdateStatus)
				assignmentsStaff.POST("/:id/evaluations", c.Evaluation.Create)
			}

			assignmentsStudent := assignments.Group("")
			assignmentsStudent.Use(authMiddleware.RoleRequired(student))
			{
				assignmentsStudent.POST("/:id/completion-requests", c.Completion.Request)
			}
		}

		evaluations := authenticated.Group("/evaluations")
		evaluations.Use(authMiddleware.RoleRequired(teacher, supervisor))
		{
			evaluations.PUT("/:id", c.Evaluation.Update)
			evaluations.DELETE("/:id", c.Evaluation.Delete)
		}

		completions := authenticated.Group("/completion-requests")
		completions.Use(authMiddleware.RoleRequired(supervisor, admin))
		{
			completions.GET("/pending", c.Completion.ListPending)
			completions.PUT("/:id/decision", c.Completion.Decide)
		}

		reports := authenticated.Group("/reports")
		reports.Use(authMiddleware.RoleRequired(teacher, supervisor, admin))
		{
			reports.GET("/school-availability", c.School.GetAvailability)
			reports.GET("/teachers/:teacherId/stats", c.Placement.GetTeacherStats)
		}

		// --- Admin routes ---
		adminGroup := authenticated.Group("/admin")
		adminGroup.Use(authMiddleware.RoleRequired(admin))
		{
			adminGroup.POST("/auth/register/staff", c.Auth.RegisterStaff)
			adminGroup.GET("/users", c.User.ListByRole)

			adminSchools := adminGroup.Group("/schools")
			{
				adminSchools.POST("", c.School.CreateSchool)
				adminSchools.PUT("/:schoolId", c.School.UpdateSchool)
				adminSchools.DELETE("/:schoolId", c.School.DeleteSchool)
				adminSchools.PUT("/:schoolId/quota", c.School.UpsertQuota)
				adminSchools.PUT("/:schoolId/quota/open", c.School.SetQuotaOpen)

				adminSchools.GET("/:schoolId/teachers", c.Placement.ListSchoolTeachers)
				adminSchools.POST("/:schoolId/teachers", c.Placement.AssignTeacher)
				adminSchools.GET("/:schoolId/teachers/available", c.Placement.ListAvailableTeacherPool)
				adminSchools.POST("/:schoolId/students", c.Placement.AssignStudent)
			}

			adminTeachers := adminGroup.Group("/school-teachers")
			{
				adminTeachers.PUT("/:id", c.Placement.UpdateTeacherLink)
				adminTeachers.DELETE("/:id", c.Placement.RemoveTeacher)
				adminTeachers.PUT("/:id/primary", c.Placement.SetPrimaryTeacher)
			}

			adminYears := adminGroup.Group("/academic-years")
			{
				adminYears.POST("", c.AcademicYear.Create)
				adminYears.PUT("/:id", c.AcademicYear.Update)
				adminYears.DELETE("/:id", c.AcademicYear.Delete)
				adminYears.PUT("/:id/activate", c.AcademicYear.Activate)
			}
		}
	}
}
