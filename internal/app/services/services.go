package services

import (
	"github.com/talha/internhub/internal/app/repositories"
	"github.com/talha/internhub/internal/pkg/auth"
)

// Services holds all the service instances
type Services struct {
	AuthService         *AuthService
	UserService         *UserService
	SchoolService       *SchoolService
	AcademicYearService *AcademicYearService
	PlacementService    *PlacementService
	AssignmentService   *AssignmentService
	EvaluationService   *EvaluationService
	CompletionService   *CompletionService
}

// NewServices initializes all services
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService) *Services {
	return &Services{
		AuthService:         NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService),
		UserService:         NewUserService(repos.UserRepository),
		SchoolService:       NewSchoolService(repos.SchoolRepository, repos.QuotaRepository, repos.AcademicYearRepository),
		AcademicYearService: NewAcademicYearService(repos.AcademicYearRepository),
		PlacementService:    NewPlacementService(repos),
		AssignmentService:   NewAssignmentService(repos.AssignmentRepository, repos.UserRepository),
		EvaluationService:   NewEvaluationService(repos.EvaluationRepository, repos.AssignmentRepository, repos.UserRepository),
		CompletionService:   NewCompletionService(repos.CompletionRepository, repos.UserRepository),
	}
}
