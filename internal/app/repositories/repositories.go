package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository          *UserRepository
	TokenRepository         *TokenRepository
	SchoolRepository        *SchoolRepository
	AcademicYearRepository  *AcademicYearRepository
	QuotaRepository         *QuotaRepository
	SchoolTeacherRepository *SchoolTeacherRepository
	AssignmentRepository    *AssignmentRepository
	EvaluationRepository    *EvaluationRepository
	CompletionRepository    *CompletionRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(db),
		TokenRepository:         NewTokenRepository(db),
		SchoolRepository:        NewSchoolRepository(db),
		AcademicYearRepository:  NewAcademicYearRepository(db),
		QuotaRepository:         NewQuotaRepository(db),
		SchoolTeacherRepository: NewSchoolTeacherRepository(db),
		AssignmentRepository:    NewAssignmentRepository(db),
		EvaluationRepository:    NewEvaluationRepository(db),
		CompletionRepository:    NewCompletionRepository(db),
	}
}
