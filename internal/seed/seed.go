package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/talha/internhub/internal/app/models"
	appRepos "github.com/talha/internhub/internal/app/repositories"
	"github.com/talha/internhub/internal/pkg/apperrors"
)

// CreateDefaultData seeds the default admin account and an active academic
// year so a fresh installation is usable without manual SQL.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	yearRepo := appRepos.NewAcademicYearRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default admin user --- //
	const adminEmail = "admin@internhub.edu.tr"
	exists, err := userRepo.EmailExists(ctx, adminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Msg("Creating default admin user...")

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.User{
				Email:     adminEmail,
				Password:  string(hashedPassword),
				FirstName: "System",
				LastName:  "Administrator",
				Role:      appModels.RoleAdmin,
				IsActive:  true,
			}

			if err := userRepo.Create(ctx, admin); err != nil {
				lgr.Error().Err(err).Msg("Error creating admin user")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
			}
		}
	} else {
		lgr.Info().Msg("Admin user already exists, skipping creation")
	}

	// --- Active academic year --- //
	if _, err := yearRepo.GetActive(ctx); err != nil {
		if !errors.Is(err, apperrors.ErrNoActiveAcademicYear) {
			lgr.Error().Err(err).Msg("Error checking for an active academic year")
			return errors.Join(finalErr, err)
		}

		now := time.Now()
		year := &appModels.AcademicYear{
			Year:              fmt.Sprintf("%d-%d", now.Year(), now.Year()+1),
			Semester:          appModels.SemesterFall,
			StartDate:         now,
			EndDate:           now.AddDate(0, 6, 0),
			RegistrationStart: now,
			RegistrationEnd:   now.AddDate(0, 1, 0),
		}

		err := yearRepo.Create(ctx, year)
		if err != nil && !errors.Is(err, apperrors.ErrAcademicYearExists) {
			lgr.Error().Err(err).Msg("Error creating default academic year")
			finalErr = errors.Join(finalErr, err)
		} else if err == nil {
			if err := yearRepo.Activate(ctx, year.ID); err != nil {
				lgr.Error().Err(err).Msg("Error activating default academic year")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Int64("academicYearID", year.ID).Str("year", year.Year).
					Msg("Default academic year created and activated")
			}
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
