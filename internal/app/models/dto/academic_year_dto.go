package dto

import "time"

// CreateAcademicYearRequest is the payload for creating an academic year
type CreateAcademicYearRequest struct {
	Year              string    `json:"year" binding:"required" validate:"required"`
	Semester          string    `json:"semester" binding:"required,oneof=FALL SPRING" validate:"required,oneof=FALL SPRING"`
	StartDate         time.Time `json:"startDate" binding:"required" validate:"required"`
	EndDate           time.Time `json:"endDate" binding:"required" validate:"required"`
	RegistrationStart time.Time `json:"registrationStart" binding:"required" validate:"required"`
	RegistrationEnd   time.Time `json:"registrationEnd" binding:"required" validate:"required"`
}

// UpdateAcademicYearRequest is the payload for updating an academic year
type UpdateAcademicYearRequest struct {
	Year              *string    `json:"year,omitempty"`
	Semester          *string    `json:"semester,omitempty" validate:"omitempty,oneof=FALL SPRING"`
	StartDate         *time.Time `json:"startDate,omitempty"`
	EndDate           *time.Time `json:"endDate,omitempty"`
	RegistrationStart *time.Time `json:"registrationStart,omitempty"`
	RegistrationEnd   *time.Time `json:"registrationEnd,omitempty"`
}
