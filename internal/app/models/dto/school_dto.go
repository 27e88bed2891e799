package dto

import "github.com/talha/internhub/internal/app/models"

// CreateSchoolRequest is the payload for creating a school
type CreateSchoolRequest struct {
	Code    string  `json:"code" binding:"required" validate:"required"`
	Name    string  `json:"name" binding:"required" validate:"required"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

// UpdateSchoolRequest is the payload for updating a school
type UpdateSchoolRequest struct {
	Code    *string `json:"code,omitempty"`
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

// UpsertQuotaRequest sets the capacity configuration of a school for a year
type UpsertQuotaRequest struct {
	AcademicYearID int64 `json:"academicYearId" binding:"required" validate:"required,gt=0"`
	MaxStudents    int   `json:"maxStudents" binding:"required" validate:"required,gte=0"`
	MaxTeachers    int   `json:"maxTeachers" binding:"required" validate:"required,gte=0"`
	IsOpen         *bool `json:"isOpen,omitempty"`
}

// SchoolAvailability summarizes remaining capacity of a school for a year
type SchoolAvailability struct {
	School            *models.School `json:"school"`
	AcademicYearID    int64          `json:"academicYearId"`
	MaxStudents       int            `json:"maxStudents"`
	CurrentStudents   int            `json:"currentStudents"`
	RemainingStudents int            `json:"remainingStudents"`
	MaxTeachers       int            `json:"maxTeachers"`
	CurrentTeachers   int            `json:"currentTeachers"`
	IsOpen            bool           `json:"isOpen"`
}
