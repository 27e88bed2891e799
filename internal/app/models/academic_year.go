package models

import "time"

// AcademicYear represents a year+semester period scoping all enrollment and
// quota data, based on the 'academic_years' table. At most one row is active
// at a time; activation is an admin action performed in a single transaction.
type AcademicYear struct {
	ID                int64     `json:"id" db:"id"`
	Year              string    `json:"year" db:"year" example:"2025-2026"`
	Semester          Semester  `json:"semester" db:"semester" example:"FALL"`
	StartDate         time.Time `json:"startDate" db:"start_date"`
	EndDate           time.Time `json:"endDate" db:"end_date"`
	RegistrationStart time.Time `json:"registrationStart" db:"registration_start"`
	RegistrationEnd   time.Time `json:"registrationEnd" db:"registration_end"`
	IsActive          bool      `json:"isActive" db:"is_active"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
}

// RegistrationOpenAt reports whether the registration window contains t.
func (a *AcademicYear) RegistrationOpenAt(t time.Time) bool {
	return !t.Before(a.RegistrationStart) && !t.After(a.RegistrationEnd)
}
