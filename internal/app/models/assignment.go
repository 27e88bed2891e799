package models

import "time"

// InternshipAssignment relates a student, a school and optionally a mentor
// teacher for an academic year, based on the 'internship_assignments' table.
type InternshipAssignment struct {
	ID             int64            `json:"id" db:"id"`
	StudentID      int64            `json:"studentId" db:"student_id"`
	SchoolID       int64            `json:"schoolId" db:"school_id"`
	AcademicYearID int64            `json:"academicYearId" db:"academic_year_id"`
	TeacherID      *int64           `json:"teacherId,omitempty" db:"teacher_id"` // nullable until a mentor is picked
	Status         AssignmentStatus `json:"status" db:"status"`
	EnrollmentDate time.Time        `json:"enrollmentDate" db:"enrollment_date"`
	StartDate      *time.Time       `json:"startDate,omitempty" db:"start_date"`
	EndDate        *time.Time       `json:"endDate,omitempty" db:"end_date"`
	Notes          *string          `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time        `json:"updatedAt" db:"updated_at"`

	Student      *User         `json:"student,omitempty"`
	Teacher      *User         `json:"teacher,omitempty"`
	School       *School       `json:"school,omitempty"`
	AcademicYear *AcademicYear `json:"academicYear,omitempty"`
}
