package models

import "time"

// School represents a partner school based on the 'schools' table
type School struct {
	ID        int64     `json:"id" db:"id"`
	Code      string    `json:"code" db:"code" example:"IST-034"` // Business key, unique
	Name      string    `json:"name" db:"name" example:"Ataturk Anadolu High School"`
	Address   *string   `json:"address,omitempty" db:"address"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// SchoolQuota holds the configured capacity and usage counters for a school
// within an academic year, based on the 'school_quotas' table. Counters are
// denormalized and maintained in the same transaction that mutates the
// underlying assignment rows.
type SchoolQuota struct {
	ID              int64 `json:"id" db:"id"`
	SchoolID        int64 `json:"schoolId" db:"school_id"`
	AcademicYearID  int64 `json:"academicYearId" db:"academic_year_id"`
	MaxStudents     int   `json:"maxStudents" db:"max_students"`
	CurrentStudents int   `json:"currentStudents" db:"current_students"`
	MaxTeachers     int   `json:"maxTeachers" db:"max_teachers"`
	CurrentTeachers int   `json:"currentTeachers" db:"current_teachers"`
	IsOpen          bool  `json:"isOpen" db:"is_open"`

	School *School `json:"school,omitempty"`
}

// HasStudentCapacity reports whether another student fits within the quota.
func (q *SchoolQuota) HasStudentCapacity() bool {
	return q.IsOpen && q.CurrentStudents < q.MaxStudents
}

// HasTeacherCapacity reports whether another teacher fits within the quota.
func (q *SchoolQuota) HasTeacherCapacity() bool {
	return q.CurrentTeachers < q.MaxTeachers
}
