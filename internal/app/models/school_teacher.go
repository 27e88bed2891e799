package models

import "time"

// SchoolTeacher links a mentor teacher to a school for an academic year,
// based on the 'school_teachers' table. At most one row per
// (school_id, academic_year_id) has is_primary = true; the invariant is
// backed by a partial unique index and all writes touching it run inside a
// transaction.
type SchoolTeacher struct {
	ID              int64     `json:"id" db:"id"`
	TeacherID       int64     `json:"teacherId" db:"teacher_id"`
	SchoolID        int64     `json:"schoolId" db:"school_id"`
	AcademicYearID  int64     `json:"academicYearId" db:"academic_year_id"`
	IsPrimary       bool      `json:"isPrimary" db:"is_primary"`
	MaxStudents     int       `json:"maxStudents" db:"max_students"`
	CurrentStudents int       `json:"currentStudents" db:"current_students"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`

	Teacher *User   `json:"teacher,omitempty"`
	School  *School `json:"school,omitempty"`
}

// HasCapacity reports whether the teacher can take another student.
func (t *SchoolTeacher) HasCapacity() bool {
	return t.CurrentStudents < t.MaxStudents
}

// TeacherStats aggregates a teacher's assignment counts for an academic year.
type TeacherStats struct {
	TeacherID         int64 `json:"teacherId"`
	AcademicYearID    int64 `json:"academicYearId"`
	TotalAssignments  int   `json:"totalAssignments"`
	ActiveStudents    int   `json:"activeStudents"`
	CompletedStudents int   `json:"completedStudents"`
}
