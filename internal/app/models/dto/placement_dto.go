package dto

import "github.com/talha/internhub/internal/app/models"

// AssignTeacherRequest links a mentor teacher to a school for a year
type AssignTeacherRequest struct {
	TeacherID   int64 `json:"teacherId" binding:"required" validate:"required,gt=0"`
	IsPrimary   bool  `json:"isPrimary"`
	MaxStudents *int  `json:"maxStudents,omitempty" validate:"omitempty,gte=0"`
}

// UpdateSchoolTeacherRequest updates a teacher's school link
type UpdateSchoolTeacherRequest struct {
	IsPrimary   *bool `json:"isPrimary,omitempty"`
	MaxStudents *int  `json:"maxStudents,omitempty" validate:"omitempty,gte=0"`
}

// AssignStudentRequest places a student at a school, optionally pinning a
// mentor teacher. When TeacherID is nil the least-loaded available teacher
// is selected.
type AssignStudentRequest struct {
	StudentID int64   `json:"studentId" binding:"required" validate:"required,gt=0"`
	TeacherID *int64  `json:"teacherId,omitempty" validate:"omitempty,gt=0"`
	Notes     *string `json:"notes,omitempty"`
}

// EnrollRequest is a student's self-enrollment payload. All fields optional.
type EnrollRequest struct {
	TeacherID *int64  `json:"teacherId,omitempty" validate:"omitempty,gt=0"`
	Notes     *string `json:"notes,omitempty"`
}

// AssignmentCreatedResponse returns the id of a newly created link or assignment
type AssignmentCreatedResponse struct {
	ID int64 `json:"id"`
}

// UpdateAssignmentStatusRequest drives the assignment status machine
type UpdateAssignmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING ACTIVE COMPLETED CANCELLED" validate:"required,oneof=PENDING ACTIVE COMPLETED CANCELLED"`
}

// SchoolTeacherResponse is the list view of a teacher's school link
type SchoolTeacherResponse struct {
	ID              int64  `json:"id"`
	TeacherID       int64  `json:"teacherId"`
	SchoolID        int64  `json:"schoolId"`
	AcademicYearID  int64  `json:"academicYearId"`
	IsPrimary       bool   `json:"isPrimary"`
	MaxStudents     int    `json:"maxStudents"`
	CurrentStudents int    `json:"currentStudents"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
}

// FromSchoolTeacher converts a models.SchoolTeacher to its response view.
func FromSchoolTeacher(st *models.SchoolTeacher) SchoolTeacherResponse {
	resp := SchoolTeacherResponse{
		ID:              st.ID,
		TeacherID:       st.TeacherID,
		SchoolID:        st.SchoolID,
		AcademicYearID:  st.AcademicYearID,
		IsPrimary:       st.IsPrimary,
		MaxStudents:     st.MaxStudents,
		CurrentStudents: st.CurrentStudents,
	}
	if st.Teacher != nil {
		resp.FirstName = st.Teacher.FirstName
		resp.LastName = st.Teacher.LastName
		resp.Email = st.Teacher.Email
	}
	return resp
}
