package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAssignmentStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from AssignmentStatus
		to   AssignmentStatus
		want bool
	}{
		{name: "pending to active", from: StatusPending, to: StatusActive, want: true},
		{name: "pending to cancelled", from: StatusPending, to: StatusCancelled, want: true},
		{name: "pending to completed", from: StatusPending, to: StatusCompleted, want: false},
		{name: "active to completed", from: StatusActive, to: StatusCompleted, want: true},
		{name: "active to cancelled", from: StatusActive, to: StatusCancelled, want: true},
		{name: "active to pending", from: StatusActive, to: StatusPending, want: false},
		{name: "completed is terminal", from: StatusCompleted, to: StatusActive, want: false},
		{name: "cancelled is terminal", from: StatusCancelled, to: StatusActive, want: false},
		{name: "cancelled cannot complete", from: StatusCancelled, to: StatusCompleted, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestAssignmentStatusValid(t *testing.T) {
	for _, s := range []AssignmentStatus{StatusPending, StatusActive, StatusCompleted, StatusCancelled} {
		assert.True(t, s.Valid(), "expected %s to be valid", s)
	}
	assert.False(t, AssignmentStatus("DONE").Valid())
	assert.False(t, AssignmentStatus("").Valid())
}

func TestRoleTypeValid(t *testing.T) {
	for _, r := range []RoleType{RoleStudent, RoleTeacher, RoleSupervisor, RoleAdmin} {
		assert.True(t, r.Valid(), "expected %s to be valid", r)
	}
	assert.False(t, RoleType("MANAGER").Valid())
	assert.False(t, RoleType("student").Valid())
}

func TestSemesterValid(t *testing.T) {
	assert.True(t, SemesterFall.Valid())
	assert.True(t, SemesterSpring.Valid())
	assert.False(t, Semester("SUMMER").Valid())
}

func TestAcademicYearRegistrationOpenAt(t *testing.T) {
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 9, 30, 23, 59, 59, 0, time.UTC)
	year := &AcademicYear{RegistrationStart: start, RegistrationEnd: end}

	assert.True(t, year.RegistrationOpenAt(start))
	assert.True(t, year.RegistrationOpenAt(end))
	assert.True(t, year.RegistrationOpenAt(start.AddDate(0, 0, 14)))
	assert.False(t, year.RegistrationOpenAt(start.Add(-time.Second)))
	assert.False(t, year.RegistrationOpenAt(end.Add(time.Second)))
}

func TestSchoolQuotaCapacity(t *testing.T) {
	quota := &SchoolQuota{MaxStudents: 2, CurrentStudents: 1, MaxTeachers: 1, CurrentTeachers: 1, IsOpen: true}
	assert.True(t, quota.HasStudentCapacity())
	assert.False(t, quota.HasTeacherCapacity())

	quota.CurrentStudents = 2
	assert.False(t, quota.HasStudentCapacity())

	// a closed quota has no student capacity regardless of counters
	quota.CurrentStudents = 0
	quota.IsOpen = false
	assert.False(t, quota.HasStudentCapacity())
}

func TestSchoolTeacherHasCapacity(t *testing.T) {
	link := &SchoolTeacher{MaxStudents: 3, CurrentStudents: 2}
	assert.True(t, link.HasCapacity())

	link.CurrentStudents = 3
	assert.False(t, link.HasCapacity())
}

func TestUserFullName(t *testing.T) {
	u := &User{FirstName: "Ayse", LastName: "Yilmaz"}
	assert.Equal(t, "Ayse Yilmaz", u.FullName())
}
