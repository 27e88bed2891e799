package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent    RoleType = "STUDENT"
	RoleTeacher    RoleType = "TEACHER"
	RoleSupervisor RoleType = "SUPERVISOR"
	RoleAdmin      RoleType = "ADMIN"
)

// Valid reports whether the role is one of the known roles.
func (r RoleType) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// Semester represents an academic semester
type Semester string

const (
	SemesterFall   Semester = "FALL"
	SemesterSpring Semester = "SPRING"
)

// Valid reports whether the semester is one of the known semesters.
func (s Semester) Valid() bool {
	return s == SemesterFall || s == SemesterSpring
}

// AssignmentStatus represents the lifecycle state of an internship assignment
type AssignmentStatus string

const (
	StatusPending   AssignmentStatus = "PENDING"
	StatusActive    AssignmentStatus = "ACTIVE"
	StatusCompleted AssignmentStatus = "COMPLETED"
	StatusCancelled AssignmentStatus = "CANCELLED"
)

// CanTransitionTo reports whether the status machine allows moving from s to
// target. Legal transitions: PENDING -> ACTIVE, ACTIVE -> COMPLETED and
// ACTIVE -> CANCELLED. PENDING -> CANCELLED is also allowed so a pending
// application can be withdrawn.
func (s AssignmentStatus) CanTransitionTo(target AssignmentStatus) bool {
	switch s {
	case StatusPending:
		return target == StatusActive || target == StatusCancelled
	case StatusActive:
		return target == StatusCompleted || target == StatusCancelled
	}
	return false
}

// Valid reports whether the status is one of the known states.
func (s AssignmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CompletionDecision represents the outcome of a completion request
type CompletionDecision string

const (
	CompletionPending  CompletionDecision = "PENDING"
	CompletionApproved CompletionDecision = "APPROVED"
	CompletionRejected CompletionDecision = "REJECTED"
)
