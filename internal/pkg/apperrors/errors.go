package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrStudentCodeExists  = errors.New("student code already exists")
	ErrInvalidRole        = errors.New("user does not have the expected role")
)

// School and academic year errors
var (
	ErrSchoolNotFound       = errors.New("school not found")
	ErrSchoolAlreadyExists  = errors.New("school with this code already exists")
	ErrSchoolHasRelations   = errors.New("school has enrollment data and cannot be deleted")
	ErrAcademicYearNotFound = errors.New("academic year not found")
	ErrAcademicYearExists   = errors.New("academic year with this year and semester already exists")
	ErrNoActiveAcademicYear = errors.New("no active academic year")
	ErrRegistrationClosed   = errors.New("registration window is closed for this academic year")
)

// Placement errors
var (
	ErrDuplicateAssignment    = errors.New("teacher is already assigned to this school for this academic year")
	ErrStudentAlreadyEnrolled = errors.New("student already has an assignment for this academic year")
	ErrAssignmentNotFound     = errors.New("assignment not found")
	ErrTeacherLinkNotFound    = errors.New("school teacher record not found")
	ErrQuotaNotFound          = errors.New("school quota not found for this academic year")
	ErrQuotaExceeded          = errors.New("school quota exceeded")
	ErrQuotaClosed            = errors.New("school is not accepting enrollments for this academic year")
	ErrNoAvailableTeacher     = errors.New("no teacher with remaining capacity at this school")
	ErrTeacherAtCapacity      = errors.New("teacher has reached the maximum number of students")
	ErrInvalidStatusChange    = errors.New("invalid assignment status transition")
)

// Evaluation and completion errors
var (
	ErrEvaluationNotFound         = errors.New("evaluation not found")
	ErrEvaluationAlreadyExists    = errors.New("an evaluation by this user already exists for the assignment")
	ErrCompletionRequestNotFound  = errors.New("completion request not found")
	ErrCompletionAlreadyRequested = errors.New("a pending completion request already exists for this assignment")
	ErrCompletionAlreadyDecided   = errors.New("completion request has already been decided")
	ErrAssignmentNotActive        = errors.New("assignment is not active")
)

// ActiveDependentsError blocks a structural change while active internship
// assignments still reference the target record. Count carries the exact
// number of blocking rows so the API can surface it to the caller.
type ActiveDependentsError struct {
	Count int
}

func (e *ActiveDependentsError) Error() string {
	return fmt.Sprintf("Cannot remove teacher. There are %d active students under supervision", e.Count)
}

// Is lets errors.Is match any ActiveDependentsError regardless of count.
func (e *ActiveDependentsError) Is(target error) bool {
	_, ok := target.(*ActiveDependentsError)
	return ok
}

// NewActiveDependentsError creates an ActiveDependentsError for n blocking rows.
func NewActiveDependentsError(n int) error {
	return &ActiveDependentsError{Count: n}
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
