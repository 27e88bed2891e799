package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talha/internhub/internal/app/models/dto"
	"github.com/talha/internhub/internal/pkg/apperrors"
	"github.com/talha/internhub/internal/pkg/logger"
)

// HandleAPIError maps service errors onto HTTP responses. Every handler
// funnels its error path through here so status codes and error codes stay
// consistent across the API.
func HandleAPIError(c *gin.Context, err error) {
	var dependents *apperrors.ActiveDependentsError
	if errors.As(err, &dependents) {
		respond(c, http.StatusConflict, dto.ErrorCodeActiveDependents, dependents.Error())
		return
	}

	switch {
	// 404
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrSchoolNotFound),
		errors.Is(err, apperrors.ErrAcademicYearNotFound),
		errors.Is(err, apperrors.ErrNoActiveAcademicYear),
		errors.Is(err, apperrors.ErrQuotaNotFound),
		errors.Is(err, apperrors.ErrTeacherLinkNotFound),
		errors.Is(err, apperrors.ErrAssignmentNotFound),
		errors.Is(err, apperrors.ErrEvaluationNotFound),
		errors.Is(err, apperrors.ErrCompletionRequestNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err.Error())

	// 409 placement conflicts
	case errors.Is(err, apperrors.ErrDuplicateAssignment),
		errors.Is(err, apperrors.ErrStudentAlreadyEnrolled):
		respond(c, http.StatusConflict, dto.ErrorCodeDuplicateAssignment, err.Error())
	case errors.Is(err, apperrors.ErrQuotaExceeded),
		errors.Is(err, apperrors.ErrQuotaClosed),
		errors.Is(err, apperrors.ErrNoAvailableTeacher),
		errors.Is(err, apperrors.ErrTeacherAtCapacity):
		respond(c, http.StatusConflict, dto.ErrorCodeQuotaExceeded, err.Error())
	case errors.Is(err, apperrors.ErrInvalidStatusChange):
		respond(c, http.StatusConflict, dto.ErrorCodeInvalidTransition, err.Error())

	// 409 resource conflicts
	case errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrStudentCodeExists),
		errors.Is(err, apperrors.ErrSchoolAlreadyExists),
		errors.Is(err, apperrors.ErrAcademicYearExists),
		errors.Is(err, apperrors.ErrEvaluationAlreadyExists),
		errors.Is(err, apperrors.ErrCompletionAlreadyRequested),
		errors.Is(err, apperrors.ErrCompletionAlreadyDecided),
		errors.Is(err, apperrors.ErrSchoolHasRelations),
		errors.Is(err, apperrors.ErrResourceAlreadyExists),
		errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err.Error())

	// 400
	case errors.Is(err, apperrors.ErrInvalidRole):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidRole, err.Error())
	case errors.Is(err, apperrors.ErrAssignmentNotActive),
		errors.Is(err, apperrors.ErrRegistrationClosed),
		errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error())

	// 401
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenRevoked),
		errors.Is(err, apperrors.ErrTokenNotFound):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")

	// 403
	case errors.Is(err, apperrors.ErrPermissionDenied),
		errors.Is(err, apperrors.ErrAccountDisabled):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, err.Error())

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
