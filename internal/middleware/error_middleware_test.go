package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talha/internhub/internal/app/models/dto"
	"github.com/talha/internhub/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (int, *dto.ErrorResponse) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/test", nil)

	HandleAPIError(c, err)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, &resp
}

func TestHandleAPIErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{name: "user not found", err: apperrors.ErrUserNotFound, wantStatus: http.StatusNotFound, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "no active academic year", err: apperrors.ErrNoActiveAcademicYear, wantStatus: http.StatusNotFound, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "duplicate teacher assignment", err: apperrors.ErrDuplicateAssignment, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeDuplicateAssignment},
		{name: "student already enrolled", err: apperrors.ErrStudentAlreadyEnrolled, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeDuplicateAssignment},
		{name: "quota exceeded", err: apperrors.ErrQuotaExceeded, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeQuotaExceeded},
		{name: "quota closed", err: apperrors.ErrQuotaClosed, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeQuotaExceeded},
		{name: "no available teacher", err: apperrors.ErrNoAvailableTeacher, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeQuotaExceeded},
		{name: "invalid status transition", err: apperrors.ErrInvalidStatusChange, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeInvalidTransition},
		{name: "email taken", err: apperrors.ErrEmailAlreadyExists, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeResourceAlreadyExists},
		{name: "completion already decided", err: apperrors.ErrCompletionAlreadyDecided, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeResourceAlreadyExists},
		{name: "invalid role", err: apperrors.ErrInvalidRole, wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeInvalidRole},
		{name: "registration closed", err: apperrors.ErrRegistrationClosed, wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeValidationFailed},
		{name: "bad request from service", err: apperrors.NewBadRequestError("end date must be after start date"), wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeValidationFailed},
		{name: "invalid credentials", err: apperrors.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeInvalidCredentials},
		{name: "expired token", err: apperrors.ErrTokenExpired, wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeExpiredToken},
		{name: "revoked token", err: apperrors.ErrTokenRevoked, wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeInvalidToken},
		{name: "permission denied", err: apperrors.ErrPermissionDenied, wantStatus: http.StatusForbidden, wantCode: dto.ErrorCodeForbidden},
		{name: "disabled account", err: apperrors.ErrAccountDisabled, wantStatus: http.StatusForbidden, wantCode: dto.ErrorCodeForbidden},
		{name: "unknown error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: dto.ErrorCodeInternalServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := handleError(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.False(t, resp.Success)
		})
	}
}

func TestHandleAPIErrorActiveDependents(t *testing.T) {
	status, resp := handleError(t, apperrors.NewActiveDependentsError(2))
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrorCodeActiveDependents, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "2 active students")
}

func TestHandleAPIErrorUnwrapsCustomErrors(t *testing.T) {
	wrapped := apperrors.NewCustomError(apperrors.ErrSchoolNotFound, "school 42 does not exist")
	status, resp := handleError(t, wrapped)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, resp.Error.Code)
	assert.Equal(t, "school 42 does not exist", resp.Error.Message)
}
