package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorString(t *testing.T) {
	err := New(CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
	assert.Equal(t, "[resource:NOT_FOUND] Resource not found", err.Error())

	wrapped := Wrap(errors.New("row missing"), CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
	assert.Contains(t, wrapped.Error(), "row missing")
}

func TestAppError_UnwrapChain(t *testing.T) {
	cause := errors.New("connection reset")
	err := InternalError(cause)

	assert.ErrorIs(t, err, cause)

	var appErr *AppError
	require.True(t, As(err, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode)
}

func TestAppError_MarshalHidesInternals(t *testing.T) {
	err := Wrap(errors.New("secret detail"), CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)

	payload, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)

	assert.NotContains(t, string(payload), "secret detail")
	assert.NotContains(t, string(payload), "500")
	assert.Contains(t, string(payload), "Internal server error")
}

func TestSentinelHTTPCodes(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, ErrAccountDeactivated.HTTPCode)
	assert.Equal(t, http.StatusForbidden, ErrNotRosterMember.HTTPCode)
	assert.Equal(t, http.StatusForbidden, ErrStudentLimitReached.HTTPCode)
	assert.Equal(t, http.StatusUnauthorized, ErrInvalidCredentials.HTTPCode)
	assert.Equal(t, http.StatusBadGateway, ErrGenerationFailed.HTTPCode)
	assert.Equal(t, http.StatusRequestEntityTooLarge, ErrFileTooLarge.HTTPCode)
	assert.Equal(t, http.StatusUnsupportedMediaType, ErrInvalidFileType.HTTPCode)
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(ErrInvalidCredentials)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidCredentials, appErr.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}
