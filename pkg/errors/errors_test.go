package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Sentinel error identity ---

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrInvalidInput, ErrUnauthorized,
		ErrForbidden, ErrInternal, ErrConflict, ErrDuplicateUser,
		ErrUserNotFound, ErrInvalidCreds, ErrEmailNotVerified,
		ErrInvalidToken, ErrTokenExpired,
	}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j],
				"sentinels %d and %d should be distinct", i, j)
		}
	}
}

// --- AppError behavior ---

func TestAppError_ErrorString_WithWrappedError(t *testing.T) {
	inner := fmt.Errorf("db connection lost")
	appErr := &AppError{Code: "INTERNAL_ERROR", Message: "something broke", Err: inner}
	assert.Contains(t, appErr.Error(), "INTERNAL_ERROR")
	assert.Contains(t, appErr.Error(), "something broke")
	assert.Contains(t, appErr.Error(), "db connection lost")
}

func TestAppError_ErrorString_WithoutWrappedError(t *testing.T) {
	appErr := &AppError{Code: "USER_NOT_FOUND", Message: "user not found"}
	assert.Equal(t, "USER_NOT_FOUND: user not found", appErr.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "nope", Err: ErrNotFound}
	assert.True(t, errors.Is(appErr, ErrNotFound))
}

func TestAppError_Unwrap_Nil(t *testing.T) {
	appErr := &AppError{Code: "TEST", Message: "test"}
	assert.Nil(t, appErr.Unwrap())
}

// --- Constructor functions ---

func TestNotFound(t *testing.T) {
	err := NotFound("person", "abc-123")
	require.NotNil(t, err)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Contains(t, err.Message, "person")
	assert.Contains(t, err.Message, "abc-123")
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAlreadyExists(t *testing.T) {
	err := AlreadyExists("unit of measure", "name", "kilogram")
	require.NotNil(t, err)
	assert.Equal(t, "ALREADY_EXISTS", err.Code)
	assert.Contains(t, err.Message, "unit of measure")
	assert.Contains(t, err.Message, "kilogram")
	assert.Equal(t, http.StatusConflict, err.Status)
	assert.True(t, errors.Is(err, ErrAlreadyExists))
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("name is required")
	require.NotNil(t, err)
	assert.Equal(t, "INVALID_INPUT", err.Code)
	assert.Equal(t, "name is required", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestDuplicateUser(t *testing.T) {
	err := DuplicateUser("alice")
	require.NotNil(t, err)
	assert.Equal(t, "DUPLICATE_USER", err.Code)
	assert.Contains(t, err.Message, "alice")
	assert.Equal(t, http.StatusConflict, err.Status)
	assert.True(t, errors.Is(err, ErrDuplicateUser))
}

func TestUserNotFound(t *testing.T) {
	err := UserNotFound("user not found with id u-1")
	require.NotNil(t, err)
	assert.Equal(t, "USER_NOT_FOUND", err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestInvalidCredentials_MessageDoesNotNameTheField(t *testing.T) {
	err := InvalidCredentials()
	require.NotNil(t, err)
	assert.Equal(t, "INVALID_CREDENTIALS", err.Code)
	assert.Equal(t, http.StatusUnauthorized, err.Status)
	// Same code and message regardless of which credential was wrong.
	assert.Equal(t, InvalidCredentials().Message, err.Message)
	assert.NotContains(t, err.Message, "not found")
	assert.True(t, errors.Is(err, ErrInvalidCreds))
}

func TestEmailNotVerified(t *testing.T) {
	err := EmailNotVerified()
	require.NotNil(t, err)
	assert.Equal(t, "EMAIL_NOT_VERIFIED", err.Code)
	assert.Equal(t, http.StatusForbidden, err.Status)
	assert.True(t, errors.Is(err, ErrEmailNotVerified))
}

func TestInvalidToken(t *testing.T) {
	err := InvalidToken()
	require.NotNil(t, err)
	assert.Equal(t, "INVALID_TOKEN", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokenExpired(t *testing.T) {
	err := TokenExpired()
	require.NotNil(t, err)
	assert.Equal(t, "TOKEN_EXPIRED", err.Code)
	assert.Equal(t, http.StatusGone, err.Status)
	assert.True(t, errors.Is(err, ErrTokenExpired))
}

func TestInternal(t *testing.T) {
	inner := fmt.Errorf("segfault")
	err := Internal(inner)
	require.NotNil(t, err)
	assert.Equal(t, "INTERNAL_ERROR", err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Contains(t, err.Error(), "segfault")
}

// --- Wrap ---

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrUserNotFound, "get user")
	assert.Contains(t, wrapped.Error(), "get user")
	assert.True(t, errors.Is(wrapped, ErrUserNotFound))
}

// --- HTTPStatus ---

func TestHTTPStatus_AppError(t *testing.T) {
	assert.Equal(t, http.StatusConflict, HTTPStatus(DuplicateUser("bob")))
}

func TestHTTPStatus_SentinelErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrUserNotFound, http.StatusNotFound},
		{ErrAlreadyExists, http.StatusConflict},
		{ErrConflict, http.StatusConflict},
		{ErrDuplicateUser, http.StatusConflict},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrInvalidToken, http.StatusBadRequest},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrInvalidCreds, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrEmailNotVerified, http.StatusForbidden},
		{ErrTokenExpired, http.StatusGone},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}

func TestHTTPStatus_WrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", ErrTokenExpired)
	assert.Equal(t, http.StatusGone, HTTPStatus(wrapped))
}

func TestHTTPStatus_UnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("unknown")))
}
