package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	Username string `validate:"required,min=3,max=50"`
	Email    string `validate:"required,email"`
	Type     string `validate:"required,oneof=CUSTOMER TRAINER ADMIN"`
}

func TestValidate_Valid(t *testing.T) {
	form := registerForm{Username: "alice", Email: "alice@example.com", Type: "CUSTOMER"}
	assert.NoError(t, Validate(form))
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	err := Validate(registerForm{})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))

	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["Username"])
	assert.Equal(t, "is required", fields["Email"])
	assert.Equal(t, "is required", fields["Type"])
}

func TestValidate_BadEmail(t *testing.T) {
	form := registerForm{Username: "alice", Email: "not-an-email", Type: "CUSTOMER"}
	err := Validate(form)
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "must be a valid email address", valErr.Fields()["Email"])
}

func TestValidate_OneOf(t *testing.T) {
	form := registerForm{Username: "alice", Email: "alice@example.com", Type: "WIZARD"}
	err := Validate(form)
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Fields()["Type"], "must be one of")
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(registerForm{Username: "ab", Email: "a@b.com", Type: "CUSTOMER"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Username")
	assert.Contains(t, err.Error(), "at least 3")
}
