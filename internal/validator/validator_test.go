package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signUpPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
}

type accountPayload struct {
	Role   string `json:"role" validate:"omitempty,is-account-role"`
	Status string `json:"status" validate:"omitempty,is-account-status"`
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(signUpPayload{Email: "not-an-email", Password: "123"})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "Must be at least 6 items/characters long", vErr.Errors["password"])
	assert.Equal(t, "This field is required", vErr.Errors["full_name"])
}

func TestValidate_PassesValidPayload(t *testing.T) {
	v := New()

	err := v.Validate(signUpPayload{
		Email:    "treinador@example.com",
		Password: "senha123",
		FullName: "Carlos Silva",
	})
	assert.NoError(t, err)
}

func TestValidate_AccountRoleAndStatus(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(accountPayload{Role: "trainer", Status: "active"}))
	assert.NoError(t, v.Validate(accountPayload{Role: "student", Status: "new"}))
	assert.NoError(t, v.Validate(accountPayload{}), "empty values defer to required")

	err := v.Validate(accountPayload{Role: "admin", Status: "banned"})
	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors["role"], "trainer or student")
	assert.Contains(t, vErr.Errors["status"], "new, active or inactive")
}
