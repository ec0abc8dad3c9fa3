package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister_PasswordPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Password1", false},
		{"too short", "Pass1", true},
		{"no uppercase", "password1", true},
		{"no lowercase", "PASSWORD1", true},
		{"no digit", "Passwordx", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegister("a@x.com", tt.password)
			if tt.wantErr {
				assert.Contains(t, errs, "password")
			} else {
				assert.False(t, errs.HasErrors(), "unexpected errors: %v", errs)
			}
		})
	}
}

func TestValidateRegister_Email(t *testing.T) {
	t.Parallel()

	assert.Contains(t, ValidateRegister("", "Password1"), "email")
	assert.Contains(t, ValidateRegister("not-an-email", "Password1"), "email")
	assert.False(t, ValidateRegister("user@example.com", "Password1").HasErrors())
}

func TestValidateLogin(t *testing.T) {
	t.Parallel()

	assert.Contains(t, ValidateLogin("a@x.com", ""), "password")
	assert.Contains(t, ValidateLogin("", "secret"), "email")
	// Login must not enforce the registration policy on existing passwords.
	assert.False(t, ValidateLogin("a@x.com", "weak").HasErrors())
}

func TestValidateUserUpdate_OnlyProvidedFields(t *testing.T) {
	t.Parallel()

	assert.False(t, ValidateUserUpdate(nil, nil).HasErrors())

	bad := "nope"
	assert.Contains(t, ValidateUserUpdate(&bad, nil), "email")

	weak := "short"
	assert.Contains(t, ValidateUserUpdate(nil, &weak), "password")

	email := "new@example.com"
	strong := "Password1"
	assert.False(t, ValidateUserUpdate(&email, &strong).HasErrors())
}

func TestValidatePasswordChange(t *testing.T) {
	t.Parallel()

	assert.Contains(t, ValidatePasswordChange("", "Password1"), "old_password")
	assert.Contains(t, ValidatePasswordChange("Oldpass1", "weak"), "new_password")
	assert.False(t, ValidatePasswordChange("Oldpass1", "Newpass1").HasErrors())
}
