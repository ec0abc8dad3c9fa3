package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

func ValidateRegister(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)
	validatePassword(password, errs)

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

// ValidateUserUpdate checks only the fields that are present.
func ValidateUserUpdate(email, password *string) ValidationErrors {
	errs := make(ValidationErrors)

	if email != nil {
		validateEmail(*email, errs)
	}
	if password != nil {
		validatePassword(*password, errs)
	}

	return errs
}

func ValidatePasswordChange(oldPassword, newPassword string) ValidationErrors {
	errs := make(ValidationErrors)

	if oldPassword == "" {
		errs.Add("old_password", "Current password is required")
	}
	validatePasswordField("new_password", newPassword, errs)

	return errs
}

func validateEmail(email string, errs ValidationErrors) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}
}

func validatePassword(password string, errs ValidationErrors) {
	validatePasswordField("password", password, errs)
}

func validatePasswordField(field, password string, errs ValidationErrors) {
	if len(password) < 8 {
		errs.Add(field, "Password must be at least 8 characters")
		return
	}

	var hasUpper, hasLower, hasDigit bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		}
	}

	missing := []string{}
	if !hasUpper {
		missing = append(missing, "one uppercase letter")
	}
	if !hasLower {
		missing = append(missing, "one lowercase letter")
	}
	if !hasDigit {
		missing = append(missing, "one number")
	}

	if len(missing) > 0 {
		errs.Add(field, fmt.Sprintf("Password must contain at least %s", strings.Join(missing, ", ")))
	}
}
