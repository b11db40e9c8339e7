package auth

import (
	"unicode"

	pkgerrors "github.com/wearhaus/wearhaus-backend/pkg/errors"
)

const minPasswordLength = 8

// ValidatePassword runs the password policy checks in a fixed order and
// returns every failed check as a field error. An empty slice means the
// password is acceptable.
func ValidatePassword(password, confirm string) []pkgerrors.FieldError {
	var fields []pkgerrors.FieldError

	if len(password) < minPasswordLength {
		fields = append(fields, pkgerrors.FieldError{
			Field:   "password",
			Message: "must be at least 8 characters",
		})
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		fields = append(fields, pkgerrors.FieldError{
			Field:   "password",
			Message: "must contain an uppercase letter",
		})
	}
	if !hasLower {
		fields = append(fields, pkgerrors.FieldError{
			Field:   "password",
			Message: "must contain a lowercase letter",
		})
	}
	if !hasDigit {
		fields = append(fields, pkgerrors.FieldError{
			Field:   "password",
			Message: "must contain a digit",
		})
	}

	if password != confirm {
		fields = append(fields, pkgerrors.FieldError{
			Field:   "password_confirm",
			Message: "passwords do not match",
		})
	}

	return fields
}
