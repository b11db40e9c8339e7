package users

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"

	pkgerrors "github.com/wearhaus/wearhaus-backend/pkg/errors"
)

var phonePattern = regexp.MustCompile(`^\+?\d{8,15}$`)

// NormalizeEmail lowercases and trims an email and checks its basic shape.
func NormalizeEmail(value string) (string, *pkgerrors.FieldError) {
	email := strings.ToLower(strings.TrimSpace(value))
	if email == "" {
		return "", &pkgerrors.FieldError{Field: "email", Message: "email is required"}
	}
	at := strings.Index(email, "@")
	if at < 1 || !strings.Contains(email[at+1:], ".") || strings.Count(email, "@") != 1 {
		return "", &pkgerrors.FieldError{Field: "email", Message: "enter a valid email address"}
	}
	return email, nil
}

// NormalizeName validates a first or last name and returns it capitalized.
// Names must be alphabetic and at least two characters long.
func NormalizeName(field, value string) (string, *pkgerrors.FieldError) {
	name := strings.TrimSpace(value)
	if len([]rune(name)) < 2 {
		return "", &pkgerrors.FieldError{Field: field, Message: "must be at least 2 characters"}
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return "", &pkgerrors.FieldError{Field: field, Message: "must contain only letters"}
		}
	}
	return capitalize(name), nil
}

// NormalizePhone validates a phone number. An empty value clears the field.
func NormalizePhone(value string) (string, *pkgerrors.FieldError) {
	phone := strings.TrimSpace(value)
	if phone == "" {
		return "", nil
	}
	if !phonePattern.MatchString(phone) {
		return "", &pkgerrors.FieldError{Field: "phone_number", Message: "enter a valid phone number"}
	}
	return phone, nil
}

func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// fieldApplier validates one profile field and returns the normalized value
// to persist. Appliers that need uniqueness checks receive the repository.
type fieldApplier func(ctx context.Context, repo *Repository, userID uuid.UUID, value string) (string, error)

// profileFields is the dispatch table of editable profile columns. Fields not
// listed here are silently ignored by UpdateProfileField.
var profileFields = map[string]fieldApplier{
	"email": func(ctx context.Context, repo *Repository, userID uuid.UUID, value string) (string, error) {
		email, ferr := NormalizeEmail(value)
		if ferr != nil {
			return "", pkgerrors.Validation(*ferr)
		}
		taken, err := repo.EmailTakenByOther(ctx, email, userID)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking email availability")
		}
		if taken {
			return "", pkgerrors.New(pkgerrors.CodeConflict, "email is already in use")
		}
		return email, nil
	},
	"first_name": func(_ context.Context, _ *Repository, _ uuid.UUID, value string) (string, error) {
		name, ferr := NormalizeName("first_name", value)
		if ferr != nil {
			return "", pkgerrors.Validation(*ferr)
		}
		return name, nil
	},
	"last_name": func(_ context.Context, _ *Repository, _ uuid.UUID, value string) (string, error) {
		name, ferr := NormalizeName("last_name", value)
		if ferr != nil {
			return "", pkgerrors.Validation(*ferr)
		}
		return name, nil
	},
	"phone_number": func(_ context.Context, _ *Repository, _ uuid.UUID, value string) (string, error) {
		phone, ferr := NormalizePhone(value)
		if ferr != nil {
			return "", pkgerrors.Validation(*ferr)
		}
		return phone, nil
	},
}

// IsEditableField reports whether the field name is in the dispatch table.
func IsEditableField(field string) bool {
	_, ok := profileFields[field]
	return ok
}
