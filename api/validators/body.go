package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/wearhaus/wearhaus-backend/pkg/errors"
)

var validate = newValidator()

// newValidator reports field problems under their json names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

const maxBodyBytes = 1 << 20

// DecodeJSONBody parses the request body into dst, rejecting unknown fields,
// then runs the struct tags through the validator. Problems come back as a
// field-level validation error.
func DecodeJSONBody(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return pkgerrors.Validation(pkgerrors.FieldError{
			Field:   "body",
			Message: decodeMessage(err),
		})
	}
	if decoder.More() {
		return pkgerrors.Validation(pkgerrors.FieldError{
			Field:   "body",
			Message: "request body must contain a single JSON object",
		})
	}

	if err := validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "validating request body")
		}

		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]pkgerrors.FieldError, 0, len(verrs))
			for _, ve := range verrs {
				fields = append(fields, pkgerrors.FieldError{
					Field:   fieldName(ve),
					Message: tagMessage(ve),
				})
			}
			return pkgerrors.Validation(fields...)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "validating request body")
	}

	return nil
}

func decodeMessage(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &tooLarge):
		return "request body too large"
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		return fmt.Sprintf("invalid type for field %q", typeErr.Field)
	case strings.HasPrefix(err.Error(), "json: unknown field"):
		return strings.ReplaceAll(err.Error(), "json: ", "")
	default:
		return "invalid request body"
	}
}

// fieldName strips the root struct from the namespace, keeping nested paths
// like items[0].quantity intact.
func fieldName(ve validator.FieldError) string {
	namespace := ve.Namespace()
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	return namespace
}

func tagMessage(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s", ve.Param())
	case "max":
		return fmt.Sprintf("must have at most %s", ve.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", ve.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	default:
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
