package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("boom")
	err := Wrap(CodeDependency, cause, "db: insert product")

	assert.Equal(t, CodeDependency, err.Code())
	assert.True(t, stdErrors.Is(err, cause))
	assert.Equal(t, "DEPENDENCY_ERROR: db: insert product", err.Error())
}

func TestAsFindsTypedErrorInChain(t *testing.T) {
	typed := New(CodeConflict, "email already registered")
	wrapped := fmt.Errorf("register: %w", typed)

	found := As(wrapped)
	require.NotNil(t, found)
	assert.Equal(t, CodeConflict, found.Code())

	assert.Nil(t, As(stdErrors.New("plain")))
}

func TestValidationCarriesOrderedFields(t *testing.T) {
	err := Validation(
		FieldError{Field: "password", Message: "must be at least 8 characters"},
		FieldError{Field: "confirm_password", Message: "passwords do not match"},
	)

	fields, ok := err.Details().([]FieldError)
	require.True(t, ok)
	require.Len(t, fields, 2)
	assert.Equal(t, "password", fields[0].Field)
	assert.Equal(t, "confirm_password", fields[1].Field)
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
}

func TestDumpExtractsPGError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "users_email_key",
		TableName:      "users",
	}
	err := Wrap(CodeConflict, fmt.Errorf("create user: %w", pgErr), "duplicate email")

	dump := Dump(err)
	assert.Equal(t, "23505", dump.PGCode)
	assert.Equal(t, "users_email_key", dump.PGConstraint)
	assert.Equal(t, CodeConflict, dump.Code)
	assert.NotEmpty(t, dump.Chain)
}
