package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique-constraint violation. When
// constraintName is provided the violation must reference that constraint,
// which lets callers translate concurrent duplicates (email, slug, sku) into
// field-level validation errors instead of a generic failure.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		if pgxErr.Code != pgUniqueViolation {
			return false
		}
		return constraintName == "" || pgxErr.ConstraintName == constraintName
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if string(pqErr.Code) != pgUniqueViolation {
			return false
		}
		return constraintName == "" || pqErr.Constraint == constraintName
	}

	// sqlite (tests) reports constraint failures as plain text.
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName) ||
			(strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, columnHint(constraintName)))
	}
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}

// columnHint maps postgres constraint names onto the column text sqlite emits.
func columnHint(constraintName string) string {
	parts := strings.Split(constraintName, "_")
	if len(parts) < 2 {
		return constraintName
	}
	// e.g. users_email_key -> email
	return parts[len(parts)-2]
}
