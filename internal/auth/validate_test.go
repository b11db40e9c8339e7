package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	t.Run("accepts a compliant password", func(t *testing.T) {
		assert.Empty(t, ValidatePassword("Sommer2024", "Sommer2024"))
	})

	t.Run("reports every failed check", func(t *testing.T) {
		fields := ValidatePassword("abc", "abd")

		var messages []string
		for _, f := range fields {
			messages = append(messages, f.Message)
		}
		assert.Equal(t, []string{
			"must be at least 8 characters",
			"must contain an uppercase letter",
			"must contain a digit",
			"passwords do not match",
		}, messages)
	})

	t.Run("mismatch is reported on password_confirm", func(t *testing.T) {
		fields := ValidatePassword("Sommer2024", "Winter2024")
		require.Len(t, fields, 1)
		assert.Equal(t, "password_confirm", fields[0].Field)
	})

	t.Run("missing lowercase", func(t *testing.T) {
		fields := ValidatePassword("SOMMER2024", "SOMMER2024")
		require.Len(t, fields, 1)
		assert.Equal(t, "must contain a lowercase letter", fields[0].Message)
	})

	t.Run("length counts bytes of exactly eight", func(t *testing.T) {
		assert.Empty(t, ValidatePassword("Abcdef12", "Abcdef12"))
	})
}
