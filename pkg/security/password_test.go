package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wearhaus/wearhaus-backend/pkg/config"
)

// Small params keep the hash fast in tests.
var testCfg = config.PasswordConfig{
	ArgonMemoryKB:    8,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     8,
	ArgonKeyLen:      16,
}

func TestHashAndVerifyRoundTrip(t *testing.T) {
	encoded, err := HashPassword("Sup3rSecret", testCfg)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))

	ok, err := VerifyPassword("Sup3rSecret", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("WrongPassw0rd", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPassword("Sup3rSecret", testCfg)
	require.NoError(t, err)
	second, err := HashPassword("Sup3rSecret", testCfg)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	_, err := VerifyPassword("whatever", "not-a-hash")
	assert.ErrorIs(t, err, ErrInvalidHash)
}

func TestEmptyPasswordRejected(t *testing.T) {
	_, err := HashPassword("", testCfg)
	assert.Error(t, err)
}
