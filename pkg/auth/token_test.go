package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wearhaus/wearhaus-backend/pkg/config"
)

var jwtTestCfg = config.JWTConfig{Secret: "secret", Issuer: "wearhaus", ExpirationMinutes: 10}

func TestMintAndParseRoundTrip(t *testing.T) {
	userID := uuid.New()
	token, err := MintAccessToken(jwtTestCfg, time.Now(), AccessTokenPayload{
		UserID:  userID,
		IsStaff: true,
		JTI:     "session-1",
	})
	require.NoError(t, err)

	claims, err := ParseAccessToken(jwtTestCfg, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.True(t, claims.IsStaff)
	assert.Equal(t, "session-1", claims.ID)
	assert.Equal(t, "wearhaus", claims.Issuer)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := MintAccessToken(jwtTestCfg, time.Now().Add(-time.Hour), AccessTokenPayload{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = ParseAccessToken(jwtTestCfg, token)
	assert.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := MintAccessToken(jwtTestCfg, time.Now(), AccessTokenPayload{UserID: uuid.New()})
	require.NoError(t, err)

	other := jwtTestCfg
	other.Secret = "different"
	_, err = ParseAccessToken(other, token)
	assert.Error(t, err)
}

func TestMintRequiresConfig(t *testing.T) {
	_, err := MintAccessToken(config.JWTConfig{}, time.Now(), AccessTokenPayload{UserID: uuid.New()})
	assert.Error(t, err)
}
