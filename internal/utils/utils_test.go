package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	signed, exp, err := GenerateToken(userID, "a@example.com", "secret", 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	assert.Greater(t, exp, time.Now().Unix())

	claims, err := VerifyToken(signed, "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID())
	assert.Equal(t, "a@example.com", claims.Email)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	signed, _, err := GenerateToken(uuid.New(), "a@example.com", "secret", time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(signed, "other")
	assert.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	signed, _, err := GenerateToken(uuid.New(), "a@example.com", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(signed, "secret")
	assert.Error(t, err)
}

func TestSecretRequired(t *testing.T) {
	_, _, err := GenerateToken(uuid.New(), "a@example.com", "", time.Minute)
	assert.Error(t, err)

	_, err = VerifyToken("whatever", "")
	assert.Error(t, err)
}

func TestUserIDBadSubject(t *testing.T) {
	c := &CustomClaims{}
	c.Subject = "not-a-uuid"
	assert.Equal(t, uuid.Nil, c.UserID())
}
