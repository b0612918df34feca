package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	Init("test-secret", 60)

	token, err := GenerateToken("user-1", "trainer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "trainer", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestParseToken_RejectsGarbage(t *testing.T) {
	Init("test-secret", 60)

	_, err := ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseToken_RejectsWrongSecret(t *testing.T) {
	Init("secret-a", 60)
	token, err := GenerateToken("user-1", "student")
	require.NoError(t, err)

	Init("secret-b", 60)
	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseToken_RejectsExpired(t *testing.T) {
	Init("test-secret", -1)
	tokenTTL = -1 // force issuance in the past

	token, err := GenerateToken("user-1", "student")
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	Init("test-secret", 60)
}
