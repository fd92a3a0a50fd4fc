package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("super-secret")
	require.NoError(t, err)
	assert.NoError(t, CheckPassword(hash, "super-secret"))
	assert.Error(t, CheckPassword(hash, "wrong"))
}

func TestGenerateAndParseToken(t *testing.T) {
	token, issued, err := GenerateToken("test-secret", Claims{UserID: "u1", Role: RoleHR}, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	parsed, err := ParseToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "u1", parsed.UserID)
	assert.Equal(t, RoleHR, parsed.Role)
	assert.Equal(t, issued.ID, parsed.ID)
}

func TestParseTokenRejects(t *testing.T) {
	token, _, err := GenerateToken("test-secret", Claims{UserID: "u1", Role: RoleAdmin}, time.Hour)
	require.NoError(t, err)
	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)

	expired, _, err := GenerateToken("test-secret", Claims{UserID: "u1", Role: RoleAdmin}, -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken("test-secret", expired)
	assert.Error(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseToken("test-secret", raw)
	assert.Error(t, err)
}
