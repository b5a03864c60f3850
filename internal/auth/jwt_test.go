package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRequiresSecret(t *testing.T) {
	assert.Error(t, Init("", time.Hour, time.Hour))
}

func TestGenerateTokenPair(t *testing.T) {
	require.NoError(t, Init("test-secret", time.Hour, 24*time.Hour))

	pair, err := GenerateTokenPair(42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access, err := VerifyJWT(pair.AccessToken)
	require.NoError(t, err)

	claims := access.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, "access", claims["token_type"])

	refresh, err := VerifyJWT(pair.RefreshToken)
	require.NoError(t, err)

	claims = refresh.Claims.(jwt.MapClaims)
	assert.Equal(t, "refresh", claims["token_type"])
	assert.NotEmpty(t, claims["jti"])
}

func TestVerifyJWTRejectsTampering(t *testing.T) {
	require.NoError(t, Init("test-secret", time.Hour, 24*time.Hour))

	pair, err := GenerateTokenPair(1, "alice")
	require.NoError(t, err)

	_, err = VerifyJWT(pair.AccessToken + "x")
	assert.Error(t, err)

	_, err = VerifyJWT("not-a-token")
	assert.Error(t, err)
}

func TestVerifyJWTRejectsExpired(t *testing.T) {
	require.NoError(t, Init("test-secret", time.Hour, 24*time.Hour))

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    uint(1),
		"token_type": "access",
		"exp":        time.Now().Add(-time.Minute).Unix(),
	})
	tokenString, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = VerifyJWT(tokenString)
	assert.Error(t, err)
}
