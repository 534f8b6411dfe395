package utils_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/currency_exchange_app/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, expiresAt, err := utils.GenerateJWT("user-1", "secret", time.Hour, "cea")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := utils.ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "cea", claims.Issuer)

	_, err = utils.ParseAndValidateJWT(token, "other-secret")
	assert.True(t, errors.Is(err, jwt.ErrTokenSignatureInvalid))
}

func TestParseAndValidateJWT_Rejects(t *testing.T) {
	expired, _, err := utils.GenerateJWT("user-1", "secret", -time.Hour, "cea")
	require.NoError(t, err)
	_, err = utils.ParseAndValidateJWT(expired, "secret")
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-1"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = utils.ParseAndValidateJWT(noExpiry, "secret")
	assert.Error(t, err)

	otherAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = utils.ParseAndValidateJWT(otherAlg, "secret")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", hash)
	assert.True(t, utils.CheckPasswordHash("correct-horse", hash))
	assert.False(t, utils.CheckPasswordHash("battery-staple", hash))
}

func TestPosthogWrapper_NilSafe(t *testing.T) {
	var w *utils.PosthogClientWrapper
	assert.False(t, w.IsInitialized())
	w.Enqueue("user-1", "event", nil)
	w.Close()
}
