package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, VerifyPassword(hash, "secret1"))
	assert.False(t, VerifyPassword(hash, "secret2"))
	assert.False(t, VerifyPassword("not-a-hash", "secret1"))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	at, err := NewAccessToken("test-secret", "user-1", "GUEST", 15)
	require.NoError(t, err)
	assert.True(t, at.Exp.After(time.Now()))

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(at.Token, claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "GUEST", claims["role"])

	_, err = jwt.Parse(at.Token, func(*jwt.Token) (any, error) {
		return []byte("wrong-secret"), nil
	})
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	rt, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 96)
	assert.True(t, rt.Exp.After(time.Now().Add(6*24*time.Hour)))

	other, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.NotEqual(t, rt.Raw, other.Raw)
}

func TestHashRefreshRaw(t *testing.T) {
	h := HashRefreshRaw("raw-token")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashRefreshRaw("raw-token"))
	assert.NotEqual(t, h, HashRefreshRaw("other-token"))
	assert.NotEqual(t, "raw-token", h)
}

func TestNewInviteToken(t *testing.T) {
	tok, err := NewInviteToken()
	require.NoError(t, err)
	assert.Len(t, tok, 32)

	other, err := NewInviteToken()
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}
