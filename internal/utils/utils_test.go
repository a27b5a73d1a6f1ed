package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const secret = "test-secret"

func TestAuthToken_RoundTrip(t *testing.T) {
	raw, err := NewAuthToken(secret, 42, "admin", 0)
	require.NoError(t, err)

	id, claims, err := ParseAuthToken(secret, raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
	assert.Equal(t, "admin", claims.Username)
	assert.Nil(t, claims.ExpiresAt)
	assert.Len(t, claims.ID, 32)
}

func TestAuthToken_Distinct(t *testing.T) {
	a, err := NewAuthToken(secret, 1, "u", 0)
	require.NoError(t, err)
	b, err := NewAuthToken(secret, 1, "u", 0)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestParseAuthToken_Rejects(t *testing.T) {
	raw, err := NewAuthToken(secret, 7, "u", 0)
	require.NoError(t, err)

	_, _, err = ParseAuthToken("other-secret", raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = ParseAuthToken(secret, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString([]byte(secret))
	require.NoError(t, err)
	_, _, err = ParseAuthToken(secret, signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{Username: "x"})
	signed, err = noSubject.SignedString([]byte(secret))
	require.NoError(t, err)
	_, _, err = ParseAuthToken(secret, signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthToken_TTL(t *testing.T) {
	raw, err := NewAuthToken(secret, 3, "u", time.Hour)
	require.NoError(t, err)
	_, claims, err := ParseAuthToken(secret, raw)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("password", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "password"))
	assert.False(t, VerifyPassword(hash, "Password"))
	assert.False(t, VerifyPassword("not-a-hash", "password"))
}

func TestBurnPasswordCheck(t *testing.T) {
	assert.NotPanics(t, func() { BurnPasswordCheck("anything") })
}
