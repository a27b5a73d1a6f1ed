package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"  // secure random number generation
	"encoding/hex" // hex encoding of the token id
	"errors"
	"strconv"
	"time" // time utilities for issue and expiry stamps

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// TokenClaims is the payload of an API token.  The subject holds the user
// id as a decimal string; Username is carried for logging only.
type TokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// ErrInvalidToken is returned for any token that fails parsing or
// signature verification.
var ErrInvalidToken = errors.New("invalid token")

// NewAuthToken signs an HS256 token for a user.  A ttl of zero issues a
// token without an expiry; such tokens stay valid until they are revoked
// in the store.  Each call produces a distinct string because the token id
// (jti) is random.
func NewAuthToken(secret string, userID uint64, username string, ttl time.Duration) (string, error) {
	jti, err := randomHex(16)
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	claims := TokenClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatUint(userID, 10),
			ID:       jti,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	// Create and sign the token with the shared secret.
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseAuthToken verifies the signature (and expiry, when present) of raw
// and returns the user id in its subject.
func ParseAuthToken(secret, raw string) (uint64, *TokenClaims, error) {
	claims := &TokenClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return 0, nil, ErrInvalidToken
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, nil, ErrInvalidToken
	}
	return id, claims, nil
}

// randomHex returns a hex‑encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
