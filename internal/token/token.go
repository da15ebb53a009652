// Package token mints and verifies the signed, time-bound identity
// tokens carried in the Authorization header. It is stateless: expiry
// is the only termination mechanism, there is no server-side revocation.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired is returned when the token's expiry is at or before now.
	ErrExpired = errors.New("token expired")
	// ErrBadSignature is returned when the signature does not verify
	// against the given secret or the signing method is not HMAC.
	ErrBadSignature = errors.New("token signature invalid")
	// ErrMalformed is returned when the token cannot be parsed.
	ErrMalformed = errors.New("token malformed")
)

// Mint produces a signed HS256 token whose subject is the username and
// whose expiry is now+ttl.
func Mint(subject, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Verify checks signature and expiry and returns the token's subject.
// Signature comparison is constant-time (hmac.Equal inside jwt).
func Verify(tokenString, secret string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadSignature
		}
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrBadSignature):
			return "", ErrBadSignature
		default:
			return "", ErrMalformed
		}
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrMalformed
	}
	return claims.Subject, nil
}
