package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired is returned by DecodeJWT for tokens past their exp claim.
var ErrTokenExpired = errors.New("token expired")

// DecodeJWT reads the claims of a token issued by the backend without
// verifying its signature; the backend stays the authority on validity.
// Malformed tokens and tokens expired at now are rejected.
func DecodeJWT(tokenString string, now time.Time) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, err
	}

	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}
