// Package jwt inspects access tokens on the client side.
//
// The client never holds the signing key, so tokens are parsed without
// signature verification; the server stays the authority. Inspection only
// lets the client skip requests it already knows will be rejected.
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims represents the access-token claims issued by the platform.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Type     string `json:"type"` // "access" or "refresh"
}

// Inspect decodes a token's claims without verifying its signature.
func Inspect(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Expired reports whether the token is past its expiry at now, allowing leeway
// for clock skew. Tokens without an exp claim never expire client-side.
func (c *Claims) Expired(now time.Time, leeway time.Duration) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return now.After(c.ExpiresAt.Time.Add(leeway))
}

// User returns the user the token was issued to.
func (c *Claims) User() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.RegisteredClaims.Subject
}
