package api

import (
	"context"
	"time"

	"github.com/weiawesome/momentroom/pkg/jwt"
)

// expiryLeeway tolerates clock skew between client and platform.
const expiryLeeway = 30 * time.Second

// TokenSource supplies the access token for a request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed access token. JWTs are inspected before use so an
// expired token fails locally instead of costing a round trip; opaque tokens
// are sent as is.
type StaticToken string

func (t StaticToken) Token(ctx context.Context) (string, error) {
	if t == "" {
		return "", nil
	}

	claims, err := jwt.Inspect(string(t))
	if err != nil {
		return string(t), nil
	}
	if claims.Expired(time.Now(), expiryLeeway) {
		return "", jwt.ErrExpiredToken
	}

	return string(t), nil
}
