// Package auth decodes the bearer tokens issued by the FarmXChain backend.
//
// The client never holds the signing key, so tokens are decoded without
// signature verification; the backend remains the only authority. The
// payload is used for two things: the expiry check that gates navigation,
// and a degraded identity when no user record is cached.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoToken is returned by Decode for an empty token.
var ErrNoToken = errors.New("auth: no token")

// Claims holds the typed JWT payload. The subject is the user's email.
type Claims struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Email returns the subject claim.
func (c *Claims) Email() string { return c.Subject }

// Expired reports whether the token is unusable at now. A token without an
// exp claim counts as expired.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return true
	}
	return !c.ExpiresAt.Time.After(now)
}

var parser = jwt.NewParser()

// Decode parses the token payload without verifying its signature.
func Decode(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("auth: decode token: %w", err)
	}
	return claims, nil
}

// Valid reports whether token decodes and is unexpired at now.
// It never fails: any problem yields false.
func Valid(token string, now time.Time) bool {
	c, err := Decode(token)
	if err != nil {
		return false
	}
	return !c.Expired(now)
}
