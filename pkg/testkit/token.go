package testkit

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token mints a backend-shaped bearer token for tests. The signing key is a
// throwaway; clients never verify the signature.
func Token(t testing.TB, email, role string, userID int64, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":    email,
		"role":   role,
		"userId": userID,
		"iat":    exp.Add(-24 * time.Hour).Unix(),
	}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("testkit"))
	if err != nil {
		t.Fatalf("testkit: sign token: %v", err)
	}
	return tok
}

// SeedToken mints the token described by seed, valid for an hour unless the
// seed asks for an expired one.
func SeedToken(t testing.TB, seed *SessionSeed) string {
	t.Helper()
	exp := time.Now().Add(time.Hour)
	if seed.Expired {
		exp = time.Now().Add(-time.Hour)
	}
	email := seed.Email
	if email == "" {
		email = "user@farmx.test"
	}
	return Token(t, email, seed.Role, seed.UserID, exp)
}
