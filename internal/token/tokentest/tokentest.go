// Package tokentest issues signed access tokens shaped like the remote API's.
package tokentest

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/token"
)

// Secret signs every test token. The console never checks it.
var Secret = []byte("tokentest-secret")

// Issue signs a token carrying the given claims.
func Issue(claims domain.Claims) (string, error) {
	payload := &token.Payload{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			ExpiresAt: jwt.NewNumericDate(time.Unix(claims.ExpiresAt, 0)),
		},
	}
	if claims.IssuedAt != 0 {
		payload.IssuedAt = jwt.NewNumericDate(time.Unix(claims.IssuedAt, 0))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(Secret)
}

// MustIssue is Issue for tests.
func MustIssue(tb testing.TB, claims domain.Claims) string {
	tb.Helper()
	raw, err := Issue(claims)
	if err != nil {
		tb.Fatalf("issue token: %v", err)
	}
	return raw
}

// ForRole issues a token for role that expires after ttl (negative for expired).
func ForRole(tb testing.TB, role domain.Role, ttl time.Duration) string {
	tb.Helper()
	now := time.Now()
	return MustIssue(tb, domain.Claims{
		Subject:   "user-" + string(role),
		UserID:    "user-" + string(role),
		Email:     string(role) + "@example.com",
		Role:      role,
		ExpiresAt: now.Add(ttl).Unix(),
		IssuedAt:  now.Unix(),
	})
}
