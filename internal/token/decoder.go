// Package token decodes console access tokens without contacting the issuer.
//
// Signatures are not verified: the claims drive routing decisions only and
// every API call is still authorized by the remote service.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/admin-console/internal/domain"
)

var (
	// ErrMalformedToken is returned when a token cannot be decoded into claims.
	ErrMalformedToken = errors.New("malformed token")
	// ErrExpiredToken is returned when a decoded token is past its expiry.
	ErrExpiredToken = errors.New("token expired")
)

var parser = jwt.NewParser()

// Payload is the JWT body issued by the remote API.
type Payload struct {
	UserID string `json:"id,omitempty"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Decode parses the token payload into claims. It fails with ErrMalformedToken
// when the token is not a JWT or carries no numeric exp claim.
func Decode(raw string) (*domain.Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty token", ErrMalformedToken)
	}

	payload := &Payload{}
	if _, _, err := parser.ParseUnverified(raw, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if payload.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp claim", ErrMalformedToken)
	}

	claims := &domain.Claims{
		Subject:   payload.Subject,
		UserID:    payload.UserID,
		Email:     payload.Email,
		Name:      payload.Name,
		Role:      domain.Role(payload.Role),
		ExpiresAt: payload.ExpiresAt.Unix(),
	}
	if payload.IssuedAt != nil {
		claims.IssuedAt = payload.IssuedAt.Unix()
	}
	return claims, nil
}

// IsExpired compares the expiry claim against now with millisecond precision.
func IsExpired(claims *domain.Claims, now time.Time) bool {
	if claims == nil {
		return true
	}
	return claims.ExpiresAt*1000 < now.UnixMilli()
}
