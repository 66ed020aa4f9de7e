package dto

import (
	"time"

	"github.com/spec-kit/admin-console/internal/domain"
)

// LoginRequest payload of the login form.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// ExternalLoginQuery is the identity provider callback on GET /login.
type ExternalLoginQuery struct {
	Token        string `query:"token"`
	RefreshToken string `query:"refreshToken"`
	Role         string `query:"role"`
}

// LoginView is the login screen.
type LoginView struct {
	Screen         string `json:"screen"`
	GoogleLoginURL string `json:"google_login_url"`
}

// RedirectResponse tells API-style callers where to navigate.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

// SessionUser is the identity shown in the console header.
type SessionUser struct {
	ID        string      `json:"id"`
	Name      string      `json:"name,omitempty"`
	Email     string      `json:"email,omitempty"`
	Role      domain.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// NewSessionUser maps decoded claims. Nil claims give nil.
func NewSessionUser(claims *domain.Claims) *SessionUser {
	if claims == nil {
		return nil
	}
	id := claims.UserID
	if id == "" {
		id = claims.Subject
	}
	return &SessionUser{
		ID:        id,
		Name:      claims.Name,
		Email:     claims.Email,
		Role:      claims.Role,
		ExpiresAt: claims.Expiry().UTC(),
	}
}
