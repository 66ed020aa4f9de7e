package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/admin-console/internal/domain"
)

func authenticated(role domain.Role) domain.Session {
	return domain.Session{IsAuthenticated: true, User: &domain.Claims{Role: role}}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		session  domain.Session
		role     domain.Role
		expected Decision
	}{
		{
			name:     "loading",
			session:  domain.Session{Loading: true},
			role:     domain.RoleAdmin,
			expected: Decision{Kind: DecisionShowLoading},
		},
		{
			name:     "unauthenticated",
			session:  domain.Session{},
			role:     domain.RoleAdmin,
			expected: Decision{Kind: DecisionRedirectToLogin, Target: "/login"},
		},
		{
			name:     "matching role",
			session:  authenticated(domain.RoleAdmin),
			role:     domain.RoleAdmin,
			expected: Decision{Kind: DecisionRender},
		},
		{
			name:     "no role required",
			session:  authenticated(domain.RoleVendor),
			role:     "",
			expected: Decision{Kind: DecisionRender},
		},
		{
			name:     "agent on admin route",
			session:  authenticated(domain.RoleAgent),
			role:     domain.RoleAdmin,
			expected: Decision{Kind: DecisionRedirect, Target: "/agent"},
		},
		{
			name:     "admin on vendor route",
			session:  authenticated(domain.RoleAdmin),
			role:     domain.RoleVendor,
			expected: Decision{Kind: DecisionRedirect, Target: "/admin"},
		},
		{
			name:     "vendor on agent route",
			session:  authenticated(domain.RoleVendor),
			role:     domain.RoleAgent,
			expected: Decision{Kind: DecisionRedirect, Target: "/vendor"},
		},
		{
			name:     "unknown role",
			session:  authenticated("Auditor"),
			role:     domain.RoleAdmin,
			expected: Decision{Kind: DecisionRedirectToLogin, Target: "/login"},
		},
		{
			name:     "authenticated flag without user",
			session:  domain.Session{IsAuthenticated: true},
			role:     domain.RoleAdmin,
			expected: Decision{Kind: DecisionRedirectToLogin, Target: "/login"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Authorize(tt.session, tt.role))
			assert.Equal(t, Authorize(tt.session, tt.role), Authorize(tt.session, tt.role))
		})
	}
}

func TestAuthorizeUnauthenticatedIgnoresRole(t *testing.T) {
	for _, role := range []domain.Role{"", domain.RoleAdmin, domain.RoleAgent, domain.RoleVendor, "Other"} {
		got := Authorize(domain.Session{User: &domain.Claims{Role: role}}, role)
		assert.Equal(t, DecisionRedirectToLogin, got.Kind, "role %q", role)
	}
}

func TestDecisionKindString(t *testing.T) {
	assert.Equal(t, "render", DecisionRender.String())
	assert.Equal(t, "redirect", DecisionRedirect.String())
	assert.Equal(t, "unknown", DecisionKind(42).String())
}
