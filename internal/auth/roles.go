package auth

import (
	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/session"
)

// DecisionKind is the outcome class of a route authorization.
type DecisionKind int

const (
	DecisionRender DecisionKind = iota
	DecisionShowLoading
	DecisionRedirectToLogin
	DecisionRedirect
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionRender:
		return "render"
	case DecisionShowLoading:
		return "loading"
	case DecisionRedirectToLogin:
		return "redirect_login"
	case DecisionRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision tells the router what to do with a protected navigation.
// Target is set for both redirect kinds.
type Decision struct {
	Kind   DecisionKind
	Target string
}

var (
	render          = Decision{Kind: DecisionRender}
	showLoading     = Decision{Kind: DecisionShowLoading}
	redirectToLogin = Decision{Kind: DecisionRedirectToLogin, Target: session.LoginRoute}
)

// Authorize decides whether s may enter a route requiring role. An empty
// role only requires authentication.
func Authorize(s domain.Session, role domain.Role) Decision {
	if s.Loading {
		return showLoading
	}
	if !s.IsAuthenticated || s.User == nil {
		return redirectToLogin
	}
	if role != "" && s.User.Role != role {
		home, ok := session.HomeRoute(s.User.Role)
		if !ok {
			return redirectToLogin
		}
		return Decision{Kind: DecisionRedirect, Target: home}
	}
	return render
}
