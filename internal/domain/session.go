package domain

// Session is a snapshot of one console client's authentication state.
type Session struct {
	User            *Claims
	IsAuthenticated bool
	Loading         bool
}

// Role returns the session's role claim, or "" when no user is attached.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
