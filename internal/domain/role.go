package domain

// Role enumerates the console portals a session may enter.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleAgent  Role = "Agent"
	RoleVendor Role = "Vendor"
)

// Valid reports whether the role is one of the known portals.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleVendor:
		return true
	default:
		return false
	}
}
