package domain

// User is an account managed by the remote API.
type User struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"isActive"`
}
