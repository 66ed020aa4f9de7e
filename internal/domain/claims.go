package domain

import "time"

// Claims is the decoded payload of an access token.
type Claims struct {
	Subject   string
	UserID    string
	Email     string
	Name      string
	Role      Role
	ExpiresAt int64
	IssuedAt  int64
}

// Expiry returns the expiry claim as a time.
func (c Claims) Expiry() time.Time {
	return time.Unix(c.ExpiresAt, 0)
}
