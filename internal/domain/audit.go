package domain

import "time"

// AuditEntry records one session transition of a console client.
type AuditEntry struct {
	ID         string
	ClientID   string
	EventType  string
	Role       Role
	Subject    string
	Reason     string
	OccurredAt time.Time
}
