package events

import (
	"time"

	"github.com/spec-kit/admin-console/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionEstablished EventType = "session_established"
	EventSessionCleared     EventType = "session_cleared"
	EventLoginRejected      EventType = "login_rejected"
)

// Reasons attached to session events.
const (
	ReasonStartup   = "startup"
	ReasonLogin     = "login"
	ReasonLogout    = "logout"
	ReasonExpired   = "expired"
	ReasonMalformed = "malformed"
)

// Event represents a session transition of one console client.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	ClientID  string         `json:"client_id"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   SessionPayload `json:"payload"`
}

// SessionPayload describes who the transition concerned and why it happened.
type SessionPayload struct {
	Role    domain.Role `json:"role,omitempty"`
	Subject string      `json:"subject,omitempty"`
	Reason  string      `json:"reason"`
}
