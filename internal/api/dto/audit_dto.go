package dto

import (
	"time"

	"github.com/spec-kit/admin-console/internal/domain"
)

// AuditEntryResponse is one row of the session audit screen.
type AuditEntryResponse struct {
	ID         string      `json:"id"`
	ClientID   string      `json:"client_id"`
	EventType  string      `json:"event_type"`
	Role       domain.Role `json:"role,omitempty"`
	Subject    string      `json:"subject,omitempty"`
	Reason     string      `json:"reason"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// NewAuditEntries maps audit entries.
func NewAuditEntries(entries []domain.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditEntryResponse{
			ID:         e.ID,
			ClientID:   e.ClientID,
			EventType:  e.EventType,
			Role:       e.Role,
			Subject:    e.Subject,
			Reason:     e.Reason,
			OccurredAt: e.OccurredAt,
		})
	}
	return out
}
