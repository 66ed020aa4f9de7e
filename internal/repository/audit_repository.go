package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/admin-console/internal/domain"
)

// ErrAuditDisabled is returned when no audit database is configured.
var ErrAuditDisabled = errors.New("session audit storage not configured")

// AuditRepository persists session transitions.
type AuditRepository interface {
	Record(ctx context.Context, entry *domain.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository returns a Postgres-backed implementation. A nil pool
// yields a repository whose calls fail with ErrAuditDisabled.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Record(ctx context.Context, entry *domain.AuditEntry) error {
	if r.pool == nil {
		return ErrAuditDisabled
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	const query = `
        INSERT INTO session_audit (id, client_id, event_type, role, subject, reason, occurred_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.ClientID,
		entry.EventType,
		string(entry.Role),
		entry.Subject,
		entry.Reason,
		entry.OccurredAt,
	)
	return err
}

func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if r.pool == nil {
		return nil, ErrAuditDisabled
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	const query = `
        SELECT id, client_id, event_type, role, subject, reason, occurred_at
        FROM session_audit
        ORDER BY occurred_at DESC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.AuditEntry, 0, limit)
	for rows.Next() {
		var (
			entry domain.AuditEntry
			role  string
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.ClientID,
			&entry.EventType,
			&role,
			&entry.Subject,
			&entry.Reason,
			&entry.OccurredAt,
		); err != nil {
			return nil, err
		}
		entry.Role = domain.Role(role)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
