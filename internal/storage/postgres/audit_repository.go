package postgres

import (
	"context"

	"github.com/careerbridge/server/internal/audit"
)

var _ audit.Store = (*AuditRepository)(nil)

// AuditRepository is append-only. There is deliberately no update or
// delete; the table is the system of record for moderation decisions.
type AuditRepository struct {
	db querier
}

func (r *AuditRepository) Append(ctx context.Context, entry audit.Entry, detailsJSON []byte) error {
	const op = "postgres.audit.Append"
	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_log (actor_id, action, entity_kind, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ActorID, entry.Action, entry.EntityKind, entry.EntityID,
		detailsJSON, entry.CreatedAt,
	)
	return translate(op, err)
}
