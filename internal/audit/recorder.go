package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/careerbridge/server/internal/metrics"
	"github.com/rs/zerolog"
)

// Entry is one append-only audit record. Entries are written once and never
// mutated or deleted by this service.
type Entry struct {
	ID         string
	ActorID    string
	Action     string
	EntityKind string
	EntityID   string
	Details    map[string]any
	CreatedAt  time.Time
}

// Actions recorded by the moderation workflow.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Store persists audit entries. The details payload arrives pre-serialized
// so the store stays a dumb sink.
type Store interface {
	Append(ctx context.Context, entry Entry, detailsJSON []byte) error
}

// Recorder writes audit entries to the store and mirrors them to the
// structured log. Failures are returned for accounting; callers in the
// workflow core convert them to warnings, never to operation failures.
type Recorder struct {
	store  Store
	logger zerolog.Logger
}

func NewRecorder(store Store, logger zerolog.Logger) *Recorder {
	return &Recorder{
		store:  store,
		logger: logger.With().Str("component", "audit").Logger(),
	}
}

func (r *Recorder) Record(ctx context.Context, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	detailsJSON, err := json.Marshal(entry.Details)
	if err != nil {
		metrics.SideEffectFailures.WithLabelValues("audit").Inc()
		return fmt.Errorf("marshal audit details: %w", err)
	}

	r.logger.Info().
		Str("action", entry.Action).
		Str("actor_id", entry.ActorID).
		Str("entity_kind", entry.EntityKind).
		Str("entity_id", entry.EntityID).
		RawJSON("details", detailsJSON).
		Msg("audit")

	if err := r.store.Append(ctx, entry, detailsJSON); err != nil {
		metrics.SideEffectFailures.WithLabelValues("audit").Inc()
		r.logger.Error().Err(err).
			Str("action", entry.Action).
			Str("entity_id", entry.EntityID).
			Msg("audit append failed")
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}
