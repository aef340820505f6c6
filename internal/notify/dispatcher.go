package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/careerbridge/server/internal/metrics"
	"github.com/rs/zerolog"
)

// Notification is one event fanned out to a target user. The row persisted
// by the store is what the user sees in-app; the email leg is an optional,
// at-least-once extra handled by the job queue.
type Notification struct {
	UserID    string
	Type      string
	Title     string
	Body      string
	EmailAlso bool
	Payload   map[string]any
}

// Notification types emitted by the workflow core.
const (
	TypeCompanyApproved     = "company_approved"
	TypeCompanyRejected     = "company_rejected"
	TypeOpportunityApproved = "opportunity_approved"
	TypeOpportunityRejected = "opportunity_rejected"
	TypeGraduationApproved  = "graduation_approved"
	TypeGraduationRejected  = "graduation_rejected"
	TypeNewInterest         = "new_interest"
)

type Store interface {
	Insert(ctx context.Context, notification Notification, createdAt time.Time) (string, error)
}

// Enqueuer schedules the email delivery of a stored notification.
type Enqueuer interface {
	EnqueueEmail(ctx context.Context, notificationID string, notification Notification) error
}

// Dispatcher persists a notification and, when requested, enqueues its
// email delivery. Send is best-effort from the caller's point of view:
// failures are returned for warning accounting but must never unwind the
// caller's primary write.
type Dispatcher struct {
	store    Store
	enqueuer Enqueuer
	logger   zerolog.Logger
}

func NewDispatcher(store Store, enqueuer Enqueuer, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		store:    store,
		enqueuer: enqueuer,
		logger:   logger.With().Str("component", "notify").Logger(),
	}
}

func (d *Dispatcher) Send(ctx context.Context, notification Notification) error {
	if notification.UserID == "" {
		return fmt.Errorf("notification target user id is empty")
	}

	id, err := d.store.Insert(ctx, notification, time.Now().UTC())
	if err != nil {
		metrics.SideEffectFailures.WithLabelValues("notification").Inc()
		d.logger.Error().Err(err).
			Str("type", notification.Type).
			Str("user_id", notification.UserID).
			Msg("notification insert failed")
		return fmt.Errorf("insert notification: %w", err)
	}
	metrics.NotificationsSent.WithLabelValues("in_app").Inc()

	if notification.EmailAlso && d.enqueuer != nil {
		if err := d.enqueuer.EnqueueEmail(ctx, id, notification); err != nil {
			metrics.SideEffectFailures.WithLabelValues("notification_email").Inc()
			d.logger.Error().Err(err).
				Str("notification_id", id).
				Msg("email enqueue failed")
			return fmt.Errorf("enqueue notification email: %w", err)
		}
	}

	d.logger.Debug().
		Str("notification_id", id).
		Str("type", notification.Type).
		Str("user_id", notification.UserID).
		Bool("email_also", notification.EmailAlso).
		Msg("notification dispatched")
	return nil
}
