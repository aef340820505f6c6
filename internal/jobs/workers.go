package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/careerbridge/server/internal/domain/users"
	"github.com/careerbridge/server/internal/metrics"
	"github.com/riverqueue/river"
	"github.com/rs/zerolog"
)

type NotificationEmailArgs struct {
	NotificationID string `json:"notification_id"`
	UserID         string `json:"user_id"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
}

func (NotificationEmailArgs) Kind() string { return JobKindNotificationEmail }

// EmailSender is satisfied by email.Service.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// NotificationEmailWorker delivers the email leg of a stored notification.
// The recipient address is resolved at work time, not enqueue time, so an
// address change between the two uses the current one.
type NotificationEmailWorker struct {
	river.WorkerDefaults[NotificationEmailArgs]

	Users  users.Repository
	Sender EmailSender
	Logger zerolog.Logger
}

func (NotificationEmailWorker) Kind() string { return JobKindNotificationEmail }

func (w *NotificationEmailWorker) Work(ctx context.Context, job *river.Job[NotificationEmailArgs]) error {
	user, err := w.Users.GetByID(ctx, job.Args.UserID)
	if err != nil {
		return fmt.Errorf("load recipient %s: %w", job.Args.UserID, err)
	}

	if err := w.Sender.Send(ctx, user.Email, job.Args.Subject, job.Args.Body); err != nil {
		return fmt.Errorf("send notification %s: %w", job.Args.NotificationID, err)
	}

	metrics.NotificationsSent.WithLabelValues("email").Inc()
	w.Logger.Info().
		Str("notification_id", job.Args.NotificationID).
		Str("user_id", job.Args.UserID).
		Msg("notification email sent")
	return nil
}

type ApprovalSLACheckArgs struct{}

func (ApprovalSLACheckArgs) Kind() string { return JobKindApprovalSLACheck }

// PendingCounter reports how many pending submissions per entity kind are
// older than the cutoff.
type PendingCounter interface {
	CountPendingOverSLA(ctx context.Context, cutoff time.Time) (map[string]int, error)
}

// ApprovalSLAWorker is the periodic sweep behind the stale-queue gauge. It
// never pages anyone itself; it surfaces the numbers and lets alerting
// rules decide.
type ApprovalSLAWorker struct {
	river.WorkerDefaults[ApprovalSLACheckArgs]

	Counter PendingCounter
	SLA     time.Duration
	Logger  zerolog.Logger
}

func (ApprovalSLAWorker) Kind() string { return JobKindApprovalSLACheck }

func (w *ApprovalSLAWorker) Work(ctx context.Context, job *river.Job[ApprovalSLACheckArgs]) error {
	sla := w.SLA
	if sla <= 0 {
		sla = 48 * time.Hour
	}
	cutoff := time.Now().UTC().Add(-sla)

	counts, err := w.Counter.CountPendingOverSLA(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("count pending over sla: %w", err)
	}

	for kind, count := range counts {
		metrics.PendingOverSLA.WithLabelValues(kind).Set(float64(count))
		if count > 0 {
			w.Logger.Warn().
				Str("entity_kind", kind).
				Int("count", count).
				Dur("sla", sla).
				Msg("pending approvals over SLA")
		}
	}
	return nil
}
