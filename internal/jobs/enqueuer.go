package jobs

import (
	"context"
	"fmt"

	"github.com/careerbridge/server/internal/notify"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
)

// EmailEnqueuer adapts the River client to the notify.Enqueuer interface.
type EmailEnqueuer struct {
	Client *river.Client[pgx.Tx]
}

var _ notify.Enqueuer = (*EmailEnqueuer)(nil)

func (e *EmailEnqueuer) EnqueueEmail(ctx context.Context, notificationID string, notification notify.Notification) error {
	opts := InsertOptsForKind(JobKindNotificationEmail)
	_, err := e.Client.Insert(ctx, NotificationEmailArgs{
		NotificationID: notificationID,
		UserID:         notification.UserID,
		Subject:        notification.Title,
		Body:           notification.Body,
	}, &opts)
	if err != nil {
		return fmt.Errorf("enqueue notification email: %w", err)
	}
	return nil
}
