package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/careerbridge/server/internal/notify"
)

var _ notify.Store = (*NotificationRepository)(nil)

type NotificationRepository struct {
	db querier
}

func (r *NotificationRepository) Insert(ctx context.Context, notification notify.Notification, createdAt time.Time) (string, error) {
	const op = "postgres.notifications.Insert"

	payload := []byte("{}")
	if len(notification.Payload) > 0 {
		encoded, err := json.Marshal(notification.Payload)
		if err != nil {
			return "", translate(op, err)
		}
		payload = encoded
	}

	var id string
	err := r.db.QueryRow(ctx, `
		INSERT INTO notifications (user_id, type, title, body, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		notification.UserID, notification.Type, notification.Title,
		notification.Body, payload, createdAt,
	).Scan(&id)
	if err != nil {
		return "", translate(op, err)
	}
	return id, nil
}
