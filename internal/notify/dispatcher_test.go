package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	inserted []Notification
	fail     bool
}

func (f *fakeStore) Insert(ctx context.Context, notification Notification, createdAt time.Time) (string, error) {
	if f.fail {
		return "", errors.New("insert failed")
	}
	f.inserted = append(f.inserted, notification)
	return "notif-1", nil
}

type fakeEnqueuer struct {
	enqueued []string
	fail     bool
}

func (f *fakeEnqueuer) EnqueueEmail(ctx context.Context, notificationID string, notification Notification) error {
	if f.fail {
		return errors.New("enqueue failed")
	}
	f.enqueued = append(f.enqueued, notificationID)
	return nil
}

func TestSendPersistsNotification(t *testing.T) {
	store := &fakeStore{}
	enqueuer := &fakeEnqueuer{}
	dispatcher := NewDispatcher(store, enqueuer, zerolog.Nop())

	err := dispatcher.Send(context.Background(), Notification{
		UserID: "user-1",
		Type:   TypeCompanyApproved,
		Title:  "Company approved",
	})

	require.NoError(t, err)
	require.Len(t, store.inserted, 1)
	require.Empty(t, enqueuer.enqueued, "no email leg unless EmailAlso")
}

func TestSendEnqueuesEmailWhenRequested(t *testing.T) {
	store := &fakeStore{}
	enqueuer := &fakeEnqueuer{}
	dispatcher := NewDispatcher(store, enqueuer, zerolog.Nop())

	err := dispatcher.Send(context.Background(), Notification{
		UserID:    "user-1",
		Type:      TypeGraduationApproved,
		Title:     "Graduation approved",
		EmailAlso: true,
	})

	require.NoError(t, err)
	require.Equal(t, []string{"notif-1"}, enqueuer.enqueued)
}

func TestSendReturnsStoreFailure(t *testing.T) {
	dispatcher := NewDispatcher(&fakeStore{fail: true}, nil, zerolog.Nop())

	err := dispatcher.Send(context.Background(), Notification{UserID: "user-1", Type: TypeNewInterest})

	require.Error(t, err)
}

func TestSendRequiresTarget(t *testing.T) {
	dispatcher := NewDispatcher(&fakeStore{}, nil, zerolog.Nop())

	err := dispatcher.Send(context.Background(), Notification{Type: TypeNewInterest})

	require.Error(t, err)
}
