package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/careerbridge/server/internal/domain/users"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRetryPolicyBackoffGrowsAndCaps(t *testing.T) {
	policy := NewRetryPolicy()
	attemptedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	job := func(attempt int) *rivertype.JobRow {
		return &rivertype.JobRow{
			Kind:        JobKindNotificationEmail,
			Attempt:     attempt,
			AttemptedAt: &attemptedAt,
		}
	}

	first := policy.NextRetry(job(1))
	second := policy.NextRetry(job(2))
	require.Equal(t, attemptedAt.Add(30*time.Second), first)
	require.Equal(t, attemptedAt.Add(1*time.Minute), second)

	// Attempt counts deep enough that the scaled delay no longer fits in
	// an int64 must still land on the cap, never in the past.
	for _, attempt := range []int{30, 64, 500} {
		deep := policy.NextRetry(job(attempt))
		require.Equal(t, attemptedAt.Add(30*time.Minute), deep, "attempt %d must cap at MaxDelay", attempt)
	}
}

func TestRetryPolicySLASweepDoesNotRetry(t *testing.T) {
	opts := InsertOptsForKind(JobKindApprovalSLACheck)
	require.Equal(t, 1, opts.MaxAttempts)
}

type fakePendingCounter struct {
	counts map[string]int
	err    error
	cutoff time.Time
}

func (f *fakePendingCounter) CountPendingOverSLA(ctx context.Context, cutoff time.Time) (map[string]int, error) {
	f.cutoff = cutoff
	return f.counts, f.err
}

func TestApprovalSLAWorker(t *testing.T) {
	counter := &fakePendingCounter{counts: map[string]int{"company": 2, "opportunity": 0}}
	worker := &ApprovalSLAWorker{Counter: counter, SLA: 48 * time.Hour, Logger: zerolog.Nop()}

	err := worker.Work(context.Background(), &river.Job[ApprovalSLACheckArgs]{})

	require.NoError(t, err)
	require.WithinDuration(t, time.Now().UTC().Add(-48*time.Hour), counter.cutoff, 5*time.Second)
}

func TestApprovalSLAWorkerPropagatesCountError(t *testing.T) {
	counter := &fakePendingCounter{err: errors.New("connection reset")}
	worker := &ApprovalSLAWorker{Counter: counter, Logger: zerolog.Nop()}

	err := worker.Work(context.Background(), &river.Job[ApprovalSLACheckArgs]{})

	require.Error(t, err)
}

type fakeUserLoader struct {
	user *users.User
	err  error
}

func (f *fakeUserLoader) GetByID(ctx context.Context, id string) (*users.User, error) {
	return f.user, f.err
}

func (f *fakeUserLoader) GetByULID(ctx context.Context, ulid string) (*users.User, error) {
	return f.user, f.err
}

func (f *fakeUserLoader) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return f.user, f.err
}

func (f *fakeUserLoader) Create(ctx context.Context, params users.CreateParams) (*users.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUserLoader) PromoteToGraduate(ctx context.Context, userID string, fields users.GraduationFields, changedAt time.Time) error {
	return errors.New("not implemented")
}

type fakeSender struct {
	to      string
	subject string
	err     error
}

func (f *fakeSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	f.to = to
	f.subject = subject
	return f.err
}

func TestNotificationEmailWorkerResolvesRecipientAtWorkTime(t *testing.T) {
	loader := &fakeUserLoader{user: &users.User{ID: "u1", Email: "current@example.edu"}}
	sender := &fakeSender{}
	worker := &NotificationEmailWorker{Users: loader, Sender: sender, Logger: zerolog.Nop()}

	job := &river.Job[NotificationEmailArgs]{
		Args: NotificationEmailArgs{
			NotificationID: "n1",
			UserID:         "u1",
			Subject:        "Your company was approved",
			Body:           "Welcome aboard.",
		},
	}

	require.NoError(t, worker.Work(context.Background(), job))
	require.Equal(t, "current@example.edu", sender.to)
	require.Equal(t, "Your company was approved", sender.subject)
}

func TestNotificationEmailWorkerFailsWhenRecipientMissing(t *testing.T) {
	loader := &fakeUserLoader{err: errors.New("no rows")}
	worker := &NotificationEmailWorker{Users: loader, Sender: &fakeSender{}, Logger: zerolog.Nop()}

	job := &river.Job[NotificationEmailArgs]{
		Args: NotificationEmailArgs{NotificationID: "n1", UserID: "missing"},
	}

	require.Error(t, worker.Work(context.Background(), job))
}
