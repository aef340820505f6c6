package workflow

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	err := InvalidState("moderation.Approve", "already processed")
	require.Equal(t, KindInvalidState, KindOf(err))

	wrapped := fmt.Errorf("handler: %w", err)
	require.Equal(t, KindInvalidState, KindOf(wrapped))

	require.Equal(t, KindUnavailable, KindOf(errors.New("connection refused")))
	require.Equal(t, Kind(""), KindOf(nil))
}

func TestErrorsIsMatchesByKind(t *testing.T) {
	err := Duplicate("interests.Declare", "already interested")

	require.ErrorIs(t, err, &Error{Kind: KindDuplicate})
	require.NotErrorIs(t, err, &Error{Kind: KindNotFound})
}

func TestWrapPreservesKind(t *testing.T) {
	inner := NotEligible("interests.Declare", "posting closed")
	outer := Wrap("api.DeclareInterest", inner)

	require.Equal(t, KindNotEligible, KindOf(outer))
	require.ErrorIs(t, outer, inner)
}

func TestWrapUnknownErrorBecomesUnavailable(t *testing.T) {
	outer := Wrap("repo.GetByID", errors.New("dial tcp: timeout"))

	require.Equal(t, KindUnavailable, KindOf(outer))
	require.True(t, Retryable(outer))
}

func TestRetryableOnlyForUnavailable(t *testing.T) {
	require.False(t, Retryable(Validation("moderation.Reject", "reason too short")))
	require.False(t, Retryable(InvalidState("moderation.Approve", "already processed")))
	require.True(t, Retryable(Unavailable("repo.GetByID", errors.New("timeout"))))
}

func TestOutcomeWarnings(t *testing.T) {
	outcome := Outcome[string]{Value: "approved"}
	require.False(t, outcome.HasWarnings())

	outcome.AddWarning("audit.Record", errors.New("insert failed"))
	outcome.AddWarning("notify.Send", nil)

	require.True(t, outcome.HasWarnings())
	require.Len(t, outcome.Warnings, 1)
	require.Equal(t, KindSideEffect, outcome.Warnings[0].Kind)
	require.Equal(t, "audit.Record", outcome.Warnings[0].Op)
}

func TestParseEntityKind(t *testing.T) {
	kind, err := ParseEntityKind("company")
	require.NoError(t, err)
	require.Equal(t, EntityCompany, kind)

	_, err = ParseEntityKind("badger")
	require.Equal(t, KindValidation, KindOf(err))
}
