package opportunities

import (
	"testing"

	"github.com/careerbridge/server/internal/domain/workflow"
	"github.com/stretchr/testify/require"
)

func TestInterestEligibleIgnoresApprovalStatus(t *testing.T) {
	opportunity := &Opportunity{
		LifecycleStatus: LifecycleActive,
		Availability:    AvailabilityOpen,
	}

	for _, status := range []workflow.ApprovalStatus{workflow.StatusPending, workflow.StatusApproved, workflow.StatusRejected} {
		opportunity.ApprovalStatus = status
		require.True(t, opportunity.InterestEligible(), "approval status %s must not affect eligibility", status)
	}
}

func TestInterestEligibleRequiresBothAxes(t *testing.T) {
	cases := []struct {
		name         string
		lifecycle    Lifecycle
		availability Availability
		want         bool
	}{
		{"active and open", LifecycleActive, AvailabilityOpen, true},
		{"active but closed", LifecycleActive, AvailabilityClosed, false},
		{"closed lifecycle", LifecycleClosed, AvailabilityOpen, false},
		{"archived", LifecycleArchived, AvailabilityClosed, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opportunity := &Opportunity{
				ApprovalStatus:  workflow.StatusApproved,
				LifecycleStatus: tc.lifecycle,
				Availability:    tc.availability,
			}
			require.Equal(t, tc.want, opportunity.InterestEligible())
		})
	}
}

func TestParseVocabulary(t *testing.T) {
	_, err := ParseType("freelance")
	require.Equal(t, workflow.KindValidation, workflow.KindOf(err))

	lifecycle, err := ParseLifecycle("active")
	require.NoError(t, err)
	require.Equal(t, LifecycleActive, lifecycle)

	_, err = ParseAvailability("paused")
	require.Equal(t, workflow.KindValidation, workflow.KindOf(err))
}
