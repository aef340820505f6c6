package interests

import (
	"context"
	"time"

	"github.com/careerbridge/server/internal/api/pagination"
	"github.com/careerbridge/server/internal/domain/opportunities"
)

// Interest is a student's or graduate's non-binding interest in an
// opportunity. Its lifecycle is binary: the row exists or it does not.
type Interest struct {
	UserID        string
	OpportunityID string
	CreatedAt     time.Time
}

// InterestedOpportunity is one row of the "my interests" view: the
// opportunity joined with its company name and the moment interest was
// declared.
type InterestedOpportunity struct {
	Opportunity  opportunities.Opportunity
	CompanyName  string
	InterestedAt time.Time
}

// Filters narrow the "my interests" listing. Query matches the joined
// opportunity's title and description; LifecycleStatus filters on the
// joined opportunity, not the interest row.
type Filters struct {
	Query           string
	LifecycleStatus opportunities.Lifecycle
}

type ListResult struct {
	pagination.Result[InterestedOpportunity]

	// FilteredInMemory is set when the text filter could not be pushed into
	// the store and the page window was post-filtered in memory. On that
	// path Total and TotalPages reflect the pre-filter counts; callers must
	// treat them as approximations.
	FilteredInMemory bool
}

type Repository interface {
	// Insert creates the (user, opportunity) row. The store's uniqueness
	// constraint is the only concurrency control; a violation surfaces as
	// a Duplicate workflow error.
	Insert(ctx context.Context, userID, opportunityID string, createdAt time.Time) error

	// Delete removes the row if present. Deleting an absent row is not an
	// error.
	Delete(ctx context.Context, userID, opportunityID string) error

	Exists(ctx context.Context, userID, opportunityID string) (bool, error)

	// ExistingOf returns the subset of opportunityIDs the user has a live
	// interest in, in one round trip.
	ExistingOf(ctx context.Context, userID string, opportunityIDs []string) ([]string, error)

	// ListForUser returns the user's interests joined with opportunity and
	// company, ordered by interest creation descending.
	ListForUser(ctx context.Context, userID string, filters Filters, page pagination.Page) (pagination.Result[InterestedOpportunity], error)

	// CanFilterText reports whether ListForUser pushes Filters.Query into
	// the store. When false the service post-filters in memory and flags
	// the result.
	CanFilterText() bool
}
