package opportunities

import (
	"context"
	"time"

	"github.com/careerbridge/server/internal/api/pagination"
	"github.com/careerbridge/server/internal/domain/workflow"
)

// Type is the kind of posting.
type Type string

const (
	TypeInternship Type = "internship"
	TypeThesis     Type = "thesis"
	TypeJob        Type = "job"
)

func ParseType(value string) (Type, error) {
	switch Type(value) {
	case TypeInternship, TypeThesis, TypeJob:
		return Type(value), nil
	default:
		return "", workflow.Validation("opportunities.ParseType", "unknown opportunity type: "+value)
	}
}

// Lifecycle is the company-controlled publication state of a posting. It is
// one of two independent axes next to ApprovalStatus; neither implies the
// other.
type Lifecycle string

const (
	LifecycleActive   Lifecycle = "active"
	LifecycleClosed   Lifecycle = "closed"
	LifecycleArchived Lifecycle = "archived"
)

func ParseLifecycle(value string) (Lifecycle, error) {
	switch Lifecycle(value) {
	case LifecycleActive, LifecycleClosed, LifecycleArchived:
		return Lifecycle(value), nil
	default:
		return "", workflow.Validation("opportunities.ParseLifecycle", "unknown lifecycle status: "+value)
	}
}

// Availability is the operational open/closed switch, stored in the status
// column. Named Availability in code so nobody mistakes it for the
// moderation status.
type Availability string

const (
	AvailabilityOpen   Availability = "open"
	AvailabilityClosed Availability = "closed"
)

func ParseAvailability(value string) (Availability, error) {
	switch Availability(value) {
	case AvailabilityOpen, AvailabilityClosed:
		return Availability(value), nil
	default:
		return "", workflow.Validation("opportunities.ParseAvailability", "unknown availability: "+value)
	}
}

type Opportunity struct {
	ID          string
	ULID        string
	CompanyID   string
	CompanyName string
	Title       string
	Description string
	Location    string
	Type        Type

	ApprovalStatus  workflow.ApprovalStatus
	LifecycleStatus Lifecycle
	Availability    Availability

	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InterestEligible is the single gate for declaring or withdrawing
// interest. ApprovalStatus is deliberately absent: moderation controls
// public visibility, not engagement on a posting the user can already see.
func (o *Opportunity) InterestEligible() bool {
	return o.LifecycleStatus == LifecycleActive && o.Availability == AvailabilityOpen
}

type CreateParams struct {
	ULID        string
	CompanyID   string
	Title       string
	Description string
	Location    string
	Type        Type
}

type Filters struct {
	Type      Type
	Query     string
	CompanyID string
}

type Repository interface {
	GetByID(ctx context.Context, id string) (*Opportunity, error)
	GetByULID(ctx context.Context, ulid string) (*Opportunity, error)
	Create(ctx context.Context, params CreateParams) (*Opportunity, error)

	// SetLifecycle and SetAvailability carry the owning company id in their
	// predicate; an owner mismatch matches zero rows. Admins never call
	// these, companies never call SetApproved/SetRejected: the two actor
	// classes write disjoint columns.
	SetLifecycle(ctx context.Context, id, companyID string, lifecycle Lifecycle) (bool, error)
	SetAvailability(ctx context.Context, id, companyID string, availability Availability) (bool, error)

	SetApproved(ctx context.Context, id, decidedBy string, decidedAt time.Time) (bool, error)
	SetRejected(ctx context.Context, id, decidedBy, reason string, decidedAt time.Time) (bool, error)

	// ListPublic returns approved, active postings for the browse view.
	ListPublic(ctx context.Context, filters Filters, page pagination.Page) (pagination.Result[Opportunity], error)
	ListPending(ctx context.Context, page pagination.Page) (pagination.Result[Opportunity], error)
}
