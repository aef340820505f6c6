package companies

import (
	"context"
	"time"

	"github.com/careerbridge/server/internal/api/pagination"
	"github.com/careerbridge/server/internal/domain/workflow"
)

type Company struct {
	ID           string
	ULID         string
	OwnerUserID  string
	Name         string
	Website      string
	Description  string
	Industry     string
	LogoURL      string
	ContactEmail string

	ApprovalStatus  workflow.ApprovalStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type RegisterParams struct {
	ULID         string
	OwnerUserID  string
	Name         string
	Website      string
	Description  string
	Industry     string
	ContactEmail string
}

// ProfileParams are the fields a company may change about itself. Approval
// fields are absent on purpose; only the moderation service touches those.
type ProfileParams struct {
	Website     *string
	Description *string
	Industry    *string
	LogoURL     *string
}

type Filters struct {
	Status workflow.ApprovalStatus
	Query  string
}

type Repository interface {
	GetByID(ctx context.Context, id string) (*Company, error)
	GetByULID(ctx context.Context, ulid string) (*Company, error)
	GetByOwner(ctx context.Context, ownerUserID string) (*Company, error)
	Create(ctx context.Context, params RegisterParams) (*Company, error)

	// UpdateProfile applies non-status fields for the owning, approved
	// company. The owner and approval predicates live in the WHERE clause;
	// zero rows matched means the caller was not allowed to update.
	UpdateProfile(ctx context.Context, id, ownerUserID string, params ProfileParams) (bool, error)

	// SetApproved flips pending → approved. Returns false when the company
	// was not pending anymore (lost race or already processed).
	SetApproved(ctx context.Context, id, decidedBy string, decidedAt time.Time) (bool, error)

	// SetRejected flips pending → rejected, records the reason and clears
	// any approval fields. Same zero-rows contract as SetApproved.
	SetRejected(ctx context.Context, id, decidedBy, reason string, decidedAt time.Time) (bool, error)

	List(ctx context.Context, filters Filters, page pagination.Page) (pagination.Result[Company], error)

	// ListPending returns pending companies oldest-first so admin attention
	// goes to the stalest submissions.
	ListPending(ctx context.Context, page pagination.Page) (pagination.Result[Company], error)
}
