package graduation

import (
	"context"
	"time"

	"github.com/careerbridge/server/internal/api/pagination"
	"github.com/careerbridge/server/internal/domain/workflow"
)

type Request struct {
	ID     string
	ULID   string
	UserID string

	GraduationYear int
	DegreeTitle    string
	Major          string
	ThesisTitle    string
	FinalGPA       float64

	Status          workflow.ApprovalStatus
	RejectionReason string

	RequestedAt time.Time
	DecidedAt   *time.Time
	DecidedBy   *string
}

type CreateParams struct {
	ULID           string
	UserID         string
	GraduationYear int
	DegreeTitle    string
	Major          string
	ThesisTitle    string
	FinalGPA       float64
}

type Repository interface {
	GetByID(ctx context.Context, id string) (*Request, error)
	GetByULID(ctx context.Context, ulid string) (*Request, error)

	// Create inserts a pending request. The store enforces at most one
	// pending request per user via a partial unique index; a violation
	// surfaces as Duplicate.
	Create(ctx context.Context, params CreateParams) (*Request, error)

	// SetApproved and SetRejected flip pending → terminal. Terminal states
	// are immutable: the pending predicate in the WHERE clause matches zero
	// rows for anything already decided.
	SetApproved(ctx context.Context, id, decidedBy string, decidedAt time.Time) (bool, error)
	SetRejected(ctx context.Context, id, decidedBy, reason string, decidedAt time.Time) (bool, error)

	ListForUser(ctx context.Context, userID string) ([]Request, error)
	ListPending(ctx context.Context, page pagination.Page) (pagination.Result[Request], error)
}
