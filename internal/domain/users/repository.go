package users

import (
	"context"
	"time"
)

type User struct {
	ID           string
	ULID         string
	Email        string
	FullName     string
	Role         string
	PasswordHash string

	// Graduation attributes, populated when a graduation request is
	// approved. Denormalized copies of the winning request.
	GraduationYear *int
	DegreeTitle    *string
	Major          *string
	FinalGPA       *float64
	RoleChangedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GraduationFields is the payload copied onto a user when their graduation
// request is approved.
type GraduationFields struct {
	GraduationYear int
	DegreeTitle    string
	Major          string
	FinalGPA       float64
}

// CreateParams covers self-registration and the admin bootstrap command.
// PasswordHash is a bcrypt hash; the plaintext never reaches this layer.
type CreateParams struct {
	ULID         string
	Email        string
	FullName     string
	Role         string
	PasswordHash string
}

type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByULID(ctx context.Context, ulid string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)

	Create(ctx context.Context, params CreateParams) (*User, error)

	// PromoteToGraduate flips the user's role to graduate and copies the
	// graduation fields in a single update. It is the paired write of a
	// graduation request approval.
	PromoteToGraduate(ctx context.Context, userID string, fields GraduationFields, changedAt time.Time) error
}
