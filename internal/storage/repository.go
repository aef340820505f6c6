package storage

import (
	"context"

	"github.com/careerbridge/server/internal/audit"
	"github.com/careerbridge/server/internal/domain/companies"
	"github.com/careerbridge/server/internal/domain/graduation"
	"github.com/careerbridge/server/internal/domain/interests"
	"github.com/careerbridge/server/internal/domain/opportunities"
	"github.com/careerbridge/server/internal/domain/users"
	"github.com/careerbridge/server/internal/notify"
)

// Repository groups data access by domain. The concrete implementation
// lives in storage/postgres; services depend on the domain-level interfaces
// and never see this aggregate directly.
type Repository interface {
	Users() users.Repository
	Companies() companies.Repository
	Opportunities() opportunities.Repository
	Graduation() graduation.Repository
	Interests() interests.Repository
	Audit() audit.Store
	Notifications() notify.Store

	// WithTx runs fn with a Repository whose writes share one transaction.
	// fn returning an error rolls everything back.
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
}
