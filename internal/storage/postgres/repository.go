package postgres

import (
	"context"
	"fmt"

	"github.com/careerbridge/server/internal/audit"
	"github.com/careerbridge/server/internal/domain/companies"
	"github.com/careerbridge/server/internal/domain/graduation"
	"github.com/careerbridge/server/internal/domain/interests"
	"github.com/careerbridge/server/internal/domain/opportunities"
	"github.com/careerbridge/server/internal/domain/users"
	"github.com/careerbridge/server/internal/notify"
	"github.com/careerbridge/server/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

func NewRepository(pool *pgxpool.Pool) (*Repository, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres repository: pool is nil")
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) db() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

func (r *Repository) Users() users.Repository {
	return &UserRepository{db: r.db()}
}

func (r *Repository) Companies() companies.Repository {
	return &CompanyRepository{db: r.db()}
}

func (r *Repository) Opportunities() opportunities.Repository {
	return &OpportunityRepository{db: r.db()}
}

func (r *Repository) Graduation() graduation.Repository {
	return &GraduationRepository{db: r.db()}
}

func (r *Repository) Interests() interests.Repository {
	return &InterestRepository{db: r.db()}
}

func (r *Repository) Audit() audit.Store {
	return &AuditRepository{db: r.db()}
}

func (r *Repository) Notifications() notify.Store {
	return &NotificationRepository{db: r.db()}
}

func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, storage.Repository) error) error {
	if r.tx != nil {
		return fn(ctx, r)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	wrapped := &Repository{pool: r.pool, tx: tx}
	if err := fn(ctx, wrapped); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
