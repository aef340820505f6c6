package postgres

import (
	"context"
	"time"

	"github.com/careerbridge/server/internal/domain/workflow"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsRepository serves operational sweeps that cut across domains.
type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// CountPendingOverSLA returns, per entity kind, how many pending
// submissions were created before the cutoff.
func (r *StatsRepository) CountPendingOverSLA(ctx context.Context, cutoff time.Time) (map[string]int, error) {
	const op = "postgres.stats.CountPendingOverSLA"
	rows, err := r.pool.Query(ctx, `
		SELECT $2::text, COUNT(*) FROM companies
			WHERE approval_status = 'pending' AND created_at < $1
		UNION ALL
		SELECT $3::text, COUNT(*) FROM opportunities
			WHERE approval_status = 'pending' AND created_at < $1
		UNION ALL
		SELECT $4::text, COUNT(*) FROM graduation_requests
			WHERE status = 'pending' AND requested_at < $1`,
		cutoff,
		string(workflow.EntityCompany),
		string(workflow.EntityOpportunity),
		string(workflow.EntityGraduationRequest),
	)
	if err != nil {
		return nil, translate(op, err)
	}
	defer rows.Close()

	counts := make(map[string]int, 3)
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, translate(op, err)
		}
		counts[kind] = count
	}
	if err := rows.Err(); err != nil {
		return nil, translate(op, err)
	}
	return counts, nil
}
