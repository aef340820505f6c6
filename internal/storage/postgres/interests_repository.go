package postgres

import (
	"context"
	"time"

	"github.com/careerbridge/server/internal/api/pagination"
	"github.com/careerbridge/server/internal/domain/interests"
	"github.com/jackc/pgx/v5/pgtype"
)

var _ interests.Repository = (*InterestRepository)(nil)

type InterestRepository struct {
	db querier
}

func (r *InterestRepository) Insert(ctx context.Context, userID, opportunityID string, createdAt time.Time) error {
	const op = "postgres.interests.Insert"
	_, err := r.db.Exec(ctx, `
		INSERT INTO interests (user_id, opportunity_id, created_at)
		VALUES ($1, $2, $3)`,
		userID, opportunityID, createdAt,
	)
	return translate(op, err)
}

func (r *InterestRepository) Delete(ctx context.Context, userID, opportunityID string) error {
	const op = "postgres.interests.Delete"
	_, err := r.db.Exec(ctx, `
		DELETE FROM interests
		WHERE user_id = $1 AND opportunity_id = $2`,
		userID, opportunityID,
	)
	return translate(op, err)
}

func (r *InterestRepository) Exists(ctx context.Context, userID, opportunityID string) (bool, error) {
	const op = "postgres.interests.Exists"
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM interests WHERE user_id = $1 AND opportunity_id = $2
		)`,
		userID, opportunityID,
	).Scan(&exists)
	if err != nil {
		return false, translate(op, err)
	}
	return exists, nil
}

func (r *InterestRepository) ExistingOf(ctx context.Context, userID string, opportunityIDs []string) ([]string, error) {
	const op = "postgres.interests.ExistingOf"
	rows, err := r.db.Query(ctx, `
		SELECT opportunity_id::text
		FROM interests
		WHERE user_id = $1 AND opportunity_id = ANY($2::uuid[])`,
		userID, opportunityIDs,
	)
	if err != nil {
		return nil, translate(op, err)
	}
	defer rows.Close()

	var existing []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, translate(op, err)
		}
		existing = append(existing, id)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(op, err)
	}
	return existing, nil
}

func (r *InterestRepository) ListForUser(ctx context.Context, userID string, filters interests.Filters, page pagination.Page) (pagination.Result[interests.InterestedOpportunity], error) {
	const op = "postgres.interests.ListForUser"
	page = page.Normalize()

	var query, lifecycle pgtype.Text
	if filters.Query != "" {
		query = pgtype.Text{String: "%" + filters.Query + "%", Valid: true}
	}
	if filters.LifecycleStatus != "" {
		lifecycle = pgtype.Text{String: string(filters.LifecycleStatus), Valid: true}
	}

	rows, err := r.db.Query(ctx, `
		SELECT`+opportunityColumns+`, i.created_at, COUNT(*) OVER() AS total
		FROM interests i
		JOIN opportunities o ON o.id = i.opportunity_id
		JOIN companies c ON c.id = o.company_id
		WHERE i.user_id = $1
		  AND ($2::text IS NULL OR o.lifecycle_status = $2)
		  AND ($3::text IS NULL OR o.title ILIKE $3 OR o.description ILIKE $3)
		ORDER BY i.created_at DESC, o.id DESC
		LIMIT $4 OFFSET $5`,
		userID, lifecycle, query, page.Limit(), page.Offset(),
	)
	if err != nil {
		return pagination.Result[interests.InterestedOpportunity]{}, translate(op, err)
	}
	defer rows.Close()

	var items []interests.InterestedOpportunity
	var total int
	for rows.Next() {
		var item interests.InterestedOpportunity
		var approvedBy pgtype.Text
		var approvedAt, createdAt, updatedAt, interestedAt pgtype.Timestamptz
		o := &item.Opportunity
		err := rows.Scan(
			&o.ID, &o.ULID, &o.CompanyID, &o.CompanyName, &o.Title, &o.Description,
			&o.Location, &o.Type, &o.ApprovalStatus, &o.LifecycleStatus, &o.Availability,
			&approvedBy, &approvedAt, &o.RejectionReason, &createdAt, &updatedAt,
			&interestedAt, &total,
		)
		if err != nil {
			return pagination.Result[interests.InterestedOpportunity]{}, translate(op, err)
		}
		fillOpportunityNullable(o, approvedBy, approvedAt, createdAt, updatedAt)
		item.CompanyName = o.CompanyName
		item.InterestedAt = interestedAt.Time
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return pagination.Result[interests.InterestedOpportunity]{}, translate(op, err)
	}
	return pagination.NewResult(items, total, page), nil
}

// CanFilterText reports that the text predicate is pushed into SQL here;
// the in-memory fallback in the service is for stores that cannot.
func (r *InterestRepository) CanFilterText() bool { return true }
