package postgres

import (
	"context"
	"time"

	"github.com/careerbridge/server/internal/api/pagination"
	"github.com/careerbridge/server/internal/domain/opportunities"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var _ opportunities.Repository = (*OpportunityRepository)(nil)

type OpportunityRepository struct {
	db querier
}

// Every read joins companies for the denormalized company name.
const opportunityColumns = `
	o.id, o.ulid, o.company_id, c.name, o.title, o.description, o.location,
	o.opportunity_type, o.approval_status, o.lifecycle_status, o.status,
	o.approved_by::text, o.approved_at, o.rejection_reason, o.created_at, o.updated_at`

const opportunityFrom = ` FROM opportunities o JOIN companies c ON c.id = o.company_id`

func (r *OpportunityRepository) GetByID(ctx context.Context, id string) (*opportunities.Opportunity, error) {
	const op = "postgres.opportunities.GetByID"
	row := r.db.QueryRow(ctx, `SELECT`+opportunityColumns+opportunityFrom+` WHERE o.id = $1`, id)
	return scanOpportunity(op, row)
}

func (r *OpportunityRepository) GetByULID(ctx context.Context, ulid string) (*opportunities.Opportunity, error) {
	const op = "postgres.opportunities.GetByULID"
	row := r.db.QueryRow(ctx, `SELECT`+opportunityColumns+opportunityFrom+` WHERE o.ulid = $1`, ulid)
	return scanOpportunity(op, row)
}

func (r *OpportunityRepository) Create(ctx context.Context, params opportunities.CreateParams) (*opportunities.Opportunity, error) {
	const op = "postgres.opportunities.Create"
	var id string
	err := r.db.QueryRow(ctx, `
		INSERT INTO opportunities (ulid, company_id, title, description, location, opportunity_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		params.ULID, params.CompanyID, params.Title, params.Description,
		params.Location, params.Type,
	).Scan(&id)
	if err != nil {
		return nil, translate(op, err)
	}
	return r.GetByID(ctx, id)
}

func (r *OpportunityRepository) SetLifecycle(ctx context.Context, id, companyID string, lifecycle opportunities.Lifecycle) (bool, error) {
	const op = "postgres.opportunities.SetLifecycle"
	tag, err := r.db.Exec(ctx, `
		UPDATE opportunities
		SET lifecycle_status = $3, updated_at = now()
		WHERE id = $1 AND company_id = $2`,
		id, companyID, lifecycle,
	)
	if err != nil {
		return false, translate(op, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *OpportunityRepository) SetAvailability(ctx context.Context, id, companyID string, availability opportunities.Availability) (bool, error) {
	const op = "postgres.opportunities.SetAvailability"
	tag, err := r.db.Exec(ctx, `
		UPDATE opportunities
		SET status = $3, updated_at = now()
		WHERE id = $1 AND company_id = $2`,
		id, companyID, availability,
	)
	if err != nil {
		return false, translate(op, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *OpportunityRepository) SetApproved(ctx context.Context, id, decidedBy string, decidedAt time.Time) (bool, error) {
	const op = "postgres.opportunities.SetApproved"
	tag, err := r.db.Exec(ctx, `
		UPDATE opportunities
		SET approval_status = 'approved',
		    approved_by = $2,
		    approved_at = $3,
		    rejection_reason = '',
		    updated_at = now()
		WHERE id = $1 AND approval_status = 'pending'`,
		id, decidedBy, decidedAt,
	)
	if err != nil {
		return false, translate(op, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *OpportunityRepository) SetRejected(ctx context.Context, id, decidedBy, reason string, decidedAt time.Time) (bool, error) {
	const op = "postgres.opportunities.SetRejected"
	tag, err := r.db.Exec(ctx, `
		UPDATE opportunities
		SET approval_status = 'rejected',
		    approved_by = NULL,
		    approved_at = NULL,
		    rejected_by = $2,
		    rejection_reason = $3,
		    updated_at = $4
		WHERE id = $1 AND approval_status = 'pending'`,
		id, decidedBy, reason, decidedAt,
	)
	if err != nil {
		return false, translate(op, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *OpportunityRepository) ListPublic(ctx context.Context, filters opportunities.Filters, page pagination.Page) (pagination.Result[opportunities.Opportunity], error) {
	const op = "postgres.opportunities.ListPublic"
	page = page.Normalize()

	var typeFilter, query, companyID pgtype.Text
	if filters.Type != "" {
		typeFilter = pgtype.Text{String: string(filters.Type), Valid: true}
	}
	if filters.Query != "" {
		query = pgtype.Text{String: "%" + filters.Query + "%", Valid: true}
	}
	if filters.CompanyID != "" {
		companyID = pgtype.Text{String: filters.CompanyID, Valid: true}
	}

	rows, err := r.db.Query(ctx, `
		SELECT`+opportunityColumns+`, COUNT(*) OVER() AS total`+opportunityFrom+`
		WHERE o.approval_status = 'approved'
		  AND o.lifecycle_status = 'active'
		  AND ($1::text IS NULL OR o.opportunity_type = $1)
		  AND ($2::text IS NULL OR o.title ILIKE $2 OR o.description ILIKE $2)
		  AND ($3::text IS NULL OR o.company_id = $3::uuid)
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $4 OFFSET $5`,
		typeFilter, query, companyID, page.Limit(), page.Offset(),
	)
	if err != nil {
		return pagination.Result[opportunities.Opportunity]{}, translate(op, err)
	}
	defer rows.Close()
	return collectOpportunities(op, rows, page)
}

func (r *OpportunityRepository) ListPending(ctx context.Context, page pagination.Page) (pagination.Result[opportunities.Opportunity], error) {
	const op = "postgres.opportunities.ListPending"
	page = page.Normalize()

	rows, err := r.db.Query(ctx, `
		SELECT`+opportunityColumns+`, COUNT(*) OVER() AS total`+opportunityFrom+`
		WHERE o.approval_status = 'pending'
		ORDER BY o.created_at ASC, o.id ASC
		LIMIT $1 OFFSET $2`,
		page.Limit(), page.Offset(),
	)
	if err != nil {
		return pagination.Result[opportunities.Opportunity]{}, translate(op, err)
	}
	defer rows.Close()
	return collectOpportunities(op, rows, page)
}

func collectOpportunities(op string, rows pgx.Rows, page pagination.Page) (pagination.Result[opportunities.Opportunity], error) {
	var items []opportunities.Opportunity
	var total int
	for rows.Next() {
		opportunity, rowTotal, err := scanOpportunityWithTotal(op, rows)
		if err != nil {
			return pagination.Result[opportunities.Opportunity]{}, err
		}
		total = rowTotal
		items = append(items, *opportunity)
	}
	if err := rows.Err(); err != nil {
		return pagination.Result[opportunities.Opportunity]{}, translate(op, err)
	}
	return pagination.NewResult(items, total, page), nil
}

func scanOpportunity(op string, row pgx.Row) (*opportunities.Opportunity, error) {
	var o opportunities.Opportunity
	var approvedBy pgtype.Text
	var approvedAt, createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(
		&o.ID, &o.ULID, &o.CompanyID, &o.CompanyName, &o.Title, &o.Description,
		&o.Location, &o.Type, &o.ApprovalStatus, &o.LifecycleStatus, &o.Availability,
		&approvedBy, &approvedAt, &o.RejectionReason, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, translate(op, err)
	}
	fillOpportunityNullable(&o, approvedBy, approvedAt, createdAt, updatedAt)
	return &o, nil
}

func scanOpportunityWithTotal(op string, row pgx.Row) (*opportunities.Opportunity, int, error) {
	var o opportunities.Opportunity
	var approvedBy pgtype.Text
	var approvedAt, createdAt, updatedAt pgtype.Timestamptz
	var total int

	err := row.Scan(
		&o.ID, &o.ULID, &o.CompanyID, &o.CompanyName, &o.Title, &o.Description,
		&o.Location, &o.Type, &o.ApprovalStatus, &o.LifecycleStatus, &o.Availability,
		&approvedBy, &approvedAt, &o.RejectionReason, &createdAt, &updatedAt,
		&total,
	)
	if err != nil {
		return nil, 0, translate(op, err)
	}
	fillOpportunityNullable(&o, approvedBy, approvedAt, createdAt, updatedAt)
	return &o, total, nil
}

func fillOpportunityNullable(o *opportunities.Opportunity, approvedBy pgtype.Text, approvedAt, createdAt, updatedAt pgtype.Timestamptz) {
	if approvedBy.Valid {
		o.ApprovedBy = &approvedBy.String
	}
	if approvedAt.Valid {
		o.ApprovedAt = &approvedAt.Time
	}
	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time
}
