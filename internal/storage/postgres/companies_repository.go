package postgres

import (
	"context"
	"time"

	"github.com/careerbridge/server/internal/api/pagination"
	"github.com/careerbridge/server/internal/domain/companies"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var _ companies.Repository = (*CompanyRepository)(nil)

type CompanyRepository struct {
	db querier
}

const companyColumns = `
	id, ulid, owner_user_id, name, website, description, industry,
	logo_url, contact_email, approval_status, approved_by::text, approved_at,
	rejection_reason, created_at, updated_at`

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*companies.Company, error) {
	const op = "postgres.companies.GetByID"
	row := r.db.QueryRow(ctx, `SELECT`+companyColumns+` FROM companies WHERE id = $1`, id)
	return scanCompany(op, row)
}

func (r *CompanyRepository) GetByULID(ctx context.Context, ulid string) (*companies.Company, error) {
	const op = "postgres.companies.GetByULID"
	row := r.db.QueryRow(ctx, `SELECT`+companyColumns+` FROM companies WHERE ulid = $1`, ulid)
	return scanCompany(op, row)
}

func (r *CompanyRepository) GetByOwner(ctx context.Context, ownerUserID string) (*companies.Company, error) {
	const op = "postgres.companies.GetByOwner"
	row := r.db.QueryRow(ctx, `SELECT`+companyColumns+` FROM companies WHERE owner_user_id = $1`, ownerUserID)
	return scanCompany(op, row)
}

func (r *CompanyRepository) Create(ctx context.Context, params companies.RegisterParams) (*companies.Company, error) {
	const op = "postgres.companies.Create"
	row := r.db.QueryRow(ctx, `
		INSERT INTO companies (ulid, owner_user_id, name, website, description, industry, contact_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING`+companyColumns,
		params.ULID, params.OwnerUserID, params.Name, params.Website,
		params.Description, params.Industry, params.ContactEmail,
	)
	return scanCompany(op, row)
}

func (r *CompanyRepository) UpdateProfile(ctx context.Context, id, ownerUserID string, params companies.ProfileParams) (bool, error) {
	const op = "postgres.companies.UpdateProfile"
	// Owner and approval predicates both live in the WHERE clause; zero
	// rows means the caller may not update, whatever the reason.
	tag, err := r.db.Exec(ctx, `
		UPDATE companies
		SET website     = COALESCE($3, website),
		    description = COALESCE($4, description),
		    industry    = COALESCE($5, industry),
		    logo_url    = COALESCE($6, logo_url),
		    updated_at  = now()
		WHERE id = $1 AND owner_user_id = $2 AND approval_status = 'approved'`,
		id, ownerUserID,
		textPtr(params.Website), textPtr(params.Description),
		textPtr(params.Industry), textPtr(params.LogoURL),
	)
	if err != nil {
		return false, translate(op, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *CompanyRepository) SetApproved(ctx context.Context, id, decidedBy string, decidedAt time.Time) (bool, error) {
	const op = "postgres.companies.SetApproved"
	tag, err := r.db.Exec(ctx, `
		UPDATE companies
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

func (r *CompanyRepository) SetRejected(ctx context.Context, id, decidedBy, reason string, decidedAt time.Time) (bool, error) {
	const op = "postgres.companies.SetRejected"
	tag, err := r.db.Exec(ctx, `
		UPDATE companies
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

func (r *CompanyRepository) List(ctx context.Context, filters companies.Filters, page pagination.Page) (pagination.Result[companies.Company], error) {
	const op = "postgres.companies.List"
	page = page.Normalize()

	var status, query pgtype.Text
	if filters.Status != "" {
		status = pgtype.Text{String: string(filters.Status), Valid: true}
	}
	if filters.Query != "" {
		query = pgtype.Text{String: "%" + filters.Query + "%", Valid: true}
	}

	rows, err := r.db.Query(ctx, `
		SELECT`+companyColumns+`, COUNT(*) OVER() AS total
		FROM companies
		WHERE ($1::text IS NULL OR approval_status = $1)
		  AND ($2::text IS NULL OR name ILIKE $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`,
		status, query, page.Limit(), page.Offset(),
	)
	if err != nil {
		return pagination.Result[companies.Company]{}, translate(op, err)
	}
	defer rows.Close()
	return collectCompanies(op, rows, page)
}

func (r *CompanyRepository) ListPending(ctx context.Context, page pagination.Page) (pagination.Result[companies.Company], error) {
	const op = "postgres.companies.ListPending"
	page = page.Normalize()

	rows, err := r.db.Query(ctx, `
		SELECT`+companyColumns+`, COUNT(*) OVER() AS total
		FROM companies
		WHERE approval_status = 'pending'
		ORDER BY created_at ASC, id ASC
		LIMIT $1 OFFSET $2`,
		page.Limit(), page.Offset(),
	)
	if err != nil {
		return pagination.Result[companies.Company]{}, translate(op, err)
	}
	defer rows.Close()
	return collectCompanies(op, rows, page)
}

func collectCompanies(op string, rows pgx.Rows, page pagination.Page) (pagination.Result[companies.Company], error) {
	var items []companies.Company
	var total int
	for rows.Next() {
		company, rowTotal, err := scanCompanyWithTotal(op, rows)
		if err != nil {
			return pagination.Result[companies.Company]{}, err
		}
		total = rowTotal
		items = append(items, *company)
	}
	if err := rows.Err(); err != nil {
		return pagination.Result[companies.Company]{}, translate(op, err)
	}
	return pagination.NewResult(items, total, page), nil
}

func scanCompany(op string, row pgx.Row) (*companies.Company, error) {
	var c companies.Company
	var approvedBy pgtype.Text
	var approvedAt, createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(
		&c.ID, &c.ULID, &c.OwnerUserID, &c.Name, &c.Website, &c.Description,
		&c.Industry, &c.LogoURL, &c.ContactEmail, &c.ApprovalStatus,
		&approvedBy, &approvedAt, &c.RejectionReason, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, translate(op, err)
	}
	fillCompanyNullable(&c, approvedBy, approvedAt, createdAt, updatedAt)
	return &c, nil
}

func scanCompanyWithTotal(op string, row pgx.Row) (*companies.Company, int, error) {
	var c companies.Company
	var approvedBy pgtype.Text
	var approvedAt, createdAt, updatedAt pgtype.Timestamptz
	var total int

	err := row.Scan(
		&c.ID, &c.ULID, &c.OwnerUserID, &c.Name, &c.Website, &c.Description,
		&c.Industry, &c.LogoURL, &c.ContactEmail, &c.ApprovalStatus,
		&approvedBy, &approvedAt, &c.RejectionReason, &createdAt, &updatedAt,
		&total,
	)
	if err != nil {
		return nil, 0, translate(op, err)
	}
	fillCompanyNullable(&c, approvedBy, approvedAt, createdAt, updatedAt)
	return &c, total, nil
}

func fillCompanyNullable(c *companies.Company, approvedBy pgtype.Text, approvedAt, createdAt, updatedAt pgtype.Timestamptz) {
	if approvedBy.Valid {
		c.ApprovedBy = &approvedBy.String
	}
	if approvedAt.Valid {
		c.ApprovedAt = &approvedAt.Time
	}
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
}
