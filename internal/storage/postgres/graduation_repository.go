package postgres

import (
	"context"
	"time"

	"github.com/careerbridge/server/internal/api/pagination"
	"github.com/careerbridge/server/internal/domain/graduation"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var _ graduation.Repository = (*GraduationRepository)(nil)

type GraduationRepository struct {
	db querier
}

const graduationColumns = `
	id, ulid, user_id, graduation_year, degree_title, major, thesis_title,
	final_gpa, status, rejection_reason, requested_at, decided_at, decided_by::text`

func (r *GraduationRepository) GetByID(ctx context.Context, id string) (*graduation.Request, error) {
	const op = "postgres.graduation.GetByID"
	row := r.db.QueryRow(ctx, `SELECT`+graduationColumns+` FROM graduation_requests WHERE id = $1`, id)
	return scanGraduationRequest(op, row)
}

func (r *GraduationRepository) GetByULID(ctx context.Context, ulid string) (*graduation.Request, error) {
	const op = "postgres.graduation.GetByULID"
	row := r.db.QueryRow(ctx, `SELECT`+graduationColumns+` FROM graduation_requests WHERE ulid = $1`, ulid)
	return scanGraduationRequest(op, row)
}

func (r *GraduationRepository) Create(ctx context.Context, params graduation.CreateParams) (*graduation.Request, error) {
	const op = "postgres.graduation.Create"
	// The partial unique index on (user_id) WHERE status = 'pending' turns
	// a second live request into a unique violation.
	row := r.db.QueryRow(ctx, `
		INSERT INTO graduation_requests
			(ulid, user_id, graduation_year, degree_title, major, thesis_title, final_gpa)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING`+graduationColumns,
		params.ULID, params.UserID, params.GraduationYear, params.DegreeTitle,
		params.Major, params.ThesisTitle, params.FinalGPA,
	)
	return scanGraduationRequest(op, row)
}

func (r *GraduationRepository) SetApproved(ctx context.Context, id, decidedBy string, decidedAt time.Time) (bool, error) {
	const op = "postgres.graduation.SetApproved"
	tag, err := r.db.Exec(ctx, `
		UPDATE graduation_requests
		SET status = 'approved', decided_by = $2, decided_at = $3
		WHERE id = $1 AND status = 'pending'`,
		id, decidedBy, decidedAt,
	)
	if err != nil {
		return false, translate(op, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *GraduationRepository) SetRejected(ctx context.Context, id, decidedBy, reason string, decidedAt time.Time) (bool, error) {
	const op = "postgres.graduation.SetRejected"
	tag, err := r.db.Exec(ctx, `
		UPDATE graduation_requests
		SET status = 'rejected', decided_by = $2, rejection_reason = $3, decided_at = $4
		WHERE id = $1 AND status = 'pending'`,
		id, decidedBy, reason, decidedAt,
	)
	if err != nil {
		return false, translate(op, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *GraduationRepository) ListForUser(ctx context.Context, userID string) ([]graduation.Request, error) {
	const op = "postgres.graduation.ListForUser"
	rows, err := r.db.Query(ctx, `
		SELECT`+graduationColumns+`
		FROM graduation_requests
		WHERE user_id = $1
		ORDER BY requested_at DESC`,
		userID,
	)
	if err != nil {
		return nil, translate(op, err)
	}
	defer rows.Close()

	var requests []graduation.Request
	for rows.Next() {
		request, err := scanGraduationRequest(op, rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *request)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(op, err)
	}
	return requests, nil
}

func (r *GraduationRepository) ListPending(ctx context.Context, page pagination.Page) (pagination.Result[graduation.Request], error) {
	const op = "postgres.graduation.ListPending"
	page = page.Normalize()

	rows, err := r.db.Query(ctx, `
		SELECT`+graduationColumns+`, COUNT(*) OVER() AS total
		FROM graduation_requests
		WHERE status = 'pending'
		ORDER BY requested_at ASC, id ASC
		LIMIT $1 OFFSET $2`,
		page.Limit(), page.Offset(),
	)
	if err != nil {
		return pagination.Result[graduation.Request]{}, translate(op, err)
	}
	defer rows.Close()

	var items []graduation.Request
	var total int
	for rows.Next() {
		var request graduation.Request
		var thesisTitle, rejectionReason, decidedBy pgtype.Text
		var decidedAt pgtype.Timestamptz
		err := rows.Scan(
			&request.ID, &request.ULID, &request.UserID, &request.GraduationYear,
			&request.DegreeTitle, &request.Major, &thesisTitle, &request.FinalGPA,
			&request.Status, &rejectionReason, &request.RequestedAt, &decidedAt, &decidedBy,
			&total,
		)
		if err != nil {
			return pagination.Result[graduation.Request]{}, translate(op, err)
		}
		fillGraduationNullable(&request, thesisTitle, rejectionReason, decidedBy, decidedAt)
		items = append(items, request)
	}
	if err := rows.Err(); err != nil {
		return pagination.Result[graduation.Request]{}, translate(op, err)
	}
	return pagination.NewResult(items, total, page), nil
}

func scanGraduationRequest(op string, row pgx.Row) (*graduation.Request, error) {
	var request graduation.Request
	var thesisTitle, rejectionReason, decidedBy pgtype.Text
	var decidedAt pgtype.Timestamptz

	err := row.Scan(
		&request.ID, &request.ULID, &request.UserID, &request.GraduationYear,
		&request.DegreeTitle, &request.Major, &thesisTitle, &request.FinalGPA,
		&request.Status, &rejectionReason, &request.RequestedAt, &decidedAt, &decidedBy,
	)
	if err != nil {
		return nil, translate(op, err)
	}
	fillGraduationNullable(&request, thesisTitle, rejectionReason, decidedBy, decidedAt)
	return &request, nil
}

func fillGraduationNullable(request *graduation.Request, thesisTitle, rejectionReason, decidedBy pgtype.Text, decidedAt pgtype.Timestamptz) {
	if thesisTitle.Valid {
		request.ThesisTitle = thesisTitle.String
	}
	if rejectionReason.Valid {
		request.RejectionReason = rejectionReason.String
	}
	if decidedBy.Valid {
		request.DecidedBy = &decidedBy.String
	}
	if decidedAt.Valid {
		request.DecidedAt = &decidedAt.Time
	}
}
