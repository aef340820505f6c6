package postgres

import (
	"context"
	"time"

	"github.com/careerbridge/server/internal/domain/users"
	"github.com/careerbridge/server/internal/domain/workflow"
	"github.com/jackc/pgx/v5/pgtype"
)

var _ users.Repository = (*UserRepository)(nil)

type UserRepository struct {
	db querier
}

const userColumns = `
	id, ulid, email, full_name, role, password_hash,
	graduation_year, degree_title, major, final_gpa, role_changed_at,
	created_at, updated_at`

func (r *UserRepository) GetByID(ctx context.Context, id string) (*users.User, error) {
	const op = "postgres.users.GetByID"
	row := r.db.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(op, row)
}

func (r *UserRepository) GetByULID(ctx context.Context, ulid string) (*users.User, error) {
	const op = "postgres.users.GetByULID"
	row := r.db.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE ulid = $1`, ulid)
	return scanUser(op, row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	const op = "postgres.users.GetByEmail"
	row := r.db.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return scanUser(op, row)
}

func (r *UserRepository) Create(ctx context.Context, params users.CreateParams) (*users.User, error) {
	const op = "postgres.users.Create"
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (ulid, email, full_name, role, password_hash)
		VALUES ($1, lower($2), $3, $4, $5)
		RETURNING`+userColumns,
		params.ULID, params.Email, params.FullName, params.Role, params.PasswordHash,
	)
	return scanUser(op, row)
}

func (r *UserRepository) PromoteToGraduate(ctx context.Context, userID string, fields users.GraduationFields, changedAt time.Time) error {
	const op = "postgres.users.PromoteToGraduate"
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET role = 'graduate',
		    graduation_year = $2,
		    degree_title = $3,
		    major = $4,
		    final_gpa = $5,
		    role_changed_at = $6,
		    updated_at = now()
		WHERE id = $1`,
		userID, fields.GraduationYear, fields.DegreeTitle, fields.Major, fields.FinalGPA, changedAt,
	)
	if err != nil {
		return translate(op, err)
	}
	if tag.RowsAffected() == 0 {
		return workflow.NotFound(op, "user not found")
	}
	return nil
}

type userScanner interface {
	Scan(dest ...any) error
}

func scanUser(op string, row userScanner) (*users.User, error) {
	var u users.User
	var graduationYear pgtype.Int4
	var degreeTitle, major pgtype.Text
	var finalGPA pgtype.Float8
	var roleChangedAt, createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(
		&u.ID, &u.ULID, &u.Email, &u.FullName, &u.Role, &u.PasswordHash,
		&graduationYear, &degreeTitle, &major, &finalGPA, &roleChangedAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, translate(op, err)
	}

	if graduationYear.Valid {
		year := int(graduationYear.Int32)
		u.GraduationYear = &year
	}
	if degreeTitle.Valid {
		u.DegreeTitle = &degreeTitle.String
	}
	if major.Valid {
		u.Major = &major.String
	}
	if finalGPA.Valid {
		u.FinalGPA = &finalGPA.Float64
	}
	if roleChangedAt.Valid {
		u.RoleChangedAt = &roleChangedAt.Time
	}
	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time
	return &u, nil
}
