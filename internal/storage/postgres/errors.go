package postgres

import (
	"context"
	"errors"

	"github.com/careerbridge/server/internal/domain/workflow"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// translate maps driver errors onto the workflow error taxonomy so no pgx
// type leaks past this package.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return workflow.NotFound(op, "not found")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return workflow.Duplicate(op, "already exists")
		case pgForeignKeyViolation:
			return workflow.Validation(op, "referenced row does not exist")
		case pgCheckViolation:
			return workflow.Validation(op, "value violates a constraint")
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return workflow.Wrap(op, err)
	}
	return workflow.Unavailable(op, err)
}
