package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Amlan029/FeedFormly/internal/repository"
)

const uniqueViolationCode = "23505"

type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// mapUniqueViolation translates constraint failures into repository sentinels.
// It returns nil when err is not a known unique violation.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return nil
	}

	switch pgErr.ConstraintName {
	case accountsUsernameConstraint:
		return repository.ErrUsernameTaken
	case accountsEmailConstraint:
		return repository.ErrEmailTaken
	default:
		return nil
	}
}
