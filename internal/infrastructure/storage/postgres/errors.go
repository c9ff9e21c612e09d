package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"facturis/internal/core/apperror"
)

// Postgres error codes we translate into typed errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// MapError translates low-level pgx errors into the apperror taxonomy.
// entity names the record the caller was working with ("invoice", "client", ...).
//
// Errors that are already AppError pass through unchanged.
func MapError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return apperror.NewConflict(entity + " violates a uniqueness constraint").
				WithDetail("entity", entity).
				WithDetail("constraint", pgErr.ConstraintName).
				WithCause(err)
		case codeForeignKeyViolation:
			return apperror.NewConflict(entity + " references or is referenced by another record").
				WithDetail("entity", entity).
				WithDetail("constraint", pgErr.ConstraintName).
				WithCause(err)
		case codeCheckViolation:
			return apperror.NewValidation(entity + " violates a data constraint").
				WithDetail("entity", entity).
				WithDetail("constraint", pgErr.ConstraintName).
				WithCause(err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return apperror.NewDependencyUnavailable("database", err)
	}
	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return apperror.NewDependencyUnavailable("database", err)
	}

	return err
}
