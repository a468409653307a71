package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/hucha/internal/usecase"
)

// PostgreSQL error codes surfaced as typed failures.
const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
)

// mapWriteError converts constraint violations into typed failures so the
// handlers never leak raw pg errors. Anything else passes through for the
// pipeline to classify as unexpected.
func mapWriteError(err error, entity string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			return usecase.NewConflict("%s violates a uniqueness constraint", entity)
		case pgErrForeignKeyViolation:
			return usecase.NewConflict("%s is referenced by other records", entity)
		}
	}

	return err
}

// requireUpdated reports an update that matched no row as a Conflict. The
// row is normally held FOR UPDATE in the same transaction, so a zero count
// means the write raced a delete.
func requireUpdated(tag pgconn.CommandTag, entity string) error {
	if tag.RowsAffected() == 0 {
		return usecase.NewConflict("%s no longer exists", entity)
	}

	return nil
}
