package postgres

import (
	"errors"

	xerrors "workhub-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the services care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// translateError converts driver-level constraint failures into the
// service error taxonomy. Other errors pass through unchanged.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return xerrors.Wrap(xerrors.ErrConflict, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return xerrors.Wrap(xerrors.ErrInvalidReference, pgErr.ConstraintName)
		}
	}
	return err
}
