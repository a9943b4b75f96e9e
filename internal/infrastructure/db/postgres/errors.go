package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/relaycrm/crm-api/internal/core/domain"
)

// SQLSTATE codes translated into domain errors.
const (
	uniqueViolation           = "23505"
	foreignKeyViolation       = "23503"
	invalidTextRepresentation = "22P02"
	stringDataTruncation      = "22001"
	numericValueOutOfRange    = "22003"
	checkViolation            = "23514"
)

// mapError translates driver errors into domain sentinels. notFound is
// returned for sql.ErrNoRows and for malformed ids; pass nil when a missing
// row is not an error for the caller.
func mapError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) && notFound != nil {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			if strings.Contains(pgErr.ConstraintName, "email") {
				return domain.ErrUserExists
			}
			return fmt.Errorf("%w: %s", domain.ErrDuplicate, pgErr.ConstraintName)
		case foreignKeyViolation:
			switch {
			case strings.Contains(pgErr.ConstraintName, "customer_id"):
				return domain.ErrCustomerReference
			case strings.Contains(pgErr.ConstraintName, "assigned_to"),
				strings.Contains(pgErr.ConstraintName, "user_id"):
				return domain.ErrUserReference
			}
			return fmt.Errorf("%w: %s", domain.ErrForeignKey, pgErr.ConstraintName)
		case stringDataTruncation, numericValueOutOfRange, checkViolation:
			return fmt.Errorf("%w: %s", domain.ErrOutOfRange, pgErr.ColumnName)
		case invalidTextRepresentation:
			if notFound != nil {
				return notFound
			}
		}
	}

	return fmt.Errorf("%w: %w", domain.ErrDatabase, err)
}

// affected turns a zero-row update or delete into notFound.
func affected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err, nil)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
