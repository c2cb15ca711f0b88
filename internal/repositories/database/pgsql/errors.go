package pgsql

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/SscSPs/internship_placement_app/internal/apperrors"
)

const openPlacementIndex = "placements_open_student_org_key"

// mapError translates driver errors into the application taxonomy.
func mapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, msg)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			if pgErr.ConstraintName == openPlacementIndex {
				return apperrors.ErrDuplicateRegistration
			}
			return fmt.Errorf("%w: %s: already exists", apperrors.ErrValidation, msg)
		case pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("%w: %s: referenced record does not exist", apperrors.ErrNotFound, msg)
		case pgerrcode.CheckViolation:
			if pgErr.ConstraintName == "host_organizations_committed_check" {
				return apperrors.ErrCapacityExhausted
			}
			return fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, msg, pgErr.ConstraintName)
		case pgerrcode.InvalidTextRepresentation, pgerrcode.InvalidDatetimeFormat:
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, msg)
		}
	}
	return apperrors.NewAppError(500, msg, err)
}
