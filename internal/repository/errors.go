package repository

import (
	"errors"

	"mini-admin/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes mapped to domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

const usersEmailKey = "users_email_key"

// mapWriteError converts constraint violations into domain errors. Other
// errors are returned unchanged.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		if pgErr.ConstraintName == usersEmailKey {
			return model.ErrDuplicateEmail
		}
	case pgForeignKeyViolation:
		return model.ErrForeignKey
	}
	return err
}
