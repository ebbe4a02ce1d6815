package utils

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// IsUniqueViolation reports a unique violation, optionally on a specific constraint
func IsUniqueViolation(err error, constraint ...string) bool {
	return isPgError(err, pgUniqueViolation, constraint)
}

// IsForeignKeyViolation reports a foreign key violation, optionally on a specific constraint
func IsForeignKeyViolation(err error, constraint ...string) bool {
	return isPgError(err, pgForeignKeyViolation, constraint)
}

// IsCheckViolation reports a check constraint violation, optionally on a specific constraint
func IsCheckViolation(err error, constraint ...string) bool {
	return isPgError(err, pgCheckViolation, constraint)
}

func isPgError(err error, code string, constraint []string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	if len(constraint) == 0 {
		return true
	}
	for _, c := range constraint {
		if pgErr.ConstraintName == c {
			return true
		}
	}
	return false
}
