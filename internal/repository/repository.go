package repository

import (
	"database/sql"
	"errors"
)

// errNoRowsAffected signals that a write matched no rows. Services translate
// it into a not-found error.
var errNoRowsAffected = sql.ErrNoRows

// IsNotFound reports whether the error means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
