package repository

import "errors"

var (
	// ErrNoRowsAffected signals that a creator-scoped write matched no rows.
	ErrNoRowsAffected = errors.New("no rows affected")

	// ErrDuplicate signals a unique constraint violation.
	ErrDuplicate = errors.New("duplicate record")
)
