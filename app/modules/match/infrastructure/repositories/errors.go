package matchdb

import "errors"

// Sentinel errors for the repository layer. The service decides what they mean to a caller.
var (
	// ErrNotFound indicates no match is stored under the requested id.
	ErrNotFound = errors.New("match not found")

	// ErrNoRowsAffected indicates a DELETE matched nothing.
	ErrNoRowsAffected = errors.New("no rows affected")
)
