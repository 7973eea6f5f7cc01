package db

import "errors"

// Sentinel errors for store operations.
var (
	ErrKeyNotFound = errors.New("db: key not found")
)

// Op constants name store operations for error context.
const (
	OpPut    = "PUT"
	OpGet    = "GET"
	OpDelete = "DELETE"
	OpExists = "EXISTS"
	OpCount  = "COUNT"
	OpPing   = "PING"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
