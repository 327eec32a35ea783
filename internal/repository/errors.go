package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPreconditionFailed is returned when a conditional update finds the record
	// in a state other than the one it was conditioned on.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrStoreUnavailable is returned when the backing store cannot be reached.
	// Callers may retry.
	ErrStoreUnavailable = errors.New("record store unavailable")
)
