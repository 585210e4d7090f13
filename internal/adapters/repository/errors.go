package repository

import "errors"

// Sentinel kinds for document store errors.
var (
	// ErrNotFound reports an absent document key.
	ErrNotFound = errors.New("document not found")

	// ErrConflict reports that a concurrent writer invalidated a
	// transaction's reads. Retryable: re-read and re-apply.
	ErrConflict = errors.New("transaction conflict")
)
