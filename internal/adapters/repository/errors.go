package repository

import "errors"

// Sentinel kinds for document store errors.
var (
	// ErrNotFound is returned when a (collection, id) pair has no document.
	ErrNotFound = errors.New("document not found")

	// ErrUnavailable is returned when the backing store is unreachable.
	// Operations failing with it leave no partial state behind.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrNotNumeric is returned when Increment targets a non-numeric field.
	ErrNotNumeric = errors.New("field is not numeric")
)
