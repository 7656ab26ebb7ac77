package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrMissingUser = errors.New("missing X-User-ID header")
	ErrInternal    = errors.New("internal error")
)

// NewKind tags a sentinel with the failing operation.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind tags a sentinel with the failing operation and its cause.
func WrapKind(op string, kind, cause error) error {
	return fmt.Errorf("%s: %w: %v", op, kind, cause)
}
