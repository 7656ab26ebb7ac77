package votes

import "errors"

// Sentinel kinds for vote errors.
var (
	ErrInvalidDirection = errors.New("invalid vote direction")
)
