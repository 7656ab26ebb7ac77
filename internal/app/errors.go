package service

import "errors"

// Sentinel kinds for service errors. Storage failures and missing documents
// surface as the repository package's sentinels; direction errors as the
// votes package's.
var (
	// ErrNotAuthorized is returned when a privileged operation is attempted
	// by a non-admin actor. The check runs before any mutation.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrNoLinkedPlayer is returned when a voter without a linked player
	// tries to cast an election ballot.
	ErrNoLinkedPlayer = errors.New("voter has no linked player")

	// ErrInvalidBallotTarget is returned when a ballot names an entity that
	// exists neither in the catalog nor in the voter's inventory.
	ErrInvalidBallotTarget = errors.New("invalid ballot target")

	// ErrRoundNotActive is returned when a ballot or round conclusion is
	// attempted while no election round is running.
	ErrRoundNotActive = errors.New("election round not active")

	// ErrUnknownAttribute is returned when a stat vote names an attribute
	// outside the entity's role schema.
	ErrUnknownAttribute = errors.New("unknown stat attribute")
)
