package service

import (
	"context"

	repository "github.com/okian/futpack/internal/adapters/repository"
	"github.com/okian/futpack/internal/domain/model"
	"github.com/okian/futpack/internal/domain/votes"
	"github.com/okian/futpack/pkg/logger"
	"github.com/okian/futpack/pkg/metrics"
)

// CastVote folds one directional vote by voterID into the named attribute of
// a catalog entry and persists the whole updated vote map. Re-casting the
// stored direction withdraws the vote; the opposite direction flips it.
// Returns the updated entry.
func (s *Service) CastVote(ctx context.Context, playerID, attribute, voterID string, dir model.Direction) (*model.Player, error) {
	// Reject malformed input before touching the store.
	if !dir.Valid() {
		return nil, votes.ErrInvalidDirection
	}

	doc, err := s.store.Get(ctx, playersCollection, playerID)
	if err != nil {
		return nil, err
	}
	var player model.Player
	if err := repository.Decode(doc, &player); err != nil {
		return nil, err
	}
	if !player.HasAttribute(attribute) {
		return nil, ErrUnknownAttribute
	}

	if player.Votes == nil {
		player.Votes = make(map[string]model.VoteBucket)
	}
	updated, kind, err := votes.Apply(player.Votes[attribute], voterID, dir)
	if err != nil {
		return nil, err
	}
	player.Votes[attribute] = updated

	votesDoc, err := repository.Encode(player.Votes)
	if err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, playersCollection, playerID, map[string]any{votesField: votesDoc}); err != nil {
		return nil, err
	}

	metrics.RecordVoteCast(string(kind))
	s.logger.Debug(ctx, "stat vote cast",
		logger.String("playerID", playerID),
		logger.String("attribute", attribute),
		logger.String("kind", string(kind)),
		logger.Int("score", updated.Score),
	)
	return &player, nil
}
