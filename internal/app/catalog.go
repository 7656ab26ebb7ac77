package service

import (
	"context"

	repository "github.com/okian/futpack/internal/adapters/repository"
	"github.com/okian/futpack/internal/domain/model"
	"github.com/okian/futpack/pkg/logger"
)

// ListCatalog returns every catalog template, ordered by id.
func (s *Service) ListCatalog(ctx context.Context) ([]model.Player, error) {
	return s.catalogPlayers(ctx)
}

// GetPlayer returns one catalog template, or ErrNotFound.
func (s *Service) GetPlayer(ctx context.Context, playerID string) (*model.Player, error) {
	doc, err := s.store.Get(ctx, playersCollection, playerID)
	if err != nil {
		return nil, err
	}
	var p model.Player
	if err := repository.Decode(doc, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SavePlayer creates or replaces a catalog template. Admin only.
func (s *Service) SavePlayer(ctx context.Context, actorID string, player model.Player) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	doc, err := repository.Encode(player)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, playersCollection, player.ID, doc, false); err != nil {
		return err
	}
	s.logger.Info(ctx, "catalog entry saved",
		logger.String("actorID", actorID),
		logger.String("playerID", player.ID),
	)
	return nil
}

// DeletePlayer removes a catalog template. Admin only. Owned instances
// minted from the template are snapshots and survive the deletion.
func (s *Service) DeletePlayer(ctx context.Context, actorID, playerID string) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, playersCollection, playerID); err != nil {
		return err
	}
	s.logger.Info(ctx, "catalog entry deleted",
		logger.String("actorID", actorID),
		logger.String("playerID", playerID),
	)
	return nil
}
