package service

import (
	"context"

	"github.com/okian/futpack/internal/domain/model"
	"github.com/okian/futpack/pkg/logger"
)

// GetUser returns the user's ledger record, or ErrNotFound.
func (s *Service) GetUser(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SetDisplayName updates the user's display name, creating the record when
// absent.
func (s *Service) SetDisplayName(ctx context.Context, userID, name string) error {
	doc := map[string]any{"displayName": name}
	return s.store.Set(ctx, usersCollection, userID, doc, true)
}

// LinkPlayer binds a user to a catalog player, which makes the user an
// eligible election voter. The target must exist in the catalog.
func (s *Service) LinkPlayer(ctx context.Context, userID, playerID string) error {
	if _, err := s.GetPlayer(ctx, playerID); err != nil {
		return err
	}
	doc := map[string]any{"linkedPlayerId": playerID}
	if err := s.store.Set(ctx, usersCollection, userID, doc, true); err != nil {
		return err
	}
	s.logger.Info(ctx, "player linked",
		logger.String("userID", userID),
		logger.String("playerID", playerID),
	)
	return nil
}

// SetRole assigns a role to a user. Admin only.
func (s *Service) SetRole(ctx context.Context, actorID, userID string, role model.UserRole) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	doc := map[string]any{"role": string(role)}
	if err := s.store.Set(ctx, usersCollection, userID, doc, true); err != nil {
		return err
	}
	s.logger.Info(ctx, "user role set",
		logger.String("actorID", actorID),
		logger.String("userID", userID),
		logger.String("role", string(role)),
	)
	return nil
}
