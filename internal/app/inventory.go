package service

import (
	"context"
	"errors"

	repository "github.com/okian/futpack/internal/adapters/repository"
	"github.com/okian/futpack/internal/domain/model"
)

// Card is the result of a unified lookup: exactly one of Instance or
// Template is set, depending on which namespace the id resolved in.
type Card struct {
	Instance *model.Instance `json:"instance,omitempty"`
	Template *model.Player   `json:"template,omitempty"`
}

// Inventory returns every instance the user owns, ordered by instance id.
func (s *Service) Inventory(ctx context.Context, userID string) ([]model.Instance, error) {
	docs, err := s.store.List(ctx, inventoryCollection(userID))
	if err != nil {
		return nil, err
	}
	instances := make([]model.Instance, 0, len(docs))
	for _, doc := range docs {
		var inst model.Instance
		if err := repository.Decode(doc, &inst); err != nil {
			return nil, err
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

// GetInstance returns one owned instance, or ErrNotFound.
func (s *Service) GetInstance(ctx context.Context, userID, instanceID string) (*model.Instance, error) {
	doc, err := s.store.Get(ctx, inventoryCollection(userID), instanceID)
	if err != nil {
		return nil, err
	}
	var inst model.Instance
	if err := repository.Decode(doc, &inst); err != nil {
		return nil, err
	}
	return &inst, nil
}

// RemoveFromInventory deletes an owned instance without any refund.
// Removing an absent instance is a no-op.
func (s *Service) RemoveFromInventory(ctx context.Context, userID, instanceID string) error {
	return s.store.Delete(ctx, inventoryCollection(userID), instanceID)
}

// GetCard resolves an id against the user's inventory first and the shared
// catalog second. Instance ids and catalog ids never collide, so the order
// only matters for lookup cost, not correctness.
func (s *Service) GetCard(ctx context.Context, userID, id string) (*Card, error) {
	inst, err := s.GetInstance(ctx, userID, id)
	switch {
	case err == nil:
		return &Card{Instance: inst}, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Card{Template: player}, nil
}
