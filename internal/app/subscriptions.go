package service

import (
	"context"

	repository "github.com/okian/futpack/internal/adapters/repository"
	"github.com/okian/futpack/internal/domain/model"
)

// SubscribeCatalog invokes fn with the full catalog after every catalog
// write. Entries that fail to decode are skipped.
func (s *Service) SubscribeCatalog(ctx context.Context, fn func([]model.Player)) (repository.Unsubscribe, error) {
	return s.store.Subscribe(ctx, playersCollection, func(docs []repository.Document) {
		players := make([]model.Player, 0, len(docs))
		for _, doc := range docs {
			var p model.Player
			if err := repository.Decode(doc, &p); err != nil {
				continue
			}
			players = append(players, p)
		}
		fn(players)
	})
}

// SubscribeInventory invokes fn with the user's full inventory after every
// inventory write.
func (s *Service) SubscribeInventory(ctx context.Context, userID string, fn func([]model.Instance)) (repository.Unsubscribe, error) {
	return s.store.Subscribe(ctx, inventoryCollection(userID), func(docs []repository.Document) {
		instances := make([]model.Instance, 0, len(docs))
		for _, doc := range docs {
			var inst model.Instance
			if err := repository.Decode(doc, &inst); err != nil {
				continue
			}
			instances = append(instances, inst)
		}
		fn(instances)
	})
}

// SubscribeBalance invokes fn with the user's balance after every write to
// the user record. A deleted record reads as zero.
func (s *Service) SubscribeBalance(ctx context.Context, userID string, fn func(float64)) (repository.Unsubscribe, error) {
	return s.store.SubscribeDoc(ctx, usersCollection, userID, func(doc repository.Document) {
		if doc == nil {
			fn(0)
			return
		}
		var u model.User
		if err := repository.Decode(doc, &u); err != nil {
			return
		}
		fn(u.Currency)
	})
}

// SubscribeElection invokes fn with the round state after every state write.
// A deleted state document reads as idle.
func (s *Service) SubscribeElection(ctx context.Context, fn func(model.PotmState)) (repository.Unsubscribe, error) {
	return s.store.SubscribeDoc(ctx, potmCollection, potmStateDoc, func(doc repository.Document) {
		if doc == nil {
			fn(model.PotmState{})
			return
		}
		var state model.PotmState
		if err := repository.Decode(doc, &state); err != nil {
			return
		}
		fn(state)
	})
}
