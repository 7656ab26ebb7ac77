package service

import (
	"context"

	repository "github.com/okian/futpack/internal/adapters/repository"
	"github.com/okian/futpack/internal/domain/draw"
	"github.com/okian/futpack/internal/domain/model"
	"github.com/okian/futpack/pkg/logger"
	"github.com/okian/futpack/pkg/metrics"
)

// OpenPack debits the pack price, draws one catalog template and mints an
// owned instance of it into the user's inventory. When the balance cannot
// cover the price the draw is declined and (nil, nil) is returned: a
// declined draw is an outcome, not an error. A draw against an empty
// catalog refunds the debit and also returns (nil, nil).
func (s *Service) OpenPack(ctx context.Context, userID string) (*model.Instance, error) {
	balance, err := s.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance < s.packPrice {
		metrics.RecordPackDeclined()
		s.logger.Debug(ctx, "pack draw declined",
			logger.String("userID", userID),
			logger.Float64("balance", balance),
			logger.Float64("price", s.packPrice),
		)
		return nil, nil
	}

	if err := s.store.Increment(ctx, usersCollection, userID, currencyField, -s.packPrice); err != nil {
		return nil, err
	}

	catalog, err := s.catalogPlayers(ctx)
	if err != nil {
		s.rollbackDebit(ctx, userID)
		return nil, err
	}

	template, ok := s.picker.Pick(catalog)
	if !ok {
		// Nothing to draw from. The debit must not survive the failed draw.
		s.rollbackDebit(ctx, userID)
		s.logger.Warn(ctx, "pack draw against empty catalog", logger.String("userID", userID))
		return nil, nil
	}

	instance := draw.Mint(template, s.clock())
	doc, err := repository.Encode(instance)
	if err != nil {
		s.rollbackDebit(ctx, userID)
		return nil, err
	}
	if err := s.store.Set(ctx, inventoryCollection(userID), instance.ID, doc, false); err != nil {
		s.rollbackDebit(ctx, userID)
		return nil, err
	}

	metrics.RecordPackOpened()
	s.logger.Info(ctx, "pack opened",
		logger.String("userID", userID),
		logger.String("instanceID", instance.ID),
		logger.String("templateID", instance.TemplateID),
		logger.Int("rating", instance.Rating),
	)
	return &instance, nil
}

// QuickSell removes one owned instance and credits the resale refund.
// Returns the amount credited, or ErrNotFound when the instance is not in
// the user's inventory.
func (s *Service) QuickSell(ctx context.Context, userID, instanceID string) (float64, error) {
	if _, err := s.store.Get(ctx, inventoryCollection(userID), instanceID); err != nil {
		return 0, err
	}
	if err := s.store.Delete(ctx, inventoryCollection(userID), instanceID); err != nil {
		return 0, err
	}
	if err := s.store.Increment(ctx, usersCollection, userID, currencyField, s.quickSellRefund); err != nil {
		return 0, err
	}

	metrics.RecordQuickSell()
	s.logger.Info(ctx, "instance quick-sold",
		logger.String("userID", userID),
		logger.String("instanceID", instanceID),
		logger.Float64("refund", s.quickSellRefund),
	)
	return s.quickSellRefund, nil
}

// catalogPlayers loads and decodes the full player catalog.
func (s *Service) catalogPlayers(ctx context.Context) ([]model.Player, error) {
	docs, err := s.store.List(ctx, playersCollection)
	if err != nil {
		return nil, err
	}
	players := make([]model.Player, 0, len(docs))
	for _, doc := range docs {
		var p model.Player
		if err := repository.Decode(doc, &p); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

// rollbackDebit returns the pack price after a draw that could not complete.
// Best effort: the compensating credit itself failing is only logged.
func (s *Service) rollbackDebit(ctx context.Context, userID string) {
	metrics.RecordPackRollback()
	if err := s.store.Increment(ctx, usersCollection, userID, currencyField, s.packPrice); err != nil {
		s.logger.Error(ctx, "pack debit rollback failed",
			logger.String("userID", userID),
			logger.Error(err),
		)
	}
}
