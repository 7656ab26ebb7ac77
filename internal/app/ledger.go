package service

import (
	"context"
	"errors"

	repository "github.com/okian/futpack/internal/adapters/repository"
	"github.com/okian/futpack/pkg/logger"
	"github.com/okian/futpack/pkg/metrics"
)

// Balance returns the user's current currency balance. A user without a
// ledger record has a balance of zero.
func (s *Service) Balance(ctx context.Context, userID string) (float64, error) {
	u, err := s.loadUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return u.Currency, nil
}

// AdjustBalance applies a signed additive adjustment to a user's balance,
// creating the ledger record when absent. The balance is never overwritten
// from a stale read: the store's atomic increment is the only mutation path,
// so concurrent adjustments compose.
//
// Adjusting another user's balance is an admin operation.
func (s *Service) AdjustBalance(ctx context.Context, actorID, userID string, delta float64) error {
	if actorID != userID {
		if err := s.requireAdmin(ctx, actorID); err != nil {
			return err
		}
	}

	if err := s.store.Increment(ctx, usersCollection, userID, currencyField, delta); err != nil {
		return err
	}

	s.logger.Debug(ctx, "balance adjusted",
		logger.String("userID", userID),
		logger.Float64("delta", delta),
	)
	return nil
}

// ClaimDailyBonus grants the login bonus when the stored claim timestamp is
// older than the configured window. The timestamp is fetched fresh on every
// call; a missing record counts as never claimed. Returns whether a bonus
// was granted.
func (s *Service) ClaimDailyBonus(ctx context.Context, userID string) (bool, error) {
	var lastClaim int64
	u, err := s.loadUser(ctx, userID)
	switch {
	case err == nil:
		lastClaim = u.LastBonusClaimAt
	case errors.Is(err, repository.ErrNotFound):
		// First-ever claim: treat the missing timestamp as epoch 0.
	default:
		return false, err
	}

	now := s.clock()
	if now.UnixMilli()-lastClaim <= s.bonusInterval.Milliseconds() {
		metrics.RecordBonusDenied()
		return false, nil
	}

	// Stamp the window first, then credit through the increment primitive.
	stamp := repository.Document{lastBonusField: now.UnixMilli()}
	if err := s.store.Set(ctx, usersCollection, userID, stamp, true); err != nil {
		return false, err
	}
	if err := s.store.Increment(ctx, usersCollection, userID, currencyField, s.dailyBonus); err != nil {
		// The stamp must not outlive a failed credit, or the window is
		// burned with nothing granted. Restore the prior claim time.
		s.rollbackBonusStamp(ctx, userID, lastClaim)
		return false, err
	}

	metrics.RecordBonusGranted()
	s.logger.Info(ctx, "daily bonus granted",
		logger.String("userID", userID),
		logger.Float64("amount", s.dailyBonus),
	)
	return true, nil
}

// rollbackBonusStamp restores the claim timestamp after a failed credit.
// Best effort: a failed rollback leaves the window consumed and is logged
// for operator attention.
func (s *Service) rollbackBonusStamp(ctx context.Context, userID string, prior int64) {
	restore := repository.Document{lastBonusField: prior}
	if err := s.store.Set(ctx, usersCollection, userID, restore, true); err != nil {
		s.logger.Error(ctx, "bonus stamp rollback failed",
			logger.String("userID", userID),
			logger.Error(err),
		)
	}
}

// RecordMatchPlayed credits the per-match participation reward of one unit.
func (s *Service) RecordMatchPlayed(ctx context.Context, userID string) error {
	return s.store.Increment(ctx, usersCollection, userID, currencyField, 1)
}
