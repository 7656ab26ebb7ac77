// Package service provides the core business service that implements
// the dependencies required by the HTTP API: the ledger, the stat-vote
// aggregator, the pack draw engine, the inventory, and the election engine.
//
// Every operation takes the acting user id explicitly. There is no ambient
// session: the surrounding application resolves identity and injects it per
// call. All invariants here are client-enforced contracts against a shared
// document store, not transactional guarantees.
package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	repository "github.com/okian/futpack/internal/adapters/repository"
	"github.com/okian/futpack/internal/domain/draw"
	"github.com/okian/futpack/internal/domain/model"
	"github.com/okian/futpack/pkg/logger"
)

// Default economy constants; all overridable via options and config.
const (
	defaultPackPrice       = 1.0
	defaultQuickSellRefund = 0.5
	defaultDailyBonus      = 5.0
	defaultBonusInterval   = 24 * time.Hour
)

// Collection and field names in the document store.
const (
	playersCollection     = "players"
	usersCollection       = "users"
	potmCollection        = "potm"
	potmStateDoc          = "state"
	potmHistoryCollection = "potm_history"

	currencyField  = "currency"
	lastBonusField = "lastBonusClaimAt"
	votesField     = "votes"
	ballotsField   = "ballots"
)

// inventoryCollection returns the per-user inventory collection name,
// mirroring the users/{uid}/inventory subcollection layout of the hosted app.
func inventoryCollection(userID string) string {
	return usersCollection + "/" + userID + "/inventory"
}

// Service implements the API dependencies for the card collection system.
type Service struct {
	store  repository.Store
	picker *draw.Picker
	logger logger.Logger

	// clock is injectable so the bonus window is testable.
	clock func() time.Time

	// Economy configuration
	packPrice       float64
	quickSellRefund float64
	dailyBonus      float64
	bonusInterval   time.Duration
	highTierOdds    float64
	highTierFloor   int
	rng             *rand.Rand
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source. Tests pass a fake clock to drive the
// daily bonus window.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithRand sets the random source used by the pack draw.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithPackPrice sets the currency debited per pack draw.
func WithPackPrice(price float64) Option {
	return func(s *Service) {
		if price >= 0 {
			s.packPrice = price
		}
	}
}

// WithQuickSellRefund sets the credit granted when an instance is resold.
func WithQuickSellRefund(refund float64) Option {
	return func(s *Service) {
		if refund >= 0 {
			s.quickSellRefund = refund
		}
	}
}

// WithDailyBonus sets the amount granted by the login bonus.
func WithDailyBonus(amount float64) Option {
	return func(s *Service) {
		if amount >= 0 {
			s.dailyBonus = amount
		}
	}
}

// WithBonusInterval sets the login bonus idempotency window.
func WithBonusInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.bonusInterval = interval
		}
	}
}

// WithHighTierOdds sets the probability a draw comes from the high tier.
func WithHighTierOdds(odds float64) Option {
	return func(s *Service) {
		if odds >= 0 && odds <= 1 {
			s.highTierOdds = odds
		}
	}
}

// WithHighTierFloor sets the minimum rating of the high tier.
func WithHighTierFloor(floor int) Option {
	return func(s *Service) {
		if floor > 0 {
			s.highTierFloor = floor
		}
	}
}

// New constructs a Service over the given document store.
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:           store,
		clock:           time.Now,
		packPrice:       defaultPackPrice,
		quickSellRefund: defaultQuickSellRefund,
		dailyBonus:      defaultDailyBonus,
		bonusInterval:   defaultBonusInterval,
		highTierOdds:    draw.DefaultHighTierOdds,
		highTierFloor:   draw.DefaultHighTierFloor,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	pickerOpts := []draw.Option{
		draw.WithHighTierOdds(s.highTierOdds),
		draw.WithHighTierFloor(s.highTierFloor),
	}
	if s.rng != nil {
		pickerOpts = append(pickerOpts, draw.WithRand(s.rng))
	}
	s.picker = draw.NewPicker(pickerOpts...)

	return s
}

// loadUser fetches the user's ledger record, or ErrNotFound.
func (s *Service) loadUser(ctx context.Context, userID string) (model.User, error) {
	doc, err := s.store.Get(ctx, usersCollection, userID)
	if err != nil {
		return model.User{}, err
	}
	var u model.User
	if err := repository.Decode(doc, &u); err != nil {
		return model.User{}, err
	}
	if u.ID == "" {
		u.ID = userID
	}
	return u, nil
}

// requireAdmin rejects the call unless actorID has the admin role.
func (s *Service) requireAdmin(ctx context.Context, actorID string) error {
	actor, err := s.loadUser(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotAuthorized
		}
		return err
	}
	if !actor.IsAdmin() {
		return ErrNotAuthorized
	}
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()

	stats := map[string]interface{}{
		"packPrice":       s.packPrice,
		"quickSellRefund": s.quickSellRefund,
		"highTierOdds":    s.highTierOdds,
		"highTierFloor":   s.highTierFloor,
	}

	if catalog, err := s.store.List(ctx, playersCollection); err == nil {
		stats["catalogSize"] = len(catalog)
	}
	if history, err := s.store.List(ctx, potmHistoryCollection); err == nil {
		stats["concludedRounds"] = len(history)
	}

	return stats
}
