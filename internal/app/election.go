package service

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	repository "github.com/okian/futpack/internal/adapters/repository"
	"github.com/okian/futpack/internal/domain/election"
	"github.com/okian/futpack/internal/domain/model"
	"github.com/okian/futpack/pkg/logger"
	"github.com/okian/futpack/pkg/metrics"
)

// StartRound opens a player-of-the-match round under the given label.
// Admin only. Starting while a round is already active discards its ballots
// and begins fresh; the discarded round produces no history entry.
func (s *Service) StartRound(ctx context.Context, actorID, roundLabel string) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}

	state := model.PotmState{
		IsActive:   true,
		RoundLabel: roundLabel,
		Ballots:    map[string]string{},
	}
	doc, err := repository.Encode(state)
	if err != nil {
		return err
	}
	// Full replace so a restarted round cannot inherit stale ballots.
	if err := s.store.Set(ctx, potmCollection, potmStateDoc, doc, false); err != nil {
		return err
	}

	s.logger.Info(ctx, "election round started",
		logger.String("actorID", actorID),
		logger.String("round", roundLabel),
	)
	return nil
}

// CastBallot records the voter's single ballot for the active round,
// overwriting any ballot the voter cast earlier in the same round. The
// voter must have a linked player, and the target must resolve in the
// catalog or in the voter's own inventory.
func (s *Service) CastBallot(ctx context.Context, voterID, targetID string) error {
	state, err := s.CurrentRound(ctx)
	if err != nil {
		return err
	}
	if !state.IsActive {
		return ErrRoundNotActive
	}

	voter, err := s.loadUser(ctx, voterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoLinkedPlayer
		}
		return err
	}
	if voter.LinkedPlayerID == "" {
		return ErrNoLinkedPlayer
	}

	if _, err := s.GetCard(ctx, voterID, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidBallotTarget
		}
		return err
	}

	// The store's merge is shallow per field, so the whole ballot map is
	// rewritten with the voter's entry folded over the current ones.
	merged := make(map[string]any, len(state.Ballots)+1)
	for voter, target := range state.Ballots {
		merged[voter] = target
	}
	merged[voterID] = targetID
	fields := map[string]any{ballotsField: merged}
	if err := s.store.Update(ctx, potmCollection, potmStateDoc, fields); err != nil {
		return err
	}

	metrics.RecordBallotCast()
	s.logger.Debug(ctx, "ballot cast",
		logger.String("voterID", voterID),
		logger.String("targetID", targetID),
	)
	return nil
}

// EndRound concludes the active round. Admin only. The ballots are tallied,
// falling back to a zero-vote winner from the catalog when none were cast.
// Exactly one history entry is appended per concluded round, then the state
// document resets to idle. A round with neither ballots nor catalog closes
// silently.
func (s *Service) EndRound(ctx context.Context, actorID string) (*model.PotmHistoryEntry, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	state, err := s.CurrentRound(ctx)
	if err != nil {
		return nil, err
	}
	if !state.IsActive {
		return nil, ErrRoundNotActive
	}

	result, decided := election.Tally(state.Ballots)
	if !decided {
		catalog, err := s.catalogPlayers(ctx)
		if err != nil {
			return nil, err
		}
		result, decided = election.Fallback(catalog)
	}

	var entry *model.PotmHistoryEntry
	if decided {
		entry = &model.PotmHistoryEntry{
			ID:         uuid.NewString(),
			RoundLabel: state.RoundLabel,
			WinnerID:   result.WinnerID,
			Votes:      result.Votes,
			DecidedAt:  s.clock().UnixMilli(),
		}
		doc, err := repository.Encode(entry)
		if err != nil {
			return nil, err
		}
		if err := s.store.Set(ctx, potmHistoryCollection, entry.ID, doc, false); err != nil {
			return nil, err
		}
	} else {
		s.logger.Warn(ctx, "election round closed without ballots or catalog",
			logger.String("round", state.RoundLabel),
		)
	}

	idle, err := repository.Encode(model.PotmState{})
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, potmCollection, potmStateDoc, idle, false); err != nil {
		return nil, err
	}

	metrics.RecordElectionRound()
	if entry != nil {
		s.logger.Info(ctx, "election round concluded",
			logger.String("actorID", actorID),
			logger.String("round", entry.RoundLabel),
			logger.String("winnerID", entry.WinnerID),
			logger.Int("votes", entry.Votes),
		)
	}
	return entry, nil
}

// CurrentRound returns the round state. A missing state document means no
// round has ever run and reads as idle.
func (s *Service) CurrentRound(ctx context.Context) (model.PotmState, error) {
	doc, err := s.store.Get(ctx, potmCollection, potmStateDoc)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.PotmState{}, nil
		}
		return model.PotmState{}, err
	}
	var state model.PotmState
	if err := repository.Decode(doc, &state); err != nil {
		return model.PotmState{}, err
	}
	return state, nil
}

// History returns concluded rounds, most recent first.
func (s *Service) History(ctx context.Context) ([]model.PotmHistoryEntry, error) {
	docs, err := s.store.List(ctx, potmHistoryCollection)
	if err != nil {
		return nil, err
	}
	entries := make([]model.PotmHistoryEntry, 0, len(docs))
	for _, doc := range docs {
		var e model.PotmHistoryEntry
		if err := repository.Decode(doc, &e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].DecidedAt > entries[j].DecidedAt
	})
	return entries, nil
}
