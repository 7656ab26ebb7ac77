// Package election implements the player-of-the-match ballot tally.
package election

import (
	"sort"

	"github.com/okian/futpack/internal/domain/model"
)

// Result is the outcome of a concluded round.
type Result struct {
	WinnerID string
	Votes    int
}

// Tally counts ballots (voterID -> playerID) and returns the entity with the
// highest count. Ties break to the lowest entity id among the tied entries;
// the break is arbitrary but deterministic and documented. Returns false
// when no ballots were cast.
func Tally(ballots map[string]string) (Result, bool) {
	if len(ballots) == 0 {
		return Result{}, false
	}

	counts := make(map[string]int, len(ballots))
	for _, playerID := range ballots {
		counts[playerID]++
	}

	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	best := Result{}
	for _, id := range ids {
		if counts[id] > best.Votes {
			best = Result{WinnerID: id, Votes: counts[id]}
		}
	}
	return best, true
}

// Fallback picks a zero-vote winner from the catalog for rounds that ended
// without a single ballot: the first entry by id. A round always produces
// exactly one history entry, even an empty one. Returns false when the
// catalog is empty too.
func Fallback(catalog []model.Player) (Result, bool) {
	if len(catalog) == 0 {
		return Result{}, false
	}

	winner := catalog[0].ID
	for _, entry := range catalog[1:] {
		if entry.ID < winner {
			winner = entry.ID
		}
	}
	return Result{WinnerID: winner, Votes: 0}, true
}
