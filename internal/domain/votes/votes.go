// Package votes implements the stat-vote bucket arithmetic: casting a
// direction folds into the bucket as a new vote, a flip, or a withdrawal,
// keeping the cached score equal to ups minus downs at all times.
package votes

import (
	"github.com/okian/futpack/internal/domain/model"
)

// Kind classifies the effect a cast had on a bucket.
type Kind string

// Cast kinds.
const (
	KindNew      Kind = "new"
	KindFlip     Kind = "flip"
	KindWithdraw Kind = "withdraw"
)

// Apply folds a single cast by voterID into bucket and returns the updated
// bucket. The input bucket is not mutated. Re-casting the stored direction
// withdraws the vote; casting the opposite direction flips it in one step.
func Apply(bucket model.VoteBucket, voterID string, dir model.Direction) (model.VoteBucket, Kind, error) {
	if !dir.Valid() {
		return bucket, "", ErrInvalidDirection
	}

	out := model.VoteBucket{
		Score:   bucket.Score,
		Choices: make(map[string]model.Direction, len(bucket.Choices)+1),
	}
	for id, d := range bucket.Choices {
		out.Choices[id] = d
	}

	previous, voted := out.Choices[voterID]
	switch {
	case voted && previous == dir:
		// Withdraw: remove the stored choice and undo its contribution.
		delete(out.Choices, voterID)
		if dir == model.VoteUp {
			out.Score--
		} else {
			out.Score++
		}
		return out, KindWithdraw, nil
	case voted:
		// Flip: the old contribution is removed and the new one added in
		// one step, hence the double delta.
		out.Choices[voterID] = dir
		if dir == model.VoteUp {
			out.Score += 2
		} else {
			out.Score -= 2
		}
		return out, KindFlip, nil
	default:
		out.Choices[voterID] = dir
		if dir == model.VoteUp {
			out.Score++
		} else {
			out.Score--
		}
		return out, KindNew, nil
	}
}

// Recount recomputes the score from the stored choices. The result must
// always match the cached Score; tests use it to check the invariant.
func Recount(bucket model.VoteBucket) int {
	score := 0
	for _, d := range bucket.Choices {
		if d == model.VoteUp {
			score++
		} else {
			score--
		}
	}
	return score
}
