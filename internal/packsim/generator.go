package packsim

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/okian/futpack/internal/domain/model"
	"github.com/okian/futpack/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	ratingCaseDivisor  = 8
	keeperDivisor      = 8
)

// Rating band constants. Elite entries land in the high draw tier; the
// bands below spread the rest of the catalog the way a real squad pool
// looks.
const (
	caseEliteRating  = 0
	eliteRatingMin   = 88
	eliteRatingRange = 8

	caseStrongRating  = 1
	strongRatingMin   = 83
	strongRatingRange = 5

	weakRatingMin   = 62
	weakRatingRange = 21
)

// Stat value bounds for generated players.
const (
	statMin   = 40
	statRange = 55
)

var positions = []string{"GK", "CB", "LB", "RB", "CDM", "CM", "CAM", "LW", "RW", "ST"}

// getRandomInt returns a random int in [0, n) using crypto/rand.
func getRandomInt(n int64) int64 {
	v, _ := rand.Int(rand.Reader, big.NewInt(n))
	return v.Int64()
}

// generateCatalog creates catalog entries with a varied rating distribution:
// roughly one in eight lands in the elite band, one in eight in the strong
// band, the rest spread wide below.
func generateCatalog(ctx context.Context, config *Config) []model.Player {
	logger.Get().Info(ctx, "generating catalog", logger.Int("size", config.CatalogSize))

	players := make([]model.Player, config.CatalogSize)
	for i := range players {
		players[i] = generateSinglePlayer(i)
	}
	return players
}

// generateSinglePlayer creates one catalog entry with the given index.
func generateSinglePlayer(index int) model.Player {
	rating := generateVariedRating()

	p := model.Player{
		ID:       "sim_" + strconv.Itoa(index),
		Name:     "Sim Player " + strconv.Itoa(index),
		Rating:   rating,
		Role:     model.RoleOutfield,
		CardType: model.CardGold,
	}

	if getRandomInt(keeperDivisor) == 0 {
		p.Role = model.RoleGoalkeeper
		p.Position = "GK"
		p.Keeper = &model.KeeperStats{
			Diving:      randomStat(),
			Handling:    randomStat(),
			Kicking:     randomStat(),
			Reflexes:    randomStat(),
			Speed:       randomStat(),
			Positioning: randomStat(),
		}
		return p
	}

	p.Position = positions[1+getRandomInt(int64(len(positions)-1))]
	p.Outfield = &model.OutfieldStats{
		Pace:      randomStat(),
		Shooting:  randomStat(),
		Passing:   randomStat(),
		Dribbling: randomStat(),
		Defense:   randomStat(),
		Physical:  randomStat(),
	}
	return p
}

// generateVariedRating creates a rating with a banded distribution.
func generateVariedRating() int {
	switch getRandomInt(ratingCaseDivisor) {
	case caseEliteRating:
		return eliteRatingMin + int(getRandomInt(eliteRatingRange))
	case caseStrongRating:
		return strongRatingMin + int(getRandomInt(strongRatingRange))
	default:
		return weakRatingMin + int(getRandomInt(weakRatingRange))
	}
}

func randomStat() int {
	return statMin + int(getRandomInt(statRange))
}
