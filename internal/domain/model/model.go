// Package model contains domain models passed between layers.
package model

import "time"

// Role discriminates the two stat schemas a catalog player can carry.
type Role string

// Player roles.
const (
	RoleOutfield   Role = "outfield"
	RoleGoalkeeper Role = "goalkeeper"
)

// CardType is the visual card class of a player.
type CardType string

// Card types.
const (
	CardGold   CardType = "gold"
	CardIcon   CardType = "icon"
	CardInform CardType = "inform"
)

// Direction is a stat-vote direction.
type Direction string

// Vote directions.
const (
	VoteUp   Direction = "up"
	VoteDown Direction = "down"
)

// Valid reports whether d is one of the two accepted directions.
func (d Direction) Valid() bool {
	return d == VoteUp || d == VoteDown
}

// OutfieldStats is the fixed attribute set for outfield players (1-99 each).
type OutfieldStats struct {
	Pace      int `json:"PAC"`
	Shooting  int `json:"SHO"`
	Passing   int `json:"PAS"`
	Dribbling int `json:"DRI"`
	Defense   int `json:"DEF"`
	Physical  int `json:"PHY"`
}

// KeeperStats is the fixed attribute set for goalkeepers (1-99 each).
type KeeperStats struct {
	Diving      int `json:"DIV"`
	Handling    int `json:"HAN"`
	Kicking     int `json:"KIC"`
	Reflexes    int `json:"REF"`
	Speed       int `json:"SPE"`
	Positioning int `json:"POS"`
}

// Attribute name sets per role. Order is the display order.
var (
	outfieldAttributes = []string{"PAC", "SHO", "PAS", "DRI", "DEF", "PHY"}
	keeperAttributes   = []string{"DIV", "HAN", "KIC", "REF", "SPE", "POS"}
)

// VoteBucket is the per-attribute tally embedded in an entity's vote map.
// Score is a derived cache: it always equals ups minus downs over Choices.
type VoteBucket struct {
	Score   int                  `json:"score"`
	Choices map[string]Direction `json:"voterChoices"`
}

// Player is a catalog entry: the template a pack draw copies from.
// Exactly one of Outfield/Keeper is set, matching Role.
type Player struct {
	ID       string                `json:"id"`
	Name     string                `json:"name"`
	Position string                `json:"position"`
	Rating   int                   `json:"rating"`
	Role     Role                  `json:"role"`
	Outfield *OutfieldStats        `json:"outfield,omitempty"`
	Keeper   *KeeperStats          `json:"goalkeeper,omitempty"`
	Image    string                `json:"image,omitempty"`
	Nation   string                `json:"nation,omitempty"`
	Club     string                `json:"club,omitempty"`
	CardType CardType              `json:"cardType,omitempty"`
	Votes    map[string]VoteBucket `json:"votes,omitempty"`
}

// Attributes returns the rateable attribute names for the player's role.
func (p Player) Attributes() []string {
	if p.Role == RoleGoalkeeper {
		return keeperAttributes
	}
	return outfieldAttributes
}

// HasAttribute reports whether name is a rateable attribute for this player.
func (p Player) HasAttribute(name string) bool {
	for _, a := range p.Attributes() {
		if a == name {
			return true
		}
	}
	return false
}

// GameStats is the play-statistics block carried by owned instances.
type GameStats struct {
	Played      int `json:"played"`
	Won         int `json:"won"`
	Goals       int `json:"goals"`
	Assists     int `json:"assists"`
	CleanSheets int `json:"cleanSheets"`
}

// Instance is an owned copy of a catalog player. It has its own id, which
// never collides with any catalog id, and a denormalized snapshot of the
// template taken at draw time.
type Instance struct {
	ID         string                `json:"id"`
	TemplateID string                `json:"templateId"`
	Name       string                `json:"name"`
	Position   string                `json:"position"`
	Rating     int                   `json:"rating"`
	Role       Role                  `json:"role"`
	Outfield   *OutfieldStats        `json:"outfield,omitempty"`
	Keeper     *KeeperStats          `json:"goalkeeper,omitempty"`
	Image      string                `json:"image,omitempty"`
	Nation     string                `json:"nation,omitempty"`
	Club       string                `json:"club,omitempty"`
	CardType   CardType              `json:"cardType,omitempty"`
	GameStats  GameStats             `json:"gameStats"`
	Votes      map[string]VoteBucket `json:"votes,omitempty"`
	DrawnAt    time.Time             `json:"drawnAt"`
}

// UserRole gates privileged mutations.
type UserRole string

// User roles.
const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User is the per-user ledger record. Currency is only ever mutated through
// signed increments so concurrent adjustments compose additively.
type User struct {
	ID               string   `json:"id"`
	DisplayName      string   `json:"displayName,omitempty"`
	Role             UserRole `json:"role,omitempty"`
	Currency         float64  `json:"currency"`
	LastBonusClaimAt int64    `json:"lastBonusClaimAt,omitempty"` // unix millis; 0 = never claimed
	LinkedPlayerID   string   `json:"linkedPlayerId,omitempty"`
}

// IsAdmin reports whether the user may perform privileged operations.
func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// PotmState is the singleton player-of-the-match round document.
// While IsActive is false, Ballots is frozen and ignored.
type PotmState struct {
	IsActive   bool              `json:"isActive"`
	RoundLabel string            `json:"roundLabel,omitempty"`
	Ballots    map[string]string `json:"ballots,omitempty"` // voterID -> playerID
}

// PotmHistoryEntry records one concluded election round.
type PotmHistoryEntry struct {
	ID         string `json:"id"`
	RoundLabel string `json:"roundLabel"`
	WinnerID   string `json:"winnerId"`
	Votes      int    `json:"votes"`
	DecidedAt  int64  `json:"decidedAt"` // unix millis
}
