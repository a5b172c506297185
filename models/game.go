package models

import "time"

// GameFormat selects the bracket rules a game is played under.
type GameFormat string

const (
	FormatOneVsOne      GameFormat = "one-vs-one"
	FormatTwoVsTwo      GameFormat = "two-vs-two"
	FormatRoundRobin    GameFormat = "round-robin"
	FormatQuickKnockout GameFormat = "quick-knockout"
	FormatPickle        GameFormat = "pickle"
)

type GameStatus string

const (
	GamePending   GameStatus = "pending"
	GameLive      GameStatus = "live"
	GameCompleted GameStatus = "completed"
)

// MedalAward records which team took a medal and the registered identities
// on its roster. Guests are part of the team but carry no identity here.
type MedalAward struct {
	TeamLabel string `json:"team_label"`
	PlayerIDs []int  `json:"player_ids"`
}

type MedalSummary struct {
	Gold   *MedalAward `json:"gold,omitempty"`
	Silver *MedalAward `json:"silver,omitempty"`
	Bronze *MedalAward `json:"bronze,omitempty"`
}

// Game is one tournament run inside a room. It exclusively owns its
// matches; teams are a snapshot taken at creation. Once Status is
// completed and PointsAssigned is set the record is immutable.
//
// DominantWinner holds the label of the round-1 winner that quick-knockout
// smart seeding advanced directly to the final. It is written when round 2
// is generated and consulted when round 3 is generated, so the final-round
// rule does not have to re-derive the seeding from stored score margins.
type Game struct {
	ID             int           `json:"id" db:"id"`
	RoomID         int           `json:"room_id" db:"room_id"`
	Format         GameFormat    `json:"format" db:"format"`
	Status         GameStatus    `json:"status" db:"status"`
	CurrentRound   int           `json:"current_round" db:"current_round"`
	PointsAssigned bool          `json:"points_assigned" db:"points_assigned"`
	DominantWinner *string       `json:"dominant_winner,omitempty" db:"dominant_winner"`
	Medals         *MedalSummary `json:"medals,omitempty" db:"medals"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`

	Teams   []Team  `json:"teams,omitempty" db:"-"`
	Matches []Match `json:"matches,omitempty" db:"-"`
}
