package models

import (
	"encoding/json"
	"time"
)

type MedalColor string

const (
	MedalGold   MedalColor = "gold"
	MedalSilver MedalColor = "silver"
	MedalBronze MedalColor = "bronze"
	MedalNone   MedalColor = "none"
)

// TeamPlayer is one slot on a team's roster. Registered players carry a
// UserID; unregistered guests carry only a display name and a contact
// handle the stats ledger can later be reconciled against.
type TeamPlayer struct {
	UserID  *int    `json:"user_id,omitempty"`
	Name    string  `json:"name"`
	Contact *string `json:"contact,omitempty"`
}

// Team is a fixed roster competing in one game. Rosters are snapshotted
// from the room when the game starts and never change mid-game. Label is
// a single letter unique within the game ("A", "B", ...).
type Team struct {
	ID        int          `json:"id" db:"id"`
	GameID    int          `json:"game_id" db:"game_id"`
	Label     string       `json:"label" db:"label"`
	Players   []TeamPlayer `json:"players" db:"-"`
	Wins      int          `json:"wins" db:"wins"`
	Points    float64      `json:"points" db:"points"`
	Medal     MedalColor   `json:"medal" db:"medal"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// RegisteredPlayerIDs returns the identities of roster members that map to
// real user accounts. Guests are excluded.
func (t *Team) RegisteredPlayerIDs() []int {
	ids := make([]int, 0, len(t.Players))
	for _, p := range t.Players {
		if p.UserID != nil {
			ids = append(ids, *p.UserID)
		}
	}
	return ids
}

// PlayersJSON marshals the roster for storage in the teams.players column.
func (t *Team) PlayersJSON() ([]byte, error) {
	return json.Marshal(t.Players)
}

// SetPlayersJSON unmarshals a stored roster back onto the team.
func (t *Team) SetPlayersJSON(raw []byte) error {
	if len(raw) == 0 {
		t.Players = nil
		return nil
	}
	return json.Unmarshal(raw, &t.Players)
}
