package models

import "time"

type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchLive     MatchStatus = "live"
	MatchFinished MatchStatus = "finished"
)

type MatchWinner string

const (
	WinnerA    MatchWinner = "A"
	WinnerB    MatchWinner = "B"
	WinnerNone MatchWinner = "none"
)

// BracketRole tags a match's purpose inside a multi-round format.
type BracketRole string

const (
	RoleWinners   BracketRole = "winners"
	RoleLosers    BracketRole = "losers"
	RoleSemifinal BracketRole = "semifinal"
	RoleBronze    BracketRole = "bronze"
	RoleFinal     BracketRole = "final"
	RoleNone      BracketRole = "none"
)

// Match belongs to exactly one game. Number is unique within its round.
// A walkover match is stored with TeamBID nil and IsBye set; the engine
// attaches a synthetic BYE team on the B side when it loads the match.
type Match struct {
	ID        int         `json:"id" db:"id"`
	GameID    int         `json:"game_id" db:"game_id"`
	Round     int         `json:"round" db:"round"`
	Number    int         `json:"number" db:"number"`
	TeamAID   *int        `json:"team_a_id,omitempty" db:"team_a_id"`
	TeamBID   *int        `json:"team_b_id,omitempty" db:"team_b_id"`
	ScoreA    *int        `json:"score_a,omitempty" db:"score_a"`
	ScoreB    *int        `json:"score_b,omitempty" db:"score_b"`
	Winner    MatchWinner `json:"winner" db:"winner"`
	Status    MatchStatus `json:"status" db:"status"`
	Role      BracketRole `json:"role" db:"role"`
	IsBye     bool        `json:"is_bye" db:"is_bye"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`

	TeamA *Team `json:"team_a,omitempty" db:"-"`
	TeamB *Team `json:"team_b,omitempty" db:"-"`
}

func (m *Match) Finished() bool {
	return m.Status == MatchFinished
}
