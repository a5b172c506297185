package models

import "time"

type UserRole string

const (
	RolePlayer UserRole = "player"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	ID           int       `json:"id" db:"id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	AvatarKey *string `json:"-" db:"avatar_key"`
	AvatarURL *string `json:"avatar_url,omitempty" db:"-"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PlayerStats is the running competitive record of a participant.
// A row is keyed either by a registered user (UserID) or by the contact
// handle of an unregistered player (Contact); exactly one of the two is set.
type PlayerStats struct {
	ID          int       `json:"id" db:"id"`
	UserID      *int      `json:"user_id,omitempty" db:"user_id"`
	Contact     *string   `json:"contact,omitempty" db:"contact"`
	GamesPlayed int       `json:"games_played" db:"games_played"`
	Wins        int       `json:"wins" db:"wins"`
	WinStreak   int       `json:"win_streak" db:"win_streak"`
	Points      float64   `json:"points" db:"points"`
	TeamPoints  float64   `json:"team_points" db:"team_points"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
