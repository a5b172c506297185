package models

import "time"

// Room is a recreational meetup a host opens for other players to join,
// usually tied to a court and a time. Games are run among teams drawn
// from the room's member list.
type Room struct {
	ID         int       `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Sport      string    `json:"sport" db:"sport"`
	HostID     int       `json:"host_id" db:"host_id"`
	InviteCode string    `json:"invite_code" db:"invite_code"`
	Location   *string   `json:"location,omitempty" db:"location"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	CoverKey *string `json:"-" db:"cover_key"`
	CoverURL *string `json:"cover_url,omitempty" db:"-"`

	Host    *User  `json:"host,omitempty" db:"-"`
	Members []User `json:"members,omitempty" db:"-"`
}
