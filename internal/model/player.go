package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Limits enforced when creating or updating players
const (
	MaxUsernameLength = 32
	MaxAvatarLength   = 10
)

// DefaultAvatar is assigned to players that never picked one
const DefaultAvatar = "🐍"

// Player represents a game participant. Players are created either
// explicitly through registration or implicitly on first score submission,
// in which case Password stays empty.
type Player struct {
	ID        PlayerID  `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}
