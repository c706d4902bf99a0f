package model

import "time"

// Score is one immutable scoring event belonging to a player.
// Username is denormalized so leaderboard aggregation does not need a
// player lookup per record.
type Score struct {
	PlayerID  PlayerID  `json:"player_id"`
	Username  string    `json:"username"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}
