package redis

import (
	"fmt"

	"github.com/mcoot/snakescore/internal/model"
)

// Key prefix for all score-tracking data
const keyPrefix = "snakescore"

// playerKey returns the Redis key for a Player record
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> player_id index.
// Claiming this key with SETNX is what enforces username uniqueness.
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// scoresKey returns the Redis key for a player's score list.
// Scores are LPUSHed, so the head of the list is the newest score.
func scoresKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:scores:%s", keyPrefix, id)
}

// playerSetKey returns the Redis key for the SET of all player IDs
func playerSetKey() string {
	return fmt.Sprintf("%s:players", keyPrefix)
}
