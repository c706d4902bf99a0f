package storage

import (
	"context"

	"github.com/mcoot/snakescore/internal/model"
)

// Storage defines the interface for data persistence.
//
// InsertPlayer is the uniqueness point for usernames: concurrent inserts
// for the same never-seen username must result in exactly one stored
// player, with the losers receiving model.ErrUsernameTaken.
type Storage interface {
	// Player operations
	InsertPlayer(ctx context.Context, player *model.Player) error
	GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error)
	UpdatePlayerAvatar(ctx context.Context, username, avatar string) error
	// DeletePlayer removes the player and all of its scores.
	DeletePlayer(ctx context.Context, username string) error

	// Score operations
	InsertScore(ctx context.Context, score *model.Score) error
	// ScoresForPlayer returns all scores for the player, newest first.
	ScoresForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Score, error)
	// RecentScoresForPlayer returns at most n scores, newest first.
	RecentScoresForPlayer(ctx context.Context, playerID model.PlayerID, n int) ([]*model.Score, error)
	// ListScores returns every score record across all players.
	ListScores(ctx context.Context) ([]*model.Score, error)
}
