package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/snakescore/internal/model"
	"github.com/mcoot/snakescore/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
	logger *slog.Logger
}

// New creates a new Redis storage instance
func New(cfg Config, logger *slog.Logger) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, logger *slog.Logger) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) InsertPlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// SETNX on the username index is the atomic uniqueness claim:
	// exactly one concurrent insert for a given username wins.
	claimed, err := s.client.SetNX(ctx, usernameIndexKey(player.Username), string(player.ID), 0).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return model.ErrUsernameTaken
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), data, 0)
	pipe.SAdd(ctx, playerSetKey(), string(player.ID))
	if _, err = pipe.Exec(ctx); err != nil {
		// Best-effort undo: a claimed username with no player record
		// behind it would be unusable forever.
		undo := s.client.Pipeline()
		undo.Del(ctx, usernameIndexKey(player.Username), playerKey(player.ID))
		undo.SRem(ctx, playerSetKey(), string(player.ID))
		_, _ = undo.Exec(ctx)
		return err
	}
	return nil
}

func (s *Storage) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	player, err := s.getPlayer(ctx, model.PlayerID(playerIDStr))
	if errors.Is(err, model.ErrPlayerNotFound) {
		// The index points at a player record that does not exist, which
		// is debris from an insert that failed after claiming the
		// username. Drop the claim so the name can be used again.
		s.logger.Warn("dropping orphaned username index entry",
			slog.String("username", username),
			slog.String("player_id", playerIDStr),
		)
		s.client.Del(ctx, usernameIndexKey(username))
	}
	return player, err
}

func (s *Storage) UpdatePlayerAvatar(ctx context.Context, username, avatar string) error {
	player, err := s.GetPlayerByUsername(ctx, username)
	if err != nil {
		return err
	}

	player.Avatar = avatar
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, playerKey(player.ID), data, 0).Err()
}

func (s *Storage) DeletePlayer(ctx context.Context, username string) error {
	player, err := s.GetPlayerByUsername(ctx, username)
	if err != nil {
		return err
	}

	// Scores go with the player (cascade)
	pipe := s.client.Pipeline()
	pipe.Del(ctx, playerKey(player.ID))
	pipe.Del(ctx, usernameIndexKey(username))
	pipe.Del(ctx, scoresKey(player.ID))
	pipe.SRem(ctx, playerSetKey(), string(player.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) getPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// Score operations

func (s *Storage) InsertScore(ctx context.Context, score *model.Score) error {
	data, err := json.Marshal(score)
	if err != nil {
		return err
	}
	return s.client.LPush(ctx, scoresKey(score.PlayerID), data).Err()
}

func (s *Storage) ScoresForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Score, error) {
	return s.scoreRange(ctx, playerID, -1)
}

func (s *Storage) RecentScoresForPlayer(ctx context.Context, playerID model.PlayerID, n int) ([]*model.Score, error) {
	if n <= 0 {
		return []*model.Score{}, nil
	}
	return s.scoreRange(ctx, playerID, int64(n)-1)
}

func (s *Storage) ListScores(ctx context.Context) ([]*model.Score, error) {
	playerIDs, err := s.client.SMembers(ctx, playerSetKey()).Result()
	if err != nil {
		return nil, err
	}

	var all []*model.Score
	for _, id := range playerIDs {
		scores, err := s.scoreRange(ctx, model.PlayerID(id), -1)
		if err != nil {
			return nil, err
		}
		all = append(all, scores...)
	}
	return all, nil
}

// scoreRange fetches list entries [0, stop] for the player. The list is
// LPUSHed, so the result is newest first.
func (s *Storage) scoreRange(ctx context.Context, playerID model.PlayerID, stop int64) ([]*model.Score, error) {
	entries, err := s.client.LRange(ctx, scoresKey(playerID), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]*model.Score, 0, len(entries))
	for _, entry := range entries {
		var score model.Score
		if err := json.Unmarshal([]byte(entry), &score); err != nil {
			s.logger.Warn("skipping undecodable score entry",
				slog.String("key", scoresKey(playerID)),
				slog.String("error", err.Error()),
			)
			continue
		}
		scores = append(scores, &score)
	}
	return scores, nil
}
