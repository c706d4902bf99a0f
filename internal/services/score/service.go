package score

import (
	"context"
	"log/slog"
	"math"

	"github.com/mcoot/snakescore/internal/dependencies/clock"
	"github.com/mcoot/snakescore/internal/model"
	"github.com/mcoot/snakescore/internal/services/player"
	"github.com/mcoot/snakescore/internal/storage"
)

// Service handles score submission and per-player score statistics
type Service struct {
	storage storage.Storage
	players *player.Service
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new score service
func New(storage storage.Storage, players *player.Service, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		players: players,
		clock:   clk,
		logger:  logger,
	}
}

// Submit records a score for the username, creating the player if it has
// never been seen. Fails with model.ErrInvalidScore for values <= 0; no
// score record is written in that case.
func (s *Service) Submit(ctx context.Context, username string, value int) (*model.Score, error) {
	if value <= 0 {
		return nil, model.ErrInvalidScore
	}

	p, err := s.players.FindOrCreate(ctx, username)
	if err != nil {
		return nil, err
	}

	score := &model.Score{
		PlayerID:  p.ID,
		Username:  p.Username,
		Value:     value,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.InsertScore(ctx, score); err != nil {
		return nil, err
	}

	s.logger.Info("score submitted",
		slog.String("username", p.Username),
		slog.Int("value", value),
	)
	return score, nil
}

// Recent returns the n most recently created scores for the player,
// newest first
func (s *Service) Recent(ctx context.Context, playerID model.PlayerID, n int) ([]*model.Score, error) {
	return s.storage.RecentScoresForPlayer(ctx, playerID, n)
}

// Best returns the player's maximum score value, or 0 with no scores
func (s *Service) Best(ctx context.Context, playerID model.PlayerID) (int, error) {
	scores, err := s.storage.ScoresForPlayer(ctx, playerID)
	if err != nil {
		return 0, err
	}

	best := 0
	for _, sc := range scores {
		if sc.Value > best {
			best = sc.Value
		}
	}
	return best, nil
}

// Count returns the total number of scores for the player
func (s *Service) Count(ctx context.Context, playerID model.PlayerID) (int, error) {
	scores, err := s.storage.ScoresForPlayer(ctx, playerID)
	if err != nil {
		return 0, err
	}
	return len(scores), nil
}

// Average returns the arithmetic mean of the player's score values,
// rounded to one decimal place, or 0 with no scores
func (s *Service) Average(ctx context.Context, playerID model.PlayerID) (float64, error) {
	scores, err := s.storage.ScoresForPlayer(ctx, playerID)
	if err != nil {
		return 0, err
	}
	if len(scores) == 0 {
		return 0, nil
	}

	sum := 0
	for _, sc := range scores {
		sum += sc.Value
	}
	avg := float64(sum) / float64(len(scores))
	return math.Round(avg*10) / 10, nil
}
