package profile

import (
	"context"
	"time"

	"github.com/mcoot/snakescore/internal/model"
	"github.com/mcoot/snakescore/internal/services/player"
	"github.com/mcoot/snakescore/internal/services/score"
)

// RecentScoreCount is how many recent scores a profile includes
const RecentScoreCount = 10

// Profile is a read-only summary of a player's statistics and recent
// activity
type Profile struct {
	Username     string
	Avatar       string
	CreatedAt    time.Time
	HighestScore int
	TotalGames   int
	AverageScore float64
	RecentScores []*model.Score
}

// Service composes the player and score services into profile reads.
// It performs no mutation.
type Service struct {
	players *player.Service
	scores  *score.Service
}

// New creates a new profile service
func New(players *player.Service, scores *score.Service) *Service {
	return &Service{
		players: players,
		scores:  scores,
	}
}

// Get returns the profile for the username, or model.ErrPlayerNotFound
func (s *Service) Get(ctx context.Context, username string) (*Profile, error) {
	p, err := s.players.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	highest, err := s.scores.Best(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	total, err := s.scores.Count(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	average, err := s.scores.Average(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	recent, err := s.scores.Recent(ctx, p.ID, RecentScoreCount)
	if err != nil {
		return nil, err
	}

	return &Profile{
		Username:     p.Username,
		Avatar:       p.Avatar,
		CreatedAt:    p.CreatedAt,
		HighestScore: highest,
		TotalGames:   total,
		AverageScore: average,
		RecentScores: recent,
	}, nil
}
