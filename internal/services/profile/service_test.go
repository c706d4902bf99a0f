package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/snakescore/internal/dependencies/mocks"
	"github.com/mcoot/snakescore/internal/model"
	"github.com/mcoot/snakescore/internal/services/player"
	"github.com/mcoot/snakescore/internal/services/score"
	"github.com/mcoot/snakescore/internal/storage/memory"
	"github.com/mcoot/snakescore/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	players *player.Service
	scores  *score.Service
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	store := memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := testutil.NopLogger()
	s.players = player.New(store, s.clock, player.PlainVerifier{}, logger)
	s.scores = score.New(store, s.players, s.clock, logger)
	s.service = New(s.players, s.scores)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestGet() {
	registered := s.clock.CurrentTime
	_, err := s.players.Register(s.ctx, "alice", "secret")
	s.Require().NoError(err)

	_, err = s.scores.Submit(s.ctx, "alice", 10)
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	_, err = s.scores.Submit(s.ctx, "alice", 30)
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	_, err = s.scores.Submit(s.ctx, "alice", 20)
	s.Require().NoError(err)

	profile, err := s.service.Get(s.ctx, "alice")
	s.Require().NoError(err)

	s.Equal("alice", profile.Username)
	s.Equal(model.DefaultAvatar, profile.Avatar)
	s.Equal(registered, profile.CreatedAt)
	s.Equal(30, profile.HighestScore)
	s.Equal(3, profile.TotalGames)
	s.Equal(20.0, profile.AverageScore)

	s.Require().Len(profile.RecentScores, 3)
	s.Equal(20, profile.RecentScores[0].Value)
	s.Equal(30, profile.RecentScores[1].Value)
	s.Equal(10, profile.RecentScores[2].Value)
}

func (s *ServiceSuite) TestGetNoScores() {
	_, err := s.players.Register(s.ctx, "alice", "secret")
	s.Require().NoError(err)

	profile, err := s.service.Get(s.ctx, "alice")
	s.Require().NoError(err)

	s.Equal(0, profile.HighestScore)
	s.Equal(0, profile.TotalGames)
	s.Equal(0.0, profile.AverageScore)
	s.Empty(profile.RecentScores)
}

func (s *ServiceSuite) TestGetCapsRecentScores() {
	for i := 1; i <= RecentScoreCount+5; i++ {
		_, err := s.scores.Submit(s.ctx, "alice", i)
		s.Require().NoError(err)
		s.clock.Advance(time.Minute)
	}

	profile, err := s.service.Get(s.ctx, "alice")
	s.Require().NoError(err)

	s.Equal(RecentScoreCount+5, profile.TotalGames)
	s.Require().Len(profile.RecentScores, RecentScoreCount)
	s.Equal(RecentScoreCount+5, profile.RecentScores[0].Value)
}

func (s *ServiceSuite) TestGetNotFound() {
	_, err := s.service.Get(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}
