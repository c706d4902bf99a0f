package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/snakescore/internal/model"
	"github.com/mcoot/snakescore/internal/testutil"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) player(username string) *model.Player {
	return &model.Player{
		ID:        model.PlayerID("id-" + username),
		Username:  username,
		Avatar:    model.DefaultAvatar,
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *StorageSuite) score(p *model.Player, value int, at time.Time) *model.Score {
	return &model.Score{
		PlayerID:  p.ID,
		Username:  p.Username,
		Value:     value,
		CreatedAt: at,
	}
}

// Player tests

func (s *StorageSuite) TestInsertAndGetPlayer() {
	player := s.player("alice")

	err := s.storage.InsertPlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal("alice", retrieved.Username)
}

func (s *StorageSuite) TestInsertDuplicateUsername() {
	s.Require().NoError(s.storage.InsertPlayer(s.ctx, s.player("alice")))

	other := s.player("alice")
	other.ID = "id-other"
	err := s.storage.InsertPlayer(s.ctx, other)
	s.ErrorIs(err, model.ErrUsernameTaken)

	// The original record wins
	retrieved, err := s.storage.GetPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("id-alice"), retrieved.ID)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayerByUsername(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestUpdatePlayerAvatar() {
	s.Require().NoError(s.storage.InsertPlayer(s.ctx, s.player("alice")))

	err := s.storage.UpdatePlayerAvatar(s.ctx, "alice", "🦊")
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("🦊", retrieved.Avatar)
}

func (s *StorageSuite) TestUpdatePlayerAvatarNotFound() {
	err := s.storage.UpdatePlayerAvatar(s.ctx, "nonexistent", "🦊")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestOrphanedUsernameIndexIsReclaimed() {
	// An insert that fails after claiming the username leaves an index
	// entry pointing at a player record that was never written
	s.Require().NoError(s.mini.Set(usernameIndexKey("alice"), "id-gone"))

	_, err := s.storage.GetPlayerByUsername(s.ctx, "alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	// The dangling claim is dropped, so the username can be taken
	s.Require().NoError(s.storage.InsertPlayer(s.ctx, s.player("alice")))

	retrieved, err := s.storage.GetPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("id-alice"), retrieved.ID)
}

func (s *StorageSuite) TestDeletePlayerCascadesScores() {
	player := s.player("alice")
	s.Require().NoError(s.storage.InsertPlayer(s.ctx, player))
	s.Require().NoError(s.storage.InsertScore(s.ctx, s.score(player, 10, time.Now())))

	err := s.storage.DeletePlayer(s.ctx, "alice")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayerByUsername(s.ctx, "alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	all, err := s.storage.ListScores(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)

	// The username is free to claim again
	s.NoError(s.storage.InsertPlayer(s.ctx, s.player("alice")))
}

// Score tests

func (s *StorageSuite) TestScoresForPlayerNewestFirst() {
	player := s.player("alice")
	s.Require().NoError(s.storage.InsertPlayer(s.ctx, player))

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, v := range []int{10, 20, 30} {
		s.Require().NoError(s.storage.InsertScore(s.ctx, s.score(player, v, base.Add(time.Duration(i)*time.Minute))))
	}

	scores, err := s.storage.ScoresForPlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Require().Len(scores, 3)
	s.Equal(30, scores[0].Value)
	s.Equal(10, scores[2].Value)
}

func (s *StorageSuite) TestRecentScoresForPlayerLimited() {
	player := s.player("alice")
	s.Require().NoError(s.storage.InsertPlayer(s.ctx, player))

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, v := range []int{10, 20, 30} {
		s.Require().NoError(s.storage.InsertScore(s.ctx, s.score(player, v, base.Add(time.Duration(i)*time.Minute))))
	}

	scores, err := s.storage.RecentScoresForPlayer(s.ctx, player.ID, 2)
	s.Require().NoError(err)
	s.Require().Len(scores, 2)
	s.Equal(30, scores[0].Value)
	s.Equal(20, scores[1].Value)
}

func (s *StorageSuite) TestScoresSkipUndecodableEntries() {
	player := s.player("alice")
	s.Require().NoError(s.storage.InsertPlayer(s.ctx, player))
	s.Require().NoError(s.storage.InsertScore(s.ctx, s.score(player, 10, time.Now())))

	// Inject a corrupt entry alongside the valid one
	s.mini.Lpush(scoresKey(player.ID), "{not json")

	scores, err := s.storage.ScoresForPlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Require().Len(scores, 1)
	s.Equal(10, scores[0].Value)
}

func (s *StorageSuite) TestListScoresAcrossPlayers() {
	alice := s.player("alice")
	bob := s.player("bob")
	s.Require().NoError(s.storage.InsertPlayer(s.ctx, alice))
	s.Require().NoError(s.storage.InsertPlayer(s.ctx, bob))

	now := time.Now()
	s.Require().NoError(s.storage.InsertScore(s.ctx, s.score(alice, 10, now)))
	s.Require().NoError(s.storage.InsertScore(s.ctx, s.score(bob, 20, now)))

	all, err := s.storage.ListScores(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 2)
}
