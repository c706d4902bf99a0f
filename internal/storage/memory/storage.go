package memory

import (
	"context"
	"sync"

	"github.com/mcoot/snakescore/internal/model"
	"github.com/mcoot/snakescore/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	// players is keyed by username (the unique identifier in the API)
	players map[string]*model.Player
	// scores per player, in insertion order (oldest first)
	scores map[model.PlayerID][]*model.Score
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[string]*model.Player),
		scores:  make(map[model.PlayerID][]*model.Score),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) InsertPlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[player.Username]; ok {
		return model.ErrUsernameTaken
	}
	p := *player
	s.players[player.Username] = &p
	return nil
}

func (s *Storage) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (s *Storage) UpdatePlayerAvatar(ctx context.Context, username, avatar string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[username]
	if !ok {
		return model.ErrPlayerNotFound
	}
	player.Avatar = avatar
	return nil
}

func (s *Storage) DeletePlayer(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[username]
	if !ok {
		return model.ErrPlayerNotFound
	}
	delete(s.players, username)
	delete(s.scores, player.ID)
	return nil
}

// Score operations

func (s *Storage) InsertScore(ctx context.Context, score *model.Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc := *score
	s.scores[score.PlayerID] = append(s.scores[score.PlayerID], &sc)
	return nil
}

func (s *Storage) ScoresForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newestFirst(playerID, len(s.scores[playerID])), nil
}

func (s *Storage) RecentScoresForPlayer(ctx context.Context, playerID model.PlayerID, n int) ([]*model.Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newestFirst(playerID, n), nil
}

func (s *Storage) ListScores(ctx context.Context) ([]*model.Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []*model.Score
	for _, list := range s.scores {
		for _, score := range list {
			sc := *score
			all = append(all, &sc)
		}
	}
	return all, nil
}

// newestFirst copies up to n scores for the player in reverse insertion
// order. Caller must hold at least the read lock.
func (s *Storage) newestFirst(playerID model.PlayerID, n int) []*model.Score {
	list := s.scores[playerID]
	if n > len(list) {
		n = len(list)
	}
	result := make([]*model.Score, 0, n)
	for i := len(list) - 1; i >= len(list)-n; i-- {
		sc := *list[i]
		result = append(result, &sc)
	}
	return result
}
