package leaderboard

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/mcoot/snakescore/internal/storage"
)

// Limit bounds for the leaderboard; out-of-range requests are clamped,
// not rejected
const (
	DefaultLimit = 10
	MinLimit     = 1
	MaxLimit     = 50
)

// Entry is one leaderboard row: a player's best score and the timestamp
// of the first submission that achieved it
type Entry struct {
	Username string
	Score    int
	Created  time.Time
}

// Service computes the leaderboard from raw score records
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new leaderboard service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// ClampLimit maps any requested limit into [MinLimit, MaxLimit]
func ClampLimit(limit int) int {
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Top returns at most limit entries, one per player with at least one
// score. Entries are ordered by best score descending, ties broken by
// username ascending. Each entry's Created is the earliest timestamp
// among that player's records equal to the best score.
func (s *Service) Top(ctx context.Context, limit int) ([]Entry, error) {
	limit = ClampLimit(limit)

	start := time.Now()
	scores, err := s.storage.ListScores(ctx)
	if err != nil {
		return nil, err
	}

	best := make(map[string]*Entry)
	for _, sc := range scores {
		entry, ok := best[sc.Username]
		if !ok {
			best[sc.Username] = &Entry{
				Username: sc.Username,
				Score:    sc.Value,
				Created:  sc.CreatedAt,
			}
			continue
		}
		switch {
		case sc.Value > entry.Score:
			entry.Score = sc.Value
			entry.Created = sc.CreatedAt
		case sc.Value == entry.Score && sc.CreatedAt.Before(entry.Created):
			// Same best score achieved earlier; report the first occurrence
			entry.Created = sc.CreatedAt
		}
	}

	entries := make([]Entry, 0, len(best))
	for _, entry := range best {
		entries = append(entries, *entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Username < entries[j].Username
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}

	// The full-scan cost grows with total score records, not with limit
	s.logger.Debug("leaderboard computed",
		slog.Int("records", len(scores)),
		slog.Int("players", len(best)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return entries, nil
}
