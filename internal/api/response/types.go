package response

import (
	"time"

	"github.com/mcoot/snakescore/internal/model"
	"github.com/mcoot/snakescore/internal/services/leaderboard"
	"github.com/mcoot/snakescore/internal/services/profile"
)

// FormatTime serializes a timestamp at second precision in UTC
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// SubmitResponse is the response for a successful score submission
type SubmitResponse struct {
	Ok bool `json:"ok"`
}

// MessageResponse is the response for register and login
type MessageResponse struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message"`
}

// TopEntry is one leaderboard row in API responses
type TopEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
	Created  string `json:"created"`
}

// TopResponse is the response for the leaderboard endpoint
type TopResponse struct {
	Results []TopEntry `json:"results"`
}

// TopResponseFromEntries converts leaderboard entries to a response
func TopResponseFromEntries(entries []leaderboard.Entry) TopResponse {
	results := make([]TopEntry, len(entries))
	for i, e := range entries {
		results[i] = TopEntry{
			Username: e.Username,
			Score:    e.Score,
			Created:  FormatTime(e.Created),
		}
	}
	return TopResponse{Results: results}
}

// RecentScore is one entry in a profile's recent score history
type RecentScore struct {
	Score   int    `json:"score"`
	Created string `json:"created"`
}

// Profile represents a player profile in API responses
type Profile struct {
	Username     string        `json:"username"`
	Avatar       string        `json:"avatar"`
	Created      string        `json:"created"`
	HighestScore int           `json:"highest_score"`
	TotalGames   int           `json:"total_games"`
	AverageScore float64       `json:"average_score"`
	RecentScores []RecentScore `json:"recent_scores"`
}

// ProfileResponse is the response for the profile endpoint
type ProfileResponse struct {
	Ok      bool    `json:"ok"`
	Profile Profile `json:"profile"`
}

// ProfileResponseFromModel converts a profile.Profile to a response
func ProfileResponseFromModel(p *profile.Profile) ProfileResponse {
	return ProfileResponse{
		Ok: true,
		Profile: Profile{
			Username:     p.Username,
			Avatar:       p.Avatar,
			Created:      FormatTime(p.CreatedAt),
			HighestScore: p.HighestScore,
			TotalGames:   p.TotalGames,
			AverageScore: p.AverageScore,
			RecentScores: recentScores(p.RecentScores),
		},
	}
}

func recentScores(scores []*model.Score) []RecentScore {
	recent := make([]RecentScore, len(scores))
	for i, s := range scores {
		recent[i] = RecentScore{
			Score:   s.Value,
			Created: FormatTime(s.CreatedAt),
		}
	}
	return recent
}

// AvatarResponse is the response for a successful avatar update
type AvatarResponse struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message"`
	Avatar  string `json:"avatar"`
}
