package request

import "encoding/json"

// SubmitScoreRequest is the request body for submitting a score.
// Score is a json.Number so non-integer values can be rejected with a
// score-specific error instead of a generic decode failure.
type SubmitScoreRequest struct {
	Username string      `json:"username"`
	Score    json.Number `json:"score"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileRequest is the request body for fetching a profile via POST
type ProfileRequest struct {
	Username string `json:"username"`
}

// UpdateAvatarRequest is the request body for updating a player's avatar
type UpdateAvatarRequest struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}
