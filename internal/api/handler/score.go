package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/mcoot/snakescore/internal/api/apierr"
	"github.com/mcoot/snakescore/internal/api/request"
	"github.com/mcoot/snakescore/internal/api/response"
	"github.com/mcoot/snakescore/internal/services/leaderboard"
	"github.com/mcoot/snakescore/internal/services/score"
)

// ScoreHandler handles score submission and the leaderboard
type ScoreHandler struct {
	scores      *score.Service
	leaderboard *leaderboard.Service
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scores *score.Service, lb *leaderboard.Service) *ScoreHandler {
	return &ScoreHandler{
		scores:      scores,
		leaderboard: lb,
	}
}

// Submit handles POST /api/score/submit/
func (h *ScoreHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequest(apierr.CodeInvalidJSON, "invalid JSON body"))
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		apierr.WriteError(w, apierr.NewInvalidRequest(apierr.CodeUsernameRequired, "username is required"))
		return
	}

	value, err := req.Score.Int64()
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequest(apierr.CodeInvalidScore, "score must be an integer"))
		return
	}

	if _, err := h.scores.Submit(r.Context(), username, int(value)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitResponse{Ok: true})
}

// Top handles GET /api/score/top/?limit=N
func (h *ScoreHandler) Top(w http.ResponseWriter, r *http.Request) {
	limit := leaderboard.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	entries, err := h.leaderboard.Top(r.Context(), limit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TopResponseFromEntries(entries))
}
