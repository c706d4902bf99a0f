package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mcoot/snakescore/internal/api/apierr"
	"github.com/mcoot/snakescore/internal/api/request"
	"github.com/mcoot/snakescore/internal/api/response"
	"github.com/mcoot/snakescore/internal/services/player"
	"github.com/mcoot/snakescore/internal/services/profile"
)

// ProfileHandler handles profile reads and avatar updates
type ProfileHandler struct {
	profiles *profile.Service
	players  *player.Service
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles *profile.Service, players *player.Service) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		players:  players,
	}
}

// Get handles GET and POST /api/profile/.
// GET takes the username as a query parameter, POST as a JSON body.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	var username string
	if r.Method == http.MethodPost {
		var req request.ProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierr.WriteError(w, apierr.NewInvalidRequest("", "invalid JSON body"))
			return
		}
		username = req.Username
	} else {
		username = r.URL.Query().Get("username")
	}

	username = strings.TrimSpace(username)
	if username == "" {
		apierr.WriteError(w, apierr.NewInvalidRequest("", "username is required"))
		return
	}

	p, err := h.profiles.Get(r.Context(), username)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProfileResponseFromModel(p))
}

// UpdateAvatar handles POST /api/profile/avatar/
func (h *ProfileHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateAvatarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequest("", "invalid JSON body"))
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		apierr.WriteError(w, apierr.NewInvalidRequest("", "username is required"))
		return
	}
	if req.Avatar == "" {
		apierr.WriteError(w, apierr.NewInvalidRequest("", "avatar is required"))
		return
	}

	avatar, err := h.players.UpdateAvatar(r.Context(), username, req.Avatar)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AvatarResponse{
		Ok:      true,
		Message: "avatar updated",
		Avatar:  avatar,
	})
}
