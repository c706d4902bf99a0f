package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mcoot/snakescore/internal/api/apierr"
	"github.com/mcoot/snakescore/internal/api/request"
	"github.com/mcoot/snakescore/internal/api/response"
	"github.com/mcoot/snakescore/internal/services/player"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	players *player.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(players *player.Service) *AuthHandler {
	return &AuthHandler{
		players: players,
	}
}

// Register handles POST /api/auth/register/
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequest("", "invalid JSON body"))
		return
	}

	username := strings.TrimSpace(req.Username)
	if _, err := h.players.Register(r.Context(), username, req.Password); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessageResponse{Ok: true, Message: "registration successful"})
}

// Login handles POST /api/auth/login/
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequest("", "invalid JSON body"))
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequest("", "username and password are required"))
		return
	}

	if _, err := h.players.FindByCredentials(r.Context(), username, req.Password); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessageResponse{Ok: true, Message: "login successful"})
}
