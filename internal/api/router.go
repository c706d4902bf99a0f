package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/snakescore/internal/api/apierr"
	"github.com/mcoot/snakescore/internal/api/handler"
	"github.com/mcoot/snakescore/internal/middleware"
	"github.com/mcoot/snakescore/internal/services/leaderboard"
	"github.com/mcoot/snakescore/internal/services/player"
	"github.com/mcoot/snakescore/internal/services/profile"
	"github.com/mcoot/snakescore/internal/services/score"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	PlayerService      *player.Service
	ScoreService       *score.Service
	LeaderboardService *leaderboard.Service
	ProfileService     *profile.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	scoreHandler := handler.NewScoreHandler(cfg.ScoreService, cfg.LeaderboardService)
	authHandler := handler.NewAuthHandler(cfg.PlayerService)
	profileHandler := handler.NewProfileHandler(cfg.ProfileService, cfg.PlayerService)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, panicHandler)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Score routes
	api.HandleFunc("/score/submit/", scoreHandler.Submit).Methods(http.MethodPost)
	api.HandleFunc("/score/top/", scoreHandler.Top).Methods(http.MethodGet)

	// Auth routes
	api.HandleFunc("/auth/register/", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login/", authHandler.Login).Methods(http.MethodPost)

	// Profile routes
	api.HandleFunc("/profile/", profileHandler.Get).Methods(http.MethodGet, http.MethodPost)
	api.HandleFunc("/profile/avatar/", profileHandler.UpdateAvatar).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health/", healthHandler).Methods(http.MethodGet)

	// Wrong-method requests get the JSON failure envelope, not a bare 405
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apierr.WriteError(w, apierr.New(http.StatusMethodNotAllowed, apierr.CodeMethodNotAllowed, r.Method+" not allowed"))
	})
	r.MethodNotAllowedHandler = methodNotAllowed
	api.MethodNotAllowedHandler = methodNotAllowed

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func panicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.New(http.StatusInternalServerError, apierr.CodeInternalError, "internal server error"))
}
