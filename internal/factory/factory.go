package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"github.com/pressly/goose/v3"

	"github.com/mcoot/snakescore/internal/dependencies/clock"
	"github.com/mcoot/snakescore/internal/services/leaderboard"
	"github.com/mcoot/snakescore/internal/services/player"
	"github.com/mcoot/snakescore/internal/services/profile"
	"github.com/mcoot/snakescore/internal/services/score"
	"github.com/mcoot/snakescore/internal/storage"
	"github.com/mcoot/snakescore/internal/storage/memory"
	postgresstorage "github.com/mcoot/snakescore/internal/storage/postgres"
	redisstorage "github.com/mcoot/snakescore/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// Auth scheme constants
const (
	AuthSchemePlain  = "plain"
	AuthSchemeBcrypt = "bcrypt"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	PlayerService      *player.Service
	ScoreService       *score.Service
	LeaderboardService *leaderboard.Service
	ProfileService     *profile.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or
	// "postgres"); empty defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required for "redis")
	RedisConfig *redisstorage.Config
	// PostgresDSN is the postgres connection string (required for "postgres")
	PostgresDSN string
	// MigrationsDir is where goose migrations live for the postgres
	// backend; empty defaults to "migrations"
	MigrationsDir string
	// AuthScheme selects the credential verifier ("plain" or "bcrypt");
	// empty defaults to "plain"
	AuthScheme string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	verifier, err := newVerifier(cfg.AuthScheme)
	if err != nil {
		return nil, err
	}

	return newWithDependencies(store, clock.New(), verifier, logger), nil
}

func newStorage(cfg Config, logger *slog.Logger) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil

	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig, logger)

	case StorageTypePostgres:
		if cfg.PostgresDSN == "" {
			return nil, errors.New("PostgresDSN required when StorageType is postgres")
		}
		db, err := sqlx.Connect("postgres", cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		migrationsDir := cfg.MigrationsDir
		if migrationsDir == "" {
			migrationsDir = "migrations"
		}
		if err := goose.Up(db.DB, migrationsDir); err != nil {
			return nil, fmt.Errorf("applying migrations: %w", err)
		}
		return postgresstorage.New(db), nil

	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be memory, redis or postgres", storageType)
	}
}

func newVerifier(scheme string) (player.Verifier, error) {
	switch scheme {
	case "", AuthSchemePlain:
		return player.PlainVerifier{}, nil
	case AuthSchemeBcrypt:
		return player.BcryptVerifier{}, nil
	default:
		return nil, fmt.Errorf("invalid AuthScheme %q: must be plain or bcrypt", scheme)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, verifier player.Verifier, logger *slog.Logger) *App {
	playerService := player.New(store, clk, verifier, logger)
	scoreService := score.New(store, playerService, clk, logger)
	leaderboardService := leaderboard.New(store, logger)
	profileService := profile.New(playerService, scoreService)

	return &App{
		Storage:            store,
		Clock:              clk,
		PlayerService:      playerService,
		ScoreService:       scoreService,
		LeaderboardService: leaderboardService,
		ProfileService:     profileService,
	}
}
