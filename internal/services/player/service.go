package player

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mcoot/snakescore/internal/dependencies/clock"
	"github.com/mcoot/snakescore/internal/model"
	"github.com/mcoot/snakescore/internal/storage"
)

// Service handles player accounts: registration, login, auto-creation on
// score submission, and avatar updates.
type Service struct {
	storage  storage.Storage
	clock    clock.Clock
	verifier Verifier
	logger   *slog.Logger
}

// New creates a new player service
func New(storage storage.Storage, clk clock.Clock, verifier Verifier, logger *slog.Logger) *Service {
	if verifier == nil {
		verifier = PlainVerifier{}
	}
	return &Service{
		storage:  storage,
		clock:    clk,
		verifier: verifier,
		logger:   logger,
	}
}

// Register creates a player with the given credentials.
// Fails with model.ErrInvalidUsername for an empty or over-long username,
// model.ErrInvalidPassword for an empty password, and model.ErrUsernameTaken
// for a duplicate.
func (s *Service) Register(ctx context.Context, username, password string) (*model.Player, error) {
	if username == "" || len([]rune(username)) > model.MaxUsernameLength {
		return nil, model.ErrInvalidUsername
	}
	if password == "" {
		return nil, model.ErrInvalidPassword
	}

	stored, err := s.verifier.Hash(password)
	if err != nil {
		return nil, err
	}

	player := &model.Player{
		ID:        model.PlayerID(uuid.NewString()),
		Username:  username,
		Password:  stored,
		Avatar:    model.DefaultAvatar,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.InsertPlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player registered", slog.String("username", username))
	return player, nil
}

// FindOrCreate returns the player for the username, creating one with an
// empty password if none exists. Usernames longer than the limit are
// truncated. Concurrent calls for the same unseen username converge on a
// single record: losers of the insert race re-read the winner's row.
func (s *Service) FindOrCreate(ctx context.Context, username string) (*model.Player, error) {
	if runes := []rune(username); len(runes) > model.MaxUsernameLength {
		username = string(runes[:model.MaxUsernameLength])
	}

	player, err := s.storage.GetPlayerByUsername(ctx, username)
	if err == nil {
		return player, nil
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	player = &model.Player{
		ID:        model.PlayerID(uuid.NewString()),
		Username:  username,
		Avatar:    model.DefaultAvatar,
		CreatedAt: s.clock.Now(),
	}

	err = s.storage.InsertPlayer(ctx, player)
	if errors.Is(err, model.ErrUsernameTaken) {
		// Lost the race; the username now exists
		return s.storage.GetPlayerByUsername(ctx, username)
	}
	if err != nil {
		return nil, err
	}
	return player, nil
}

// FindByUsername returns the player or model.ErrPlayerNotFound
func (s *Service) FindByUsername(ctx context.Context, username string) (*model.Player, error) {
	return s.storage.GetPlayerByUsername(ctx, username)
}

// FindByCredentials returns the player when both username and password
// match. An unknown username and a wrong password both yield
// model.ErrInvalidCredentials so the caller cannot tell which was wrong.
func (s *Service) FindByCredentials(ctx context.Context, username, password string) (*model.Player, error) {
	player, err := s.storage.GetPlayerByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.verifier.Verify(player.Password, password); err != nil {
		return nil, model.ErrInvalidCredentials
	}
	return player, nil
}

// UpdateAvatar truncates the avatar to the storage limit and persists it.
// Returns the avatar as stored.
func (s *Service) UpdateAvatar(ctx context.Context, username, avatar string) (string, error) {
	if runes := []rune(avatar); len(runes) > model.MaxAvatarLength {
		avatar = string(runes[:model.MaxAvatarLength])
	}

	if err := s.storage.UpdatePlayerAvatar(ctx, username, avatar); err != nil {
		return "", err
	}
	return avatar, nil
}

// Delete removes the player and all of its scores
func (s *Service) Delete(ctx context.Context, username string) error {
	return s.storage.DeletePlayer(ctx, username)
}
