package postgres

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/mcoot/snakescore/internal/model"
	"github.com/mcoot/snakescore/internal/storage"
)

// Storage is a PostgreSQL-backed implementation of the storage interface.
// Username uniqueness is enforced by the UNIQUE constraint on
// players.username; InsertPlayer relies on ON CONFLICT DO NOTHING.
type Storage struct {
	db *sqlx.DB
	sq sq.StatementBuilderType
}

// New creates a new PostgreSQL storage instance on an open connection
func New(db *sqlx.DB) *Storage {
	return &Storage{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) InsertPlayer(ctx context.Context, player *model.Player) error {
	query, args, err := s.sq.Insert("players").
		Columns("id", "username", "password", "avatar", "created_at").
		Values(string(player.ID), player.Username, player.Password, player.Avatar, player.CreatedAt).
		Suffix("ON CONFLICT (username) DO NOTHING").
		ToSql()
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrUsernameTaken
	}
	return nil
}

func (s *Storage) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	query, args, err := s.sq.Select("id", "username", "password", "avatar", "created_at").
		From("players").
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row playerRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return row.toModel(), nil
}

func (s *Storage) UpdatePlayerAvatar(ctx context.Context, username, avatar string) error {
	query, args, err := s.sq.Update("players").
		Set("avatar", avatar).
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

func (s *Storage) DeletePlayer(ctx context.Context, username string) error {
	// Scores cascade via the foreign key
	query, args, err := s.sq.Delete("players").
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

// Score operations

func (s *Storage) InsertScore(ctx context.Context, score *model.Score) error {
	query, args, err := s.sq.Insert("scores").
		Columns("player_id", "value", "created_at").
		Values(string(score.PlayerID), score.Value, score.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *Storage) ScoresForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Score, error) {
	return s.selectScores(ctx, s.scoreQuery().
		Where(sq.Eq{"s.player_id": string(playerID)}).
		OrderBy("s.created_at DESC", "s.id DESC"))
}

func (s *Storage) RecentScoresForPlayer(ctx context.Context, playerID model.PlayerID, n int) ([]*model.Score, error) {
	if n <= 0 {
		return []*model.Score{}, nil
	}
	return s.selectScores(ctx, s.scoreQuery().
		Where(sq.Eq{"s.player_id": string(playerID)}).
		OrderBy("s.created_at DESC", "s.id DESC").
		Limit(uint64(n)))
}

func (s *Storage) ListScores(ctx context.Context) ([]*model.Score, error) {
	return s.selectScores(ctx, s.scoreQuery().
		OrderBy("s.created_at DESC", "s.id DESC"))
}

func (s *Storage) scoreQuery() sq.SelectBuilder {
	return s.sq.Select("s.player_id", "p.username", "s.value", "s.created_at").
		From("scores s").
		Join("players p ON p.id = s.player_id")
}

func (s *Storage) selectScores(ctx context.Context, builder sq.SelectBuilder) ([]*model.Score, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var rows []scoreRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	scores := make([]*model.Score, len(rows))
	for i, row := range rows {
		scores[i] = row.toModel()
	}
	return scores, nil
}
