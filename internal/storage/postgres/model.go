package postgres

import (
	"time"

	"github.com/mcoot/snakescore/internal/model"
)

// playerRow maps the players table
type playerRow struct {
	ID        string    `db:"id"`
	Username  string    `db:"username"`
	Password  string    `db:"password"`
	Avatar    string    `db:"avatar"`
	CreatedAt time.Time `db:"created_at"`
}

func (r playerRow) toModel() *model.Player {
	return &model.Player{
		ID:        model.PlayerID(r.ID),
		Username:  r.Username,
		Password:  r.Password,
		Avatar:    r.Avatar,
		CreatedAt: r.CreatedAt,
	}
}

// scoreRow maps the scores table joined with players for the username
type scoreRow struct {
	PlayerID  string    `db:"player_id"`
	Username  string    `db:"username"`
	Value     int       `db:"value"`
	CreatedAt time.Time `db:"created_at"`
}

func (r scoreRow) toModel() *model.Score {
	return &model.Score{
		PlayerID:  model.PlayerID(r.PlayerID),
		Username:  r.Username,
		Value:     r.Value,
		CreatedAt: r.CreatedAt,
	}
}
