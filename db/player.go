package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/keysesh/keeper-league-manager-sub004/model"
)

func (db *postgresDB) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	const query = `SELECT id, name_first, name_last, position, team, active, updated
				FROM players WHERE id=@id`

	var result model.Player
	var pos string
	var updated pgtype.Timestamptz
	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	err := row.Scan(&result.ID, &result.FirstName, &result.LastName, &pos,
		&result.Team, &result.Active, &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("error scanning player %s: %w", id, err)
	}

	result.Position = model.ParsePosition(pos)
	result.Updated = updated.Time
	return &result, nil
}

func (db *postgresDB) SavePlayer(ctx context.Context, p *model.Player) error {
	const query = `INSERT INTO players
			(id, name_first, name_last, position, team, active, updated)
		VALUES
			(@id, @nameFirst, @nameLast, @position, @team, @active, @updated)
		ON CONFLICT (id) DO UPDATE SET
			name_first=EXCLUDED.name_first,
			name_last=EXCLUDED.name_last,
			position=EXCLUDED.position,
			team=EXCLUDED.team,
			active=EXCLUDED.active,
			updated=EXCLUDED.updated`

	args := pgx.NamedArgs{
		"id":        p.ID,
		"nameFirst": p.FirstName,
		"nameLast":  p.LastName,
		"position":  string(p.Position),
		"team":      p.Team,
		"active":    p.Active,
		"updated": pgtype.Timestamptz{
			Time:  db.clock.Now().UTC(),
			Valid: true,
		},
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error saving player (%s): %w", p.ID, err)
	}
	return nil
}
