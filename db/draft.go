package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/keysesh/keeper-league-manager-sub004/model"
)

func (db *postgresDB) UpsertDraftPick(ctx context.Context, p *model.DraftPickRecord) error {
	const query = `INSERT INTO draft_picks
			(draft_id, league_id, season, round, pick_no, player_id, roster_id, is_keeper)
		VALUES
			(@draftID, @leagueID, @season, @round, @pickNo, @playerID, @rosterID, @isKeeper)
		ON CONFLICT (draft_id, round, pick_no) DO UPDATE SET
			player_id=EXCLUDED.player_id,
			roster_id=EXCLUDED.roster_id,
			is_keeper=EXCLUDED.is_keeper`

	args := pgx.NamedArgs{
		"draftID":  p.DraftID,
		"leagueID": p.LeagueID,
		"season":   p.Season,
		"round":    p.Round,
		"pickNo":   p.PickNo,
		"playerID": p.PlayerID,
		"rosterID": p.RosterID,
		"isKeeper": p.IsKeeper,
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error upserting draft pick (%s %d.%d): %w", p.DraftID, p.Round, p.PickNo, err)
	}
	return nil
}

func (db *postgresDB) GetDraftPicks(ctx context.Context, leagueID int32) ([]model.DraftPickRecord, error) {
	const query = `SELECT draft_id, league_id, season, round, pick_no, player_id, roster_id, is_keeper
				FROM draft_picks WHERE league_id=@leagueID ORDER BY round, pick_no`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error querying draft picks: %w", err)
	}

	results := make([]model.DraftPickRecord, 0, 64)
	for rows.Next() {
		var p model.DraftPickRecord
		err := rows.Scan(&p.DraftID, &p.LeagueID, &p.Season, &p.Round, &p.PickNo,
			&p.PlayerID, &p.RosterID, &p.IsKeeper)
		if err != nil {
			return nil, fmt.Errorf("error scanning draft pick: %w", err)
		}
		results = append(results, p)
	}
	return results, nil
}

func (db *postgresDB) UpsertTradedPick(ctx context.Context, p *model.TradedPickRecord) error {
	const query = `INSERT INTO traded_picks
			(league_id, season, round, original_owner, current_owner_id)
		VALUES
			(@leagueID, @season, @round, @originalOwner, @currentOwnerID)
		ON CONFLICT (league_id, season, round, original_owner) DO UPDATE SET
			current_owner_id=EXCLUDED.current_owner_id`

	args := pgx.NamedArgs{
		"leagueID":       p.LeagueID,
		"season":         p.Season,
		"round":          p.Round,
		"originalOwner":  p.OriginalOwner,
		"currentOwnerID": p.CurrentOwnerID,
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error upserting traded pick (%d %d r%d %s): %w",
			p.LeagueID, p.Season, p.Round, p.OriginalOwner, err)
	}
	return nil
}

func (db *postgresDB) GetTradedPicks(ctx context.Context, leagueID int32) ([]model.TradedPickRecord, error) {
	const query = `SELECT league_id, season, round, original_owner, current_owner_id
				FROM traded_picks WHERE league_id=@leagueID ORDER BY season, round, original_owner`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error querying traded picks: %w", err)
	}

	results := make([]model.TradedPickRecord, 0, 16)
	for rows.Next() {
		var p model.TradedPickRecord
		err := rows.Scan(&p.LeagueID, &p.Season, &p.Round, &p.OriginalOwner, &p.CurrentOwnerID)
		if err != nil {
			return nil, fmt.Errorf("error scanning traded pick: %w", err)
		}
		results = append(results, p)
	}
	return results, nil
}
