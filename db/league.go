package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/keysesh/keeper-league-manager-sub004/model"
)

const leagueColumns = `id, external_id, name, season, status, total_rosters,
					draft_rounds, trade_deadline, previous_league_id, last_synced_at`

func (db *postgresDB) ListLeagues(ctx context.Context) ([]model.LeagueSeason, error) {
	query := fmt.Sprintf(`SELECT %s FROM league_seasons ORDER BY season DESC, name`, leagueColumns)
	return db.queryLeagues(ctx, query, pgx.NamedArgs{})
}

func (db *postgresDB) ListSyncedLeagues(ctx context.Context) ([]model.LeagueSeason, error) {
	query := fmt.Sprintf(`SELECT %s FROM league_seasons WHERE last_synced_at IS NOT NULL
					ORDER BY season DESC, name`, leagueColumns)
	return db.queryLeagues(ctx, query, pgx.NamedArgs{})
}

func (db *postgresDB) GetLeague(ctx context.Context, id int32) (*model.LeagueSeason, error) {
	query := fmt.Sprintf(`SELECT %s FROM league_seasons WHERE id=@id`, leagueColumns)
	return db.getLeague(ctx, query, pgx.NamedArgs{"id": id})
}

func (db *postgresDB) GetLeagueByExternalID(ctx context.Context, externalID string) (*model.LeagueSeason, error) {
	query := fmt.Sprintf(`SELECT %s FROM league_seasons WHERE external_id=@externalID`, leagueColumns)
	return db.getLeague(ctx, query, pgx.NamedArgs{"externalID": externalID})
}

func (db *postgresDB) getLeague(ctx context.Context, query string, args pgx.NamedArgs) (*model.LeagueSeason, error) {
	row := db.pool.QueryRow(ctx, query, args)
	l, err := scanLeague(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("error scanning league: %w", err)
	}
	return l, nil
}

func (db *postgresDB) queryLeagues(ctx context.Context, query string, args pgx.NamedArgs) ([]model.LeagueSeason, error) {
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error querying leagues: %w", err)
	}

	results := make([]model.LeagueSeason, 0, 8)
	for rows.Next() {
		l, err := scanLeague(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning league: %w", err)
		}
		results = append(results, *l)
	}
	return results, nil
}

func scanLeague(row pgx.Row) (*model.LeagueSeason, error) {
	var result model.LeagueSeason
	var prev sql.NullString
	var lastSynced pgtype.Timestamptz
	err := row.Scan(
		&result.ID,
		&result.ExternalID,
		&result.Name,
		&result.Season,
		&result.Status,
		&result.TotalRosters,
		&result.DraftRounds,
		&result.TradeDeadline,
		&prev,
		&lastSynced)
	if err != nil {
		return nil, err
	}

	if prev.Valid {
		result.PreviousLeagueID = prev.String
	}
	result.LastSyncedAt = lastSynced.Time
	return &result, nil
}

func (db *postgresDB) UpsertLeague(ctx context.Context, l *model.LeagueSeason) error {
	const query = `INSERT INTO league_seasons
			(external_id, name, season, status, total_rosters, draft_rounds, trade_deadline, previous_league_id)
		VALUES
			(@externalID, @name, @season, @status, @totalRosters, @draftRounds, @tradeDeadline, @previousLeagueID)
		ON CONFLICT (external_id) DO UPDATE SET
			name=EXCLUDED.name,
			season=EXCLUDED.season,
			status=EXCLUDED.status,
			total_rosters=EXCLUDED.total_rosters,
			draft_rounds=EXCLUDED.draft_rounds,
			trade_deadline=EXCLUDED.trade_deadline,
			previous_league_id=EXCLUDED.previous_league_id
		RETURNING id`

	args := pgx.NamedArgs{
		"externalID":    l.ExternalID,
		"name":          l.Name,
		"season":        l.Season,
		"status":        l.Status,
		"totalRosters":  l.TotalRosters,
		"draftRounds":   l.DraftRounds,
		"tradeDeadline": l.TradeDeadline,
		"previousLeagueID": sql.NullString{
			String: l.PreviousLeagueID,
			Valid:  l.PreviousLeagueID != "",
		},
	}
	if err := db.pool.QueryRow(ctx, query, args).Scan(&l.ID); err != nil {
		return fmt.Errorf("error upserting league (%s): %w", l.ExternalID, err)
	}
	return nil
}

func (db *postgresDB) MarkLeagueSynced(ctx context.Context, id int32) error {
	const query = `UPDATE league_seasons SET last_synced_at=@at WHERE id=@id`

	args := pgx.NamedArgs{
		"id": id,
		"at": pgtype.Timestamptz{
			Time:  db.clock.Now().UTC(),
			Valid: true,
		},
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error marking league %d synced: %w", id, err)
	}
	return nil
}

func (db *postgresDB) DeleteLeague(ctx context.Context, id int32) error {
	// children cascade via foreign keys
	const query = `DELETE FROM league_seasons WHERE id=@id`

	if _, err := db.pool.Exec(ctx, query, pgx.NamedArgs{"id": id}); err != nil {
		return fmt.Errorf("error deleting league %d: %w", id, err)
	}
	return nil
}

func (db *postgresDB) UpsertRoster(ctx context.Context, r *model.RosterSeason) error {
	const query = `INSERT INTO roster_seasons
			(league_id, owner_id, display_name, wins, losses, ties, points_for, points_against)
		VALUES
			(@leagueID, @ownerID, @displayName, @wins, @losses, @ties, @pointsFor, @pointsAgainst)
		ON CONFLICT (league_id, owner_id) DO UPDATE SET
			display_name=EXCLUDED.display_name,
			wins=EXCLUDED.wins,
			losses=EXCLUDED.losses,
			ties=EXCLUDED.ties,
			points_for=EXCLUDED.points_for,
			points_against=EXCLUDED.points_against
		RETURNING id`

	args := pgx.NamedArgs{
		"leagueID":      r.LeagueID,
		"ownerID":       r.OwnerID,
		"displayName":   r.DisplayName,
		"wins":          r.Wins,
		"losses":        r.Losses,
		"ties":          r.Ties,
		"pointsFor":     r.PointsFor,
		"pointsAgainst": r.PointsAgainst,
	}
	if err := db.pool.QueryRow(ctx, query, args).Scan(&r.ID); err != nil {
		return fmt.Errorf("error upserting roster (%d, %s): %w", r.LeagueID, r.OwnerID, err)
	}
	return nil
}

func (db *postgresDB) GetRosters(ctx context.Context, leagueID int32) ([]model.RosterSeason, error) {
	const query = `SELECT id, league_id, owner_id, display_name, wins, losses, ties, points_for, points_against
				FROM roster_seasons WHERE league_id=@leagueID ORDER BY id`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error querying rosters: %w", err)
	}

	results := make([]model.RosterSeason, 0, 12)
	for rows.Next() {
		var r model.RosterSeason
		err := rows.Scan(&r.ID, &r.LeagueID, &r.OwnerID, &r.DisplayName,
			&r.Wins, &r.Losses, &r.Ties, &r.PointsFor, &r.PointsAgainst)
		if err != nil {
			return nil, fmt.Errorf("error scanning roster: %w", err)
		}
		results = append(results, r)
	}
	return results, nil
}
