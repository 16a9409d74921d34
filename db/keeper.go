package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/keysesh/keeper-league-manager-sub004/model"
)

func (db *postgresDB) UpsertKeeper(ctx context.Context, k *model.KeeperRecord) error {
	const query = `INSERT INTO keepers
			(roster_id, player_id, season, type, base_cost, final_cost, years_kept, locked, annotation)
		VALUES
			(@rosterID, @playerID, @season, @type, @baseCost, @finalCost, @yearsKept, @locked, @annotation)
		ON CONFLICT (roster_id, player_id, season) DO UPDATE SET
			type=EXCLUDED.type,
			base_cost=EXCLUDED.base_cost,
			final_cost=EXCLUDED.final_cost,
			years_kept=EXCLUDED.years_kept,
			locked=EXCLUDED.locked,
			annotation=EXCLUDED.annotation`

	args := pgx.NamedArgs{
		"rosterID":   k.RosterID,
		"playerID":   k.PlayerID,
		"season":     k.Season,
		"type":       string(k.Type),
		"baseCost":   k.BaseCost,
		"finalCost":  k.FinalCost,
		"yearsKept":  k.YearsKept,
		"locked":     k.Locked,
		"annotation": k.Annotation,
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error upserting keeper (%d, %s, %d): %w", k.RosterID, k.PlayerID, k.Season, err)
	}
	return nil
}

func (db *postgresDB) GetKeepers(ctx context.Context, leagueID int32, season int) ([]model.KeeperRecord, error) {
	const query = `SELECT k.roster_id, k.player_id, k.season, k.type, k.base_cost,
					k.final_cost, k.years_kept, k.locked, k.annotation
				FROM keepers k
				JOIN roster_seasons r ON r.id = k.roster_id
				WHERE r.league_id=@leagueID AND k.season=@season
				ORDER BY k.roster_id, k.final_cost, k.player_id`

	args := pgx.NamedArgs{
		"leagueID": leagueID,
		"season":   season,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error querying keepers: %w", err)
	}

	results := make([]model.KeeperRecord, 0, 16)
	for rows.Next() {
		var k model.KeeperRecord
		var t string
		err := rows.Scan(&k.RosterID, &k.PlayerID, &k.Season, &t, &k.BaseCost,
			&k.FinalCost, &k.YearsKept, &k.Locked, &k.Annotation)
		if err != nil {
			return nil, fmt.Errorf("error scanning keeper: %w", err)
		}
		k.Type = model.KeeperType(t)
		results = append(results, k)
	}
	return results, nil
}

func (db *postgresDB) DeleteKeeper(ctx context.Context, rosterID int32, playerID string, season int) error {
	const query = `DELETE FROM keepers
				WHERE roster_id=@rosterID AND player_id=@playerID AND season=@season`

	args := pgx.NamedArgs{
		"rosterID": rosterID,
		"playerID": playerID,
		"season":   season,
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error deleting keeper (%d, %s, %d): %w", rosterID, playerID, season, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrKeeperNotFound
	}
	return nil
}

func (db *postgresDB) GetKeeperSettings(ctx context.Context, leagueID int32) (*model.KeeperSettings, error) {
	const query = `SELECT max_keepers, max_franchise_tags, max_regular_keepers, regular_keeper_max_years,
					undrafted_round, minimum_round, cost_reduction_per_year
				FROM keeper_settings WHERE league_id=@leagueID`

	var s model.KeeperSettings
	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	err := row.Scan(&s.MaxKeepers, &s.MaxFranchiseTags, &s.MaxRegularKeepers, &s.RegularKeeperMaxYears,
		&s.UndraftedRound, &s.MinimumRound, &s.CostReductionPerYear)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("error scanning keeper settings: %w", err)
	}
	return &s, nil
}

func (db *postgresDB) SaveKeeperSettings(ctx context.Context, leagueID int32, s *model.KeeperSettings) error {
	const query = `INSERT INTO keeper_settings
			(league_id, max_keepers, max_franchise_tags, max_regular_keepers, regular_keeper_max_years,
			 undrafted_round, minimum_round, cost_reduction_per_year)
		VALUES
			(@leagueID, @maxKeepers, @maxFranchiseTags, @maxRegularKeepers, @regularKeeperMaxYears,
			 @undraftedRound, @minimumRound, @costReductionPerYear)
		ON CONFLICT (league_id) DO UPDATE SET
			max_keepers=EXCLUDED.max_keepers,
			max_franchise_tags=EXCLUDED.max_franchise_tags,
			max_regular_keepers=EXCLUDED.max_regular_keepers,
			regular_keeper_max_years=EXCLUDED.regular_keeper_max_years,
			undrafted_round=EXCLUDED.undrafted_round,
			minimum_round=EXCLUDED.minimum_round,
			cost_reduction_per_year=EXCLUDED.cost_reduction_per_year`

	args := pgx.NamedArgs{
		"leagueID":              leagueID,
		"maxKeepers":            s.MaxKeepers,
		"maxFranchiseTags":      s.MaxFranchiseTags,
		"maxRegularKeepers":     s.MaxRegularKeepers,
		"regularKeeperMaxYears": s.RegularKeeperMaxYears,
		"undraftedRound":        s.UndraftedRound,
		"minimumRound":          s.MinimumRound,
		"costReductionPerYear":  s.CostReductionPerYear,
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error saving keeper settings for league %d: %w", leagueID, err)
	}
	return nil
}

func (db *postgresDB) AddKeeperOverride(ctx context.Context, o *model.KeeperOverride) error {
	const query = `INSERT INTO keeper_overrides
			(league_id, roster_id, player_id, season, action, reason, at)
		VALUES
			(@leagueID, @rosterID, @playerID, @season, @action, @reason, @at)
		RETURNING id`

	args := pgx.NamedArgs{
		"leagueID": o.LeagueID,
		"rosterID": o.RosterID,
		"playerID": o.PlayerID,
		"season":   o.Season,
		"action":   o.Action,
		"reason":   o.Reason,
		"at": pgtype.Timestamptz{
			Time:  db.clock.Now().UTC(),
			Valid: true,
		},
	}
	if err := db.pool.QueryRow(ctx, query, args).Scan(&o.ID); err != nil {
		return fmt.Errorf("error adding keeper override: %w", err)
	}
	return nil
}

func (db *postgresDB) GetKeeperOverrides(ctx context.Context, leagueID int32) ([]model.KeeperOverride, error) {
	const query = `SELECT id, league_id, roster_id, player_id, season, action, reason, at
				FROM keeper_overrides WHERE league_id=@leagueID ORDER BY at DESC, id DESC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error querying keeper overrides: %w", err)
	}

	results := make([]model.KeeperOverride, 0, 8)
	for rows.Next() {
		var o model.KeeperOverride
		var at pgtype.Timestamptz
		err := rows.Scan(&o.ID, &o.LeagueID, &o.RosterID, &o.PlayerID, &o.Season, &o.Action, &o.Reason, &at)
		if err != nil {
			return nil, fmt.Errorf("error scanning keeper override: %w", err)
		}
		o.At = at.Time
		results = append(results, o)
	}
	return results, nil
}
