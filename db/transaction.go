package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/keysesh/keeper-league-manager-sub004/model"
)

func (db *postgresDB) HasTransaction(ctx context.Context, leagueID int32, externalID string) (bool, error) {
	const query = `SELECT COUNT(*) FROM transactions
				WHERE league_id=@leagueID AND external_id=@externalID`

	args := pgx.NamedArgs{
		"leagueID":   leagueID,
		"externalID": externalID,
	}
	var count int
	if err := db.pool.QueryRow(ctx, query, args).Scan(&count); err != nil {
		return false, fmt.Errorf("error checking for transaction %s: %w", externalID, err)
	}
	return count > 0, nil
}

func (db *postgresDB) SaveTransaction(ctx context.Context, t *model.TransactionRecord) error {
	const insertTxn = `INSERT INTO transactions
			(league_id, external_id, type, status, week, season, ts)
		VALUES
			(@leagueID, @externalID, @type, @status, @week, @season, @ts)
		ON CONFLICT (league_id, external_id) DO NOTHING
		RETURNING id`

	const insertItem = `INSERT INTO transaction_items
			(transaction_id, player_id, from_roster_id, to_roster_id)
		VALUES
			(@transactionID, @playerID, @fromRosterID, @toRosterID)`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{
		"leagueID":   t.LeagueID,
		"externalID": t.ExternalID,
		"type":       string(t.Type),
		"status":     t.Status,
		"week":       t.Week,
		"season":     t.Season,
		"ts": pgtype.Timestamptz{
			Time:  t.Time,
			Valid: !t.Time.IsZero(),
		},
	}
	if err := tx.QueryRow(ctx, insertTxn, args).Scan(&t.ID); err != nil {
		// No row is returned when the transaction was already stored.
		if err == pgx.ErrNoRows {
			return nil
		}
		return fmt.Errorf("error inserting transaction %s: %w", t.ExternalID, err)
	}

	for _, item := range t.Items {
		args := pgx.NamedArgs{
			"transactionID": t.ID,
			"playerID":      item.PlayerID,
			"fromRosterID":  item.FromRosterID,
			"toRosterID":    item.ToRosterID,
		}
		if _, err := tx.Exec(ctx, insertItem, args); err != nil {
			return fmt.Errorf("error inserting transaction item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing transaction %s: %w", t.ExternalID, err)
	}
	return nil
}

func (db *postgresDB) GetTransactions(ctx context.Context, leagueID int32) ([]model.TransactionRecord, error) {
	const query = `SELECT id, league_id, external_id, type, status, week, season, ts
				FROM transactions WHERE league_id=@leagueID ORDER BY ts, id`

	const itemQuery = `SELECT player_id, from_roster_id, to_roster_id
				FROM transaction_items WHERE transaction_id=@transactionID`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}

	results := make([]model.TransactionRecord, 0, 32)
	for rows.Next() {
		var t model.TransactionRecord
		var typ string
		var ts pgtype.Timestamptz
		err := rows.Scan(&t.ID, &t.LeagueID, &t.ExternalID, &typ, &t.Status, &t.Week, &t.Season, &ts)
		if err != nil {
			return nil, fmt.Errorf("error scanning transaction: %w", err)
		}
		t.Type = model.TransactionType(typ)
		t.Time = ts.Time
		results = append(results, t)
	}
	rows.Close()

	for i := range results {
		itemRows, err := db.pool.Query(ctx, itemQuery, pgx.NamedArgs{"transactionID": results[i].ID})
		if err != nil {
			return nil, fmt.Errorf("error querying transaction items: %w", err)
		}
		for itemRows.Next() {
			var item model.TransactionItem
			if err := itemRows.Scan(&item.PlayerID, &item.FromRosterID, &item.ToRosterID); err != nil {
				return nil, fmt.Errorf("error scanning transaction item: %w", err)
			}
			results[i].Items = append(results[i].Items, item)
		}
		itemRows.Close()
	}

	return results, nil
}
