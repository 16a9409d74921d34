package db

import (
	"context"

	"github.com/keysesh/keeper-league-manager-sub004/model"
)

type DB interface {
	GetPlayer(ctx context.Context, id string) (*model.Player, error)
	SavePlayer(ctx context.Context, p *model.Player) error

	ListLeagues(ctx context.Context) ([]model.LeagueSeason, error)
	// Lists only leagues that have completed at least one sync. The cron sync
	// iterates these.
	ListSyncedLeagues(ctx context.Context) ([]model.LeagueSeason, error)
	GetLeague(ctx context.Context, id int32) (*model.LeagueSeason, error)
	GetLeagueByExternalID(ctx context.Context, externalID string) (*model.LeagueSeason, error)
	// Upserts keyed by external id and fills in l.ID. Row ids are stable across
	// repeated syncs; only the mutable attributes are updated.
	UpsertLeague(ctx context.Context, l *model.LeagueSeason) error
	MarkLeagueSynced(ctx context.Context, id int32) error
	DeleteLeague(ctx context.Context, id int32) error

	// Upserts keyed by (league_id, owner_id) and fills in r.ID.
	UpsertRoster(ctx context.Context, r *model.RosterSeason) error
	GetRosters(ctx context.Context, leagueID int32) ([]model.RosterSeason, error)

	UpsertDraftPick(ctx context.Context, p *model.DraftPickRecord) error
	GetDraftPicks(ctx context.Context, leagueID int32) ([]model.DraftPickRecord, error)
	// Update only ever touches current_owner_id; the natural key never changes.
	UpsertTradedPick(ctx context.Context, p *model.TradedPickRecord) error
	GetTradedPicks(ctx context.Context, leagueID int32) ([]model.TradedPickRecord, error)

	UpsertKeeper(ctx context.Context, k *model.KeeperRecord) error
	GetKeepers(ctx context.Context, leagueID int32, season int) ([]model.KeeperRecord, error)
	DeleteKeeper(ctx context.Context, rosterID int32, playerID string, season int) error
	GetKeeperSettings(ctx context.Context, leagueID int32) (*model.KeeperSettings, error)
	SaveKeeperSettings(ctx context.Context, leagueID int32, s *model.KeeperSettings) error
	AddKeeperOverride(ctx context.Context, o *model.KeeperOverride) error
	GetKeeperOverrides(ctx context.Context, leagueID int32) ([]model.KeeperOverride, error)

	HasTransaction(ctx context.Context, leagueID int32, externalID string) (bool, error)
	SaveTransaction(ctx context.Context, t *model.TransactionRecord) error
	GetTransactions(ctx context.Context, leagueID int32) ([]model.TransactionRecord, error)
}
