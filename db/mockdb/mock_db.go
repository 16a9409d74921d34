package mockdb

import (
	"context"

	"github.com/keysesh/keeper-league-manager-sub004/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (db *DB) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	args := db.Called(ctx, id)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}

	return p, args.Error(1)
}

func (db *DB) SavePlayer(ctx context.Context, p *model.Player) error {
	args := db.Called(ctx, p)
	return args.Error(0)
}

func (db *DB) ListLeagues(ctx context.Context) ([]model.LeagueSeason, error) {
	return leagues(db.Called(ctx))
}

func (db *DB) ListSyncedLeagues(ctx context.Context) ([]model.LeagueSeason, error) {
	return leagues(db.Called(ctx))
}

func leagues(args mock.Arguments) ([]model.LeagueSeason, error) {
	var res []model.LeagueSeason
	if args.Get(0) != nil {
		res = args.Get(0).([]model.LeagueSeason)
	}
	return res, args.Error(1)
}

func (db *DB) GetLeague(ctx context.Context, id int32) (*model.LeagueSeason, error) {
	args := db.Called(ctx, id)

	var l *model.LeagueSeason
	if args.Get(0) != nil {
		l = args.Get(0).(*model.LeagueSeason)
	}
	return l, args.Error(1)
}

func (db *DB) GetLeagueByExternalID(ctx context.Context, externalID string) (*model.LeagueSeason, error) {
	args := db.Called(ctx, externalID)

	var l *model.LeagueSeason
	if args.Get(0) != nil {
		l = args.Get(0).(*model.LeagueSeason)
	}
	return l, args.Error(1)
}

func (db *DB) UpsertLeague(ctx context.Context, l *model.LeagueSeason) error {
	args := db.Called(ctx, l)
	return args.Error(0)
}

func (db *DB) MarkLeagueSynced(ctx context.Context, id int32) error {
	args := db.Called(ctx, id)
	return args.Error(0)
}

func (db *DB) DeleteLeague(ctx context.Context, id int32) error {
	args := db.Called(ctx, id)
	return args.Error(0)
}

func (db *DB) UpsertRoster(ctx context.Context, r *model.RosterSeason) error {
	args := db.Called(ctx, r)
	return args.Error(0)
}

func (db *DB) GetRosters(ctx context.Context, leagueID int32) ([]model.RosterSeason, error) {
	args := db.Called(ctx, leagueID)

	var res []model.RosterSeason
	if args.Get(0) != nil {
		res = args.Get(0).([]model.RosterSeason)
	}
	return res, args.Error(1)
}

func (db *DB) UpsertDraftPick(ctx context.Context, p *model.DraftPickRecord) error {
	args := db.Called(ctx, p)
	return args.Error(0)
}

func (db *DB) GetDraftPicks(ctx context.Context, leagueID int32) ([]model.DraftPickRecord, error) {
	args := db.Called(ctx, leagueID)

	var res []model.DraftPickRecord
	if args.Get(0) != nil {
		res = args.Get(0).([]model.DraftPickRecord)
	}
	return res, args.Error(1)
}

func (db *DB) UpsertTradedPick(ctx context.Context, p *model.TradedPickRecord) error {
	args := db.Called(ctx, p)
	return args.Error(0)
}

func (db *DB) GetTradedPicks(ctx context.Context, leagueID int32) ([]model.TradedPickRecord, error) {
	args := db.Called(ctx, leagueID)

	var res []model.TradedPickRecord
	if args.Get(0) != nil {
		res = args.Get(0).([]model.TradedPickRecord)
	}
	return res, args.Error(1)
}

func (db *DB) UpsertKeeper(ctx context.Context, k *model.KeeperRecord) error {
	args := db.Called(ctx, k)
	return args.Error(0)
}

func (db *DB) GetKeepers(ctx context.Context, leagueID int32, season int) ([]model.KeeperRecord, error) {
	args := db.Called(ctx, leagueID, season)

	var res []model.KeeperRecord
	if args.Get(0) != nil {
		res = args.Get(0).([]model.KeeperRecord)
	}
	return res, args.Error(1)
}

func (db *DB) DeleteKeeper(ctx context.Context, rosterID int32, playerID string, season int) error {
	args := db.Called(ctx, rosterID, playerID, season)
	return args.Error(0)
}

func (db *DB) GetKeeperSettings(ctx context.Context, leagueID int32) (*model.KeeperSettings, error) {
	args := db.Called(ctx, leagueID)

	var res *model.KeeperSettings
	if args.Get(0) != nil {
		res = args.Get(0).(*model.KeeperSettings)
	}
	return res, args.Error(1)
}

func (db *DB) SaveKeeperSettings(ctx context.Context, leagueID int32, s *model.KeeperSettings) error {
	args := db.Called(ctx, leagueID, s)
	return args.Error(0)
}

func (db *DB) AddKeeperOverride(ctx context.Context, o *model.KeeperOverride) error {
	args := db.Called(ctx, o)
	return args.Error(0)
}

func (db *DB) GetKeeperOverrides(ctx context.Context, leagueID int32) ([]model.KeeperOverride, error) {
	args := db.Called(ctx, leagueID)

	var res []model.KeeperOverride
	if args.Get(0) != nil {
		res = args.Get(0).([]model.KeeperOverride)
	}
	return res, args.Error(1)
}

func (db *DB) HasTransaction(ctx context.Context, leagueID int32, externalID string) (bool, error) {
	args := db.Called(ctx, leagueID, externalID)
	return args.Bool(0), args.Error(1)
}

func (db *DB) SaveTransaction(ctx context.Context, t *model.TransactionRecord) error {
	args := db.Called(ctx, t)
	return args.Error(0)
}

func (db *DB) GetTransactions(ctx context.Context, leagueID int32) ([]model.TransactionRecord, error) {
	args := db.Called(ctx, leagueID)

	var res []model.TransactionRecord
	if args.Get(0) != nil {
		res = args.Get(0).([]model.TransactionRecord)
	}
	return res, args.Error(1)
}
