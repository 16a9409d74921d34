package mockcontroller

import (
	"context"
	"sync"
	"time"

	"github.com/keysesh/keeper-league-manager-sub004/controller"
	"github.com/keysesh/keeper-league-manager-sub004/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	args := c.Called(ctx, id)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}

	return p, args.Error(1)
}

func (c *C) UpdatePlayers(ctx context.Context) (int, error) {
	args := c.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (c *C) RunPeriodicPlayerUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	c.Called(frequency, shutdown, wg)
}

func (c *C) AddLeague(ctx context.Context, externalID string) (*model.LeagueSeason, error) {
	args := c.Called(ctx, externalID)

	var l *model.LeagueSeason
	if args.Get(0) != nil {
		l = args.Get(0).(*model.LeagueSeason)
	}
	return l, args.Error(1)
}

func (c *C) GetLeague(ctx context.Context, id int32) (*model.LeagueSeason, error) {
	args := c.Called(ctx, id)

	var l *model.LeagueSeason
	if args.Get(0) != nil {
		l = args.Get(0).(*model.LeagueSeason)
	}
	return l, args.Error(1)
}

func (c *C) ListLeagues(ctx context.Context) ([]model.LeagueSeason, error) {
	args := c.Called(ctx)

	var res []model.LeagueSeason
	if args.Get(0) != nil {
		res = args.Get(0).([]model.LeagueSeason)
	}
	return res, args.Error(1)
}

func (c *C) DeleteLeague(ctx context.Context, id int32) error {
	args := c.Called(ctx, id)
	return args.Error(0)
}

func (c *C) GetLeaguesForUser(ctx context.Context, username, season string) ([]model.LeagueSeason, error) {
	args := c.Called(ctx, username, season)

	var res []model.LeagueSeason
	if args.Get(0) != nil {
		res = args.Get(0).([]model.LeagueSeason)
	}
	return res, args.Error(1)
}

func (c *C) ResolveChain(ctx context.Context, externalID string, maxDepth int) ([]model.ChainEntry, error) {
	args := c.Called(ctx, externalID, maxDepth)

	var res []model.ChainEntry
	if args.Get(0) != nil {
		res = args.Get(0).([]model.ChainEntry)
	}
	return res, args.Error(1)
}

func (c *C) ResolveChainRemote(ctx context.Context, externalID string, maxDepth int) ([]model.ChainEntry, error) {
	args := c.Called(ctx, externalID, maxDepth)

	var res []model.ChainEntry
	if args.Get(0) != nil {
		res = args.Get(0).([]model.ChainEntry)
	}
	return res, args.Error(1)
}

func (c *C) RefreshLeague(ctx context.Context, leagueID int32) (*model.SyncResult, error) {
	return syncResult(c.Called(ctx, leagueID))
}

func (c *C) SyncLeague(ctx context.Context, leagueID int32) (*model.SyncResult, error) {
	return syncResult(c.Called(ctx, leagueID))
}

func (c *C) SyncLeagueHistory(ctx context.Context, leagueID int32) (*model.SyncResult, error) {
	return syncResult(c.Called(ctx, leagueID))
}

func (c *C) SyncLeagueDrafts(ctx context.Context, leagueID int32) (*model.SyncResult, error) {
	return syncResult(c.Called(ctx, leagueID))
}

func syncResult(args mock.Arguments) (*model.SyncResult, error) {
	var res *model.SyncResult
	if args.Get(0) != nil {
		res = args.Get(0).(*model.SyncResult)
	}
	return res, args.Error(1)
}

func (c *C) SyncAllLeagues(ctx context.Context) []error {
	args := c.Called(ctx)

	var res []error
	if args.Get(0) != nil {
		res = args.Get(0).([]error)
	}
	return res
}

func (c *C) GetSyncStatus(ctx context.Context, leagueID int32) (*model.SyncStatus, error) {
	args := c.Called(ctx, leagueID)

	var res *model.SyncStatus
	if args.Get(0) != nil {
		res = args.Get(0).(*model.SyncStatus)
	}
	return res, args.Error(1)
}

func (c *C) UpdateKeepers(ctx context.Context, leagueID int32, force bool) (*controller.KeeperComputation, error) {
	args := c.Called(ctx, leagueID, force)

	var res *controller.KeeperComputation
	if args.Get(0) != nil {
		res = args.Get(0).(*controller.KeeperComputation)
	}
	return res, args.Error(1)
}

func (c *C) GetKeepers(ctx context.Context, leagueID int32, season int) ([]model.KeeperRecord, error) {
	args := c.Called(ctx, leagueID, season)

	var res []model.KeeperRecord
	if args.Get(0) != nil {
		res = args.Get(0).([]model.KeeperRecord)
	}
	return res, args.Error(1)
}

func (c *C) OverrideKeeper(ctx context.Context, req controller.OverrideRequest) error {
	args := c.Called(ctx, req)
	return args.Error(0)
}

func (c *C) GetKeeperOverrides(ctx context.Context, leagueID int32) ([]model.KeeperOverride, error) {
	args := c.Called(ctx, leagueID)

	var res []model.KeeperOverride
	if args.Get(0) != nil {
		res = args.Get(0).([]model.KeeperOverride)
	}
	return res, args.Error(1)
}

func (c *C) GetKeeperSettings(ctx context.Context, leagueID int32) (*model.KeeperSettings, error) {
	args := c.Called(ctx, leagueID)

	var res *model.KeeperSettings
	if args.Get(0) != nil {
		res = args.Get(0).(*model.KeeperSettings)
	}
	return res, args.Error(1)
}

func (c *C) SaveKeeperSettings(ctx context.Context, leagueID int32, s *model.KeeperSettings) error {
	args := c.Called(ctx, leagueID, s)
	return args.Error(0)
}

func (c *C) GetPlayerTimeline(ctx context.Context, leagueID int32, playerID string) ([]model.TimelineEvent, error) {
	args := c.Called(ctx, leagueID, playerID)

	var res []model.TimelineEvent
	if args.Get(0) != nil {
		res = args.Get(0).([]model.TimelineEvent)
	}
	return res, args.Error(1)
}

func (c *C) GetChampion(ctx context.Context, leagueID int32) (*model.RosterSeason, error) {
	args := c.Called(ctx, leagueID)

	var res *model.RosterSeason
	if args.Get(0) != nil {
		res = args.Get(0).(*model.RosterSeason)
	}
	return res, args.Error(1)
}
