package controller

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/itbasis/go-clock"
	"github.com/keysesh/keeper-league-manager-sub004/db"
	"github.com/keysesh/keeper-league-manager-sub004/model"
	"github.com/keysesh/keeper-league-manager-sub004/sleeper"
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	GetPlayer(ctx context.Context, id string) (*model.Player, error)
	// Refreshes the local player catalog from the platform's bulk endpoint.
	// Returns the number of players written.
	UpdatePlayers(ctx context.Context) (int, error)
	RunPeriodicPlayerUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)

	// Registers a league by its external id. The first sync creates the local
	// LeagueSeason row; metadata comes straight from the platform.
	AddLeague(ctx context.Context, externalID string) (*model.LeagueSeason, error)
	GetLeague(ctx context.Context, id int32) (*model.LeagueSeason, error)
	ListLeagues(ctx context.Context) ([]model.LeagueSeason, error)
	DeleteLeague(ctx context.Context, id int32) error
	GetLeaguesForUser(ctx context.Context, username, season string) ([]model.LeagueSeason, error)

	// Walks the previous-league pointers backwards, newest first. ResolveChain
	// only follows seasons already in local storage; ResolveChainRemote fetches
	// missing seasons from the platform first. Broken links truncate the chain,
	// they are never an error.
	ResolveChain(ctx context.Context, externalID string, maxDepth int) ([]model.ChainEntry, error)
	ResolveChainRemote(ctx context.Context, externalID string, maxDepth int) ([]model.ChainEntry, error)

	// The three sync tiers. All of them are idempotent: repeated calls with
	// unchanged remote data produce no net change.
	RefreshLeague(ctx context.Context, leagueID int32) (*model.SyncResult, error)
	SyncLeague(ctx context.Context, leagueID int32) (*model.SyncResult, error)
	SyncLeagueHistory(ctx context.Context, leagueID int32) (*model.SyncResult, error)
	SyncLeagueDrafts(ctx context.Context, leagueID int32) (*model.SyncResult, error)
	// Syncs every league that has been synced at least once, isolating errors
	// per league so one bad league cannot block the rest.
	SyncAllLeagues(ctx context.Context) []error
	GetSyncStatus(ctx context.Context, leagueID int32) (*model.SyncStatus, error)

	UpdateKeepers(ctx context.Context, leagueID int32, force bool) (*KeeperComputation, error)
	GetKeepers(ctx context.Context, leagueID int32, season int) ([]model.KeeperRecord, error)
	OverrideKeeper(ctx context.Context, req OverrideRequest) error
	GetKeeperOverrides(ctx context.Context, leagueID int32) ([]model.KeeperOverride, error)
	GetKeeperSettings(ctx context.Context, leagueID int32) (*model.KeeperSettings, error)
	SaveKeeperSettings(ctx context.Context, leagueID int32, s *model.KeeperSettings) error

	GetPlayerTimeline(ctx context.Context, leagueID int32, playerID string) ([]model.TimelineEvent, error)
	GetChampion(ctx context.Context, leagueID int32) (*model.RosterSeason, error)
}

type controller struct {
	clock    clock.Clock
	db       db.DB
	sleeper  sleeper.Client
	validate *validator.Validate
}

func New(clock clock.Clock, db db.DB, sleeper sleeper.Client) (C, error) {
	c := &controller{
		clock:    clock,
		db:       db,
		sleeper:  sleeper,
		validate: validator.New(),
	}
	return c, nil
}
