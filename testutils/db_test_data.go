package testutils

import (
	"context"
	"log"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/keysesh/keeper-league-manager-sub004/containers"
	"github.com/keysesh/keeper-league-manager-sub004/db"
	"github.com/keysesh/keeper-league-manager-sub004/model"
)

var (
	TylerLockett = &model.Player{
		ID:        "2374",
		FirstName: "Tyler",
		LastName:  "Lockett",
		Position:  model.POS_WR,
		Team:      "SEA",
		Active:    true,
	}
	JalenHurts = &model.Player{
		ID:        "6904",
		FirstName: "Jalen",
		LastName:  "Hurts",
		Position:  model.POS_QB,
		Team:      "PHI",
		Active:    true,
	}
	CeeDeeLamb = &model.Player{
		ID:        "6786",
		FirstName: "CeeDee",
		LastName:  "Lamb",
		Position:  model.POS_WR,
		Team:      "DAL",
		Active:    true,
	}
	TJHockenson = &model.Player{
		ID:        "5844",
		FirstName: "T.J.",
		LastName:  "Hockenson",
		Position:  model.POS_TE,
		Team:      "MIN",
		Active:    true,
	}
	BreeceHall = &model.Player{
		ID:        "8155",
		FirstName: "Breece",
		LastName:  "Hall",
		Position:  model.POS_RB,
		Team:      "NYJ",
		Active:    true,
	}
)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     clock.Clock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.New()

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	if err := InsertTestPlayers(db); err != nil {
		log.Fatalf("error populating db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}

func InsertTestPlayers(db db.DB) error {
	players := []*model.Player{
		TylerLockett,
		JalenHurts,
		CeeDeeLamb,
		TJHockenson,
		BreeceHall,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, p := range players {
		err := db.SavePlayer(ctx, p)
		if err != nil {
			return err
		}
	}

	return nil
}

// InsertTestLeague writes a minimal league with rosters so tests have
// something to hang picks and keepers off of. Returns the league with its
// generated id filled in, plus the rosters in owner order.
func InsertTestLeague(tdb *TestDB, externalID string, season int, previous string) (*model.LeagueSeason, []model.RosterSeason) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	l := &model.LeagueSeason{
		ExternalID:       externalID,
		Name:             "Test Keeper League",
		Season:           season,
		Status:           "complete",
		TotalRosters:     2,
		DraftRounds:      15,
		TradeDeadline:    12,
		PreviousLeagueID: previous,
	}
	if err := tdb.DB.UpsertLeague(ctx, l); err != nil {
		log.Fatalf("error inserting test league: %v", err)
	}

	rosters := []model.RosterSeason{
		{LeagueID: l.ID, OwnerID: "owner-a", DisplayName: "Team A"},
		{LeagueID: l.ID, OwnerID: "owner-b", DisplayName: "Team B"},
	}
	for i := range rosters {
		if err := tdb.DB.UpsertRoster(ctx, &rosters[i]); err != nil {
			log.Fatalf("error inserting test roster: %v", err)
		}
	}
	return l, rosters
}
