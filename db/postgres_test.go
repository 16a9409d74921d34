package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"github.com/itbasis/go-clock"
	"github.com/keysesh/keeper-league-manager-sub004/containers"
	"github.com/keysesh/keeper-league-manager-sub004/model"
)

var (
	// A test global db instance to use for all of the tests instead of setting up a new one each time.
	testDB DB

	// a counter to generate unique external ids for each test. To help keep them separated.
	idCtr = int32(0)
)

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	container := containers.NewDBContainer()

	clock := clock.New()

	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if container != nil {
				container.Shutdown()
			}
			fmt.Println("panic")
		}
	}()

	var err error
	testDB, err = New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		fmt.Printf("error connecting to db: %v", err)
		os.Exit(-1)
	}

	code := m.Run()
	container.Shutdown()
	os.Exit(code)
}

func TestDB_playerSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	p := &model.Player{
		ID:        nextID("p"),
		FirstName: "Tyler",
		LastName:  "Lockett",
		Position:  model.POS_WR,
		Team:      "SEA",
		Active:    true,
	}

	err := testDB.SavePlayer(ctx, p)
	assertFatalf(t, err == nil, "error saving player: %v", err)

	loaded, err := testDB.GetPlayer(ctx, p.ID)
	assertFatalf(t, err == nil, "error loading player: %v", err)
	assertEquals(t, "firstName", p.FirstName, loaded.FirstName)
	assertEquals(t, "lastName", p.LastName, loaded.LastName)
	assertEquals(t, "position", p.Position, loaded.Position)
	assertEquals(t, "team", p.Team, loaded.Team)
	assertTrue(t, "active", loaded.Active)
	assertTrue(t, "updated", !loaded.Updated.IsZero())

	_, err = testDB.GetPlayer(ctx, "does-not-exist")
	assertFatalf(t, errors.Is(err, ErrPlayerNotFound), "expected ErrPlayerNotFound, got: %v", err)
}

func nextID(prefix string) string {
	id := atomic.AddInt32(&idCtr, 1)
	return fmt.Sprintf("%s-%d", prefix, id)
}

func insertLeague(t *testing.T, season int, previous string) *model.LeagueSeason {
	t.Helper()
	l := &model.LeagueSeason{
		ExternalID:       nextID("lg"),
		Name:             "DB Test League",
		Season:           season,
		Status:           "in_season",
		TotalRosters:     2,
		DraftRounds:      15,
		TradeDeadline:    12,
		PreviousLeagueID: previous,
	}
	if err := testDB.UpsertLeague(context.Background(), l); err != nil {
		t.Fatalf("error inserting league: %v", err)
	}
	return l
}

func insertRoster(t *testing.T, leagueID int32, ownerID string) *model.RosterSeason {
	t.Helper()
	r := &model.RosterSeason{
		LeagueID:    leagueID,
		OwnerID:     ownerID,
		DisplayName: "Team " + ownerID,
	}
	if err := testDB.UpsertRoster(context.Background(), r); err != nil {
		t.Fatalf("error inserting roster: %v", err)
	}
	return r
}

func assertFatalf(t *testing.T, c bool, f string, args ...any) {
	t.Helper()
	if !c {
		t.Fatalf(f, args...)
	}
}

func assertEquals(t *testing.T, field string, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s - expected: '%v', got: '%v'", field, expected, actual)
	}
}

func assertTrue(t *testing.T, field string, cond bool) {
	t.Helper()
	if !cond {
		t.Errorf("%s - expected to be true", field)
	}
}
