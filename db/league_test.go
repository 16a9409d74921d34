package db

import (
	"context"
	"errors"
	"testing"
)

func TestDB_leagueUpsert(t *testing.T) {
	ctx := context.Background()

	l := insertLeague(t, 2024, "")
	assertTrue(t, "id", l.ID != 0)

	// Upserting the same external id again keeps the row id and updates the
	// mutable attributes.
	firstID := l.ID
	l.Name = "Renamed League"
	l.Status = "complete"
	l.TradeDeadline = 13
	if err := testDB.UpsertLeague(ctx, l); err != nil {
		t.Fatalf("error re-upserting league: %v", err)
	}
	assertEquals(t, "id", firstID, l.ID)

	loaded, err := testDB.GetLeague(ctx, l.ID)
	assertFatalf(t, err == nil, "error loading league: %v", err)
	assertEquals(t, "name", "Renamed League", loaded.Name)
	assertEquals(t, "status", "complete", loaded.Status)
	assertEquals(t, "tradeDeadline", 13, loaded.TradeDeadline)
	assertEquals(t, "previousLeagueID", "", loaded.PreviousLeagueID)
	assertTrue(t, "lastSyncedAt", loaded.LastSyncedAt.IsZero())

	byExternal, err := testDB.GetLeagueByExternalID(ctx, l.ExternalID)
	assertFatalf(t, err == nil, "error loading league by external id: %v", err)
	assertEquals(t, "id", l.ID, byExternal.ID)

	_, err = testDB.GetLeague(ctx, int32(999999))
	assertFatalf(t, errors.Is(err, ErrLeagueNotFound), "expected ErrLeagueNotFound, got: %v", err)
}

func TestDB_markLeagueSynced(t *testing.T) {
	ctx := context.Background()

	l := insertLeague(t, 2024, "")

	err := testDB.MarkLeagueSynced(ctx, l.ID)
	assertFatalf(t, err == nil, "error marking league synced: %v", err)

	loaded, err := testDB.GetLeague(ctx, l.ID)
	assertFatalf(t, err == nil, "error loading league: %v", err)
	assertTrue(t, "lastSyncedAt", !loaded.LastSyncedAt.IsZero())

	synced, err := testDB.ListSyncedLeagues(ctx)
	assertFatalf(t, err == nil, "error listing synced leagues: %v", err)
	found := false
	for _, s := range synced {
		if s.ID == l.ID {
			found = true
		}
	}
	assertTrue(t, "listed as synced", found)
}

func TestDB_rosterUpsert(t *testing.T) {
	ctx := context.Background()

	l := insertLeague(t, 2024, "")
	r := insertRoster(t, l.ID, "owner-1")
	assertTrue(t, "id", r.ID != 0)

	// The natural key is (league, owner): upserting again keeps the row id.
	firstID := r.ID
	r.Wins = 9
	r.DisplayName = "The Keepers"
	if err := testDB.UpsertRoster(ctx, r); err != nil {
		t.Fatalf("error re-upserting roster: %v", err)
	}
	assertEquals(t, "id", firstID, r.ID)

	rosters, err := testDB.GetRosters(ctx, l.ID)
	assertFatalf(t, err == nil, "error loading rosters: %v", err)
	assertEquals(t, "len", 1, len(rosters))
	assertEquals(t, "displayName", "The Keepers", rosters[0].DisplayName)
	assertEquals(t, "wins", 9, rosters[0].Wins)
}

func TestDB_deleteLeagueCascades(t *testing.T) {
	ctx := context.Background()

	l := insertLeague(t, 2024, "")
	insertRoster(t, l.ID, "owner-1")

	err := testDB.DeleteLeague(ctx, l.ID)
	assertFatalf(t, err == nil, "error deleting league: %v", err)

	_, err = testDB.GetLeague(ctx, l.ID)
	assertFatalf(t, errors.Is(err, ErrLeagueNotFound), "expected ErrLeagueNotFound, got: %v", err)

	rosters, err := testDB.GetRosters(ctx, l.ID)
	assertFatalf(t, err == nil, "error loading rosters: %v", err)
	assertEquals(t, "len", 0, len(rosters))
}
