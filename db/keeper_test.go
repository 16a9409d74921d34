package db

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/keysesh/keeper-league-manager-sub004/model"
)

func TestDB_keeperUpsert(t *testing.T) {
	ctx := context.Background()

	l := insertLeague(t, 2024, "")
	r := insertRoster(t, l.ID, "owner-1")

	k := &model.KeeperRecord{
		RosterID:  r.ID,
		PlayerID:  "2374",
		Season:    2024,
		Type:      model.KeeperRegular,
		BaseCost:  8,
		FinalCost: 7,
		YearsKept: 1,
	}
	err := testDB.UpsertKeeper(ctx, k)
	assertFatalf(t, err == nil, "error inserting keeper: %v", err)

	// A recompute for the same (roster, player, season) overwrites in place.
	k.Type = model.KeeperFranchise
	k.FinalCost = 1
	k.Annotation = "admin: league vote"
	err = testDB.UpsertKeeper(ctx, k)
	assertFatalf(t, err == nil, "error re-upserting keeper: %v", err)

	keepers, err := testDB.GetKeepers(ctx, l.ID, 2024)
	assertFatalf(t, err == nil, "error loading keepers: %v", err)
	assertEquals(t, "len", 1, len(keepers))
	assertEquals(t, "type", model.KeeperFranchise, keepers[0].Type)
	assertEquals(t, "finalCost", 1, keepers[0].FinalCost)
	assertTrue(t, "overridden", keepers[0].Overridden())

	// Keepers are season scoped.
	keepers, err = testDB.GetKeepers(ctx, l.ID, 2023)
	assertFatalf(t, err == nil, "error loading keepers: %v", err)
	assertEquals(t, "len", 0, len(keepers))
}

func TestDB_deleteKeeper(t *testing.T) {
	ctx := context.Background()

	l := insertLeague(t, 2024, "")
	r := insertRoster(t, l.ID, "owner-1")

	k := &model.KeeperRecord{
		RosterID:  r.ID,
		PlayerID:  "6904",
		Season:    2024,
		Type:      model.KeeperRegular,
		BaseCost:  5,
		FinalCost: 5,
	}
	err := testDB.UpsertKeeper(ctx, k)
	assertFatalf(t, err == nil, "error inserting keeper: %v", err)

	err = testDB.DeleteKeeper(ctx, r.ID, "6904", 2024)
	assertFatalf(t, err == nil, "error deleting keeper: %v", err)

	err = testDB.DeleteKeeper(ctx, r.ID, "6904", 2024)
	assertFatalf(t, errors.Is(err, ErrKeeperNotFound), "expected ErrKeeperNotFound, got: %v", err)
}

func TestDB_keeperSettings(t *testing.T) {
	ctx := context.Background()

	l := insertLeague(t, 2024, "")

	_, err := testDB.GetKeeperSettings(ctx, l.ID)
	assertFatalf(t, errors.Is(err, ErrSettingsNotFound), "expected ErrSettingsNotFound, got: %v", err)

	s := model.DefaultKeeperSettings()
	s.MaxKeepers = 9
	err = testDB.SaveKeeperSettings(ctx, l.ID, &s)
	assertFatalf(t, err == nil, "error saving settings: %v", err)

	// Saving again replaces the row.
	s.MinimumRound = 3
	err = testDB.SaveKeeperSettings(ctx, l.ID, &s)
	assertFatalf(t, err == nil, "error re-saving settings: %v", err)

	loaded, err := testDB.GetKeeperSettings(ctx, l.ID)
	assertFatalf(t, err == nil, "error loading settings: %v", err)
	if !reflect.DeepEqual(&s, loaded) {
		t.Errorf("settings not as expected, got: %+v", loaded)
	}
}

func TestDB_keeperOverrides(t *testing.T) {
	ctx := context.Background()

	l := insertLeague(t, 2024, "")
	r := insertRoster(t, l.ID, "owner-1")

	o := &model.KeeperOverride{
		LeagueID: l.ID,
		RosterID: r.ID,
		PlayerID: "2374",
		Season:   2024,
		Action:   model.OverrideActionAdd,
		Reason:   "missed the deadline",
	}
	err := testDB.AddKeeperOverride(ctx, o)
	assertFatalf(t, err == nil, "error adding override: %v", err)
	assertTrue(t, "id", o.ID != 0)

	overrides, err := testDB.GetKeeperOverrides(ctx, l.ID)
	assertFatalf(t, err == nil, "error loading overrides: %v", err)
	assertEquals(t, "len", 1, len(overrides))
	assertEquals(t, "action", model.OverrideActionAdd, overrides[0].Action)
	assertEquals(t, "reason", "missed the deadline", overrides[0].Reason)
	assertTrue(t, "at", !overrides[0].At.IsZero())
}
