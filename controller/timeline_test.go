package controller

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/keysesh/keeper-league-manager-sub004/model"
	"github.com/keysesh/keeper-league-manager-sub004/sleeper/mocksleeper"
	"github.com/keysesh/keeper-league-manager-sub004/testutils"
)

func TestSortTimeline(t *testing.T) {
	week5 := time.Date(2023, 10, 8, 17, 0, 0, 0, time.UTC)
	week9 := time.Date(2023, 11, 5, 17, 0, 0, 0, time.UTC)

	events := []model.TimelineEvent{
		{Type: model.EventDropped, Season: 2023, Week: 9, Time: week9},
		{Type: model.EventWaiver, Season: 2023, Week: 5, Time: week5},
		{Type: model.EventDrafted, Season: 2023},
		{Type: model.EventKeptRegular, Season: 2024},
		{Type: model.EventDrafted, Season: 2022},
	}

	sortTimeline(events)

	expected := []model.EventType{
		model.EventDrafted,     // 2022
		model.EventDrafted,     // 2023 draft day
		model.EventWaiver,      // 2023 week 5
		model.EventDropped,     // 2023 week 9
		model.EventKeptRegular, // 2024
	}
	for i, ex := range expected {
		if events[i].Type != ex {
			t.Fatalf("event %d: expected %s, got %s", i, ex, events[i].Type)
		}
	}

	// Within a season, untimed draft events sort ahead of in-season moves and
	// a keeper declaration comes before the draft pick it consumed.
	sameSeason := []model.TimelineEvent{
		{Type: model.EventDrafted, Season: 2023},
		{Type: model.EventKeptFranchise, Season: 2023},
	}
	sortTimeline(sameSeason)
	if sameSeason[0].Type != model.EventKeptFranchise {
		t.Errorf("expected the keeper event first, got %s", sameSeason[0].Type)
	}
}

func TestFilterDraftGlitches(t *testing.T) {
	drop := time.Date(2023, 8, 29, 19, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		events   []model.TimelineEvent
		exLength int
	}{
		"drop and redraft within a day are both removed": {
			events: []model.TimelineEvent{
				{Type: model.EventDropped, LeagueID: 1, Season: 2023, Time: drop},
				{Type: model.EventDrafted, LeagueID: 1, Season: 2023, Time: drop.Add(10 * time.Minute)},
			},
			exLength: 0,
		},
		"redraft more than a day later is kept": {
			events: []model.TimelineEvent{
				{Type: model.EventDropped, LeagueID: 1, Season: 2023, Time: drop},
				{Type: model.EventDrafted, LeagueID: 1, Season: 2023, Time: drop.Add(25 * time.Hour)},
			},
			exLength: 2,
		},
		"waiver re-acquisition is never a correction": {
			events: []model.TimelineEvent{
				{Type: model.EventDropped, LeagueID: 1, Season: 2023, Time: drop},
				{Type: model.EventWaiver, LeagueID: 1, Season: 2023, Time: drop.Add(10 * time.Minute)},
			},
			exLength: 2,
		},
		"free agent re-acquisition is never a correction": {
			events: []model.TimelineEvent{
				{Type: model.EventDropped, LeagueID: 1, Season: 2023, Time: drop},
				{Type: model.EventFreeAgent, LeagueID: 1, Season: 2023, Time: drop.Add(10 * time.Minute)},
			},
			exLength: 2,
		},
		"redraft in a different league is kept": {
			events: []model.TimelineEvent{
				{Type: model.EventDropped, LeagueID: 1, Season: 2023, Time: drop},
				{Type: model.EventDrafted, LeagueID: 2, Season: 2023, Time: drop.Add(10 * time.Minute)},
			},
			exLength: 2,
		},
		"untimed draft event is never matched": {
			events: []model.TimelineEvent{
				{Type: model.EventDropped, LeagueID: 1, Season: 2023, Time: drop},
				{Type: model.EventDrafted, LeagueID: 1, Season: 2023},
			},
			exLength: 2,
		},
		"match found within the lookahead": {
			events: []model.TimelineEvent{
				{Type: model.EventDropped, LeagueID: 1, Season: 2023, Time: drop},
				{Type: model.EventWaiver, LeagueID: 1, Season: 2023, Time: drop.Add(1 * time.Minute)},
				{Type: model.EventWaiver, LeagueID: 1, Season: 2023, Time: drop.Add(2 * time.Minute)},
				{Type: model.EventDrafted, LeagueID: 1, Season: 2023, Time: drop.Add(3 * time.Minute)},
			},
			exLength: 2,
		},
		"match beyond the lookahead is kept": {
			events: []model.TimelineEvent{
				{Type: model.EventDropped, LeagueID: 1, Season: 2023, Time: drop},
				{Type: model.EventWaiver, LeagueID: 1, Season: 2023, Time: drop.Add(1 * time.Minute)},
				{Type: model.EventWaiver, LeagueID: 1, Season: 2023, Time: drop.Add(2 * time.Minute)},
				{Type: model.EventWaiver, LeagueID: 1, Season: 2023, Time: drop.Add(3 * time.Minute)},
				{Type: model.EventWaiver, LeagueID: 1, Season: 2023, Time: drop.Add(4 * time.Minute)},
				{Type: model.EventDrafted, LeagueID: 1, Season: 2023, Time: drop.Add(5 * time.Minute)},
			},
			exLength: 6,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := filterDraftGlitches(tc.events)
			if len(got) != tc.exLength {
				t.Errorf("expected %d events, got %d: %v", tc.exLength, len(got), got)
			}
		})
	}
}

func TestFilterDraftGlitches_keepsSurroundingEvents(t *testing.T) {
	drop := time.Date(2023, 8, 29, 19, 0, 0, 0, time.UTC)

	events := []model.TimelineEvent{
		{Type: model.EventDrafted, LeagueID: 1, Season: 2022},
		{Type: model.EventDropped, LeagueID: 1, Season: 2023, Time: drop},
		{Type: model.EventDrafted, LeagueID: 1, Season: 2023, Time: drop.Add(time.Hour)},
		{Type: model.EventTraded, LeagueID: 1, Season: 2023, Time: drop.Add(48 * time.Hour)},
	}

	got := filterDraftGlitches(events)
	expected := []model.TimelineEvent{events[0], events[3]}
	if !reflect.DeepEqual(expected, got) {
		t.Errorf("filtered timeline not as expected, got: %v", got)
	}
}

// A player drafted one season, traded mid-season, and kept by the acquiring
// team the next season shows all three events across the chain, oldest first.
func TestGetPlayerTimeline(t *testing.T) {
	ctx := context.Background()

	prev, prevRosters := testutils.InsertTestLeague(testDB, "tl-2023", 2023, "")
	l, rosters := testutils.InsertTestLeague(testDB, "tl-2024", 2024, "tl-2023")

	pick2023 := model.DraftPickRecord{
		DraftID:  "tl-draft-2023",
		LeagueID: prev.ID,
		Season:   2023,
		Round:    3,
		PickNo:   1,
		PlayerID: "6904",
		RosterID: prevRosters[0].ID,
	}
	if err := testDB.DB.UpsertDraftPick(ctx, &pick2023); err != nil {
		t.Fatalf("error inserting pick: %v", err)
	}

	trade := model.TransactionRecord{
		LeagueID:   prev.ID,
		ExternalID: "tl-txn-1",
		Type:       model.TransactionTrade,
		Status:     "complete",
		Week:       5,
		Season:     2023,
		Time:       time.Date(2023, 10, 10, 18, 0, 0, 0, time.UTC),
		Items: []model.TransactionItem{
			{PlayerID: "6904", FromRosterID: &prevRosters[0].ID, ToRosterID: &prevRosters[1].ID},
		},
	}
	if err := testDB.DB.SaveTransaction(ctx, &trade); err != nil {
		t.Fatalf("error inserting transaction: %v", err)
	}

	pick2024 := model.DraftPickRecord{
		DraftID:  "tl-draft-2024",
		LeagueID: l.ID,
		Season:   2024,
		Round:    2,
		PickNo:   1,
		PlayerID: "6904",
		RosterID: rosters[1].ID,
		IsKeeper: true,
	}
	if err := testDB.DB.UpsertDraftPick(ctx, &pick2024); err != nil {
		t.Fatalf("error inserting keeper pick: %v", err)
	}
	keeper := model.KeeperRecord{
		RosterID:  rosters[1].ID,
		PlayerID:  "6904",
		Season:    2024,
		Type:      model.KeeperFranchise,
		BaseCost:  3,
		FinalCost: 1,
	}
	if err := testDB.DB.UpsertKeeper(ctx, &keeper); err != nil {
		t.Fatalf("error inserting keeper: %v", err)
	}

	ctrl, err := New(clock.New(), testDB.DB, &mocksleeper.Client{})
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}

	events, err := ctrl.GetPlayerTimeline(ctx, l.ID, "6904")
	if err != nil {
		t.Fatalf("error getting timeline: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d: %v", len(events), events)
	}
	// time.Time round-trips through the database with a different location, so
	// compare the timestamp separately with Equal.
	if !events[1].Time.Equal(trade.Time) {
		t.Errorf("trade time not as expected, got: %v", events[1].Time)
	}
	for i := range events {
		events[i].Time = time.Time{}
	}
	expected := []model.TimelineEvent{
		{Type: model.EventDrafted, LeagueID: prev.ID, Season: 2023, Round: 3, PlayerID: "6904", ToOwner: "owner-a"},
		{Type: model.EventTraded, LeagueID: prev.ID, Season: 2023, Week: 5, PlayerID: "6904",
			FromOwner: "owner-a", ToOwner: "owner-b"},
		{Type: model.EventKeptFranchise, LeagueID: l.ID, Season: 2024, Round: 2, PlayerID: "6904", ToOwner: "owner-b"},
	}
	if !reflect.DeepEqual(expected, events) {
		t.Errorf("timeline not as expected, got: %v", events)
	}
}
