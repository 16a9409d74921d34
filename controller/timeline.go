package controller

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/keysesh/keeper-league-manager-sub004/model"
)

const (
	// glitchLookahead bounds how far past a DROPPED event the filter scans for
	// the re-draft half of a correction pair.
	glitchLookahead = 4
	// glitchWindow is how close together a drop and its re-draft must be to
	// count as a draft-day correction.
	glitchWindow = 24 * time.Hour
)

// GetPlayerTimeline merges a player's draft picks, keeper rows and transaction
// items across the whole league chain into one chronological event list,
// oldest first, with draft-day correction glitches removed.
func (c *controller) GetPlayerTimeline(ctx context.Context, leagueID int32, playerID string) ([]model.TimelineEvent, error) {
	l, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error looking up league: %w", err)
	}

	chain, err := c.ResolveChain(ctx, l.ExternalID, DefaultChainDepth)
	if err != nil {
		return nil, err
	}

	events := make([]model.TimelineEvent, 0, 16)
	for i := len(chain) - 1; i >= 0; i-- {
		season, err := c.db.GetLeagueByExternalID(ctx, chain[i].ExternalID)
		if err != nil {
			return nil, err
		}
		evs, err := c.seasonEvents(ctx, season, playerID)
		if err != nil {
			return nil, err
		}
		events = append(events, evs...)
	}

	sortTimeline(events)
	return filterDraftGlitches(events), nil
}

// seasonEvents collects one season's events for a player. A keeper pick
// produces a KEPT event typed from the keeper row; a live pick produces
// DRAFTED. Draft-time events carry no timestamp.
func (c *controller) seasonEvents(ctx context.Context, l *model.LeagueSeason, playerID string) ([]model.TimelineEvent, error) {
	rosters, err := c.db.GetRosters(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	owner := make(map[int32]string, len(rosters))
	for _, r := range rosters {
		owner[r.ID] = r.OwnerID
	}

	keepers, err := c.db.GetKeepers(ctx, l.ID, l.Season)
	if err != nil {
		return nil, err
	}
	keptType := make(map[int32]model.KeeperType)
	for _, k := range keepers {
		if k.PlayerID == playerID {
			keptType[k.RosterID] = k.Type
		}
	}

	var events []model.TimelineEvent

	picks, err := c.db.GetDraftPicks(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range picks {
		if p.PlayerID != playerID {
			continue
		}
		typ := model.EventDrafted
		if p.IsKeeper {
			typ = model.EventKeptRegular
			if keptType[p.RosterID] == model.KeeperFranchise {
				typ = model.EventKeptFranchise
			}
		}
		events = append(events, model.TimelineEvent{
			Type:     typ,
			LeagueID: l.ID,
			Season:   l.Season,
			Round:    p.Round,
			PlayerID: playerID,
			ToOwner:  owner[p.RosterID],
		})
	}

	txns, err := c.db.GetTransactions(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	for _, t := range txns {
		for _, item := range t.Items {
			if item.PlayerID != playerID {
				continue
			}
			ev := model.TimelineEvent{
				LeagueID: l.ID,
				Season:   l.Season,
				Week:     t.Week,
				PlayerID: playerID,
				Time:     t.Time,
			}
			if item.FromRosterID != nil {
				ev.FromOwner = owner[*item.FromRosterID]
			}
			if item.ToRosterID != nil {
				ev.ToOwner = owner[*item.ToRosterID]
			}

			switch {
			case item.ToRosterID == nil:
				ev.Type = model.EventDropped
			case t.Type == model.TransactionTrade:
				ev.Type = model.EventTraded
			case t.Type == model.TransactionWaiver:
				ev.Type = model.EventWaiver
			default:
				ev.Type = model.EventFreeAgent
			}
			events = append(events, ev)
		}
	}

	return events, nil
}

// sortTimeline orders events by season, then timestamp where both events have
// one, then the fixed event-type priority, then week. The priority fallback
// exists because draft-time events have no timestamps.
func sortTimeline(events []model.TimelineEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		if !a.Time.IsZero() && !b.Time.IsZero() && !a.Time.Equal(b.Time) {
			return a.Time.Before(b.Time)
		}
		if pa, pb := model.EventPriority(a.Type), model.EventPriority(b.Type); pa != pb {
			return pa < pb
		}
		return a.Week < b.Week
	})
}

// filterDraftGlitches removes draft-day correction pairs: a DROPPED event
// followed within the lookahead by a DRAFTED event in the same league no more
// than a day later. Both halves of the pair are removed. A DROPPED followed by
// a WAIVER or FREE_AGENT re-acquisition is a real drop and is never touched,
// and a DRAFTED event without a timestamp is never treated as a correction.
func filterDraftGlitches(events []model.TimelineEvent) []model.TimelineEvent {
	removed := make(map[int]bool)

	for i, ev := range events {
		if ev.Type != model.EventDropped || ev.Time.IsZero() || removed[i] {
			continue
		}
		for j := i + 1; j < len(events) && j <= i+glitchLookahead; j++ {
			if removed[j] {
				continue
			}
			cand := events[j]
			if cand.Type != model.EventDrafted || cand.LeagueID != ev.LeagueID || cand.Time.IsZero() {
				continue
			}
			if delta := cand.Time.Sub(ev.Time); delta >= 0 && delta <= glitchWindow {
				removed[i] = true
				removed[j] = true
				break
			}
		}
	}

	if len(removed) == 0 {
		return events
	}
	result := make([]model.TimelineEvent, 0, len(events)-len(removed))
	for i, ev := range events {
		if !removed[i] {
			result = append(result, ev)
		}
	}
	return result
}
