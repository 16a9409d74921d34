package controller

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/keysesh/keeper-league-manager-sub004/model"
	"github.com/keysesh/keeper-league-manager-sub004/sleeper"
)

// staleWindow is how old a league's last sync may be before the status
// endpoint reports it as needing a sync.
const staleWindow = 6 * time.Hour

// slotMap translates the platform's per-season roster slots into stable owner
// ids and local roster row ids. It is rebuilt from the roster fetch on every
// sync pass; slots are re-assigned every season and must never be persisted.
type slotMap struct {
	owners  map[int]string   // slot -> stable owner id
	rosters map[string]int32 // stable owner id -> roster row id
}

func (m *slotMap) ownerForSlot(slot int) (string, bool) {
	owner, ok := m.owners[slot]
	return owner, ok
}

func (m *slotMap) rosterForSlot(slot int) (int32, bool) {
	owner, ok := m.owners[slot]
	if !ok {
		return 0, false
	}
	id, ok := m.rosters[owner]
	return id, ok
}

func (m *slotMap) rosterForOwner(owner string) (int32, bool) {
	id, ok := m.rosters[owner]
	return id, ok
}

func (c *controller) RefreshLeague(ctx context.Context, leagueID int32) (*model.SyncResult, error) {
	l, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error looking up league: %w", err)
	}

	res, _, err := c.refresh(ctx, l)
	if err != nil {
		return nil, err
	}

	if err := c.db.MarkLeagueSynced(ctx, l.ID); err != nil {
		return nil, err
	}
	res.Message = "refresh complete"
	return res, nil
}

func (c *controller) SyncLeague(ctx context.Context, leagueID int32) (*model.SyncResult, error) {
	l, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error looking up league: %w", err)
	}

	res, err := c.syncSeason(ctx, l)
	if err != nil {
		return nil, err
	}

	comp, err := c.UpdateKeepers(ctx, l.ID, false)
	if err != nil {
		return nil, fmt.Errorf("error recomputing keepers: %w", err)
	}
	res.Keepers = len(comp.Records)

	if err := c.db.MarkLeagueSynced(ctx, l.ID); err != nil {
		return nil, err
	}
	res.Message = "sync complete"
	return res, nil
}

func (c *controller) SyncLeagueDrafts(ctx context.Context, leagueID int32) (*model.SyncResult, error) {
	l, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error looking up league: %w", err)
	}

	res, slots, err := c.refresh(ctx, l)
	if err != nil {
		return nil, err
	}
	if err := c.syncDrafts(ctx, l, slots, res); err != nil {
		return nil, err
	}
	if err := c.db.MarkLeagueSynced(ctx, l.ID); err != nil {
		return nil, err
	}
	res.Message = "draft sync complete"
	return res, nil
}

// SyncLeagueHistory resolves the full league chain and syncs every season in
// it, oldest first. Keeper costs are then recomputed oldest to newest so the
// year-over-year cascade always sees prior seasons already materialized.
// A failing season is skipped, not fatal: later seasons still sync.
func (c *controller) SyncLeagueHistory(ctx context.Context, leagueID int32) (*model.SyncResult, error) {
	l, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error looking up league: %w", err)
	}

	chain, err := c.ResolveChainRemote(ctx, l.ExternalID, DefaultChainDepth)
	if err != nil {
		return nil, fmt.Errorf("error resolving league chain: %w", err)
	}

	res := &model.SyncResult{LeagueID: leagueID}
	for i := len(chain) - 1; i >= 0; i-- {
		sl, err := c.db.GetLeagueByExternalID(ctx, chain[i].ExternalID)
		if err != nil {
			log.Printf("skipping season %d (%s): %v", chain[i].Season, chain[i].ExternalID, err)
			res.Skipped++
			continue
		}

		r, err := c.syncSeason(ctx, sl)
		if err != nil {
			log.Printf("error syncing season %d (%s): %v", sl.Season, sl.ExternalID, err)
			res.Skipped++
			continue
		}
		res.Merge(r)
		res.Seasons++

		if err := c.db.MarkLeagueSynced(ctx, sl.ID); err != nil {
			return nil, err
		}
	}

	for i := len(chain) - 1; i >= 0; i-- {
		sl, err := c.db.GetLeagueByExternalID(ctx, chain[i].ExternalID)
		if err != nil {
			continue
		}
		comp, err := c.UpdateKeepers(ctx, sl.ID, false)
		if err != nil {
			log.Printf("error recomputing keepers for season %d: %v", sl.Season, err)
			continue
		}
		res.Keepers += len(comp.Records)
	}

	res.Message = fmt.Sprintf("history sync complete, %d seasons", res.Seasons)
	return res, nil
}

func (c *controller) SyncAllLeagues(ctx context.Context) []error {
	leagues, err := c.db.ListSyncedLeagues(ctx)
	if err != nil {
		return []error{fmt.Errorf("error listing leagues: %w", err)}
	}

	var errs []error
	for _, l := range leagues {
		if _, err := c.SyncLeague(ctx, l.ID); err != nil {
			// one bad league must not block fresh data for the others
			errs = append(errs, fmt.Errorf("league %d (%s): %w", l.ID, l.Name, err))
		}
	}
	return errs
}

func (c *controller) GetSyncStatus(ctx context.Context, leagueID int32) (*model.SyncStatus, error) {
	l, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	status := &model.SyncStatus{LastSyncedAt: l.LastSyncedAt}
	if l.LastSyncedAt.IsZero() || c.clock.Now().Sub(l.LastSyncedAt) > staleWindow {
		status.NeedsSync = true
	}
	return status, nil
}

// syncSeason is the standard sync for one season: refresh, then drafts,
// traded picks and transactions. Keeper recompute is the caller's business
// because history sync needs all seasons written before any costs cascade.
func (c *controller) syncSeason(ctx context.Context, l *model.LeagueSeason) (*model.SyncResult, error) {
	res, slots, err := c.refresh(ctx, l)
	if err != nil {
		return nil, err
	}

	if err := c.syncDrafts(ctx, l, slots, res); err != nil {
		return nil, err
	}
	if err := c.syncTradedPicks(ctx, l, slots, res); err != nil {
		return nil, err
	}
	if err := c.syncTransactions(ctx, l, slots, res); err != nil {
		return nil, err
	}
	return res, nil
}

// refresh fetches league metadata, rosters and users concurrently, upserts the
// league and its rosters, and builds the slot map every later step depends on.
func (c *controller) refresh(ctx context.Context, l *model.LeagueSeason) (*model.SyncResult, *slotMap, error) {
	var (
		wg         sync.WaitGroup
		rosters    []sleeper.Roster
		users      []sleeper.User
		rostersErr error
		usersErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		rosters, rostersErr = c.sleeper.GetRosters(l.ExternalID)
	}()
	go func() {
		defer wg.Done()
		users, usersErr = c.sleeper.GetUsers(l.ExternalID)
	}()

	remote, err := c.sleeper.GetLeague(l.ExternalID)
	wg.Wait()

	if err != nil {
		return nil, nil, fmt.Errorf("error fetching league %s: %w", l.ExternalID, err)
	}
	if rostersErr != nil {
		return nil, nil, fmt.Errorf("error fetching rosters for %s: %w", l.ExternalID, rostersErr)
	}
	if usersErr != nil {
		return nil, nil, fmt.Errorf("error fetching users for %s: %w", l.ExternalID, usersErr)
	}

	if err := c.db.UpsertLeague(ctx, remote); err != nil {
		return nil, nil, err
	}
	*l = *remote

	names := make(map[string]string, len(users))
	for _, u := range users {
		name := u.TeamName
		if name == "" {
			name = u.DisplayName
		}
		names[u.ID] = name
	}

	res := &model.SyncResult{LeagueID: l.ID}
	slots := &slotMap{
		owners:  make(map[int]string, len(rosters)),
		rosters: make(map[string]int32, len(rosters)),
	}
	for _, r := range rosters {
		if r.OwnerID == "" {
			log.Printf("roster slot %d in league %s has no owner, skipping", r.Slot, l.ExternalID)
			res.Skipped++
			continue
		}

		row := &model.RosterSeason{
			LeagueID:      l.ID,
			OwnerID:       r.OwnerID,
			DisplayName:   names[r.OwnerID],
			Wins:          r.Wins,
			Losses:        r.Losses,
			Ties:          r.Ties,
			PointsFor:     r.PointsFor,
			PointsAgainst: r.PointsAgainst,
		}
		if err := c.db.UpsertRoster(ctx, row); err != nil {
			return nil, nil, err
		}

		slots.owners[r.Slot] = r.OwnerID
		slots.rosters[r.OwnerID] = row.ID
		res.Rosters++
	}

	return res, slots, nil
}

func (c *controller) syncDrafts(ctx context.Context, l *model.LeagueSeason, slots *slotMap, res *model.SyncResult) error {
	drafts, err := c.sleeper.GetDrafts(l.ExternalID)
	if err != nil {
		return fmt.Errorf("error fetching drafts for %s: %w", l.ExternalID, err)
	}

	for _, d := range drafts {
		picks, err := c.sleeper.GetDraftPicks(d.ExternalID)
		if err != nil {
			return fmt.Errorf("error fetching picks for draft %s: %w", d.ExternalID, err)
		}

		season := d.Season
		if season == 0 {
			season = l.Season
		}
		for _, p := range picks {
			rosterID, ok := slots.rosterForSlot(p.Slot)
			if !ok {
				log.Printf("no roster for slot %d in draft %s, skipping pick %d.%d",
					p.Slot, d.ExternalID, p.Round, p.PickNo)
				res.Skipped++
				continue
			}

			record := &model.DraftPickRecord{
				DraftID:  d.ExternalID,
				LeagueID: l.ID,
				Season:   season,
				Round:    p.Round,
				PickNo:   p.PickNo,
				PlayerID: p.PlayerID,
				RosterID: rosterID,
				IsKeeper: p.IsKeeper,
			}
			if err := c.db.UpsertDraftPick(ctx, record); err != nil {
				return err
			}
			res.Picks++
		}
	}
	return nil
}

func (c *controller) syncTradedPicks(ctx context.Context, l *model.LeagueSeason, slots *slotMap, res *model.SyncResult) error {
	picks, err := c.sleeper.GetTradedPicks(l.ExternalID)
	if err != nil {
		return fmt.Errorf("error fetching traded picks for %s: %w", l.ExternalID, err)
	}

	for _, p := range picks {
		original, ok := slots.ownerForSlot(p.OriginalSlot)
		if !ok {
			log.Printf("no owner for original slot %d in league %s, skipping traded pick", p.OriginalSlot, l.ExternalID)
			res.Skipped++
			continue
		}
		current, ok := slots.ownerForSlot(p.CurrentSlot)
		if !ok {
			log.Printf("no owner for current slot %d in league %s, skipping traded pick", p.CurrentSlot, l.ExternalID)
			res.Skipped++
			continue
		}

		record := &model.TradedPickRecord{
			LeagueID:       l.ID,
			Season:         p.Season,
			Round:          p.Round,
			OriginalOwner:  original,
			CurrentOwnerID: current,
		}
		if err := c.db.UpsertTradedPick(ctx, record); err != nil {
			return err
		}
		res.TradedPicks++
	}
	return nil
}

// syncTransactions fetches every week's transaction page concurrently, then
// writes the new ones. Transactions already stored are skipped by external id;
// a transaction whose slots can't be resolved is skipped alone, never aborting
// the rest of the batch.
func (c *controller) syncTransactions(ctx context.Context, l *model.LeagueSeason, slots *slotMap, res *model.SyncResult) error {
	weekly := make([][]sleeper.Transaction, sleeper.TransactionWeeks+1)
	errs := make([]error, sleeper.TransactionWeeks+1)

	var wg sync.WaitGroup
	for w := 0; w <= sleeper.TransactionWeeks; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			weekly[w], errs[w] = c.sleeper.GetTransactions(l.ExternalID, w)
		}(w)
	}
	wg.Wait()

	for w, err := range errs {
		if err != nil {
			return fmt.Errorf("error fetching week %d transactions for %s: %w", w, l.ExternalID, err)
		}
	}

	for _, txns := range weekly {
		for _, t := range txns {
			if t.Status != "complete" {
				continue
			}

			exists, err := c.db.HasTransaction(ctx, l.ID, t.ExternalID)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			record, err := buildTransaction(l, &t, slots)
			if err != nil {
				log.Printf("skipping transaction %s in league %s: %v", t.ExternalID, l.ExternalID, err)
				res.Skipped++
				continue
			}
			if err := c.db.SaveTransaction(ctx, record); err != nil {
				return err
			}
			res.Transactions++
		}
	}
	return nil
}

// buildTransaction translates a platform transaction's slot-addressed adds and
// drops into roster row references. A player in both maps moved between
// rosters; a player only in drops was released to the pool.
func buildTransaction(l *model.LeagueSeason, t *sleeper.Transaction, slots *slotMap) (*model.TransactionRecord, error) {
	items := make([]model.TransactionItem, 0, len(t.Adds)+len(t.Drops))

	for playerID, slot := range t.Adds {
		to, ok := slots.rosterForSlot(slot)
		if !ok {
			return nil, fmt.Errorf("no roster for slot %d (add %s)", slot, playerID)
		}
		item := model.TransactionItem{PlayerID: playerID, ToRosterID: &to}

		if fromSlot, dropped := t.Drops[playerID]; dropped {
			from, ok := slots.rosterForSlot(fromSlot)
			if !ok {
				return nil, fmt.Errorf("no roster for slot %d (drop %s)", fromSlot, playerID)
			}
			item.FromRosterID = &from
		}
		items = append(items, item)
	}

	for playerID, slot := range t.Drops {
		if _, added := t.Adds[playerID]; added {
			continue
		}
		from, ok := slots.rosterForSlot(slot)
		if !ok {
			return nil, fmt.Errorf("no roster for slot %d (drop %s)", slot, playerID)
		}
		items = append(items, model.TransactionItem{PlayerID: playerID, FromRosterID: &from})
	}

	return &model.TransactionRecord{
		LeagueID:   l.ID,
		ExternalID: t.ExternalID,
		Type:       t.Type,
		Status:     t.Status,
		Week:       t.Week,
		Season:     l.Season,
		Time:       t.Time,
		Items:      items,
	}, nil
}
