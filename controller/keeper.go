package controller

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/keysesh/keeper-league-manager-sub004/db"
	"github.com/keysesh/keeper-league-manager-sub004/model"
)

// KeeperComputation is the result of one engine pass. Cap violations are
// advisory: the engine computes cost and type for every candidate and reports
// rosters over the caps instead of deciding who gets cut.
type KeeperComputation struct {
	Records    []model.KeeperRecord `json:"records"`
	Violations []string             `json:"violations"`
	// Preserved counts commissioner-overridden rows the recompute left alone.
	Preserved int `json:"preserved"`
}

// engineInput is everything the cost engine needs to compute one season's
// keepers. It is assembled from persisted history so the computation itself is
// a deterministic function of (history, settings).
type engineInput struct {
	Season       int
	DeadlineWeek int                     // the prior season's trade deadline week
	Picks        []model.DraftPickRecord // the season's draft picks
	RosterOwner  map[int32]string        // roster row id -> stable owner id
	PriorKeepers map[string]priorKeeper  // player id -> prior season's keeper row
	PriorRounds  map[string]int          // player id -> round drafted in the prior season
	Acquisitions map[string]acquisition  // player id -> latest prior-season acquisition
}

type priorKeeper struct {
	OwnerID   string
	Type      model.KeeperType
	BaseCost  int
	YearsKept int
}

type acquisition struct {
	OwnerID string
	Week    int
	Type    model.TransactionType
}

// computeSeasonKeepers derives a keeper record for every draft pick flagged as
// a keeper. yearsKept counts completed keeper seasons and increments at the
// following draft: a freshly kept player enters its first keeper draft with
// yearsKept=0.
//
// The cascade carries across seasons only while the player stays with the same
// stable owner, or was acquired by the new owner in a trade before the prior
// season's deadline week. Any later acquisition resets the player to fresh.
func computeSeasonKeepers(in *engineInput, settings model.KeeperSettings) ([]model.KeeperRecord, []string) {
	records := make([]model.KeeperRecord, 0, len(in.Picks))

	for _, pick := range in.Picks {
		if !pick.IsKeeper {
			continue
		}
		owner := in.RosterOwner[pick.RosterID]
		if owner == "" {
			continue
		}

		base := settings.UndraftedRound
		if r, ok := in.PriorRounds[pick.PlayerID]; ok && r > 0 {
			base = r
		}

		years := 0
		typ := model.KeeperRegular
		if prior, ok := in.PriorKeepers[pick.PlayerID]; ok {
			carried := prior.OwnerID == owner
			if !carried {
				acq, ok := in.Acquisitions[pick.PlayerID]
				if ok && acq.OwnerID == owner && acq.Type == model.TransactionTrade && acq.Week <= in.DeadlineWeek {
					carried = true
				}
			}
			if carried {
				years = prior.YearsKept + 1
				typ = prior.Type
				base = prior.BaseCost
			}
		}

		records = append(records, model.KeeperRecord{
			RosterID:  pick.RosterID,
			PlayerID:  pick.PlayerID,
			Season:    in.Season,
			Type:      typ,
			BaseCost:  base,
			FinalCost: finalCost(typ, base, years, settings),
			YearsKept: years,
		})
	}

	return records, capViolations(records, settings)
}

func finalCost(typ model.KeeperType, base, years int, settings model.KeeperSettings) int {
	// a franchise tag always costs round 1, no matter the cascade
	if typ == model.KeeperFranchise {
		return 1
	}

	cost := base - settings.CostReductionPerYear*years
	if cost < settings.MinimumRound {
		cost = settings.MinimumRound
	}
	if cost > base {
		cost = base
	}
	return cost
}

// capViolations reports every advisory cap breach. Resolving one (deciding who
// gets cut) is a human decision, so nothing is removed here.
func capViolations(records []model.KeeperRecord, settings model.KeeperSettings) []string {
	type counts struct {
		total     int
		franchise int
		regular   int
	}
	perRoster := make(map[int32]*counts)

	var violations []string
	for _, r := range records {
		c := perRoster[r.RosterID]
		if c == nil {
			c = &counts{}
			perRoster[r.RosterID] = c
		}
		c.total++
		if r.Type == model.KeeperFranchise {
			c.franchise++
		} else {
			c.regular++
			if r.YearsKept >= settings.RegularKeeperMaxYears {
				violations = append(violations, fmt.Sprintf(
					"player %s on roster %d has been kept %d years (max %d)",
					r.PlayerID, r.RosterID, r.YearsKept, settings.RegularKeeperMaxYears))
			}
		}
	}

	rosterIDs := make([]int32, 0, len(perRoster))
	for id := range perRoster {
		rosterIDs = append(rosterIDs, id)
	}
	sort.Slice(rosterIDs, func(i, j int) bool { return rosterIDs[i] < rosterIDs[j] })

	for _, id := range rosterIDs {
		c := perRoster[id]
		if c.total > settings.MaxKeepers {
			violations = append(violations, fmt.Sprintf(
				"roster %d has %d keepers (max %d)", id, c.total, settings.MaxKeepers))
		}
		if c.franchise > settings.MaxFranchiseTags {
			violations = append(violations, fmt.Sprintf(
				"roster %d has %d franchise tags (max %d)", id, c.franchise, settings.MaxFranchiseTags))
		}
		if c.regular > settings.MaxRegularKeepers {
			violations = append(violations, fmt.Sprintf(
				"roster %d has %d regular keepers (max %d)", id, c.regular, settings.MaxRegularKeepers))
		}
	}
	return violations
}

// UpdateKeepers recomputes the league's keeper rows from draft history.
// Commissioner-overridden rows are preserved unless force is set.
func (c *controller) UpdateKeepers(ctx context.Context, leagueID int32, force bool) (*KeeperComputation, error) {
	l, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error looking up league: %w", err)
	}

	settings, err := c.GetKeeperSettings(ctx, l.ID)
	if err != nil {
		return nil, err
	}

	in, err := c.buildEngineInput(ctx, l)
	if err != nil {
		return nil, err
	}

	existing, err := c.db.GetKeepers(ctx, l.ID, l.Season)
	if err != nil {
		return nil, err
	}
	overridden := make(map[string]bool)
	for _, k := range existing {
		if k.Overridden() {
			overridden[keeperKey(k.RosterID, k.PlayerID)] = true
		}
	}

	records, violations := computeSeasonKeepers(in, *settings)

	comp := &KeeperComputation{Violations: violations}
	for _, r := range records {
		if !force && overridden[keeperKey(r.RosterID, r.PlayerID)] {
			comp.Preserved++
			continue
		}
		if err := c.db.UpsertKeeper(ctx, &r); err != nil {
			return nil, err
		}
		comp.Records = append(comp.Records, r)
	}
	return comp, nil
}

func (c *controller) buildEngineInput(ctx context.Context, l *model.LeagueSeason) (*engineInput, error) {
	picks, err := c.db.GetDraftPicks(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	rosters, err := c.db.GetRosters(ctx, l.ID)
	if err != nil {
		return nil, err
	}

	in := &engineInput{
		Season:       l.Season,
		Picks:        picks,
		RosterOwner:  make(map[int32]string, len(rosters)),
		PriorKeepers: make(map[string]priorKeeper),
		PriorRounds:  make(map[string]int),
		Acquisitions: make(map[string]acquisition),
	}
	for _, r := range rosters {
		in.RosterOwner[r.ID] = r.OwnerID
	}

	if l.PreviousLeagueID == "" {
		return in, nil
	}

	prev, err := c.db.GetLeagueByExternalID(ctx, l.PreviousLeagueID)
	if err != nil {
		// a broken backward pointer means no history to cascade from
		if errors.Is(err, db.ErrLeagueNotFound) {
			return in, nil
		}
		return nil, err
	}
	in.DeadlineWeek = prev.TradeDeadline

	prevRosters, err := c.db.GetRosters(ctx, prev.ID)
	if err != nil {
		return nil, err
	}
	prevOwner := make(map[int32]string, len(prevRosters))
	for _, r := range prevRosters {
		prevOwner[r.ID] = r.OwnerID
	}

	prevKeepers, err := c.db.GetKeepers(ctx, prev.ID, prev.Season)
	if err != nil {
		return nil, err
	}
	for _, k := range prevKeepers {
		in.PriorKeepers[k.PlayerID] = priorKeeper{
			OwnerID:   prevOwner[k.RosterID],
			Type:      k.Type,
			BaseCost:  k.BaseCost,
			YearsKept: k.YearsKept,
		}
	}

	prevPicks, err := c.db.GetDraftPicks(ctx, prev.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range prevPicks {
		in.PriorRounds[p.PlayerID] = p.Round
	}

	// transactions come back in time order, so later acquisitions win
	prevTxns, err := c.db.GetTransactions(ctx, prev.ID)
	if err != nil {
		return nil, err
	}
	for _, t := range prevTxns {
		for _, item := range t.Items {
			if item.ToRosterID == nil {
				continue
			}
			owner := prevOwner[*item.ToRosterID]
			if owner == "" {
				continue
			}
			in.Acquisitions[item.PlayerID] = acquisition{
				OwnerID: owner,
				Week:    t.Week,
				Type:    t.Type,
			}
		}
	}

	return in, nil
}

func (c *controller) GetKeepers(ctx context.Context, leagueID int32, season int) ([]model.KeeperRecord, error) {
	if season == 0 {
		l, err := c.db.GetLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		season = l.Season
	}
	return c.db.GetKeepers(ctx, leagueID, season)
}

// OverrideRequest is a commissioner action on a keeper outside the engine's
// normal rules. A free-text reason is mandatory and lands in the append-only
// audit trail.
type OverrideRequest struct {
	LeagueID int32            `json:"leagueId"`
	RosterID int32            `json:"rosterId"`
	PlayerID string           `json:"playerId" validate:"required"`
	Season   int              `json:"season"`
	Action   string           `json:"action" validate:"required,oneof=add remove retype"`
	Type     model.KeeperType `json:"type"`
	Cost     int              `json:"cost"`
	Reason   string           `json:"reason" validate:"required"`
}

func (c *controller) OverrideKeeper(ctx context.Context, req OverrideRequest) error {
	if err := c.validate.Struct(&req); err != nil {
		return fmt.Errorf("invalid override request: %w", err)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return errors.New("an override reason must be provided")
	}

	l, err := c.db.GetLeague(ctx, req.LeagueID)
	if err != nil {
		return fmt.Errorf("error looking up league: %w", err)
	}
	if req.Season == 0 {
		req.Season = l.Season
	}

	switch req.Action {
	case model.OverrideActionAdd, model.OverrideActionRetype:
		settings, err := c.GetKeeperSettings(ctx, l.ID)
		if err != nil {
			return err
		}

		typ := req.Type
		if typ == "" {
			typ = model.KeeperRegular
		}
		cost := req.Cost
		if cost == 0 {
			cost = settings.UndraftedRound
		}
		if typ == model.KeeperFranchise {
			cost = 1
		}

		record := &model.KeeperRecord{
			RosterID:   req.RosterID,
			PlayerID:   req.PlayerID,
			Season:     req.Season,
			Type:       typ,
			BaseCost:   cost,
			FinalCost:  cost,
			Annotation: model.OverrideAnnotationPrefix + " " + req.Reason,
		}
		if err := c.db.UpsertKeeper(ctx, record); err != nil {
			return err
		}
	case model.OverrideActionRemove:
		if err := c.db.DeleteKeeper(ctx, req.RosterID, req.PlayerID, req.Season); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown override action: %s", req.Action)
	}

	return c.db.AddKeeperOverride(ctx, &model.KeeperOverride{
		LeagueID: req.LeagueID,
		RosterID: req.RosterID,
		PlayerID: req.PlayerID,
		Season:   req.Season,
		Action:   req.Action,
		Reason:   req.Reason,
	})
}

func (c *controller) GetKeeperOverrides(ctx context.Context, leagueID int32) ([]model.KeeperOverride, error) {
	return c.db.GetKeeperOverrides(ctx, leagueID)
}

func keeperKey(rosterID int32, playerID string) string {
	return fmt.Sprintf("%d|%s", rosterID, playerID)
}
