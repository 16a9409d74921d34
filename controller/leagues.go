package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/keysesh/keeper-league-manager-sub004/db"
	"github.com/keysesh/keeper-league-manager-sub004/model"
	"github.com/keysesh/keeper-league-manager-sub004/sleeper"
)

// AddLeague registers a league by its platform id. Metadata comes straight
// from the platform; rosters, drafts and history arrive with the first sync.
func (c *controller) AddLeague(ctx context.Context, externalID string) (*model.LeagueSeason, error) {
	l, err := c.sleeper.GetLeague(externalID)
	if err != nil {
		return nil, fmt.Errorf("error fetching league %s: %w", externalID, err)
	}

	if err := c.db.UpsertLeague(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (c *controller) GetLeague(ctx context.Context, id int32) (*model.LeagueSeason, error) {
	return c.db.GetLeague(ctx, id)
}

func (c *controller) ListLeagues(ctx context.Context) ([]model.LeagueSeason, error) {
	return c.db.ListLeagues(ctx)
}

func (c *controller) DeleteLeague(ctx context.Context, id int32) error {
	if _, err := c.db.GetLeague(ctx, id); err != nil {
		return err
	}
	return c.db.DeleteLeague(ctx, id)
}

// GetLeaguesForUser lists the leagues a platform user belongs to in a season,
// for picking which one to register.
func (c *controller) GetLeaguesForUser(ctx context.Context, username, season string) ([]model.LeagueSeason, error) {
	userID, err := c.sleeper.GetUserID(username)
	if err != nil {
		return nil, err
	}
	return c.sleeper.GetUserLeagues(userID, season)
}

// GetChampion resolves the winner of the league's playoff bracket to a local
// roster. Bracket matches address teams by roster slot, so the slot has to be
// translated through the platform rosters to a stable owner id first.
func (c *controller) GetChampion(ctx context.Context, leagueID int32) (*model.RosterSeason, error) {
	l, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error looking up league: %w", err)
	}

	bracket, err := c.sleeper.GetWinnersBracket(l.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("error fetching winners bracket: %w", err)
	}
	slot := championSlot(bracket)
	if slot == 0 {
		return nil, errors.New("champion has not been decided yet")
	}

	remote, err := c.sleeper.GetRosters(l.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("error fetching rosters: %w", err)
	}
	var ownerID string
	for _, r := range remote {
		if r.Slot == slot {
			ownerID = r.OwnerID
			break
		}
	}
	if ownerID == "" {
		return nil, fmt.Errorf("no roster found for bracket slot %d", slot)
	}

	rosters, err := c.db.GetRosters(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	for _, r := range rosters {
		if r.OwnerID == ownerID {
			return &r, nil
		}
	}
	return nil, db.ErrRosterNotFound
}

// championSlot returns the winner of the championship match, or 0 if the
// bracket is empty or unfinished. The final round holds both the championship
// and the consolation match; the championship is the lowest-numbered match.
func championSlot(bracket []sleeper.BracketMatch) int {
	finalRound := 0
	for _, m := range bracket {
		if m.Round > finalRound {
			finalRound = m.Round
		}
	}

	winner := 0
	matchNo := 0
	for _, m := range bracket {
		if m.Round != finalRound || m.Winner == 0 {
			continue
		}
		if matchNo == 0 || m.Match < matchNo {
			matchNo = m.Match
			winner = m.Winner
		}
	}
	return winner
}
