package controller

import (
	"context"
	"errors"
	"log"

	"github.com/keysesh/keeper-league-manager-sub004/db"
	"github.com/keysesh/keeper-league-manager-sub004/model"
	"github.com/keysesh/keeper-league-manager-sub004/sleeper"
)

// DefaultChainDepth bounds how many seasons back a league chain is followed.
const DefaultChainDepth = 10

func (c *controller) ResolveChain(ctx context.Context, externalID string, maxDepth int) ([]model.ChainEntry, error) {
	return c.resolveChain(ctx, externalID, maxDepth, false)
}

func (c *controller) ResolveChainRemote(ctx context.Context, externalID string, maxDepth int) ([]model.ChainEntry, error) {
	return c.resolveChain(ctx, externalID, maxDepth, true)
}

// resolveChain walks previous-league pointers starting at externalID and
// returns one entry per season found, newest first. The walk stops at the
// first broken link: the platform is occasionally missing historical seasons
// and a partial chain is still useful. A visited set and the depth bound
// guarantee progress even if the remote data contains a pointer cycle.
func (c *controller) resolveChain(ctx context.Context, externalID string, maxDepth int, fetch bool) ([]model.ChainEntry, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultChainDepth
	}

	chain := make([]model.ChainEntry, 0, maxDepth)
	visited := make(map[string]bool)

	id := externalID
	for depth := 0; depth < maxDepth && id != "" && !visited[id]; depth++ {
		visited[id] = true

		l, err := c.lookupSeason(ctx, id, fetch)
		if err != nil {
			if !errors.Is(err, db.ErrLeagueNotFound) && !errors.Is(err, sleeper.ErrLeagueNotFound) {
				return chain, err
			}
			// broken link, truncate
			break
		}

		chain = append(chain, model.ChainEntry{ExternalID: l.ExternalID, Season: l.Season})
		id = l.PreviousLeagueID
	}

	return chain, nil
}

// lookupSeason reads a season from local storage, optionally falling back to
// the platform. A season fetched remotely is upserted so the rest of the
// history sync can address it by external id.
func (c *controller) lookupSeason(ctx context.Context, externalID string, fetch bool) (*model.LeagueSeason, error) {
	l, err := c.db.GetLeagueByExternalID(ctx, externalID)
	if err == nil {
		return l, nil
	}
	if !errors.Is(err, db.ErrLeagueNotFound) || !fetch {
		return nil, err
	}

	remote, err := c.sleeper.GetLeague(externalID)
	if err != nil {
		log.Printf("league %s not available from platform: %v", externalID, err)
		return nil, err
	}
	if err := c.db.UpsertLeague(ctx, remote); err != nil {
		return nil, err
	}
	return remote, nil
}
