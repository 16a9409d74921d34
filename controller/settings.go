package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/keysesh/keeper-league-manager-sub004/db"
	"github.com/keysesh/keeper-league-manager-sub004/model"
)

// GetKeeperSettings returns the league's stored settings, or the defaults when
// nothing has been saved yet.
func (c *controller) GetKeeperSettings(ctx context.Context, leagueID int32) (*model.KeeperSettings, error) {
	s, err := c.db.GetKeeperSettings(ctx, leagueID)
	if err != nil {
		if errors.Is(err, db.ErrSettingsNotFound) {
			defaults := model.DefaultKeeperSettings()
			return &defaults, nil
		}
		return nil, err
	}
	return s, nil
}

func (c *controller) SaveKeeperSettings(ctx context.Context, leagueID int32, s *model.KeeperSettings) error {
	if err := c.validate.Struct(s); err != nil {
		return fmt.Errorf("invalid keeper settings: %w", err)
	}
	if s.MaxFranchiseTags+s.MaxRegularKeepers > s.MaxKeepers {
		return fmt.Errorf("maxFranchiseTags (%d) + maxRegularKeepers (%d) exceeds maxKeepers (%d)",
			s.MaxFranchiseTags, s.MaxRegularKeepers, s.MaxKeepers)
	}

	if _, err := c.db.GetLeague(ctx, leagueID); err != nil {
		return fmt.Errorf("error looking up league: %w", err)
	}

	return c.db.SaveKeeperSettings(ctx, leagueID, s)
}
