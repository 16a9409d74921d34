package mocksleeper

import (
	"github.com/keysesh/keeper-league-manager-sub004/model"
	"github.com/keysesh/keeper-league-manager-sub004/sleeper"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (c *Client) GetLeague(leagueID string) (*model.LeagueSeason, error) {
	args := c.Called(leagueID)

	var l *model.LeagueSeason
	if args.Get(0) != nil {
		l = args.Get(0).(*model.LeagueSeason)
	}
	return l, args.Error(1)
}

func (c *Client) GetRosters(leagueID string) ([]sleeper.Roster, error) {
	args := c.Called(leagueID)

	var res []sleeper.Roster
	if args.Get(0) != nil {
		res = args.Get(0).([]sleeper.Roster)
	}
	return res, args.Error(1)
}

func (c *Client) GetUsers(leagueID string) ([]sleeper.User, error) {
	args := c.Called(leagueID)

	var res []sleeper.User
	if args.Get(0) != nil {
		res = args.Get(0).([]sleeper.User)
	}
	return res, args.Error(1)
}

func (c *Client) GetDrafts(leagueID string) ([]model.Draft, error) {
	args := c.Called(leagueID)

	var res []model.Draft
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Draft)
	}
	return res, args.Error(1)
}

func (c *Client) GetDraftPicks(draftID string) ([]sleeper.DraftPick, error) {
	args := c.Called(draftID)

	var res []sleeper.DraftPick
	if args.Get(0) != nil {
		res = args.Get(0).([]sleeper.DraftPick)
	}
	return res, args.Error(1)
}

func (c *Client) GetTradedPicks(leagueID string) ([]sleeper.TradedPick, error) {
	args := c.Called(leagueID)

	var res []sleeper.TradedPick
	if args.Get(0) != nil {
		res = args.Get(0).([]sleeper.TradedPick)
	}
	return res, args.Error(1)
}

func (c *Client) GetTransactions(leagueID string, week int) ([]sleeper.Transaction, error) {
	args := c.Called(leagueID, week)

	var res []sleeper.Transaction
	if args.Get(0) != nil {
		res = args.Get(0).([]sleeper.Transaction)
	}
	return res, args.Error(1)
}

func (c *Client) GetWinnersBracket(leagueID string) ([]sleeper.BracketMatch, error) {
	args := c.Called(leagueID)

	var res []sleeper.BracketMatch
	if args.Get(0) != nil {
		res = args.Get(0).([]sleeper.BracketMatch)
	}
	return res, args.Error(1)
}

func (c *Client) GetLosersBracket(leagueID string) ([]sleeper.BracketMatch, error) {
	args := c.Called(leagueID)

	var res []sleeper.BracketMatch
	if args.Get(0) != nil {
		res = args.Get(0).([]sleeper.BracketMatch)
	}
	return res, args.Error(1)
}

func (c *Client) GetUserID(username string) (string, error) {
	args := c.Called(username)
	return args.String(0), args.Error(1)
}

func (c *Client) GetUserLeagues(userID, season string) ([]model.LeagueSeason, error) {
	args := c.Called(userID, season)

	var res []model.LeagueSeason
	if args.Get(0) != nil {
		res = args.Get(0).([]model.LeagueSeason)
	}
	return res, args.Error(1)
}

func (c *Client) LoadPlayers() ([]model.Player, error) {
	args := c.Called()

	var res []model.Player
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Player)
	}
	return res, args.Error(1)
}
