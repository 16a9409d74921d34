package sleeper

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/keysesh/keeper-league-manager-sub004/model"
)

const SleeperURL = "https://api.sleeper.app"

// TransactionWeeks is the number of weekly transaction pages the platform
// serves per season, week 0 included.
const TransactionWeeks = 18

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrLeagueNotFound = errors.New("league not found")
)

// Client is the read-only interface to the external fantasy platform. All ids
// are the platform's own: string league/user ids, plus per-season integer
// roster slots in draft and traded-pick data. Slots are re-assigned every
// season and must never be treated as stable identity.
type Client interface {
	GetLeague(leagueID string) (*model.LeagueSeason, error)
	GetRosters(leagueID string) ([]Roster, error)
	GetUsers(leagueID string) ([]User, error)
	GetDrafts(leagueID string) ([]model.Draft, error)
	GetDraftPicks(draftID string) ([]DraftPick, error)
	GetTradedPicks(leagueID string) ([]TradedPick, error)
	GetTransactions(leagueID string, week int) ([]Transaction, error)
	GetWinnersBracket(leagueID string) ([]BracketMatch, error)
	GetLosersBracket(leagueID string) ([]BracketMatch, error)
	GetUserID(username string) (string, error)
	GetUserLeagues(userID, season string) ([]model.LeagueSeason, error)
	LoadPlayers() ([]model.Player, error)
}

type client struct {
	url        string
	httpClient *http.Client
}

func New() (Client, error) {
	return NewForTest(SleeperURL), nil
}

// NewForTest returns a client pointed at a fake server.
func NewForTest(url string) Client {
	return &client{
		url: url,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
	}
}

func (c *client) GetLeague(leagueID string) (*model.LeagueSeason, error) {
	var parsed *sleeperLeague
	if err := c.get(fmt.Sprintf("/v1/league/%s", leagueID), &parsed); err != nil {
		return nil, err
	}
	// An unknown league returns 200 with "null" as the body.
	if parsed == nil || parsed.LeagueID == "" {
		return nil, ErrLeagueNotFound
	}
	return parsed.toLeagueSeason(), nil
}

func (c *client) GetRosters(leagueID string) ([]Roster, error) {
	var parsed []sleeperRoster
	if err := c.get(fmt.Sprintf("/v1/league/%s/rosters", leagueID), &parsed); err != nil {
		return nil, err
	}

	rosters := make([]Roster, 0, len(parsed))
	for _, r := range parsed {
		rosters = append(rosters, r.toRoster())
	}
	return rosters, nil
}

func (c *client) GetUsers(leagueID string) ([]User, error) {
	var parsed []sleeperUser
	if err := c.get(fmt.Sprintf("/v1/league/%s/users", leagueID), &parsed); err != nil {
		return nil, err
	}

	users := make([]User, 0, len(parsed))
	for _, u := range parsed {
		users = append(users, u.toUser())
	}
	return users, nil
}

func (c *client) GetDrafts(leagueID string) ([]model.Draft, error) {
	var parsed []sleeperDraft
	if err := c.get(fmt.Sprintf("/v1/league/%s/drafts", leagueID), &parsed); err != nil {
		return nil, err
	}

	drafts := make([]model.Draft, 0, len(parsed))
	for _, d := range parsed {
		drafts = append(drafts, d.toDraft())
	}
	return drafts, nil
}

func (c *client) GetDraftPicks(draftID string) ([]DraftPick, error) {
	var parsed []sleeperDraftPick
	if err := c.get(fmt.Sprintf("/v1/draft/%s/picks", draftID), &parsed); err != nil {
		return nil, err
	}

	picks := make([]DraftPick, 0, len(parsed))
	for _, p := range parsed {
		picks = append(picks, p.toDraftPick())
	}
	return picks, nil
}

func (c *client) GetTradedPicks(leagueID string) ([]TradedPick, error) {
	var parsed []sleeperTradedPick
	if err := c.get(fmt.Sprintf("/v1/league/%s/traded_picks", leagueID), &parsed); err != nil {
		return nil, err
	}

	picks := make([]TradedPick, 0, len(parsed))
	for _, p := range parsed {
		picks = append(picks, p.toTradedPick())
	}
	return picks, nil
}

func (c *client) GetTransactions(leagueID string, week int) ([]Transaction, error) {
	var parsed []sleeperTransaction
	if err := c.get(fmt.Sprintf("/v1/league/%s/transactions/%d", leagueID, week), &parsed); err != nil {
		return nil, err
	}

	txns := make([]Transaction, 0, len(parsed))
	for _, t := range parsed {
		txns = append(txns, t.toTransaction(week))
	}
	return txns, nil
}

func (c *client) GetWinnersBracket(leagueID string) ([]BracketMatch, error) {
	return c.getBracket(fmt.Sprintf("/v1/league/%s/winners_bracket", leagueID))
}

func (c *client) GetLosersBracket(leagueID string) ([]BracketMatch, error) {
	return c.getBracket(fmt.Sprintf("/v1/league/%s/losers_bracket", leagueID))
}

func (c *client) getBracket(path string) ([]BracketMatch, error) {
	var parsed []BracketMatch
	if err := c.get(path, &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

func (c *client) GetUserID(username string) (string, error) {
	var parsed *sleeperUser
	if err := c.get(fmt.Sprintf("/v1/user/%s", username), &parsed); err != nil {
		return "", err
	}
	// Requesting a user that doesn't exist returns a 200 with "null" as the body.
	if parsed == nil || parsed.UserID == "" {
		return "", ErrUserNotFound
	}
	return parsed.UserID, nil
}

func (c *client) GetUserLeagues(userID, season string) ([]model.LeagueSeason, error) {
	var parsed []sleeperLeague
	if err := c.get(fmt.Sprintf("/v1/user/%s/leagues/nfl/%s", userID, season), &parsed); err != nil {
		return nil, err
	}

	leagues := make([]model.LeagueSeason, 0, len(parsed))
	for _, l := range parsed {
		leagues = append(leagues, *l.toLeagueSeason())
	}
	return leagues, nil
}

func (c *client) LoadPlayers() ([]model.Player, error) {
	var parsed map[string]sleeperPlayer
	if err := c.get("/v1/players/nfl", &parsed); err != nil {
		return nil, err
	}

	result := make([]model.Player, 0, len(parsed))
	for _, p := range parsed {
		pos := model.ParsePosition(p.Position)
		if pos == model.POS_UNKNOWN || (p.FirstName == "Player" && p.LastName == "Invalid") {
			continue
		}
		result = append(result, *p.toPlayer())
	}

	return result, nil
}

func (c *client) get(path string, v any) error {
	req, err := http.NewRequest(http.MethodGet, c.url+path, nil)
	if err != nil {
		return fmt.Errorf("error creating http request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrLeagueNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("error parsing response from sleeper: %w", err)
	}
	return nil
}
