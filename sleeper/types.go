package sleeper

import (
	"log"
	"strconv"
	"time"

	"github.com/keysesh/keeper-league-manager-sub004/model"
)

// Roster is a season-scoped team as the platform reports it. Slot is the
// per-season roster slot used to address this team in draft and traded-pick
// data; OwnerID is the stable user id.
type Roster struct {
	Slot          int
	OwnerID       string
	Wins          int
	Losses        int
	Ties          int
	PointsFor     int
	PointsAgainst int
	PlayerIDs     []string
}

type User struct {
	ID          string
	DisplayName string
	TeamName    string
}

// DraftPick addresses its owner by roster slot, not by stable user id.
type DraftPick struct {
	Round    int
	PickNo   int
	Slot     int
	PlayerID string
	IsKeeper bool
}

// TradedPick addresses both owners by roster slot.
type TradedPick struct {
	Season       int
	Round        int
	OriginalSlot int
	CurrentSlot  int
}

// Transaction adds/drops map player id -> roster slot.
type Transaction struct {
	ExternalID string
	Type       model.TransactionType
	Status     string
	Week       int
	Adds       map[string]int
	Drops      map[string]int
	Time       time.Time
}

type BracketMatch struct {
	Round  int `json:"r"`
	Match  int `json:"m"`
	Team1  int `json:"t1"`
	Team2  int `json:"t2"`
	Winner int `json:"w"`
	Loser  int `json:"l"`
}

type sleeperLeague struct {
	LeagueID         string `json:"league_id"`
	Name             string `json:"name"`
	Season           string `json:"season"`
	Status           string `json:"status"`
	TotalRosters     int    `json:"total_rosters"`
	PreviousLeagueID string `json:"previous_league_id"`
	Settings         struct {
		DraftRounds   int `json:"draft_rounds"`
		TradeDeadline int `json:"trade_deadline"`
	} `json:"settings"`
}

func (l *sleeperLeague) toLeagueSeason() *model.LeagueSeason {
	return &model.LeagueSeason{
		ExternalID:       l.LeagueID,
		Name:             l.Name,
		Season:           parseSeason(l.Season, l.LeagueID),
		Status:           l.Status,
		TotalRosters:     l.TotalRosters,
		DraftRounds:      l.Settings.DraftRounds,
		TradeDeadline:    l.Settings.TradeDeadline,
		PreviousLeagueID: l.PreviousLeagueID,
	}
}

type sleeperRoster struct {
	RosterID int      `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	Players  []string `json:"players"`
	Settings struct {
		Wins          int `json:"wins"`
		Losses        int `json:"losses"`
		Ties          int `json:"ties"`
		PointsFor     int `json:"fpts"`
		PointsAgainst int `json:"fpts_against"`
	} `json:"settings"`
}

func (r *sleeperRoster) toRoster() Roster {
	return Roster{
		Slot:          r.RosterID,
		OwnerID:       r.OwnerID,
		Wins:          r.Settings.Wins,
		Losses:        r.Settings.Losses,
		Ties:          r.Settings.Ties,
		PointsFor:     r.Settings.PointsFor,
		PointsAgainst: r.Settings.PointsAgainst,
		PlayerIDs:     r.Players,
	}
}

type sleeperUser struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Metadata    struct {
		TeamName string `json:"team_name"`
	} `json:"metadata"`
}

func (u *sleeperUser) toUser() User {
	return User{
		ID:          u.UserID,
		DisplayName: u.DisplayName,
		TeamName:    u.Metadata.TeamName,
	}
}

type sleeperDraft struct {
	DraftID  string `json:"draft_id"`
	LeagueID string `json:"league_id"`
	Season   string `json:"season"`
	Status   string `json:"status"`
	Settings struct {
		Rounds int `json:"rounds"`
	} `json:"settings"`
}

func (d *sleeperDraft) toDraft() model.Draft {
	return model.Draft{
		ExternalID: d.DraftID,
		Season:     parseSeason(d.Season, d.DraftID),
		Rounds:     d.Settings.Rounds,
		Status:     d.Status,
	}
}

type sleeperDraftPick struct {
	Round    int    `json:"round"`
	PickNo   int    `json:"pick_no"`
	RosterID int    `json:"roster_id"`
	PlayerID string `json:"player_id"`
	IsKeeper bool   `json:"is_keeper"`
}

func (p *sleeperDraftPick) toDraftPick() DraftPick {
	return DraftPick{
		Round:    p.Round,
		PickNo:   p.PickNo,
		Slot:     p.RosterID,
		PlayerID: p.PlayerID,
		IsKeeper: p.IsKeeper,
	}
}

type sleeperTradedPick struct {
	Season   string `json:"season"`
	Round    int    `json:"round"`
	RosterID int    `json:"roster_id"` // the slot that originally owned the pick
	OwnerID  int    `json:"owner_id"`  // the slot that owns the pick now
}

func (p *sleeperTradedPick) toTradedPick() TradedPick {
	return TradedPick{
		Season:       parseSeason(p.Season, ""),
		Round:        p.Round,
		OriginalSlot: p.RosterID,
		CurrentSlot:  p.OwnerID,
	}
}

type sleeperTransaction struct {
	TransactionID string         `json:"transaction_id"`
	Type          string         `json:"type"`
	Status        string         `json:"status"`
	Adds          map[string]int `json:"adds"`
	Drops         map[string]int `json:"drops"`
	Created       int64          `json:"created"` // unix millis
}

func (t *sleeperTransaction) toTransaction(week int) Transaction {
	return Transaction{
		ExternalID: t.TransactionID,
		Type:       model.TransactionType(t.Type),
		Status:     t.Status,
		Week:       week,
		Adds:       t.Adds,
		Drops:      t.Drops,
		Time:       time.UnixMilli(t.Created).UTC(),
	}
}

type sleeperPlayer struct {
	ID        string `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Team      string `json:"team"`
	Active    bool   `json:"active"`
}

func (p *sleeperPlayer) toPlayer() *model.Player {
	return &model.Player{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Position:  model.ParsePosition(p.Position),
		Team:      p.Team,
		Active:    p.Active,
	}
}

func parseSeason(s, id string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("error parsing season %q for %s: %v", s, id, err)
		return 0
	}
	return v
}
