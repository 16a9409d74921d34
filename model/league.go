package model

import "time"

// LeagueSeason is one season of a continuing league. The external platform
// issues a brand new league id every season, so a continuing league is a chain
// of LeagueSeason rows linked by PreviousLeagueID (newest pointing backwards).
type LeagueSeason struct {
	ID               int32
	ExternalID       string
	Name             string
	Season           int
	Status           string
	TotalRosters     int
	DraftRounds      int
	TradeDeadline    int
	PreviousLeagueID string // external id of the prior season, empty if none known
	LastSyncedAt     time.Time
}

// RosterSeason is one team in one LeagueSeason. The row id is never a
// cross-season identity: the same logical team is a different RosterSeason row
// every year. OwnerID is the platform's stable user id and is the only join
// key that survives across seasons.
type RosterSeason struct {
	ID            int32
	LeagueID      int32
	OwnerID       string
	DisplayName   string
	Wins          int
	Losses        int
	Ties          int
	PointsFor     int
	PointsAgainst int
}

// ChainEntry is one link of a resolved league chain, newest first.
type ChainEntry struct {
	ExternalID string
	Season     int
}

// SyncResult reports what a sync pass actually wrote. Partial failures reduce
// the counts but do not fail the sync.
type SyncResult struct {
	LeagueID     int32  `json:"leagueId"`
	Rosters      int    `json:"rosters"`
	Picks        int    `json:"picks"`
	TradedPicks  int    `json:"tradedPicks"`
	Transactions int    `json:"transactions"`
	Keepers      int    `json:"keepers"`
	Players      int    `json:"players"`
	Seasons      int    `json:"seasons"`
	Skipped      int    `json:"skipped"`
	Message      string `json:"message"`
}

// Merge folds the counts from o into r.
func (r *SyncResult) Merge(o *SyncResult) {
	r.Rosters += o.Rosters
	r.Picks += o.Picks
	r.TradedPicks += o.TradedPicks
	r.Transactions += o.Transactions
	r.Keepers += o.Keepers
	r.Players += o.Players
	r.Seasons += o.Seasons
	r.Skipped += o.Skipped
}

// SyncStatus is the read-side companion of the sync endpoint.
type SyncStatus struct {
	LastSyncedAt time.Time `json:"lastSyncedAt"`
	NeedsSync    bool      `json:"needsSync"`
}
