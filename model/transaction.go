package model

import "time"

type TransactionType string

const (
	TransactionTrade     TransactionType = "trade"
	TransactionWaiver    TransactionType = "waiver"
	TransactionFreeAgent TransactionType = "free_agent"
)

// TransactionRecord is one trade/waiver/free-agent event from the platform.
// ExternalID is the platform's transaction id and is the dedupe key.
type TransactionRecord struct {
	ID         int32
	LeagueID   int32
	ExternalID string
	Type       TransactionType
	Status     string
	Week       int
	Season     int
	Time       time.Time
	Items      []TransactionItem
}

// TransactionItem is one player movement inside a transaction. A nil ToRosterID
// means the player was dropped; a nil FromRosterID means an acquisition from
// the free-agent pool.
type TransactionItem struct {
	PlayerID     string
	FromRosterID *int32
	ToRosterID   *int32
}
