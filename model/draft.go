package model

// Draft is one draft of a LeagueSeason as reported by the platform.
type Draft struct {
	ExternalID string
	LeagueID   int32
	Season     int
	Rounds     int
	Status     string
}

const DraftStatusComplete = "complete"

// DraftPickRecord is a single selection in a draft. IsKeeper marks a pick that
// was consumed by a kept player instead of a live selection.
type DraftPickRecord struct {
	DraftID  string
	LeagueID int32
	Season   int
	Round    int
	PickNo   int
	PlayerID string
	RosterID int32
	IsKeeper bool
}

// TradedPickRecord tracks who currently owns a future draft pick. Only the
// latest owner is stored, not the path of trades that got it there. Owner ids
// are the platform's stable user ids, never roster slots.
type TradedPickRecord struct {
	LeagueID       int32
	Season         int
	Round          int
	OriginalOwner  string
	CurrentOwnerID string
}
