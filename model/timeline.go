package model

import "time"

type EventType string

const (
	EventDrafted       EventType = "DRAFTED"
	EventKeptRegular   EventType = "KEPT_REGULAR"
	EventKeptFranchise EventType = "KEPT_FRANCHISE"
	EventTraded        EventType = "TRADED"
	EventWaiver        EventType = "WAIVER"
	EventFreeAgent     EventType = "FREE_AGENT"
	EventDropped       EventType = "DROPPED"
)

// eventPriority orders events that fall in the same season without a
// timestamp. Draft-day events come first: a keeper is declared before the
// draft, the draft happens, then in-season moves follow.
var eventPriority = map[EventType]int{
	EventKeptRegular:   0,
	EventKeptFranchise: 0,
	EventDrafted:       1,
	EventTraded:        2,
	EventWaiver:        3,
	EventFreeAgent:     4,
	EventDropped:       5,
}

// EventPriority returns the fixed same-season ordering rank for an event type.
func EventPriority(t EventType) int {
	return eventPriority[t]
}

// TimelineEvent is one entry of a player's chronological history in a league
// chain. Time is zero for draft-time events, which have no exact timestamp.
type TimelineEvent struct {
	Type      EventType `json:"type"`
	LeagueID  int32     `json:"leagueId"`
	Season    int       `json:"season"`
	Week      int       `json:"week"`
	Round     int       `json:"round,omitempty"`
	PlayerID  string    `json:"playerId"`
	FromOwner string    `json:"fromOwner,omitempty"`
	ToOwner   string    `json:"toOwner,omitempty"`
	Time      time.Time `json:"time,omitempty"`
}
