package model

import (
	"strings"
	"time"
)

type KeeperType string

const (
	KeeperRegular   KeeperType = "REGULAR"
	KeeperFranchise KeeperType = "FRANCHISE"
)

// OverrideAnnotationPrefix marks a keeper row that was written by a
// commissioner override rather than the cost engine. The engine must not
// touch these rows unless a recompute is explicitly forced.
const OverrideAnnotationPrefix = "admin:"

// KeeperRecord is the computed (or overridden) keeper state for one player on
// one roster in one season. FinalCost is the cascaded draft-round cost the
// roster pays to keep the player into that season's draft.
type KeeperRecord struct {
	RosterID   int32
	PlayerID   string
	Season     int
	Type       KeeperType
	BaseCost   int
	FinalCost  int
	YearsKept  int
	Locked     bool
	Annotation string
}

// Overridden reports whether the row was written by a commissioner override.
func (k *KeeperRecord) Overridden() bool {
	return strings.HasPrefix(k.Annotation, OverrideAnnotationPrefix)
}

// KeeperSettings are the per-league knobs of the cost engine. The engine is a
// pure function of (history, settings); these are always passed explicitly,
// never read from ambient config.
//
// The cap invariant MaxFranchiseTags+MaxRegularKeepers <= MaxKeepers is
// enforced when settings are written, not when costs are computed.
type KeeperSettings struct {
	MaxKeepers            int `json:"maxKeepers" validate:"gt=0"`
	MaxFranchiseTags      int `json:"maxFranchiseTags" validate:"gt=0"`
	MaxRegularKeepers     int `json:"maxRegularKeepers" validate:"gt=0"`
	RegularKeeperMaxYears int `json:"regularKeeperMaxYears" validate:"gt=0"`
	UndraftedRound        int `json:"undraftedRound" validate:"gt=0"`
	MinimumRound          int `json:"minimumRound" validate:"gt=0"`
	CostReductionPerYear  int `json:"costReductionPerYear" validate:"gt=0"`
}

// DefaultKeeperSettings are used for any league that has never saved settings.
func DefaultKeeperSettings() KeeperSettings {
	return KeeperSettings{
		MaxKeepers:            7,
		MaxFranchiseTags:      2,
		MaxRegularKeepers:     5,
		RegularKeeperMaxYears: 2,
		UndraftedRound:        8,
		MinimumRound:          1,
		CostReductionPerYear:  1,
	}
}

// KeeperOverride is one entry in the append-only commissioner audit trail.
type KeeperOverride struct {
	ID       int32
	LeagueID int32
	RosterID int32
	PlayerID string
	Season   int
	Action   string
	Reason   string
	At       time.Time
}

const (
	OverrideActionAdd    = "add"
	OverrideActionRemove = "remove"
	OverrideActionRetype = "retype"
)
