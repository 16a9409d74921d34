package model

import "time"

// Player is one entry of the platform's player catalog. Only the fields the
// keeper views need are kept locally; the catalog is refreshed in bulk from
// the platform.
type Player struct {
	ID        string
	FirstName string
	LastName  string
	Position  Position
	Team      string
	Active    bool
	Updated   time.Time
}

func (p *Player) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	return p.FirstName + " " + p.LastName
}
