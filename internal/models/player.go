package models

import (
	"time"
)

// Player represents one participant's ledger entry in a tracked session
type Player struct {
	// ID is the stable unique identifier for the player
	ID string `json:"id"`

	// Name is the display name of the player; unique case-insensitively
	Name string `json:"name"`

	// Money is the player's current balance in game currency units
	Money int `json:"money"`

	// Properties holds the names of properties the player owns, in
	// acquisition order. This is the authoritative ownership relation.
	Properties []string `json:"properties"`

	// Position is the player's board position, 0-39
	Position int `json:"position"`

	// InJail indicates whether the player is currently jailed
	InJail bool `json:"in_jail"`

	// CreatedAt is when the player joined the session
	CreatedAt time.Time `json:"created_at"`
}

// OwnsProperty reports whether the player holds the named property.
func (p *Player) OwnsProperty(name string) bool {
	for _, n := range p.Properties {
		if n == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the player.
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Properties = append([]string(nil), p.Properties...)
	return &clone
}
