package models

// Property represents one catalog entry on the board
type Property struct {
	// Name is the unique identifier for the property
	Name string `json:"name"`

	// Price is the purchase price in game currency units
	Price int `json:"price"`

	// Rent holds the rent tiers by improvement level; tier 0 is the
	// base, unimproved rate
	Rent []int `json:"rent"`

	// ColorGroup is the property's color group label
	ColorGroup string `json:"color_group"`

	// OwnerID is the ID of the owning player; empty means bank-owned.
	// Back-reference only: the owning player's Properties list is the
	// authoritative relation.
	OwnerID string `json:"owner,omitempty"`
}

// BaseRent returns the unimproved rent rate for the property.
func (p *Property) BaseRent() int {
	if len(p.Rent) == 0 {
		return 0
	}
	return p.Rent[0]
}

// Clone returns a deep copy of the property.
func (p *Property) Clone() *Property {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Rent = append([]int(nil), p.Rent...)
	return &clone
}
