package models

// GameState is the serialized aggregate: every player ledger entry, the
// full property registry, and the transaction log. Ownership is stored
// as IDs and names, never as live references; loading re-links them.
type GameState struct {
	// Players contains every player ledger entry in creation order
	Players []*Player `json:"players"`

	// Properties contains the full property registry
	Properties []*Property `json:"properties"`

	// Transactions is the append-only transaction log in chronological
	// order
	Transactions []*Transaction `json:"transactions"`
}

// Clone returns a deep copy of the game state.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	clone := &GameState{
		Players:      make([]*Player, 0, len(s.Players)),
		Properties:   make([]*Property, 0, len(s.Properties)),
		Transactions: make([]*Transaction, 0, len(s.Transactions)),
	}
	for _, player := range s.Players {
		clone.Players = append(clone.Players, player.Clone())
	}
	for _, property := range s.Properties {
		clone.Properties = append(clone.Properties, property.Clone())
	}
	for _, txn := range s.Transactions {
		clone.Transactions = append(clone.Transactions, txn.Clone())
	}
	return clone
}
