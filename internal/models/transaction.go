package models

import (
	"time"
)

// Transaction records a single balance-affecting event. Records are
// immutable once appended to the log.
type Transaction struct {
	// ID is the unique identifier for the transaction record
	ID string `json:"id"`

	// PlayerID is the ID of the player whose balance changed
	PlayerID string `json:"player_id"`

	// PlayerName is the display name of the player at append time
	PlayerName string `json:"player"`

	// Amount is the signed balance delta
	Amount int `json:"amount"`

	// NewBalance is the player's balance after the delta was applied
	NewBalance int `json:"new_balance"`

	// Reason describes why the balance changed
	Reason string `json:"reason"`

	// Timestamp is when the transaction was recorded
	Timestamp time.Time `json:"timestamp"`
}

// Clone returns a copy of the transaction record.
func (t *Transaction) Clone() *Transaction {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}
