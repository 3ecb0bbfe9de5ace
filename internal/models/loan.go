package models

import (
	"time"
)

// PlayerLoan records an outstanding loan from one player to another.
// A borrower may hold several concurrent loans, including several from
// the same lender; records are never merged.
type PlayerLoan struct {
	// ID is the unique identifier for the loan record
	ID string `json:"id"`

	// LenderID is the ID of the lending player
	LenderID string `json:"lender_id"`

	// LenderName is the display name of the lender at loan time
	LenderName string `json:"lender"`

	// Amount is the loan principal; settlement repays it in full
	Amount int `json:"amount"`

	// Timestamp is when the loan was issued
	Timestamp time.Time `json:"timestamp"`
}

// Clone returns a copy of the loan record.
func (l *PlayerLoan) Clone() *PlayerLoan {
	if l == nil {
		return nil
	}
	clone := *l
	return &clone
}

// LoanBook holds both debt registries: loans between players, keyed by
// borrower ID, and outstanding bank loans, keyed by borrower ID.
type LoanBook struct {
	// PlayerLoans maps borrower ID to that borrower's loan records in
	// insertion order
	PlayerLoans map[string][]*PlayerLoan `json:"loan_log"`

	// BankLoans maps borrower ID to the single outstanding bank amount
	BankLoans map[string]int `json:"bank_loans"`
}

// NewLoanBook returns an empty loan book.
func NewLoanBook() *LoanBook {
	return &LoanBook{
		PlayerLoans: make(map[string][]*PlayerLoan),
		BankLoans:   make(map[string]int),
	}
}

// Clone returns a deep copy of the loan book.
func (b *LoanBook) Clone() *LoanBook {
	if b == nil {
		return nil
	}
	clone := NewLoanBook()
	for borrowerID, loans := range b.PlayerLoans {
		copied := make([]*PlayerLoan, 0, len(loans))
		for _, loan := range loans {
			copied = append(copied, loan.Clone())
		}
		clone.PlayerLoans[borrowerID] = copied
	}
	for borrowerID, amount := range b.BankLoans {
		clone.BankLoans[borrowerID] = amount
	}
	return clone
}
