package ledger

import (
	"context"

	"github.com/mboyd/boardbank/internal/common/clock"
	"github.com/mboyd/boardbank/internal/common/uuid"
	"github.com/mboyd/boardbank/internal/models"
	"github.com/mboyd/boardbank/internal/repositories/gamestate"
	"github.com/mboyd/boardbank/internal/repositories/loanbook"
)

// BankruptcyEvent describes a rent charge the payer could not cover
type BankruptcyEvent struct {
	// PayerID is the player who could not pay
	PayerID string

	// CreditorID is the property owner who was owed the rent
	CreditorID string

	// AmountOwed is the rent that went unpaid
	AmountOwed int

	// PropertyName is the property the rent was charged for
	PropertyName string
}

// BankruptcyHandler is invoked when a rent-bound payer cannot cover the
// amount. The default handler declines the charge and takes no further
// action; callers may install their own liquidation or game-over policy.
type BankruptcyHandler func(ctx context.Context, event *BankruptcyEvent)

// NoopBankruptcyHandler declines the charge without any side effect
func NoopBankruptcyHandler(ctx context.Context, event *BankruptcyEvent) {}

// Config holds configuration for the ledger service
type Config struct {
	// StartingBalance is the balance a new player is created with
	StartingBalance int

	// BankLoanCeiling caps any borrower's outstanding bank loan amount
	BankLoanCeiling int

	// BoardSize is the number of board positions; movement wraps at it
	BoardSize int

	// Properties seeds the property registry, usually from the catalog
	Properties []*models.Property

	// Repository dependencies
	GameStateRepo gamestate.Repository
	LoanBookRepo  loanbook.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// BankruptcyHandler handles unpayable rent; nil installs the no-op
	// handler
	BankruptcyHandler BankruptcyHandler
}

// AddPlayerInput contains parameters for registering a player
type AddPlayerInput struct {
	// Name is the display name; uniqueness is case-insensitive
	Name string
}

// AddPlayerOutput contains the result of registering a player
type AddPlayerOutput struct {
	// Player is a snapshot of the created player
	Player *models.Player
}

// AdjustMoneyInput contains parameters for a manual balance correction
type AdjustMoneyInput struct {
	PlayerID string

	// Delta is the signed amount to apply; no floor is enforced
	Delta int
}

// AdjustMoneyOutput contains the result of a manual balance correction
type AdjustMoneyOutput struct {
	NewBalance int
}

// PurchasePropertyInput contains parameters for buying from the bank
type PurchasePropertyInput struct {
	PlayerID     string
	PropertyName string
}

// PurchasePropertyOutput contains the result of a purchase
type PurchasePropertyOutput struct {
	NewBalance int
}

// ChargeRentInput contains parameters for charging rent
type ChargeRentInput struct {
	// PlayerID is the player landing on the property
	PlayerID     string
	PropertyName string
}

// ChargeRentOutput contains the result of charging rent
type ChargeRentOutput struct {
	// Charged indicates whether money actually moved. Unowned and
	// self-owned properties charge nothing.
	Charged bool

	// Bankrupt indicates the payer could not cover the rent and the
	// bankruptcy handler was invoked instead
	Bankrupt bool

	// Rent is the base rent that was (or would have been) charged
	Rent int
}

// SellPropertyInput contains parameters for a property sale between
// players
type SellPropertyInput struct {
	SellerID     string
	BuyerID      string
	PropertyName string

	// Price is the negotiated sale price; must be positive
	Price int
}

// SellPropertyOutput contains the result of a property sale
type SellPropertyOutput struct {
	SellerBalance int
	BuyerBalance  int
}

// TransferInput contains parameters for a money transfer
type TransferInput struct {
	FromPlayerID string
	ToPlayerID   string
	Amount       int
}

// TransferOutput contains the result of a money transfer
type TransferOutput struct {
	FromBalance int
	ToBalance   int
}

// MovePlayerInput contains parameters for moving a player
type MovePlayerInput struct {
	PlayerID string
	Spaces   int
}

// MovePlayerOutput contains the result of moving a player
type MovePlayerOutput struct {
	Position int
}

// ToggleJailInput contains parameters for flipping the jail flag
type ToggleJailInput struct {
	PlayerID string
}

// ToggleJailOutput contains the result of flipping the jail flag
type ToggleJailOutput struct {
	InJail bool
}

// LoanFromBankInput contains parameters for a bank loan
type LoanFromBankInput struct {
	BorrowerID string
	Amount     int
}

// LoanFromBankOutput contains the result of a bank loan
type LoanFromBankOutput struct {
	// Outstanding is the borrower's total bank debt after the loan
	Outstanding int
}

// LoanFromPlayerInput contains parameters for a player-to-player loan
type LoanFromPlayerInput struct {
	BorrowerID string
	LenderID   string
	Amount     int
}

// LoanFromPlayerOutput contains the result of a player-to-player loan
type LoanFromPlayerOutput struct {
	// Loan is a snapshot of the recorded loan
	Loan *models.PlayerLoan
}

// RepayBankInput contains parameters for repaying a bank loan
type RepayBankInput struct {
	BorrowerID string
}

// RepayBankOutput contains the result of repaying a bank loan
type RepayBankOutput struct {
	// AmountRepaid is the full outstanding amount that was settled
	AmountRepaid int
}

// RepayPlayerLoanInput contains parameters for settling a player loan
type RepayPlayerLoanInput struct {
	BorrowerID string
	LenderID   string
}

// RepayPlayerLoanOutput contains the result of settling a player loan
type RepayPlayerLoanOutput struct {
	// Loan is a snapshot of the settled loan record
	Loan *models.PlayerLoan
}

// RepaymentOpportunity describes one loan the borrower could settle
// with their current balance
type RepaymentOpportunity struct {
	LoanID       string
	BorrowerID   string
	BorrowerName string
	LenderID     string
	LenderName   string
	Amount       int
}

// SweepEligibleRepaymentsInput contains parameters for the repayment
// sweep
type SweepEligibleRepaymentsInput struct {
	// Confirm is asked before each settlement. A nil callback reports
	// opportunities without settling anything; debiting a player
	// without consent is the caller's decision to make.
	Confirm func(opportunity *RepaymentOpportunity) bool
}

// SweepEligibleRepaymentsOutput contains the result of the sweep
type SweepEligibleRepaymentsOutput struct {
	// Opportunities lists every loan that was coverable when visited
	Opportunities []*RepaymentOpportunity

	// Settled lists the subset that was confirmed and settled
	Settled []*RepaymentOpportunity
}

// SaveGameInput contains parameters for saving the session
type SaveGameInput struct{}

// SaveGameOutput contains the result of saving the session
type SaveGameOutput struct{}

// LoadGameInput contains parameters for restoring the session
type LoadGameInput struct{}

// LoadGameOutput contains the result of restoring the session
type LoadGameOutput struct {
	// Loaded indicates whether a saved game was found and restored
	Loaded bool
}

// GetPlayerInput contains parameters for fetching one player
type GetPlayerInput struct {
	PlayerID string
}

// GetPlayerOutput contains the requested player snapshot
type GetPlayerOutput struct {
	Player *models.Player
}

// ListPlayersInput contains parameters for listing players
type ListPlayersInput struct{}

// ListPlayersOutput contains snapshots of every player
type ListPlayersOutput struct {
	Players []*models.Player
}

// ListPropertiesInput contains parameters for listing the registry
type ListPropertiesInput struct{}

// ListPropertiesOutput contains snapshots of every property
type ListPropertiesOutput struct {
	Properties []*models.Property
}

// GetTransactionLogInput contains parameters for reading the log
type GetTransactionLogInput struct{}

// GetTransactionLogOutput contains a snapshot of the transaction log
type GetTransactionLogOutput struct {
	Transactions []*models.Transaction
}

// GetLoansInput contains parameters for reading a borrower's debts
type GetLoansInput struct {
	BorrowerID string
}

// GetLoansOutput contains a borrower's outstanding debts
type GetLoansOutput struct {
	// PlayerLoans holds the borrower's loan records in insertion order
	PlayerLoans []*models.PlayerLoan

	// BankLoan is the borrower's outstanding bank amount, zero if none
	BankLoan int
}
