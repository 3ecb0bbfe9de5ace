package ledger

import "context"

// Service defines the interface for the session accounting engine. The
// engine owns all player, property, transaction, and loan state; every
// mutation goes through one of these operations.
type Service interface {
	// AddPlayer registers a new player with the starting balance
	AddPlayer(ctx context.Context, input *AddPlayerInput) (*AddPlayerOutput, error)

	// AdjustMoney applies a manual balance correction
	AdjustMoney(ctx context.Context, input *AdjustMoneyInput) (*AdjustMoneyOutput, error)

	// PurchaseProperty buys an unowned property from the bank
	PurchaseProperty(ctx context.Context, input *PurchasePropertyInput) (*PurchasePropertyOutput, error)

	// ChargeRent charges a player base rent for landing on a property
	ChargeRent(ctx context.Context, input *ChargeRentInput) (*ChargeRentOutput, error)

	// SellProperty transfers a property between players for a price
	SellProperty(ctx context.Context, input *SellPropertyInput) (*SellPropertyOutput, error)

	// Transfer moves money between two players
	Transfer(ctx context.Context, input *TransferInput) (*TransferOutput, error)

	// MovePlayer advances a player's board position, wrapping at the
	// board size
	MovePlayer(ctx context.Context, input *MovePlayerInput) (*MovePlayerOutput, error)

	// ToggleJail flips a player's jail flag
	ToggleJail(ctx context.Context, input *ToggleJailInput) (*ToggleJailOutput, error)

	// LoanFromBank issues a bank loan, subject to the per-borrower
	// ceiling
	LoanFromBank(ctx context.Context, input *LoanFromBankInput) (*LoanFromBankOutput, error)

	// LoanFromPlayer issues a loan from one player to another
	LoanFromPlayer(ctx context.Context, input *LoanFromPlayerInput) (*LoanFromPlayerOutput, error)

	// RepayBank repays the borrower's entire outstanding bank loan
	RepayBank(ctx context.Context, input *RepayBankInput) (*RepayBankOutput, error)

	// RepayPlayerLoan settles the borrower's oldest loan from a lender
	RepayPlayerLoan(ctx context.Context, input *RepayPlayerLoanInput) (*RepayPlayerLoanOutput, error)

	// SweepEligibleRepayments surfaces every loan the borrower could
	// settle right now, settling those the caller confirms
	SweepEligibleRepayments(ctx context.Context, input *SweepEligibleRepaymentsInput) (*SweepEligibleRepaymentsOutput, error)

	// SaveGame persists the full aggregate state
	SaveGame(ctx context.Context, input *SaveGameInput) (*SaveGameOutput, error)

	// LoadGame restores the full aggregate state from the saved
	// documents, re-linking ownership references
	LoadGame(ctx context.Context, input *LoadGameInput) (*LoadGameOutput, error)

	// GetPlayer returns a snapshot of one player
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*GetPlayerOutput, error)

	// ListPlayers returns snapshots of every player in creation order
	ListPlayers(ctx context.Context, input *ListPlayersInput) (*ListPlayersOutput, error)

	// ListProperties returns snapshots of the property registry
	ListProperties(ctx context.Context, input *ListPropertiesInput) (*ListPropertiesOutput, error)

	// GetTransactionLog returns a snapshot of the transaction log
	GetTransactionLog(ctx context.Context, input *GetTransactionLogInput) (*GetTransactionLogOutput, error)

	// GetLoans returns a borrower's outstanding loans
	GetLoans(ctx context.Context, input *GetLoansInput) (*GetLoansOutput, error)
}
