package ledger

import "errors"

// Engine validation errors. Every operation validates fully before it
// mutates anything, so a returned error means no state changed.
var (
	ErrDuplicatePlayer       = errors.New("a player with that name already exists")
	ErrPlayerNotFound        = errors.New("player not found")
	ErrPropertyNotFound      = errors.New("property not found")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrAlreadyOwned          = errors.New("property is already owned")
	ErrNotOwner              = errors.New("player does not own this property")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrLoanLimitExceeded     = errors.New("bank loan limit exceeded")
	ErrNoOutstandingLoan     = errors.New("no outstanding loan to repay")
	ErrDanglingReference     = errors.New("saved state references an unknown player or property")
	ErrInconsistentOwnership = errors.New("saved state ownership records do not match")
)

// Constructor errors
var (
	ErrNilConfig        = errors.New("config cannot be nil")
	ErrNilGameStateRepo = errors.New("game state repository cannot be nil")
	ErrNilLoanBookRepo  = errors.New("loan book repository cannot be nil")
	ErrNilClock         = errors.New("clock cannot be nil")
	ErrNilUUIDGenerator = errors.New("UUID generator cannot be nil")
)
