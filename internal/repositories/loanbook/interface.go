package loanbook

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/mboyd/boardbank/internal/repositories/loanbook Repository

import (
	"context"
)

// Repository defines the interface for loan book persistence. The loan
// book travels as its own document, separate from the game state.
type Repository interface {
	// SaveBook persists the full loan book
	SaveBook(ctx context.Context, input *SaveBookInput) error

	// LoadBook retrieves the most recently saved loan book
	LoadBook(ctx context.Context, input *LoadBookInput) (*LoadBookOutput, error)
}
