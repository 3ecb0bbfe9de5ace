package gamestate

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/mboyd/boardbank/internal/repositories/gamestate Repository

import (
	"context"
)

// Repository defines the interface for game state persistence. The
// whole aggregate is written and read as one snapshot document.
type Repository interface {
	// SaveState persists a full game state snapshot
	SaveState(ctx context.Context, input *SaveStateInput) error

	// LoadState retrieves the most recently saved snapshot
	LoadState(ctx context.Context, input *LoadStateInput) (*LoadStateOutput, error)
}
