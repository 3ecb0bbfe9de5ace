package gamestate

import (
	"errors"

	"github.com/mboyd/boardbank/internal/models"
)

// ErrNotFound is returned when no saved game state exists
var ErrNotFound = errors.New("no saved game state found")

// SaveStateInput contains parameters for saving a game state snapshot
type SaveStateInput struct {
	State *models.GameState
}

// LoadStateInput contains parameters for loading the saved snapshot
type LoadStateInput struct{}

// LoadStateOutput contains the result of loading the saved snapshot
type LoadStateOutput struct {
	State *models.GameState
}
