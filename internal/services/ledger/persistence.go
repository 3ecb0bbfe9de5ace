package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mboyd/boardbank/internal/models"
	"github.com/mboyd/boardbank/internal/repositories/gamestate"
	"github.com/mboyd/boardbank/internal/repositories/loanbook"
)

// SaveGame persists the full aggregate: game state and loan book, each
// as its own document. Snapshots are deep copies, so a later mutation
// cannot leak into a repository's view of the save.
func (s *service) SaveGame(ctx context.Context, input *SaveGameInput) (*SaveGameOutput, error) {
	state := &models.GameState{
		Players:      make([]*models.Player, 0, len(s.playerOrder)),
		Properties:   make([]*models.Property, 0, len(s.propertyOrder)),
		Transactions: make([]*models.Transaction, 0, len(s.transactions)),
	}
	for _, id := range s.playerOrder {
		state.Players = append(state.Players, s.players[id].Clone())
	}
	for _, name := range s.propertyOrder {
		state.Properties = append(state.Properties, s.properties[name].Clone())
	}
	for _, txn := range s.transactions {
		state.Transactions = append(state.Transactions, txn.Clone())
	}

	if err := s.gameStateRepo.SaveState(ctx, &gamestate.SaveStateInput{
		State: state,
	}); err != nil {
		return nil, fmt.Errorf("failed to save game state: %w", err)
	}

	if err := s.loanBookRepo.SaveBook(ctx, &loanbook.SaveBookInput{
		Book: s.loans.Clone(),
	}); err != nil {
		return nil, fmt.Errorf("failed to save loan book: %w", err)
	}

	return &SaveGameOutput{}, nil
}

// LoadGame restores the aggregate from the saved documents. Every
// stored reference is resolved against the loaded records before any
// in-memory state is replaced; a failed load leaves the engine exactly
// as it was. A missing loan book loads as an empty book.
func (s *service) LoadGame(ctx context.Context, input *LoadGameInput) (*LoadGameOutput, error) {
	stateOutput, err := s.gameStateRepo.LoadState(ctx, &gamestate.LoadStateInput{})
	if err != nil {
		if errors.Is(err, gamestate.ErrNotFound) {
			return &LoadGameOutput{}, nil
		}
		return nil, fmt.Errorf("failed to load game state: %w", err)
	}
	state := stateOutput.State

	book := models.NewLoanBook()
	bookOutput, err := s.loanBookRepo.LoadBook(ctx, &loanbook.LoadBookInput{})
	if err != nil && !errors.Is(err, loanbook.ErrNotFound) {
		return nil, fmt.Errorf("failed to load loan book: %w", err)
	}
	if err == nil {
		book = bookOutput.Book
	}

	players := make(map[string]*models.Player, len(state.Players))
	playerOrder := make([]string, 0, len(state.Players))
	nameIndex := make(map[string]string, len(state.Players))
	for _, player := range state.Players {
		if player.ID == "" {
			return nil, fmt.Errorf("%w: player %q has no ID", ErrDanglingReference, player.Name)
		}
		if _, exists := players[player.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate player ID %s", ErrDanglingReference, player.ID)
		}
		key := strings.ToLower(player.Name)
		if _, exists := nameIndex[key]; exists {
			return nil, fmt.Errorf("%w: duplicate player name %q", ErrDanglingReference, player.Name)
		}
		if player.Properties == nil {
			player.Properties = []string{}
		}
		players[player.ID] = player
		playerOrder = append(playerOrder, player.ID)
		nameIndex[key] = player.ID
	}

	properties := make(map[string]*models.Property, len(state.Properties))
	propertyOrder := make([]string, 0, len(state.Properties))
	for _, property := range state.Properties {
		if _, exists := properties[property.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate property %q", ErrDanglingReference, property.Name)
		}
		properties[property.Name] = property
		propertyOrder = append(propertyOrder, property.Name)
	}

	// Re-link ownership in both directions
	for _, property := range state.Properties {
		if property.OwnerID == "" {
			continue
		}
		owner, ok := players[property.OwnerID]
		if !ok {
			return nil, fmt.Errorf("%w: property %q owner %s", ErrDanglingReference, property.Name, property.OwnerID)
		}
		if !owner.OwnsProperty(property.Name) {
			return nil, fmt.Errorf("%w: property %q is not in %s's holdings", ErrInconsistentOwnership, property.Name, owner.Name)
		}
	}
	for _, player := range state.Players {
		for _, name := range player.Properties {
			property, ok := properties[name]
			if !ok {
				return nil, fmt.Errorf("%w: player %q holds unknown property %q", ErrDanglingReference, player.Name, name)
			}
			if property.OwnerID != player.ID {
				return nil, fmt.Errorf("%w: property %q is held by %s but owned by %q", ErrInconsistentOwnership, name, player.Name, property.OwnerID)
			}
		}
	}

	// Validate the loan book against the loaded players
	for borrowerID, loans := range book.PlayerLoans {
		if _, ok := players[borrowerID]; !ok {
			return nil, fmt.Errorf("%w: loan borrower %s", ErrDanglingReference, borrowerID)
		}
		for _, loan := range loans {
			if _, ok := players[loan.LenderID]; !ok {
				return nil, fmt.Errorf("%w: loan lender %s", ErrDanglingReference, loan.LenderID)
			}
			if loan.Amount <= 0 {
				return nil, fmt.Errorf("%w: loan %s has amount %d", ErrInvalidAmount, loan.ID, loan.Amount)
			}
		}
	}
	for borrowerID, amount := range book.BankLoans {
		if _, ok := players[borrowerID]; !ok {
			return nil, fmt.Errorf("%w: bank loan borrower %s", ErrDanglingReference, borrowerID)
		}
		if amount <= 0 || amount > s.bankLoanCeiling {
			return nil, fmt.Errorf("%w: bank loan of %d for borrower %s", ErrLoanLimitExceeded, amount, borrowerID)
		}
	}

	// Everything resolved; replace state wholesale
	s.players = players
	s.playerOrder = playerOrder
	s.nameIndex = nameIndex
	s.properties = properties
	s.propertyOrder = propertyOrder
	s.transactions = state.Transactions
	s.loans = book

	return &LoadGameOutput{
		Loaded: true,
	}, nil
}
