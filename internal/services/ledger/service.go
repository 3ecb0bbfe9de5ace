package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/mboyd/boardbank/internal/common/clock"
	"github.com/mboyd/boardbank/internal/common/uuid"
	"github.com/mboyd/boardbank/internal/models"
	"github.com/mboyd/boardbank/internal/repositories/gamestate"
	"github.com/mboyd/boardbank/internal/repositories/loanbook"
)

const (
	defaultStartingBalance = 1500
	defaultBankLoanCeiling = 360
	defaultBoardSize       = 40
)

// service implements the Service interface. All state is private; the
// operation set is the only way to mutate it, and queries hand out deep
// copies only.
type service struct {
	startingBalance int
	bankLoanCeiling int
	boardSize       int

	gameStateRepo gamestate.Repository
	loanBookRepo  loanbook.Repository
	clock         clock.Clock
	uuids         uuid.UUID
	bankruptcy    BankruptcyHandler

	players     map[string]*models.Player // by ID
	playerOrder []string                  // creation order
	nameIndex   map[string]string         // lowercased name -> ID

	properties    map[string]*models.Property // by name
	propertyOrder []string                    // catalog order

	transactions []*models.Transaction

	loans *models.LoanBook
}

// New creates a new ledger service seeded with the property catalog
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.GameStateRepo == nil {
		return nil, ErrNilGameStateRepo
	}
	if cfg.LoanBookRepo == nil {
		return nil, ErrNilLoanBookRepo
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	s := &service{
		startingBalance: cfg.StartingBalance,
		bankLoanCeiling: cfg.BankLoanCeiling,
		boardSize:       cfg.BoardSize,
		gameStateRepo:   cfg.GameStateRepo,
		loanBookRepo:    cfg.LoanBookRepo,
		clock:           cfg.Clock,
		uuids:           cfg.UUIDGenerator,
		bankruptcy:      cfg.BankruptcyHandler,
		players:         make(map[string]*models.Player),
		nameIndex:       make(map[string]string),
		properties:      make(map[string]*models.Property),
		loans:           models.NewLoanBook(),
	}

	if s.startingBalance == 0 {
		s.startingBalance = defaultStartingBalance
	}
	if s.bankLoanCeiling == 0 {
		s.bankLoanCeiling = defaultBankLoanCeiling
	}
	if s.boardSize == 0 {
		s.boardSize = defaultBoardSize
	}
	if s.bankruptcy == nil {
		s.bankruptcy = NoopBankruptcyHandler
	}

	for _, property := range cfg.Properties {
		if _, exists := s.properties[property.Name]; exists {
			return nil, fmt.Errorf("duplicate property %q in catalog", property.Name)
		}
		s.properties[property.Name] = property.Clone()
		s.propertyOrder = append(s.propertyOrder, property.Name)
	}

	return s, nil
}

// findPlayer looks up a live player by ID
func (s *service) findPlayer(playerID string) (*models.Player, error) {
	player, ok := s.players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return player, nil
}

// findProperty looks up a live property by name
func (s *service) findProperty(name string) (*models.Property, error) {
	property, ok := s.properties[name]
	if !ok {
		return nil, ErrPropertyNotFound
	}
	return property, nil
}

// appendTransaction records one log entry capturing the player's
// balance after the delta was applied
func (s *service) appendTransaction(player *models.Player, amount int, reason string) {
	s.transactions = append(s.transactions, &models.Transaction{
		ID:         s.uuids.NewUUID(),
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Amount:     amount,
		NewBalance: player.Money,
		Reason:     reason,
		Timestamp:  s.clock.Now(),
	})
}

// applyDelta mutates the player's balance and logs the change. Callers
// must have validated the operation already.
func (s *service) applyDelta(player *models.Player, delta int, reason string) {
	player.Money += delta
	s.appendTransaction(player, delta, reason)
}

// AddPlayer registers a new player with the starting balance
func (s *service) AddPlayer(ctx context.Context, input *AddPlayerInput) (*AddPlayerOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("player name cannot be empty")
	}

	key := strings.ToLower(name)
	if _, exists := s.nameIndex[key]; exists {
		return nil, ErrDuplicatePlayer
	}

	player := &models.Player{
		ID:         s.uuids.NewUUID(),
		Name:       name,
		Money:      s.startingBalance,
		Properties: []string{},
		CreatedAt:  s.clock.Now(),
	}

	s.players[player.ID] = player
	s.playerOrder = append(s.playerOrder, player.ID)
	s.nameIndex[key] = player.ID

	s.appendTransaction(player, 0, "Player created")

	return &AddPlayerOutput{
		Player: player.Clone(),
	}, nil
}

// AdjustMoney applies a manual balance correction. There is no floor:
// a correction may drive the balance negative.
func (s *service) AdjustMoney(ctx context.Context, input *AdjustMoneyInput) (*AdjustMoneyOutput, error) {
	player, err := s.findPlayer(input.PlayerID)
	if err != nil {
		return nil, err
	}

	s.applyDelta(player, input.Delta, "Manual adjustment")

	return &AdjustMoneyOutput{
		NewBalance: player.Money,
	}, nil
}

// PurchaseProperty buys an unowned property from the bank
func (s *service) PurchaseProperty(ctx context.Context, input *PurchasePropertyInput) (*PurchasePropertyOutput, error) {
	player, err := s.findPlayer(input.PlayerID)
	if err != nil {
		return nil, err
	}

	property, err := s.findProperty(input.PropertyName)
	if err != nil {
		return nil, err
	}

	if player.Money < property.Price {
		return nil, ErrInsufficientFunds
	}

	if property.OwnerID != "" {
		return nil, ErrAlreadyOwned
	}

	property.OwnerID = player.ID
	player.Properties = append(player.Properties, property.Name)
	s.applyDelta(player, -property.Price, fmt.Sprintf("Purchased %s", property.Name))

	return &PurchasePropertyOutput{
		NewBalance: player.Money,
	}, nil
}

// ChargeRent charges the base rent for landing on a property. Unowned
// and self-owned properties charge nothing; a payer who cannot cover
// the rent triggers the bankruptcy handler and no money moves.
func (s *service) ChargeRent(ctx context.Context, input *ChargeRentInput) (*ChargeRentOutput, error) {
	payer, err := s.findPlayer(input.PlayerID)
	if err != nil {
		return nil, err
	}

	property, err := s.findProperty(input.PropertyName)
	if err != nil {
		return nil, err
	}

	if property.OwnerID == "" || property.OwnerID == payer.ID {
		return &ChargeRentOutput{}, nil
	}

	owner, err := s.findPlayer(property.OwnerID)
	if err != nil {
		return nil, err
	}

	rent := property.BaseRent()

	if payer.Money < rent {
		s.bankruptcy(ctx, &BankruptcyEvent{
			PayerID:      payer.ID,
			CreditorID:   owner.ID,
			AmountOwed:   rent,
			PropertyName: property.Name,
		})
		return &ChargeRentOutput{
			Bankrupt: true,
			Rent:     rent,
		}, nil
	}

	s.applyDelta(payer, -rent, fmt.Sprintf("Paid rent for %s", property.Name))
	s.applyDelta(owner, rent, fmt.Sprintf("Received rent for %s", property.Name))

	return &ChargeRentOutput{
		Charged: true,
		Rent:    rent,
	}, nil
}

// SellProperty transfers a property between players for a price
func (s *service) SellProperty(ctx context.Context, input *SellPropertyInput) (*SellPropertyOutput, error) {
	if input.Price <= 0 {
		return nil, ErrInvalidAmount
	}

	seller, err := s.findPlayer(input.SellerID)
	if err != nil {
		return nil, err
	}

	buyer, err := s.findPlayer(input.BuyerID)
	if err != nil {
		return nil, err
	}

	property, err := s.findProperty(input.PropertyName)
	if err != nil {
		return nil, err
	}

	if property.OwnerID != seller.ID || !seller.OwnsProperty(property.Name) {
		return nil, ErrNotOwner
	}

	if buyer.Money < input.Price {
		return nil, ErrInsufficientFunds
	}

	seller.Properties = removeString(seller.Properties, property.Name)
	buyer.Properties = append(buyer.Properties, property.Name)
	property.OwnerID = buyer.ID

	s.applyDelta(seller, input.Price, fmt.Sprintf("Sold %s", property.Name))
	s.applyDelta(buyer, -input.Price, fmt.Sprintf("Purchased %s", property.Name))

	return &SellPropertyOutput{
		SellerBalance: seller.Money,
		BuyerBalance:  buyer.Money,
	}, nil
}

// Transfer moves money between two players
func (s *service) Transfer(ctx context.Context, input *TransferInput) (*TransferOutput, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	from, err := s.findPlayer(input.FromPlayerID)
	if err != nil {
		return nil, err
	}

	to, err := s.findPlayer(input.ToPlayerID)
	if err != nil {
		return nil, err
	}

	if from.Money < input.Amount {
		return nil, ErrInsufficientFunds
	}

	s.applyDelta(from, -input.Amount, fmt.Sprintf("Transferred to %s", to.Name))
	s.applyDelta(to, input.Amount, fmt.Sprintf("Received from %s", from.Name))

	return &TransferOutput{
		FromBalance: from.Money,
		ToBalance:   to.Money,
	}, nil
}

// MovePlayer advances a player's board position, wrapping at the board
// size. Movement is positional bookkeeping only: no money moves and no
// log entry is appended.
func (s *service) MovePlayer(ctx context.Context, input *MovePlayerInput) (*MovePlayerOutput, error) {
	player, err := s.findPlayer(input.PlayerID)
	if err != nil {
		return nil, err
	}

	position := (player.Position + input.Spaces) % s.boardSize
	if position < 0 {
		position += s.boardSize
	}
	player.Position = position

	return &MovePlayerOutput{
		Position: player.Position,
	}, nil
}

// ToggleJail flips a player's jail flag
func (s *service) ToggleJail(ctx context.Context, input *ToggleJailInput) (*ToggleJailOutput, error) {
	player, err := s.findPlayer(input.PlayerID)
	if err != nil {
		return nil, err
	}

	player.InJail = !player.InJail

	reason := "Released"
	if player.InJail {
		reason = "Jailed"
	}
	s.appendTransaction(player, 0, reason)

	return &ToggleJailOutput{
		InJail: player.InJail,
	}, nil
}

// GetPlayer returns a snapshot of one player
func (s *service) GetPlayer(ctx context.Context, input *GetPlayerInput) (*GetPlayerOutput, error) {
	player, err := s.findPlayer(input.PlayerID)
	if err != nil {
		return nil, err
	}

	return &GetPlayerOutput{
		Player: player.Clone(),
	}, nil
}

// ListPlayers returns snapshots of every player in creation order
func (s *service) ListPlayers(ctx context.Context, input *ListPlayersInput) (*ListPlayersOutput, error) {
	players := make([]*models.Player, 0, len(s.playerOrder))
	for _, id := range s.playerOrder {
		players = append(players, s.players[id].Clone())
	}

	return &ListPlayersOutput{
		Players: players,
	}, nil
}

// ListProperties returns snapshots of the registry in catalog order
func (s *service) ListProperties(ctx context.Context, input *ListPropertiesInput) (*ListPropertiesOutput, error) {
	properties := make([]*models.Property, 0, len(s.propertyOrder))
	for _, name := range s.propertyOrder {
		properties = append(properties, s.properties[name].Clone())
	}

	return &ListPropertiesOutput{
		Properties: properties,
	}, nil
}

// GetTransactionLog returns a snapshot of the transaction log
func (s *service) GetTransactionLog(ctx context.Context, input *GetTransactionLogInput) (*GetTransactionLogOutput, error) {
	transactions := make([]*models.Transaction, 0, len(s.transactions))
	for _, txn := range s.transactions {
		transactions = append(transactions, txn.Clone())
	}

	return &GetTransactionLogOutput{
		Transactions: transactions,
	}, nil
}

func removeString(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
