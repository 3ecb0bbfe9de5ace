package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	clockMocks "github.com/mboyd/boardbank/internal/common/clock/mocks"
	uuidMocks "github.com/mboyd/boardbank/internal/common/uuid/mocks"
	gamestateMocks "github.com/mboyd/boardbank/internal/repositories/gamestate/mocks"
	loanbookMocks "github.com/mboyd/boardbank/internal/repositories/loanbook/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type LoanBookTestSuite struct {
	suite.Suite
	mockCtrl          *gomock.Controller
	mockGameStateRepo *gamestateMocks.MockRepository
	mockLoanBookRepo  *loanbookMocks.MockRepository
	mockClock         *clockMocks.MockClock
	mockUUID          *uuidMocks.MockUUID
	service           Service
	ctx               context.Context

	testTime time.Time
	uuidSeq  int

	aliceID string
	bobID   string
}

func (s *LoanBookTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockGameStateRepo = gamestateMocks.NewMockRepository(s.mockCtrl)
	s.mockLoanBookRepo = loanbookMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	s.ctx = context.Background()
	s.testTime = time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)
	s.uuidSeq = 0

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().DoAndReturn(func() string {
		s.uuidSeq++
		return fmt.Sprintf("uuid-%d", s.uuidSeq)
	}).AnyTimes()

	service, err := New(&Config{
		GameStateRepo: s.mockGameStateRepo,
		LoanBookRepo:  s.mockLoanBookRepo,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.service = service

	aliceOutput, err := s.service.AddPlayer(s.ctx, &AddPlayerInput{Name: "Alice"})
	s.Require().NoError(err)
	s.aliceID = aliceOutput.Player.ID

	bobOutput, err := s.service.AddPlayer(s.ctx, &AddPlayerInput{Name: "Bob"})
	s.Require().NoError(err)
	s.bobID = bobOutput.Player.ID
}

func (s *LoanBookTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLoanBookTestSuite(t *testing.T) {
	suite.Run(t, new(LoanBookTestSuite))
}

func (s *LoanBookTestSuite) balance(playerID string) int {
	output, err := s.service.GetPlayer(s.ctx, &GetPlayerInput{PlayerID: playerID})
	s.Require().NoError(err)
	return output.Player.Money
}

func (s *LoanBookTestSuite) TestLoanFromBank() {
	output, err := s.service.LoanFromBank(s.ctx, &LoanFromBankInput{
		BorrowerID: s.aliceID,
		Amount:     300,
	})
	s.Require().NoError(err)
	s.Equal(300, output.Outstanding)
	s.Equal(1800, s.balance(s.aliceID))

	loansOutput, err := s.service.GetLoans(s.ctx, &GetLoansInput{BorrowerID: s.aliceID})
	s.Require().NoError(err)
	s.Equal(300, loansOutput.BankLoan)

	logOutput, err := s.service.GetTransactionLog(s.ctx, &GetTransactionLogInput{})
	s.Require().NoError(err)
	last := logOutput.Transactions[len(logOutput.Transactions)-1]
	s.Equal("Loan from Bank", last.Reason)
	s.Equal(300, last.Amount)
}

func (s *LoanBookTestSuite) TestLoanFromBankCeilingCountsOutstanding() {
	_, err := s.service.LoanFromBank(s.ctx, &LoanFromBankInput{
		BorrowerID: s.aliceID,
		Amount:     360,
	})
	s.Require().NoError(err)

	_, err = s.service.LoanFromBank(s.ctx, &LoanFromBankInput{
		BorrowerID: s.aliceID,
		Amount:     1,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrLoanLimitExceeded)

	loansOutput, err := s.service.GetLoans(s.ctx, &GetLoansInput{BorrowerID: s.aliceID})
	s.Require().NoError(err)
	s.Equal(360, loansOutput.BankLoan)
	s.Equal(1860, s.balance(s.aliceID))
}

func (s *LoanBookTestSuite) TestLoanFromBankSingleLoanOverCeiling() {
	_, err := s.service.LoanFromBank(s.ctx, &LoanFromBankInput{
		BorrowerID: s.aliceID,
		Amount:     361,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrLoanLimitExceeded)
}

func (s *LoanBookTestSuite) TestLoanFromBankNonPositiveAmount() {
	_, err := s.service.LoanFromBank(s.ctx, &LoanFromBankInput{
		BorrowerID: s.aliceID,
		Amount:     0,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *LoanBookTestSuite) TestRepayBankClearsEntry() {
	_, err := s.service.LoanFromBank(s.ctx, &LoanFromBankInput{
		BorrowerID: s.aliceID,
		Amount:     200,
	})
	s.Require().NoError(err)

	output, err := s.service.RepayBank(s.ctx, &RepayBankInput{BorrowerID: s.aliceID})
	s.Require().NoError(err)
	s.Equal(200, output.AmountRepaid)
	s.Equal(1500, s.balance(s.aliceID))

	loansOutput, err := s.service.GetLoans(s.ctx, &GetLoansInput{BorrowerID: s.aliceID})
	s.Require().NoError(err)
	s.Equal(0, loansOutput.BankLoan)

	// Repaid in full, so the borrower can draw up to the ceiling again
	_, err = s.service.LoanFromBank(s.ctx, &LoanFromBankInput{
		BorrowerID: s.aliceID,
		Amount:     360,
	})
	s.Require().NoError(err)
}

func (s *LoanBookTestSuite) TestRepayBankInsufficientFunds() {
	_, err := s.service.LoanFromBank(s.ctx, &LoanFromBankInput{
		BorrowerID: s.aliceID,
		Amount:     300,
	})
	s.Require().NoError(err)

	// Burn the borrowed money and most of the stake
	_, err = s.service.AdjustMoney(s.ctx, &AdjustMoneyInput{
		PlayerID: s.aliceID,
		Delta:    -1700,
	})
	s.Require().NoError(err)

	_, err = s.service.RepayBank(s.ctx, &RepayBankInput{BorrowerID: s.aliceID})
	s.Require().Error(err)
	s.ErrorIs(err, ErrInsufficientFunds)

	// The debt is untouched
	loansOutput, err := s.service.GetLoans(s.ctx, &GetLoansInput{BorrowerID: s.aliceID})
	s.Require().NoError(err)
	s.Equal(300, loansOutput.BankLoan)
}

func (s *LoanBookTestSuite) TestRepayBankNoLoan() {
	_, err := s.service.RepayBank(s.ctx, &RepayBankInput{BorrowerID: s.aliceID})
	s.Require().Error(err)
	s.ErrorIs(err, ErrNoOutstandingLoan)
}

func (s *LoanBookTestSuite) TestLoanFromPlayer() {
	output, err := s.service.LoanFromPlayer(s.ctx, &LoanFromPlayerInput{
		BorrowerID: s.aliceID,
		LenderID:   s.bobID,
		Amount:     400,
	})
	s.Require().NoError(err)
	s.Require().NotNil(output.Loan)
	s.Equal(s.bobID, output.Loan.LenderID)
	s.Equal("Bob", output.Loan.LenderName)
	s.Equal(400, output.Loan.Amount)

	s.Equal(1900, s.balance(s.aliceID))
	s.Equal(1100, s.balance(s.bobID))

	loansOutput, err := s.service.GetLoans(s.ctx, &GetLoansInput{BorrowerID: s.aliceID})
	s.Require().NoError(err)
	s.Require().Len(loansOutput.PlayerLoans, 1)
	s.Equal(400, loansOutput.PlayerLoans[0].Amount)
}

func (s *LoanBookTestSuite) TestLoanFromPlayerLenderInsufficientFunds() {
	_, err := s.service.LoanFromPlayer(s.ctx, &LoanFromPlayerInput{
		BorrowerID: s.aliceID,
		LenderID:   s.bobID,
		Amount:     1501,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrInsufficientFunds)
}

func (s *LoanBookTestSuite) TestDuplicateLoansFromSameLenderStaySeparate() {
	_, err := s.service.LoanFromPlayer(s.ctx, &LoanFromPlayerInput{
		BorrowerID: s.aliceID,
		LenderID:   s.bobID,
		Amount:     100,
	})
	s.Require().NoError(err)

	_, err = s.service.LoanFromPlayer(s.ctx, &LoanFromPlayerInput{
		BorrowerID: s.aliceID,
		LenderID:   s.bobID,
		Amount:     100,
	})
	s.Require().NoError(err)

	loansOutput, err := s.service.GetLoans(s.ctx, &GetLoansInput{BorrowerID: s.aliceID})
	s.Require().NoError(err)
	s.Require().Len(loansOutput.PlayerLoans, 2)
	s.Equal(100, loansOutput.PlayerLoans[0].Amount)
	s.Equal(100, loansOutput.PlayerLoans[1].Amount)
	s.NotEqual(loansOutput.PlayerLoans[0].ID, loansOutput.PlayerLoans[1].ID)
}

func (s *LoanBookTestSuite) TestRepayPlayerLoanSettlesFirstMatch() {
	_, err := s.service.LoanFromPlayer(s.ctx, &LoanFromPlayerInput{
		BorrowerID: s.aliceID,
		LenderID:   s.bobID,
		Amount:     250,
	})
	s.Require().NoError(err)

	_, err = s.service.LoanFromPlayer(s.ctx, &LoanFromPlayerInput{
		BorrowerID: s.aliceID,
		LenderID:   s.bobID,
		Amount:     75,
	})
	s.Require().NoError(err)

	output, err := s.service.RepayPlayerLoan(s.ctx, &RepayPlayerLoanInput{
		BorrowerID: s.aliceID,
		LenderID:   s.bobID,
	})
	s.Require().NoError(err)
	s.Equal(250, output.Loan.Amount)

	loansOutput, err := s.service.GetLoans(s.ctx, &GetLoansInput{BorrowerID: s.aliceID})
	s.Require().NoError(err)
	s.Require().Len(loansOutput.PlayerLoans, 1)
	s.Equal(75, loansOutput.PlayerLoans[0].Amount)

	logOutput, err := s.service.GetTransactionLog(s.ctx, &GetTransactionLogInput{})
	s.Require().NoError(err)
	borrowerEntry := logOutput.Transactions[len(logOutput.Transactions)-2]
	lenderEntry := logOutput.Transactions[len(logOutput.Transactions)-1]
	s.Equal("Repaid loan from Bob", borrowerEntry.Reason)
	s.Equal(-250, borrowerEntry.Amount)
	s.Equal("Loan repaid by Alice", lenderEntry.Reason)
	s.Equal(250, lenderEntry.Amount)
}

func (s *LoanBookTestSuite) TestRepayPlayerLoanInsufficientFunds() {
	_, err := s.service.LoanFromPlayer(s.ctx, &LoanFromPlayerInput{
		BorrowerID: s.aliceID,
		LenderID:   s.bobID,
		Amount:     500,
	})
	s.Require().NoError(err)

	_, err = s.service.AdjustMoney(s.ctx, &AdjustMoneyInput{
		PlayerID: s.aliceID,
		Delta:    -1900,
	})
	s.Require().NoError(err)

	_, err = s.service.RepayPlayerLoan(s.ctx, &RepayPlayerLoanInput{
		BorrowerID: s.aliceID,
		LenderID:   s.bobID,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrInsufficientFunds)

	loansOutput, err := s.service.GetLoans(s.ctx, &GetLoansInput{BorrowerID: s.aliceID})
	s.Require().NoError(err)
	s.Len(loansOutput.PlayerLoans, 1)
}

func (s *LoanBookTestSuite) TestRepayPlayerLoanNoMatch() {
	_, err := s.service.RepayPlayerLoan(s.ctx, &RepayPlayerLoanInput{
		BorrowerID: s.aliceID,
		LenderID:   s.bobID,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrNoOutstandingLoan)
}

func (s *LoanBookTestSuite) TestLoanSettlementConservesMoney() {
	_, err := s.service.LoanFromPlayer(s.ctx, &LoanFromPlayerInput{
		BorrowerID: s.aliceID,
		LenderID:   s.bobID,
		Amount:     600,
	})
	s.Require().NoError(err)
	s.Equal(3000, s.balance(s.aliceID)+s.balance(s.bobID))

	_, err = s.service.RepayPlayerLoan(s.ctx, &RepayPlayerLoanInput{
		BorrowerID: s.aliceID,
		LenderID:   s.bobID,
	})
	s.Require().NoError(err)
	s.Equal(3000, s.balance(s.aliceID)+s.balance(s.bobID))
	s.Equal(1500, s.balance(s.aliceID))
	s.Equal(1500, s.balance(s.bobID))
}

func (s *LoanBookTestSuite) TestSweepReportsWithoutSettlingWhenUnconfirmed() {
	_, err := s.service.LoanFromPlayer(s.ctx, &LoanFromPlayerInput{
		BorrowerID: s.aliceID,
		LenderID:   s.bobID,
		Amount:     200,
	})
	s.Require().NoError(err)

	output, err := s.service.SweepEligibleRepayments(s.ctx, &SweepEligibleRepaymentsInput{})
	s.Require().NoError(err)
	s.Require().Len(output.Opportunities, 1)
	s.Empty(output.Settled)

	s.Equal("Alice", output.Opportunities[0].BorrowerName)
	s.Equal("Bob", output.Opportunities[0].LenderName)
	s.Equal(200, output.Opportunities[0].Amount)

	// Nothing moved
	loansOutput, err := s.service.GetLoans(s.ctx, &GetLoansInput{BorrowerID: s.aliceID})
	s.Require().NoError(err)
	s.Len(loansOutput.PlayerLoans, 1)
	s.Equal(1700, s.balance(s.aliceID))
}

func (s *LoanBookTestSuite) TestSweepSettlesConfirmedLoans() {
	_, err := s.service.LoanFromPlayer(s.ctx, &LoanFromPlayerInput{
		BorrowerID: s.aliceID,
		LenderID:   s.bobID,
		Amount:     200,
	})
	s.Require().NoError(err)

	_, err = s.service.LoanFromPlayer(s.ctx, &LoanFromPlayerInput{
		BorrowerID: s.bobID,
		LenderID:   s.aliceID,
		Amount:     50,
	})
	s.Require().NoError(err)

	output, err := s.service.SweepEligibleRepayments(s.ctx, &SweepEligibleRepaymentsInput{
		Confirm: func(opportunity *RepaymentOpportunity) bool {
			return opportunity.BorrowerID == s.aliceID
		},
	})
	s.Require().NoError(err)
	s.Len(output.Opportunities, 2)
	s.Require().Len(output.Settled, 1)
	s.Equal(s.aliceID, output.Settled[0].BorrowerID)

	aliceLoans, err := s.service.GetLoans(s.ctx, &GetLoansInput{BorrowerID: s.aliceID})
	s.Require().NoError(err)
	s.Empty(aliceLoans.PlayerLoans)

	bobLoans, err := s.service.GetLoans(s.ctx, &GetLoansInput{BorrowerID: s.bobID})
	s.Require().NoError(err)
	s.Len(bobLoans.PlayerLoans, 1)
}

func (s *LoanBookTestSuite) TestSweepSkipsUncoverableLoans() {
	_, err := s.service.LoanFromPlayer(s.ctx, &LoanFromPlayerInput{
		BorrowerID: s.aliceID,
		LenderID:   s.bobID,
		Amount:     300,
	})
	s.Require().NoError(err)

	// Alice spends below the loan amount
	_, err = s.service.AdjustMoney(s.ctx, &AdjustMoneyInput{
		PlayerID: s.aliceID,
		Delta:    -1600,
	})
	s.Require().NoError(err)

	output, err := s.service.SweepEligibleRepayments(s.ctx, &SweepEligibleRepaymentsInput{
		Confirm: func(opportunity *RepaymentOpportunity) bool { return true },
	})
	s.Require().NoError(err)
	s.Empty(output.Opportunities)
	s.Empty(output.Settled)
}

func (s *LoanBookTestSuite) TestBankLoanUnknownBorrower() {
	_, err := s.service.LoanFromBank(s.ctx, &LoanFromBankInput{
		BorrowerID: "nope",
		Amount:     100,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrPlayerNotFound)
}
