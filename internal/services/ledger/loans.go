package ledger

import (
	"context"
	"fmt"

	"github.com/mboyd/boardbank/internal/models"
)

// LoanFromBank issues a bank loan. A borrower's outstanding bank debt
// can never exceed the ceiling, counting the new loan.
func (s *service) LoanFromBank(ctx context.Context, input *LoanFromBankInput) (*LoanFromBankOutput, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	borrower, err := s.findPlayer(input.BorrowerID)
	if err != nil {
		return nil, err
	}

	outstanding := s.loans.BankLoans[borrower.ID]
	if input.Amount > s.bankLoanCeiling || outstanding+input.Amount > s.bankLoanCeiling {
		return nil, ErrLoanLimitExceeded
	}

	s.loans.BankLoans[borrower.ID] = outstanding + input.Amount
	s.applyDelta(borrower, input.Amount, "Loan from Bank")

	return &LoanFromBankOutput{
		Outstanding: s.loans.BankLoans[borrower.ID],
	}, nil
}

// LoanFromPlayer issues a loan from one player to another. Each loan is
// its own record; loans from the same lender are never merged.
func (s *service) LoanFromPlayer(ctx context.Context, input *LoanFromPlayerInput) (*LoanFromPlayerOutput, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	borrower, err := s.findPlayer(input.BorrowerID)
	if err != nil {
		return nil, err
	}

	lender, err := s.findPlayer(input.LenderID)
	if err != nil {
		return nil, err
	}

	if lender.Money < input.Amount {
		return nil, ErrInsufficientFunds
	}

	loan := &models.PlayerLoan{
		ID:         s.uuids.NewUUID(),
		LenderID:   lender.ID,
		LenderName: lender.Name,
		Amount:     input.Amount,
		Timestamp:  s.clock.Now(),
	}
	s.loans.PlayerLoans[borrower.ID] = append(s.loans.PlayerLoans[borrower.ID], loan)

	s.applyDelta(lender, -input.Amount, fmt.Sprintf("Loaned to %s", borrower.Name))
	s.applyDelta(borrower, input.Amount, fmt.Sprintf("Loan from %s", lender.Name))

	return &LoanFromPlayerOutput{
		Loan: loan.Clone(),
	}, nil
}

// RepayBank repays the borrower's entire outstanding bank loan at once.
// Partial repayment is not supported.
func (s *service) RepayBank(ctx context.Context, input *RepayBankInput) (*RepayBankOutput, error) {
	borrower, err := s.findPlayer(input.BorrowerID)
	if err != nil {
		return nil, err
	}

	outstanding, ok := s.loans.BankLoans[borrower.ID]
	if !ok || outstanding == 0 {
		return nil, ErrNoOutstandingLoan
	}

	if borrower.Money < outstanding {
		return nil, ErrInsufficientFunds
	}

	delete(s.loans.BankLoans, borrower.ID)
	s.applyDelta(borrower, -outstanding, "Repaid bank loan")

	return &RepayBankOutput{
		AmountRepaid: outstanding,
	}, nil
}

// RepayPlayerLoan settles the borrower's oldest loan from the given
// lender. With several loans from one lender, insertion order decides
// which is settled.
func (s *service) RepayPlayerLoan(ctx context.Context, input *RepayPlayerLoanInput) (*RepayPlayerLoanOutput, error) {
	borrower, err := s.findPlayer(input.BorrowerID)
	if err != nil {
		return nil, err
	}

	lender, err := s.findPlayer(input.LenderID)
	if err != nil {
		return nil, err
	}

	var loan *models.PlayerLoan
	for _, candidate := range s.loans.PlayerLoans[borrower.ID] {
		if candidate.LenderID == lender.ID {
			loan = candidate
			break
		}
	}
	if loan == nil {
		return nil, ErrNoOutstandingLoan
	}

	if borrower.Money < loan.Amount {
		return nil, ErrInsufficientFunds
	}

	s.settleLoan(borrower, lender, loan)

	return &RepayPlayerLoanOutput{
		Loan: loan.Clone(),
	}, nil
}

// settleLoan moves the funds, logs both sides, and removes the record.
// Callers must have validated the borrower's balance.
func (s *service) settleLoan(borrower, lender *models.Player, loan *models.PlayerLoan) {
	s.applyDelta(borrower, -loan.Amount, fmt.Sprintf("Repaid loan from %s", lender.Name))
	s.applyDelta(lender, loan.Amount, fmt.Sprintf("Loan repaid by %s", borrower.Name))

	loans := s.loans.PlayerLoans[borrower.ID]
	remaining := make([]*models.PlayerLoan, 0, len(loans)-1)
	for _, candidate := range loans {
		if candidate.ID != loan.ID {
			remaining = append(remaining, candidate)
		}
	}
	if len(remaining) == 0 {
		delete(s.loans.PlayerLoans, borrower.ID)
	} else {
		s.loans.PlayerLoans[borrower.ID] = remaining
	}
}

// SweepEligibleRepayments walks every outstanding player loan in
// borrower creation order and surfaces each one the borrower's current
// balance covers. Settlement happens only when the caller's Confirm
// callback answers yes; the engine never debits a player on its own.
func (s *service) SweepEligibleRepayments(ctx context.Context, input *SweepEligibleRepaymentsInput) (*SweepEligibleRepaymentsOutput, error) {
	output := &SweepEligibleRepaymentsOutput{}

	for _, borrowerID := range s.playerOrder {
		borrower := s.players[borrowerID]

		// Settlement mutates the list, so walk a copy
		loans := append([]*models.PlayerLoan(nil), s.loans.PlayerLoans[borrowerID]...)
		for _, loan := range loans {
			if borrower.Money < loan.Amount {
				continue
			}

			lender, err := s.findPlayer(loan.LenderID)
			if err != nil {
				return nil, fmt.Errorf("%w: lender %s", ErrDanglingReference, loan.LenderID)
			}

			opportunity := &RepaymentOpportunity{
				LoanID:       loan.ID,
				BorrowerID:   borrower.ID,
				BorrowerName: borrower.Name,
				LenderID:     lender.ID,
				LenderName:   lender.Name,
				Amount:       loan.Amount,
			}
			output.Opportunities = append(output.Opportunities, opportunity)

			if input.Confirm != nil && input.Confirm(opportunity) {
				s.settleLoan(borrower, lender, loan)
				output.Settled = append(output.Settled, opportunity)
			}
		}
	}

	return output, nil
}

// GetLoans returns a borrower's outstanding loans
func (s *service) GetLoans(ctx context.Context, input *GetLoansInput) (*GetLoansOutput, error) {
	borrower, err := s.findPlayer(input.BorrowerID)
	if err != nil {
		return nil, err
	}

	loans := make([]*models.PlayerLoan, 0, len(s.loans.PlayerLoans[borrower.ID]))
	for _, loan := range s.loans.PlayerLoans[borrower.ID] {
		loans = append(loans, loan.Clone())
	}

	return &GetLoansOutput{
		PlayerLoans: loans,
		BankLoan:    s.loans.BankLoans[borrower.ID],
	}, nil
}
