package loanbook

import (
	"errors"

	"github.com/mboyd/boardbank/internal/models"
)

// ErrNotFound is returned when no saved loan book exists
var ErrNotFound = errors.New("no saved loan book found")

// SaveBookInput contains parameters for saving the loan book
type SaveBookInput struct {
	Book *models.LoanBook
}

// LoadBookInput contains parameters for loading the saved loan book
type LoadBookInput struct{}

// LoadBookOutput contains the result of loading the saved loan book
type LoadBookOutput struct {
	Book *models.LoanBook
}
