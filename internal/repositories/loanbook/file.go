package loanbook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mboyd/boardbank/internal/models"
)

const bookFileName = "loans.json"

// FileConfig holds configuration for the file-backed repository
type FileConfig struct {
	// DataDir is the directory where the loan book document is stored
	DataDir string
}

// fileRepository implements the Repository interface using a JSON file
type fileRepository struct {
	dataDir string
}

// NewFile creates a new file-backed loan book repository
func NewFile(cfg *FileConfig) (*fileRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DataDir == "" {
		return nil, errors.New("data directory cannot be empty")
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &fileRepository{
		dataDir: cfg.DataDir,
	}, nil
}

func (r *fileRepository) filePath() string {
	return filepath.Join(r.dataDir, bookFileName)
}

// SaveBook persists the loan book to disk via temp file and rename so a
// failed save never corrupts the previous document.
func (r *fileRepository) SaveBook(ctx context.Context, input *SaveBookInput) error {
	if input == nil || input.Book == nil {
		return errors.New("input and book cannot be nil")
	}

	data, err := json.MarshalIndent(input.Book, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal loan book: %w", err)
	}

	tmp, err := os.CreateTemp(r.dataDir, bookFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write loan book: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write loan book: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.filePath()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to save loan book: %w", err)
	}

	return nil
}

// LoadBook retrieves the saved loan book from disk
func (r *fileRepository) LoadBook(ctx context.Context, input *LoadBookInput) (*LoadBookOutput, error) {
	data, err := os.ReadFile(r.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read loan book: %w", err)
	}

	var book models.LoanBook
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("failed to unmarshal loan book: %w", err)
	}

	// Maps may be absent in older documents
	if book.PlayerLoans == nil {
		book.PlayerLoans = make(map[string][]*models.PlayerLoan)
	}
	if book.BankLoans == nil {
		book.BankLoans = make(map[string]int)
	}

	return &LoadBookOutput{
		Book: &book,
	}, nil
}
