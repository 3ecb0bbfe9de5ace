package gamestate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mboyd/boardbank/internal/models"
)

const stateFileName = "latest.json"

// FileConfig holds configuration for the file-backed repository
type FileConfig struct {
	// DataDir is the directory where the snapshot document is stored
	DataDir string
}

// fileRepository implements the Repository interface using a JSON file
type fileRepository struct {
	dataDir string
}

// NewFile creates a new file-backed game state repository
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
	return filepath.Join(r.dataDir, stateFileName)
}

// SaveState persists a full game state snapshot to disk. The document
// is written to a temp file and renamed so a failed save never leaves
// a partially overwritten snapshot behind.
func (r *fileRepository) SaveState(ctx context.Context, input *SaveStateInput) error {
	if input == nil || input.State == nil {
		return errors.New("input and state cannot be nil")
	}

	data, err := json.MarshalIndent(input.State, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	tmp, err := os.CreateTemp(r.dataDir, stateFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write game state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write game state: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.filePath()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to save game state: %w", err)
	}

	return nil
}

// LoadState retrieves the saved snapshot from disk
func (r *fileRepository) LoadState(ctx context.Context, input *LoadStateInput) (*LoadStateOutput, error) {
	data, err := os.ReadFile(r.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read game state: %w", err)
	}

	var state models.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game state: %w", err)
	}

	return &LoadStateOutput{
		State: &state,
	}, nil
}
