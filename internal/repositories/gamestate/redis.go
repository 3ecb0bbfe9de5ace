package gamestate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mboyd/boardbank/internal/models"
	"github.com/redis/go-redis/v9"
)

const stateKey = "boardbank:gamestate"

// Config holds configuration for the Redis game state repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed game state repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveState persists a full game state snapshot to Redis
func (r *redisRepository) SaveState(ctx context.Context, input *SaveStateInput) error {
	if input == nil || input.State == nil {
		return errors.New("input and state cannot be nil")
	}

	data, err := json.Marshal(input.State)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	if err := r.client.Set(ctx, stateKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save game state: %w", err)
	}

	return nil
}

// LoadState retrieves the saved snapshot from Redis
func (r *redisRepository) LoadState(ctx context.Context, input *LoadStateInput) (*LoadStateOutput, error) {
	data, err := r.client.Get(ctx, stateKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}

	var state models.GameState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game state: %w", err)
	}

	return &LoadStateOutput{
		State: &state,
	}, nil
}
