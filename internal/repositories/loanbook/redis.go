package loanbook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mboyd/boardbank/internal/models"
	"github.com/redis/go-redis/v9"
)

const bookKey = "boardbank:loanbook"

// Config holds configuration for the Redis loan book repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed loan book repository
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

// SaveBook persists the loan book to Redis
func (r *redisRepository) SaveBook(ctx context.Context, input *SaveBookInput) error {
	if input == nil || input.Book == nil {
		return errors.New("input and book cannot be nil")
	}

	data, err := json.Marshal(input.Book)
	if err != nil {
		return fmt.Errorf("failed to marshal loan book: %w", err)
	}

	if err := r.client.Set(ctx, bookKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save loan book: %w", err)
	}

	return nil
}

// LoadBook retrieves the saved loan book from Redis
func (r *redisRepository) LoadBook(ctx context.Context, input *LoadBookInput) (*LoadBookOutput, error) {
	data, err := r.client.Get(ctx, bookKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get loan book: %w", err)
	}

	var book models.LoanBook
	if err := json.Unmarshal([]byte(data), &book); err != nil {
		return nil, fmt.Errorf("failed to unmarshal loan book: %w", err)
	}

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
