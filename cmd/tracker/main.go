package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/mboyd/boardbank/internal/catalog"
	"github.com/mboyd/boardbank/internal/common/clock"
	"github.com/mboyd/boardbank/internal/common/uuid"
	"github.com/mboyd/boardbank/internal/export"
	"github.com/mboyd/boardbank/internal/models"
	"github.com/mboyd/boardbank/internal/repositories/gamestate"
	"github.com/mboyd/boardbank/internal/repositories/loanbook"
	"github.com/mboyd/boardbank/internal/services/ledger"
)

func main() {
	// Missing .env is fine; plain environment variables still apply
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	stateRepo, bookRepo, err := buildRepositories()
	if err != nil {
		logger.Error("failed to build repositories", "error", err)
		os.Exit(1)
	}

	var properties []*models.Property
	if catalogPath := getEnv("BOARDBANK_CATALOG", ""); catalogPath != "" {
		properties, err = catalog.Load(catalogPath)
		if err != nil {
			logger.Error("failed to load property catalog", "error", err, "path", catalogPath)
			os.Exit(1)
		}
		logger.Info("loaded property catalog", "path", catalogPath, "properties", len(properties))
	}

	svc, err := ledger.New(&ledger.Config{
		StartingBalance: getEnvInt("BOARDBANK_STARTING_BALANCE", 0),
		BankLoanCeiling: getEnvInt("BOARDBANK_LOAN_CEILING", 0),
		Properties:      properties,
		GameStateRepo:   stateRepo,
		LoanBookRepo:    bookRepo,
		Clock:           &clock.DefaultClock{},
		UUIDGenerator:   uuid.New(),
		BankruptcyHandler: func(ctx context.Context, event *ledger.BankruptcyEvent) {
			logger.Warn("player cannot cover rent",
				"payer", event.PayerID,
				"creditor", event.CreditorID,
				"amount", event.AmountOwed,
				"property", event.PropertyName)
		},
	})
	if err != nil {
		logger.Error("failed to create ledger service", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	loadOutput, err := svc.LoadGame(ctx, &ledger.LoadGameInput{})
	if err != nil {
		logger.Error("failed to restore saved game", "error", err)
		os.Exit(1)
	}
	if loadOutput.Loaded {
		logger.Info("restored saved game")
	}

	command := "status"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "status":
		err = printStatus(ctx, svc)
	case "export":
		err = exportLog(ctx, svc, os.Args[2:])
	case "save":
		_, err = svc.SaveGame(ctx, &ledger.SaveGameInput{})
		if err == nil {
			logger.Info("game saved")
		}
	default:
		err = fmt.Errorf("unknown command %q (expected status, export, or save)", command)
	}
	if err != nil {
		logger.Error("command failed", "command", command, "error", err)
		os.Exit(1)
	}
}

// buildRepositories selects the persistence backend from
// BOARDBANK_STORE: "file" (the default) or "redis".
func buildRepositories() (gamestate.Repository, loanbook.Repository, error) {
	switch store := getEnv("BOARDBANK_STORE", "file"); store {
	case "file":
		dataDir := getEnv("BOARDBANK_DATA_DIR", "data")
		stateRepo, err := gamestate.NewFile(&gamestate.FileConfig{DataDir: dataDir})
		if err != nil {
			return nil, nil, err
		}
		bookRepo, err := loanbook.NewFile(&loanbook.FileConfig{DataDir: dataDir})
		if err != nil {
			return nil, nil, err
		}
		return stateRepo, bookRepo, nil
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		stateRepo, err := gamestate.NewRedis(&gamestate.Config{RedisClient: redisClient})
		if err != nil {
			return nil, nil, err
		}
		bookRepo, err := loanbook.NewRedis(&loanbook.Config{RedisClient: redisClient})
		if err != nil {
			return nil, nil, err
		}
		return stateRepo, bookRepo, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q (expected file or redis)", store)
	}
}

// printStatus writes player balances and holdings to stdout.
func printStatus(ctx context.Context, svc ledger.Service) error {
	playersOutput, err := svc.ListPlayers(ctx, &ledger.ListPlayersInput{})
	if err != nil {
		return err
	}
	if len(playersOutput.Players) == 0 {
		fmt.Println("No players in the current game.")
		return nil
	}

	for _, player := range playersOutput.Players {
		fmt.Printf("%s: $%d", player.Name, player.Money)
		if player.InJail {
			fmt.Print(" [in jail]")
		}
		fmt.Println()
		for _, name := range player.Properties {
			fmt.Printf("  - %s\n", name)
		}

		loansOutput, err := svc.GetLoans(ctx, &ledger.GetLoansInput{BorrowerID: player.ID})
		if err != nil {
			return err
		}
		if loansOutput.BankLoan > 0 {
			fmt.Printf("  owes bank $%d\n", loansOutput.BankLoan)
		}
		for _, loan := range loansOutput.PlayerLoans {
			fmt.Printf("  owes %s $%d\n", loan.LenderName, loan.Amount)
		}
	}
	return nil
}

// exportLog writes the transaction log as CSV to the given path, or to
// stdout when no path is given.
func exportLog(ctx context.Context, svc ledger.Service, args []string) error {
	logOutput, err := svc.GetTransactionLog(ctx, &ledger.GetTransactionLogInput{})
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return export.WriteTransactions(os.Stdout, logOutput.Transactions)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := export.WriteTransactions(f, logOutput.Transactions); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
