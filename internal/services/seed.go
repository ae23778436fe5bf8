package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/horizonbank/horizon/internal/history"
	"github.com/horizonbank/horizon/internal/logger"
	"github.com/horizonbank/horizon/internal/models"
)

// TransactionCounter reports how many transactions the store holds.
type TransactionCounter interface {
	CountAll(ctx context.Context) (int64, error)
}

// SeedAccount describes one demo account to open and backfill.
type SeedAccount struct {
	Type            string
	StartingBalance decimal.Decimal
}

// DefaultSeedAccounts are the demo customer's accounts.
var DefaultSeedAccounts = []SeedAccount{
	{Type: models.AccountChecking, StartingBalance: decimal.NewFromInt(2500)},
	{Type: models.AccountSavings, StartingBalance: decimal.NewFromInt(15000)},
	{Type: models.AccountCredit, StartingBalance: decimal.NewFromInt(500)},
}

// historyStart is the fixed beginning of the seeded window.
var historyStart = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// SeedService populates an empty store with a demo customer, an admin user
// and several years of generated account history.
type SeedService struct {
	userReader UserReader
	userWriter UserWriter
	accounts   AccountCreator
	txCounter  TransactionCounter
	txWriter   TransactionWriter
	generator  *history.Generator
}

// NewSeedService creates a new SeedService.
func NewSeedService(
	userReader UserReader,
	userWriter UserWriter,
	accounts AccountCreator,
	txCounter TransactionCounter,
	txWriter TransactionWriter,
	generator *history.Generator,
) *SeedService {
	return &SeedService{
		userReader: userReader,
		userWriter: userWriter,
		accounts:   accounts,
		txCounter:  txCounter,
		txWriter:   txWriter,
		generator:  generator,
	}
}

// Run seeds the store once. A store that already holds transactions is left
// untouched, so restarts against persistent storage are safe.
func (s *SeedService) Run(ctx context.Context) error {
	count, err := s.txCounter.CountAll(ctx)
	if err != nil {
		logger.Log.Errorw("failed to count transactions", "error", err)
		return err
	}
	if count > 0 {
		logger.Log.Infow("store already seeded, skipping", "transactions", count)
		return nil
	}

	adminID, err := s.ensureUser(ctx, "admin", "admin@horizonbank.dev", "admin123", models.RoleAdmin)
	if err != nil {
		return err
	}
	demoID, err := s.ensureUser(ctx, "demo", "demo@horizonbank.dev", "demo1234", models.RoleCustomer)
	if err != nil {
		return err
	}
	logger.Log.Infow("seed users ready", "admin_id", adminID, "demo_id", demoID)

	windowEnd := time.Now().UTC()
	for _, seed := range DefaultSeedAccounts {
		account, err := s.accounts.Save(ctx, demoID, seed.Type, seed.StartingBalance)
		if err != nil {
			logger.Log.Errorw("failed to create seed account", "type", seed.Type, "error", err)
			return err
		}

		records := s.generator.Generate(account.AccountID, seed.StartingBalance, historyStart, windowEnd)

		final := seed.StartingBalance
		for _, rec := range records {
			txn, err := s.txWriter.Save(ctx, rec.AccountID, rec.Type, rec.Amount, rec.Description, rec.Date)
			if err != nil {
				logger.Log.Errorw("failed to persist seed transaction", "accountID", rec.AccountID, "error", err)
				return err
			}
			final = final.Add(txn.Signed())
		}

		// The account row keeps its creation-time balance; the replayed
		// final balance is informational only.
		logger.Log.Infow("seeded account history",
			"account_id", account.AccountID,
			"type", seed.Type,
			"transactions", len(records),
			"replayed_balance", final.StringFixed(2),
		)
	}

	return nil
}

func (s *SeedService) ensureUser(ctx context.Context, username, email, password, role string) (int64, error) {
	existing, err := s.userReader.GetByUsernameOrEmail(ctx, &username, nil)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.UserID, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	return s.userWriter.Save(ctx, username, string(hash), email, role)
}
