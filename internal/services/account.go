package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/horizonbank/horizon/internal/logger"
	"github.com/horizonbank/horizon/internal/models"
)

var (
	// ErrAccountNotFound is returned when the referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")
	// ErrNotAccountOwner is returned when a customer touches an account they do not own.
	ErrNotAccountOwner = errors.New("account does not belong to user")
	// ErrInvalidAmount is returned for zero or negative amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientFunds is returned when a debit would overdraw the account.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrSameAccount is returned when a transfer names one account on both sides.
	ErrSameAccount = errors.New("cannot transfer to the same account")
)

// AccountReader defines read operations for accounts.
type AccountReader interface {
	GetByID(ctx context.Context, accountID int64) (*models.AccountDB, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.AccountDB, error)
}

// AccountWriter defines balance updates.
type AccountWriter interface {
	UpdateBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error
}

// TransactionReader defines read operations for transactions.
type TransactionReader interface {
	ListByAccountID(ctx context.Context, accountID int64) ([]models.TransactionDB, error)
}

// TransactionWriter persists one transaction, assigning its id.
type TransactionWriter interface {
	Save(ctx context.Context, accountID int64, txType models.TransactionType, amount decimal.Decimal, description string, occurredAt time.Time) (*models.TransactionDB, error)
}

// SummaryCache caches per-user account summaries.
type SummaryCache interface {
	GetAccounts(ctx context.Context, userID int64) ([]models.AccountDB, error)
	SetAccounts(ctx context.Context, userID int64, accounts []models.AccountDB) error
	Invalidate(ctx context.Context, userID int64) error
}

// recentTransactions caps the dashboard's activity feed.
const recentTransactions = 10

// AccountService serves the customer dashboard, transaction history and transfers.
type AccountService struct {
	accountReader AccountReader
	accountWriter AccountWriter
	txReader      TransactionReader
	txWriter      TransactionWriter
	cache         SummaryCache
	kafkaWriter   KafkaWriter
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	accountReader AccountReader,
	accountWriter AccountWriter,
	txReader TransactionReader,
	txWriter TransactionWriter,
	cache SummaryCache,
	kafkaWriter KafkaWriter,
) *AccountService {
	return &AccountService{
		accountReader: accountReader,
		accountWriter: accountWriter,
		txReader:      txReader,
		txWriter:      txWriter,
		cache:         cache,
		kafkaWriter:   kafkaWriter,
	}
}

// accounts returns the user's accounts, consulting the cache first.
func (s *AccountService) accounts(ctx context.Context, userID int64) ([]models.AccountDB, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAccounts(ctx, userID); err == nil {
			return cached, nil
		}
	}

	accounts, err := s.accountReader.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetAccounts(ctx, userID, accounts); err != nil {
			logger.Log.Errorw("failed to cache account summary", "userID", userID, "error", err)
		}
	}
	return accounts, nil
}

// Dashboard returns the user's accounts and their most recent transactions
// across all accounts, newest first.
func (s *AccountService) Dashboard(ctx context.Context, userID int64) ([]models.AccountDB, []models.TransactionDB, error) {
	accounts, err := s.accounts(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list accounts", "userID", userID, "error", err)
		return nil, nil, err
	}

	var recent []models.TransactionDB
	for _, a := range accounts {
		txns, err := s.txReader.ListByAccountID(ctx, a.AccountID)
		if err != nil {
			logger.Log.Errorw("failed to list transactions", "accountID", a.AccountID, "error", err)
			return nil, nil, err
		}
		recent = append(recent, txns...)
	}

	// Repositories return chronological order; the feed wants newest first.
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}
	if len(recent) > recentTransactions {
		recent = recent[:recentTransactions]
	}

	return accounts, recent, nil
}

// Transactions returns the full history of one account after checking ownership.
func (s *AccountService) Transactions(ctx context.Context, userID, accountID int64) ([]models.TransactionDB, error) {
	account, err := s.accountReader.GetByID(ctx, accountID)
	if err != nil {
		logger.Log.Errorw("failed to get account", "accountID", accountID, "error", err)
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	if account.UserID != userID {
		logger.Log.Warnw("transaction history denied", "userID", userID, "accountID", accountID)
		return nil, ErrNotAccountOwner
	}

	return s.txReader.ListByAccountID(ctx, accountID)
}

// Transfer moves amount between two of the bank's accounts. The source must
// belong to the calling user and may not go negative.
func (s *AccountService) Transfer(ctx context.Context, userID, fromID, toID int64, amount decimal.Decimal) (*models.AccountDB, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if fromID == toID {
		return nil, ErrSameAccount
	}

	from, err := s.accountReader.GetByID(ctx, fromID)
	if err != nil {
		return nil, err
	}
	if from == nil {
		return nil, ErrAccountNotFound
	}
	if from.UserID != userID {
		logger.Log.Warnw("transfer denied", "userID", userID, "accountID", fromID)
		return nil, ErrNotAccountOwner
	}

	to, err := s.accountReader.GetByID(ctx, toID)
	if err != nil {
		return nil, err
	}
	if to == nil {
		return nil, ErrAccountNotFound
	}

	newFromBalance := from.Balance.Sub(amount)
	if newFromBalance.IsNegative() {
		return nil, ErrInsufficientFunds
	}

	if err := s.accountWriter.UpdateBalance(ctx, fromID, newFromBalance); err != nil {
		logger.Log.Errorw("failed to debit source account", "accountID", fromID, "error", err)
		return nil, err
	}
	if err := s.accountWriter.UpdateBalance(ctx, toID, to.Balance.Add(amount)); err != nil {
		logger.Log.Errorw("failed to credit destination account", "accountID", toID, "error", err)
		return nil, err
	}

	now := time.Now()
	out, err := s.txWriter.Save(ctx, fromID, models.TransactionWithdrawal, amount,
		fmt.Sprintf("TRANSFER - TO ACCOUNT %d", toID), now)
	if err != nil {
		logger.Log.Errorw("failed to record outgoing transfer", "accountID", fromID, "error", err)
		return nil, err
	}
	in, err := s.txWriter.Save(ctx, toID, models.TransactionDeposit, amount,
		fmt.Sprintf("TRANSFER - FROM ACCOUNT %d", fromID), now)
	if err != nil {
		logger.Log.Errorw("failed to record incoming transfer", "accountID", toID, "error", err)
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, from.UserID)
		if to.UserID != from.UserID {
			s.cache.Invalidate(ctx, to.UserID)
		}
	}

	publishTransaction(ctx, s.kafkaWriter, uuid.NewString(), out)
	publishTransaction(ctx, s.kafkaWriter, uuid.NewString(), in)

	from.Balance = newFromBalance
	return from, nil
}
