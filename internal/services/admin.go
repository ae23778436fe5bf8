package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/horizonbank/horizon/internal/logger"
	"github.com/horizonbank/horizon/internal/models"
)

var (
	// ErrCardNotFound is returned when the referenced card does not exist.
	ErrCardNotFound = errors.New("card not found")
	// ErrCardAlreadyReviewed is returned when a reviewed card is reviewed again.
	ErrCardAlreadyReviewed = errors.New("card already reviewed")
	// ErrUnknownAccountType is returned for account types outside the supported set.
	ErrUnknownAccountType = errors.New("unknown account type")
)

// CustomerLister lists customer users for the admin console.
type CustomerLister interface {
	List(ctx context.Context) ([]models.UserDB, error)
}

// AccountCreator opens new accounts.
type AccountCreator interface {
	Save(ctx context.Context, userID int64, accountType string, balance decimal.Decimal) (*models.AccountDB, error)
}

// CardReader defines read operations for cards.
type CardReader interface {
	GetByID(ctx context.Context, cardID int64) (*models.CardDB, error)
}

// CardWriter defines write operations for cards.
type CardWriter interface {
	Save(ctx context.Context, accountID int64, maskedNumber string) (*models.CardDB, error)
	UpdateStatus(ctx context.Context, cardID int64, status string) error
}

// AdminService implements the admin console operations: customer listing,
// account creation, manual credit/debit and card issuance.
type AdminService struct {
	customers     CustomerLister
	accountReader AccountReader
	accountWriter AccountWriter
	accounts      AccountCreator
	txWriter      TransactionWriter
	cardReader    CardReader
	cardWriter    CardWriter
	cache         SummaryCache
	kafkaWriter   KafkaWriter
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	customers CustomerLister,
	accountReader AccountReader,
	accountWriter AccountWriter,
	accounts AccountCreator,
	txWriter TransactionWriter,
	cardReader CardReader,
	cardWriter CardWriter,
	cache SummaryCache,
	kafkaWriter KafkaWriter,
) *AdminService {
	return &AdminService{
		customers:     customers,
		accountReader: accountReader,
		accountWriter: accountWriter,
		accounts:      accounts,
		txWriter:      txWriter,
		cardReader:    cardReader,
		cardWriter:    cardWriter,
		cache:         cache,
		kafkaWriter:   kafkaWriter,
	}
}

// Customers returns all customer users.
func (s *AdminService) Customers(ctx context.Context) ([]models.UserDB, error) {
	users, err := s.customers.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list customers", "error", err)
	}
	return users, err
}

// CreateAccount opens an account for a customer with an initial balance.
func (s *AdminService) CreateAccount(ctx context.Context, userID int64, accountType string, initialBalance decimal.Decimal) (*models.AccountDB, error) {
	if !models.ValidAccountType(accountType) {
		return nil, ErrUnknownAccountType
	}
	if initialBalance.IsNegative() {
		return nil, ErrInvalidAmount
	}

	account, err := s.accounts.Save(ctx, userID, accountType, initialBalance)
	if err != nil {
		logger.Log.Errorw("failed to create account", "userID", userID, "type", accountType, "error", err)
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
	return account, nil
}

// Credit adds funds to an account and records a deposit transaction.
func (s *AdminService) Credit(ctx context.Context, accountID int64, amount decimal.Decimal, description string) (*models.AccountDB, error) {
	return s.adjust(ctx, accountID, amount, description, models.TransactionDeposit)
}

// Debit removes funds from an account and records a withdrawal transaction.
// A debit that would overdraw the account is refused.
func (s *AdminService) Debit(ctx context.Context, accountID int64, amount decimal.Decimal, description string) (*models.AccountDB, error) {
	return s.adjust(ctx, accountID, amount, description, models.TransactionWithdrawal)
}

func (s *AdminService) adjust(ctx context.Context, accountID int64, amount decimal.Decimal, description string, txType models.TransactionType) (*models.AccountDB, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	account, err := s.accountReader.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	newBalance := account.Balance.Add(amount)
	if txType == models.TransactionWithdrawal {
		newBalance = account.Balance.Sub(amount)
		if newBalance.IsNegative() {
			return nil, ErrInsufficientFunds
		}
	}

	if err := s.accountWriter.UpdateBalance(ctx, accountID, newBalance); err != nil {
		logger.Log.Errorw("failed to update balance", "accountID", accountID, "error", err)
		return nil, err
	}

	if description == "" {
		description = fmt.Sprintf("ADMIN %s", txType)
	}
	txn, err := s.txWriter.Save(ctx, accountID, txType, amount, description, time.Now())
	if err != nil {
		logger.Log.Errorw("failed to record adjustment", "accountID", accountID, "error", err)
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, account.UserID)
	}
	publishTransaction(ctx, s.kafkaWriter, uuid.NewString(), txn)

	account.Balance = newBalance
	return account, nil
}

// IssueCard creates a pending card request for an account. Only the masked
// form of the generated number is ever stored.
func (s *AdminService) IssueCard(ctx context.Context, accountID int64) (*models.CardDB, error) {
	account, err := s.accountReader.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	masked := fmt.Sprintf("**** **** **** %04d", rand.Intn(10000))
	card, err := s.cardWriter.Save(ctx, accountID, masked)
	if err != nil {
		logger.Log.Errorw("failed to save card", "accountID", accountID, "error", err)
		return nil, err
	}
	return card, nil
}

// ReviewCard approves or rejects a pending card.
func (s *AdminService) ReviewCard(ctx context.Context, cardID int64, approve bool) (*models.CardDB, error) {
	card, err := s.cardReader.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, ErrCardNotFound
	}
	if card.Status != models.CardPending {
		return nil, ErrCardAlreadyReviewed
	}

	status := models.CardRejected
	if approve {
		status = models.CardActive
	}
	if err := s.cardWriter.UpdateStatus(ctx, cardID, status); err != nil {
		logger.Log.Errorw("failed to update card status", "cardID", cardID, "error", err)
		return nil, err
	}

	card.Status = status
	return card, nil
}
