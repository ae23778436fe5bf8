package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/horizonbank/horizon/internal/models"
)

// MemoryStorage is a mutex-guarded in-memory backend with auto-increment ids.
// It backs the demo mode and the test suite; the per-entity accessors satisfy
// the same interfaces as the Postgres repositories.
type MemoryStorage struct {
	mu sync.RWMutex

	users        map[int64]models.UserDB
	accounts     map[int64]models.AccountDB
	cards        map[int64]models.CardDB
	transactions map[int64]models.TransactionDB

	nextUserID        int64
	nextAccountID     int64
	nextCardID        int64
	nextTransactionID int64
}

// NewMemoryStorage creates an empty store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:        make(map[int64]models.UserDB),
		accounts:     make(map[int64]models.AccountDB),
		cards:        make(map[int64]models.CardDB),
		transactions: make(map[int64]models.TransactionDB),
	}
}

// Users returns the user view of the store.
func (s *MemoryStorage) Users() *MemoryUserRepository { return &MemoryUserRepository{s: s} }

// Accounts returns the account view of the store.
func (s *MemoryStorage) Accounts() *MemoryAccountRepository { return &MemoryAccountRepository{s: s} }

// Cards returns the card view of the store.
func (s *MemoryStorage) Cards() *MemoryCardRepository { return &MemoryCardRepository{s: s} }

// Transactions returns the transaction view of the store.
func (s *MemoryStorage) Transactions() *MemoryTransactionRepository {
	return &MemoryTransactionRepository{s: s}
}

// MemoryUserRepository implements the user read/write interfaces.
type MemoryUserRepository struct {
	s *MemoryStorage
}

func (r *MemoryUserRepository) GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.UserDB, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := make([]int64, 0, len(r.s.users))
	for id := range r.s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		u := r.s.users[id]
		if username != nil && u.Username != *username {
			continue
		}
		if email != nil && u.Email != *email {
			continue
		}
		return &u, nil
	}
	return nil, nil
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]models.UserDB, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var users []models.UserDB
	for _, u := range r.s.users {
		if u.Role == models.RoleCustomer {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UserID > users[j].UserID })
	return users, nil
}

func (r *MemoryUserRepository) Save(ctx context.Context, username, passwordHash, email, role string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextUserID++
	now := time.Now()
	r.s.users[r.s.nextUserID] = models.UserDB{
		UserID:       r.s.nextUserID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return r.s.nextUserID, nil
}

// MemoryAccountRepository implements the account read/write interfaces.
type MemoryAccountRepository struct {
	s *MemoryStorage
}

func (r *MemoryAccountRepository) GetByID(ctx context.Context, accountID int64) (*models.AccountDB, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.accounts[accountID]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *MemoryAccountRepository) ListByUserID(ctx context.Context, userID int64) ([]models.AccountDB, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var accounts []models.AccountDB
	for _, a := range r.s.accounts {
		if a.UserID == userID {
			accounts = append(accounts, a)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].AccountID < accounts[j].AccountID })
	return accounts, nil
}

func (r *MemoryAccountRepository) Save(ctx context.Context, userID int64, accountType string, balance decimal.Decimal) (*models.AccountDB, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextAccountID++
	now := time.Now()
	account := models.AccountDB{
		AccountID: r.s.nextAccountID,
		UserID:    userID,
		Type:      accountType,
		Balance:   balance,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.s.accounts[account.AccountID] = account
	return &account, nil
}

func (r *MemoryAccountRepository) UpdateBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[accountID]
	if !ok {
		return ErrNotFound
	}
	a.Balance = balance
	a.UpdatedAt = time.Now()
	r.s.accounts[accountID] = a
	return nil
}

// MemoryCardRepository implements the card read/write interfaces.
type MemoryCardRepository struct {
	s *MemoryStorage
}

func (r *MemoryCardRepository) GetByID(ctx context.Context, cardID int64) (*models.CardDB, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.cards[cardID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *MemoryCardRepository) Save(ctx context.Context, accountID int64, maskedNumber string) (*models.CardDB, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextCardID++
	now := time.Now()
	card := models.CardDB{
		CardID:       r.s.nextCardID,
		AccountID:    accountID,
		MaskedNumber: maskedNumber,
		Status:       models.CardPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.s.cards[card.CardID] = card
	return &card, nil
}

func (r *MemoryCardRepository) UpdateStatus(ctx context.Context, cardID int64, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.cards[cardID]
	if !ok {
		return ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = time.Now()
	r.s.cards[cardID] = c
	return nil
}

// MemoryTransactionRepository implements the transaction read/write interfaces.
type MemoryTransactionRepository struct {
	s *MemoryStorage
}

func (r *MemoryTransactionRepository) ListByAccountID(ctx context.Context, accountID int64) ([]models.TransactionDB, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var txns []models.TransactionDB
	for _, t := range r.s.transactions {
		if t.AccountID == accountID {
			txns = append(txns, t)
		}
	}
	sort.Slice(txns, func(i, j int) bool {
		if !txns[i].OccurredAt.Equal(txns[j].OccurredAt) {
			return txns[i].OccurredAt.Before(txns[j].OccurredAt)
		}
		return txns[i].TransactionID < txns[j].TransactionID
	})
	return txns, nil
}

func (r *MemoryTransactionRepository) CountAll(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.transactions)), nil
}

// Save assigns the next global transaction id; ids stay unique across every
// account in the store.
func (r *MemoryTransactionRepository) Save(ctx context.Context, accountID int64, txType models.TransactionType, amount decimal.Decimal, description string, occurredAt time.Time) (*models.TransactionDB, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextTransactionID++
	txn := models.TransactionDB{
		TransactionID: r.s.nextTransactionID,
		AccountID:     accountID,
		Type:          txType,
		Amount:        amount,
		Description:   description,
		OccurredAt:    occurredAt,
	}
	r.s.transactions[txn.TransactionID] = txn
	return &txn, nil
}
