package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonbank/horizon/internal/models"
)

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	users := store.Users()

	id, err := users.Save(ctx, "alice", "hash1", "alice@example.com", models.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	id2, err := users.Save(ctx, "bob", "hash2", "bob@example.com", models.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id2)

	username := "alice"
	u, err := users.GetByUsernameOrEmail(ctx, &username, nil)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, models.RoleCustomer, u.Role)

	missing := "carol"
	u, err = users.GetByUsernameOrEmail(ctx, &missing, nil)
	require.NoError(t, err)
	assert.Nil(t, u)

	email := "bob@example.com"
	u, err = users.GetByUsernameOrEmail(ctx, nil, &email)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "bob", u.Username)
}

func TestMemoryUserRepository_ListExcludesAdmins(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	users := store.Users()

	_, err := users.Save(ctx, "admin", "hash", "admin@example.com", models.RoleAdmin)
	require.NoError(t, err)
	_, err = users.Save(ctx, "alice", "hash", "alice@example.com", models.RoleCustomer)
	require.NoError(t, err)

	customers, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "alice", customers[0].Username)
}

func TestMemoryAccountRepository(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	accounts := store.Accounts()

	a, err := accounts.Save(ctx, 1, models.AccountChecking, decimal.NewFromInt(100))
	require.NoError(t, err)
	b, err := accounts.Save(ctx, 1, models.AccountSavings, decimal.NewFromInt(200))
	require.NoError(t, err)
	_, err = accounts.Save(ctx, 2, models.AccountChecking, decimal.NewFromInt(300))
	require.NoError(t, err)

	assert.NotEqual(t, a.AccountID, b.AccountID)

	got, err := accounts.GetByID(ctx, a.AccountID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(100)))

	got, err = accounts.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, got)

	list, err := accounts.ListByUserID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.AccountID, list[0].AccountID)

	err = accounts.UpdateBalance(ctx, a.AccountID, decimal.NewFromInt(50))
	require.NoError(t, err)
	got, _ = accounts.GetByID(ctx, a.AccountID)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(50)))

	err = accounts.UpdateBalance(ctx, 999, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryTransactionRepository(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	txns := store.Transactions()

	count, err := txns.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Insert out of chronological order to check sorted listing.
	later := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	t1, err := txns.Save(ctx, 1, models.TransactionDeposit, decimal.NewFromInt(100), "DIRECT DEPOSIT - SALARY - REF:AAAABBBBCCCC", later)
	require.NoError(t, err)
	t2, err := txns.Save(ctx, 1, models.TransactionWithdrawal, decimal.NewFromInt(20), "ATM WITHDRAWAL - REF:DDDDEEEEFFFF", earlier)
	require.NoError(t, err)
	_, err = txns.Save(ctx, 2, models.TransactionDeposit, decimal.NewFromInt(500), "TRANSFER - FROM ACCOUNT - REF:GGGGHHHHIIII", earlier)
	require.NoError(t, err)

	// Ids are global across accounts, not per-account.
	assert.Equal(t, int64(1), t1.TransactionID)
	assert.Equal(t, int64(2), t2.TransactionID)

	list, err := txns.ListByAccountID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, t2.TransactionID, list[0].TransactionID)
	assert.Equal(t, t1.TransactionID, list[1].TransactionID)

	count, err = txns.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestMemoryCardRepository(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	cards := store.Cards()

	c, err := cards.Save(ctx, 1, "**** **** **** 4921")
	require.NoError(t, err)
	assert.Equal(t, models.CardPending, c.Status)

	got, err := cards.GetByID(ctx, c.CardID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "**** **** **** 4921", got.MaskedNumber)

	err = cards.UpdateStatus(ctx, c.CardID, models.CardActive)
	require.NoError(t, err)
	got, _ = cards.GetByID(ctx, c.CardID)
	assert.Equal(t, models.CardActive, got.Status)

	err = cards.UpdateStatus(ctx, 999, models.CardActive)
	assert.ErrorIs(t, err, ErrNotFound)
}
