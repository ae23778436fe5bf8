package services

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonbank/horizon/internal/history"
	"github.com/horizonbank/horizon/internal/models"
	"github.com/horizonbank/horizon/internal/repositories"
)

func newSeedService(store *repositories.MemoryStorage) *SeedService {
	generator := history.New(history.NewSource(42), history.Config{SortByDate: true})
	return NewSeedService(
		store.Users(), store.Users(),
		store.Accounts(),
		store.Transactions(), store.Transactions(),
		generator,
	)
}

func TestSeedService_Run(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStorage()
	svc := newSeedService(store)

	require.NoError(t, svc.Run(ctx))

	adminName := "admin"
	admin, err := store.Users().GetByUsernameOrEmail(ctx, &adminName, nil)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	demoName := "demo"
	demo, err := store.Users().GetByUsernameOrEmail(ctx, &demoName, nil)
	require.NoError(t, err)
	require.NotNil(t, demo)
	assert.Equal(t, models.RoleCustomer, demo.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(demo.PasswordHash), []byte("demo1234")))

	accounts, err := store.Accounts().ListByUserID(ctx, demo.UserID)
	require.NoError(t, err)
	require.Len(t, accounts, len(DefaultSeedAccounts))

	types := make([]string, 0, len(accounts))
	for _, a := range accounts {
		types = append(types, a.Type)

		txns, err := store.Transactions().ListByAccountID(ctx, a.AccountID)
		require.NoError(t, err)
		// Several years of 5-15 transactions a month.
		assert.Greater(t, len(txns), 100, "account %d has too little history", a.AccountID)
		for _, txn := range txns {
			assert.False(t, txn.OccurredAt.Before(historyStart))
		}
	}
	assert.ElementsMatch(t, []string{models.AccountChecking, models.AccountSavings, models.AccountCredit}, types)
}

func TestSeedService_Run_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStorage()
	svc := newSeedService(store)

	require.NoError(t, svc.Run(ctx))
	count, err := store.Transactions().CountAll(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Run(ctx))
	again, err := store.Transactions().CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, count, again)

	// No duplicate users either.
	customers, err := store.Users().List(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}
